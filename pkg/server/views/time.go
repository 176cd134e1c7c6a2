/* Copyright 2025 Dnote Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package views

import (
	"fmt"
	"time"
)

type timeDiff struct {
	text  string
	tense string
}

func pluralize(singular string, count int) string {
	var noun string
	if count == 1 {
		noun = singular
	} else {
		noun = singular + "s"
	}

	return noun
}

func abs(num int64) int64 {
	if num < 0 {
		return -num
	}

	return num
}

var (
	day  = 24 * time.Hour.Milliseconds()
	week = 7 * day
)

var units = []struct {
	noun string
	ms   int64
}{
	{"year", 52 * week},
	{"month", 4 * week},
	{"week", week},
	{"day", day},
	{"hour", time.Hour.Milliseconds()},
	{"minute", time.Minute.Milliseconds()},
}

func relativeTimeDiff(t1, t2 time.Time) timeDiff {
	diff := t1.Sub(t2)
	ts := abs(diff.Milliseconds())

	var tense string
	if diff > 0 {
		tense = "past"
	} else {
		tense = "future"
	}

	for _, u := range units {
		if interval := ts / u.ms; interval >= 1 {
			return timeDiff{
				text:  fmt.Sprintf("%d %s", interval, pluralize(u.noun, int(interval))),
				tense: tense,
			}
		}
	}

	return timeDiff{
		text: "just now",
	}
}

// relativeTime describes t relative to now, e.g. "in 6 days" or "2 hours ago"
func relativeTime(now, t time.Time) string {
	d := relativeTimeDiff(now, t)

	switch d.tense {
	case "past":
		return d.text + " ago"
	case "future":
		return "in " + d.text
	}

	return d.text
}
