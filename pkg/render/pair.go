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

package render

import (
	"github.com/dnote/diffcheck/pkg/diff"
)

// Row is a line of one side of a diff along with its line number
type Row struct {
	Number int
	Op     diff.Op
	Text   string
}

// Pair is a row of a side-by-side view. Either side may be missing.
type Pair struct {
	Old *Row
	New *Row
}

// Rows numbers the lines of the given hunk in their original order
func Rows(h diff.Hunk) []Row {
	ret := make([]Row, 0, len(h.Lines))

	oldNo, newNo := h.OldStart, h.NewStart
	for _, l := range h.Lines {
		r := Row{Op: l.Op, Text: l.Text}

		if l.Op == diff.OpDelete {
			r.Number = oldNo
			oldNo++
		} else {
			r.Number = newNo
			newNo++
		}

		ret = append(ret, r)
	}

	return ret
}

// Pairs matches the n-th removed line of a hunk with its n-th inserted line
func Pairs(h diff.Hunk) []Pair {
	return pairRows(Rows(h))
}

func pairRows(rows []Row) []Pair {
	var ret []Pair
	var removed []*Row
	var inserted []*Row

	for i := range rows {
		if rows[i].Op == diff.OpDelete {
			removed = append(removed, &rows[i])
		} else {
			inserted = append(inserted, &rows[i])
		}
	}

	for i := 0; i < len(removed) || i < len(inserted); i++ {
		var p Pair
		if i < len(removed) {
			p.Old = removed[i]
		}
		if i < len(inserted) {
			p.New = inserted[i]
		}

		ret = append(ret, p)
	}

	return ret
}
