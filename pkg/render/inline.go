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
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// inlineTimeout bounds the character diff of a pair of long lines
const inlineTimeout = 100 * time.Millisecond

// Segment is a piece of a line, marked if it differs from its counterpart
type Segment struct {
	Text    string
	Changed bool
}

// InlineSpans computes the changed segments of a removed line and the
// inserted line paired with it, by wrapping the package
// github.com/sergi/go-diff/diffmatchpatch
func InlineSpans(oldText, newText string) (oldSegs, newSegs []Segment) {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = inlineTimeout

	diffs := dmp.DiffMain(oldText, newText, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			oldSegs = appendSegment(oldSegs, d.Text, false)
			newSegs = appendSegment(newSegs, d.Text, false)
		case diffmatchpatch.DiffDelete:
			oldSegs = appendSegment(oldSegs, d.Text, true)
		case diffmatchpatch.DiffInsert:
			newSegs = appendSegment(newSegs, d.Text, true)
		}
	}

	return oldSegs, newSegs
}

// appendSegment appends text to segs, merging it into the last segment if
// both have the same mark
func appendSegment(segs []Segment, text string, changed bool) []Segment {
	if text == "" {
		return segs
	}

	if n := len(segs); n > 0 && segs[n-1].Changed == changed {
		segs[n-1].Text += text
		return segs
	}

	return append(segs, Segment{Text: text, Changed: changed})
}

// plainSegments returns the whole text as a single unchanged segment
func plainSegments(text string) []Segment {
	return appendSegment(nil, text, false)
}
