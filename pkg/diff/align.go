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

// Package diff builds line-level differences between two texts and
// serializes them in the unified diff format.
//
// The alignment is a greedy two-cursor scan without look-ahead. A mismatch
// is always treated as a one-for-one replacement, so an insertion near the
// top of a text shows every following line as replaced until both sides
// happen to line up again. This is intended and must not be replaced with
// a minimal edit script.
package diff

// Op is the tag of a line in a hunk
type Op byte

const (
	// OpDelete marks a line only present in the original text
	OpDelete Op = '-'
	// OpInsert marks a line only present in the changed text
	OpInsert Op = '+'
)

// Line is a tagged line of a hunk
type Line struct {
	Op   Op
	Text string
}

// String returns the line in its tagged form, e.g. "-foo"
func (l Line) String() string {
	return string(l.Op) + l.Text
}

// Hunk is a contiguous region of mismatched lines between two
// synchronization points. It never holds unchanged lines.
type Hunk struct {
	// OldStart is the 1-based line number in the original text where the hunk begins
	OldStart int
	// OldLines is the number of deleted lines
	OldLines int
	// NewStart is the 1-based line number in the changed text where the hunk begins
	NewStart int
	// NewLines is the number of inserted lines
	NewLines int
	Lines    []Line
}

func newHunk(i, j int) Hunk {
	return Hunk{
		OldStart: i + 1,
		NewStart: j + 1,
	}
}

func (h *Hunk) remove(text string) {
	h.Lines = append(h.Lines, Line{Op: OpDelete, Text: text})
	h.OldLines++
}

func (h *Hunk) insert(text string) {
	h.Lines = append(h.Lines, Line{Op: OpInsert, Text: text})
	h.NewLines++
}

// Align walks both line sequences and returns the hunks of mismatched lines.
// Two lines match if their normalized forms are equal.
func Align(oldLines, newLines []string, ignoreWhitespace bool) []Hunk {
	var hunks []Hunk

	i, j := 0, 0
	cur := newHunk(i, j)

	for i < len(oldLines) || j < len(newLines) {
		switch {
		case i >= len(oldLines):
			cur.insert(newLines[j])
			j++
		case j >= len(newLines):
			cur.remove(oldLines[i])
			i++
		case Normalize(oldLines[i], ignoreWhitespace) == Normalize(newLines[j], ignoreWhitespace):
			if len(cur.Lines) > 0 {
				hunks = append(hunks, cur)
			}
			i++
			j++
			cur = newHunk(i, j)
		default:
			cur.remove(oldLines[i])
			cur.insert(newLines[j])
			i++
			j++
		}
	}

	if len(cur.Lines) > 0 {
		hunks = append(hunks, cur)
	}

	return hunks
}
