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

package diff

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrMissingHeader is an error for a unified diff without the fixed header
	ErrMissingHeader = errors.New("missing unified diff header")
	// ErrMalformedHunkHeader is an error for an unparsable "@@" line
	ErrMalformedHunkHeader = errors.New("malformed hunk header")
	// ErrMalformedHunk is an error for a hunk whose lines do not agree with its header
	ErrMalformedHunk = errors.New("malformed hunk")
)

func parseHunkHeader(s string) (Hunk, error) {
	var h Hunk

	if !strings.HasPrefix(s, "@@ ") {
		return h, errors.Wrapf(ErrMalformedHunkHeader, "'%s'", s)
	}
	if _, err := fmt.Sscanf(s, "@@ -%d,%d +%d,%d @@", &h.OldStart, &h.OldLines, &h.NewStart, &h.NewLines); err != nil {
		return h, errors.Wrapf(ErrMalformedHunkHeader, "'%s'", s)
	}
	if h.OldStart < 1 || h.NewStart < 1 || h.OldLines < 0 || h.NewLines < 0 {
		return h, errors.Wrapf(ErrMalformedHunkHeader, "'%s'", s)
	}

	return h, nil
}

// Parse reads a unified diff produced by Serialize back into hunks.
//
// Line contents are not escaped by the serializer, so a hunk's lines are
// delimited by the counts in its header rather than by their content.
func Parse(unified string) ([]Hunk, error) {
	lines := SplitLines(strings.TrimSuffix(unified, "\n"))

	if len(lines) < len(Header) {
		return nil, ErrMissingHeader
	}
	for idx, l := range Header {
		if lines[idx] != l {
			return nil, errors.Wrapf(ErrMissingHeader, "line %d", idx+1)
		}
	}

	var hunks []Hunk

	pos := len(Header)
	for pos < len(lines) {
		h, err := parseHunkHeader(lines[pos])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", pos+1)
		}
		pos++

		var removed, inserted int
		for removed < h.OldLines || inserted < h.NewLines {
			if pos >= len(lines) {
				return nil, errors.Wrapf(ErrMalformedHunk, "unexpected end of diff in '%s'", HunkHeader(h))
			}

			l := lines[pos]
			if l == "" {
				return nil, errors.Wrapf(ErrMalformedHunk, "untagged line %d", pos+1)
			}

			switch Op(l[0]) {
			case OpDelete:
				removed++
			case OpInsert:
				inserted++
			default:
				return nil, errors.Wrapf(ErrMalformedHunk, "untagged line %d", pos+1)
			}
			if removed > h.OldLines || inserted > h.NewLines {
				return nil, errors.Wrapf(ErrMalformedHunk, "too many lines at line %d", pos+1)
			}

			h.Lines = append(h.Lines, Line{Op: Op(l[0]), Text: l[1:]})
			pos++
		}

		hunks = append(hunks, h)
	}

	return hunks, nil
}
