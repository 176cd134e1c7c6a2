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
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

const (
	// OriginalName is the file name of the original text in the diff header
	OriginalName = "original.txt"
	// ChangedName is the file name of the changed text in the diff header
	ChangedName = "changed.txt"
)

// Header is the fixed header preceding the hunks of every unified diff
var Header = []string{
	fmt.Sprintf("diff --git a/%s b/%s", OriginalName, ChangedName),
	"index 0000000..1111111 100644",
	fmt.Sprintf("--- a/%s", OriginalName),
	fmt.Sprintf("+++ b/%s", ChangedName),
}

// HunkHeader returns the "@@ ... @@" line of the given hunk
func HunkHeader(h Hunk) string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldLines, h.NewStart, h.NewLines)
}

// WriteUnified writes the header and the hunks to w. Line contents are
// written verbatim.
func WriteUnified(w io.Writer, hunks []Hunk) error {
	bw := bufio.NewWriter(w)

	for _, l := range Header {
		if _, err := fmt.Fprintln(bw, l); err != nil {
			return errors.Wrap(err, "writing header")
		}
	}

	for idx, h := range hunks {
		if _, err := fmt.Fprintln(bw, HunkHeader(h)); err != nil {
			return errors.Wrapf(err, "writing hunk header %d", idx)
		}

		for _, l := range h.Lines {
			if _, err := fmt.Fprintln(bw, l.String()); err != nil {
				return errors.Wrapf(err, "writing line of hunk %d", idx)
			}
		}
	}

	return errors.Wrap(bw.Flush(), "flushing")
}

// Serialize returns the unified diff of the given hunks
func Serialize(hunks []Hunk) string {
	var sb strings.Builder

	// strings.Builder never fails
	_ = WriteUnified(&sb, hunks)

	return sb.String()
}

// Unified compares the two texts line by line and returns their unified diff
func Unified(original, changed string, ignoreWhitespace bool) string {
	hunks := Align(SplitLines(original), SplitLines(changed), ignoreWhitespace)

	return Serialize(hunks)
}
