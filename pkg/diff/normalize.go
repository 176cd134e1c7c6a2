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
	"strings"
	"unicode"
)

// SplitLines splits the given text into lines on '\n'. An empty text yields
// a single empty line and a trailing newline yields a trailing empty line.
func SplitLines(text string) []string {
	return strings.Split(text, "\n")
}

// isSpace reports whether r is whitespace as matched by \s in JavaScript
// regular expressions: the space separators, the line terminators,
// U+0009, U+000B, U+000C and U+FEFF. U+0085 is not whitespace.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\u2028', '\u2029', '\ufeff':
		return true
	}

	return unicode.Is(unicode.Zs, r)
}

// Normalize returns the comparison key of the given line. If ignoreWhitespace
// is false, the line is returned as is. Otherwise leading and trailing
// whitespace is removed and every interior run of whitespace is collapsed
// into a single space.
//
// The key is only ever used for equality. It is never emitted.
func Normalize(line string, ignoreWhitespace bool) string {
	if !ignoreWhitespace {
		return line
	}

	var b strings.Builder
	b.Grow(len(line))

	inSpace := false
	for _, r := range strings.TrimFunc(line, isSpace) {
		if isSpace(r) {
			inSpace = true
			continue
		}

		if inSpace {
			b.WriteByte(' ')
			inSpace = false
		}
		b.WriteRune(r)
	}

	return b.String()
}
