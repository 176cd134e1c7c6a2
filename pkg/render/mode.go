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

// Package render draws unified diffs produced by the diff package for
// terminals and web pages.
package render

import (
	"io"

	"github.com/pkg/errors"
)

// ViewMode specifies how the differences are laid out
type ViewMode string

const (
	// LineByLine shows removed and inserted lines one after another
	LineByLine ViewMode = "line-by-line"
	// SideBySide shows the original on the left and the changed text on the right
	SideBySide ViewMode = "side-by-side"
)

// ErrInvalidViewMode is an error for an unknown view mode
var ErrInvalidViewMode = errors.New("Invalid view mode")

// ParseViewMode parses the given string into a view mode. An empty string
// yields LineByLine.
func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(s) {
	case "", LineByLine:
		return LineByLine, nil
	case SideBySide:
		return SideBySide, nil
	default:
		return "", errors.Wrapf(ErrInvalidViewMode, "'%s'", s)
	}
}

// Renderer draws a unified diff onto w
type Renderer interface {
	Render(w io.Writer, unified string, mode ViewMode) error
}
