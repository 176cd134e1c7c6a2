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

// Package validate provides functions to validate the texts submitted for a comparison
package validate

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dnote/diffcheck/pkg/diff"
	"github.com/pkg/errors"
)

const (
	// DefaultMaxBytes is the default maximum size of an input in bytes
	DefaultMaxBytes = 1024 * 1024
	// DefaultMaxLines is the default maximum number of lines of an input
	DefaultMaxLines = 50000
)

// ErrInputTooLarge is an error for an input exceeding the maximum size
var ErrInputTooLarge = errors.New("Input too large")

// ErrTooManyLines is an error for an input exceeding the maximum number of lines
var ErrTooManyLines = errors.New("Too many lines")

// ErrFileTooLarge is an error for an uploaded file exceeding the maximum size
var ErrFileTooLarge = errors.New("File too large")

// ErrUnsupportedFileType is an error for an uploaded file with an extension not in the allow list
var ErrUnsupportedFileType = errors.New("Invalid file type. Please upload a supported text or code file.")

// AllowedExtensions is the list of file extensions accepted for uploads
var AllowedExtensions = []string{
	".txt", ".js", ".jsx", ".ts", ".tsx", ".html", ".css", ".json",
	".md", ".py", ".java", ".c", ".cpp", ".xml", ".sql",
}

// Limits are the size limits of an input
type Limits struct {
	MaxBytes int
	MaxLines int
}

// DefaultLimits are the limits applied when none are configured
var DefaultLimits = Limits{
	MaxBytes: DefaultMaxBytes,
	MaxLines: DefaultMaxLines,
}

// limitError carries a user facing message while keeping the sentinel as its cause
type limitError struct {
	cause error
	msg   string
}

func (e *limitError) Error() string { return e.msg }
func (e *limitError) Cause() error  { return e.cause }
func (e *limitError) Unwrap() error { return e.cause }

func newLimitError(cause error, format string, v ...interface{}) error {
	return &limitError{
		cause: cause,
		msg:   fmt.Sprintf("%s. %s", cause.Error(), fmt.Sprintf(format, v...)),
	}
}

// Input validates the size and the line count of the given text
func Input(text string, l Limits) error {
	if l.MaxBytes > 0 && len(text) > l.MaxBytes {
		return newLimitError(ErrInputTooLarge, "Maximum size is %dKB", l.MaxBytes/1024)
	}

	if l.MaxLines > 0 {
		if n := len(diff.SplitLines(text)); n > l.MaxLines {
			return newLimitError(ErrTooManyLines, "Maximum is %d lines", l.MaxLines)
		}
	}

	return nil
}

// FileSize validates the size of an uploaded file
func FileSize(size int64, l Limits) error {
	if l.MaxBytes > 0 && size > int64(l.MaxBytes) {
		return newLimitError(ErrFileTooLarge, "Maximum size is %dKB. Your file is %.2fKB.", l.MaxBytes/1024, float64(size)/1024)
	}

	return nil
}

// FileName validates the extension of an uploaded file
func FileName(name string) error {
	ext := strings.ToLower(filepath.Ext(name))

	for _, e := range AllowedExtensions {
		if ext == e {
			return nil
		}
	}

	return ErrUnsupportedFileType
}
