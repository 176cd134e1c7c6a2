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

// Package utils provides the file helpers of the cli
package utils

import (
	"io"
	"os"

	"github.com/dnote/diffcheck/pkg/validate"
	"github.com/pkg/errors"
)

// StdinPath is the path standing for the standard input
const StdinPath = "-"

// ErrIsDirectory is an error for an input path pointing to a directory
var ErrIsDirectory = errors.New("Input is a directory")

// FileExists checks if the file exists at the given path
func FileExists(filepath string) (bool, error) {
	_, err := os.Stat(filepath)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}

	return false, errors.Wrap(err, "getting file info")
}

// ReadInput reads the text at the given path. StdinPath reads stdin instead.
// Files larger than maxBytes are rejected before they are read. At most
// maxBytes+1 bytes of stdin are read so that the oversize is still detected.
func ReadInput(path string, stdin io.Reader, maxBytes int) (string, error) {
	if path == StdinPath {
		b, err := io.ReadAll(io.LimitReader(stdin, int64(maxBytes)+1))
		if err != nil {
			return "", errors.Wrap(err, "reading stdin")
		}

		return string(b), nil
	}

	fi, err := os.Stat(path)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", path)
	}
	if fi.IsDir() {
		return "", errors.Wrapf(ErrIsDirectory, "'%s'", path)
	}
	if err := validate.FileSize(fi.Size(), validate.Limits{MaxBytes: maxBytes}); err != nil {
		return "", err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", path)
	}

	return string(b), nil
}
