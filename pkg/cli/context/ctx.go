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

// Package context holds the information shared by the commands of the cli
package context

import (
	"io"

	"github.com/dnote/diffcheck/pkg/clock"
	"github.com/dnote/diffcheck/pkg/validate"
)

// Paths contain directory definitions
type Paths struct {
	Home string
	// Config is the directory holding the config file
	Config string
}

// DiffcheckCtx is a context holding the information of the current runtime
type DiffcheckCtx struct {
	Paths   Paths
	Version string
	Clock   clock.Clock
	Limits  validate.Limits

	// defaults of the compare command, read from the config file
	ViewMode         string
	IgnoreWhitespace bool
	Width            int
	NoColor          bool

	// Stderr receives the busy indicator. It is not drawn if nil.
	Stderr io.Writer
}
