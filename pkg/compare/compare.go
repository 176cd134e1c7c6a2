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

// Package compare orchestrates a comparison of two texts: it validates the
// inputs, short-circuits identical texts, and runs the alignment and the
// rendering of the differences.
package compare

import (
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/dnote/diffcheck/pkg/clock"
	"github.com/dnote/diffcheck/pkg/diff"
	"github.com/dnote/diffcheck/pkg/render"
	"github.com/dnote/diffcheck/pkg/validate"
	"github.com/pkg/errors"
)

const (
	// MessageIdentical is the message of a comparison of identical texts
	MessageIdentical = "The texts are identical - no differences found!"
	// MessageFailed is the message of a comparison that failed while computing
	MessageFailed = "Error generating diff. Please try again."
)

// ErrEmptyInputs is an error for a comparison of two empty texts
var ErrEmptyInputs = errors.New("Please enter text in both fields to compare")

// Status is the outcome of a comparison
type Status string

const (
	// StatusRejected means the inputs did not pass the validation
	StatusRejected Status = "rejected"
	// StatusIdentical means the texts are equal and nothing was computed
	StatusIdentical Status = "identical"
	// StatusDifferent means the differences were computed
	StatusDifferent Status = "different"
	// StatusFailed means the computation or the rendering failed
	StatusFailed Status = "failed"
)

// Request is a comparison request
type Request struct {
	Original         string
	Changed          string
	IgnoreWhitespace bool
	// ViewMode is only forwarded to the renderer
	ViewMode render.ViewMode
}

// Result is the result of a comparison
type Result struct {
	Status  Status
	Message string
	Err     error
	// Unified is the unified diff of the texts. It is empty unless the status is StatusDifferent.
	Unified string
	Hunks   []diff.Hunk
	// Rendered is the output of the renderer, if any
	Rendered string
	Duration time.Duration
}

// Busy is an indicator shown while the differences are computed
type Busy interface {
	Show()
	Hide()
}

// Comparer runs comparisons one at a time
type Comparer struct {
	Limits validate.Limits
	// Renderer renders the unified diff. It is optional.
	Renderer render.Renderer
	// Busy is optional
	Busy  Busy
	Clock clock.Clock
	// Yield is called once between the validation and the computation so
	// that the busy indicator can be drawn. Defaults to runtime.Gosched.
	Yield func()
	// OnTransition is called on every state transition. It is optional.
	OnTransition func(from, to State)

	// mu serializes comparisons
	mu sync.Mutex

	stateMu sync.RWMutex
	state   State
}

// New returns a new comparer with the given limits
func New(limits validate.Limits) *Comparer {
	return &Comparer{
		Limits: limits,
		Clock:  clock.New(),
		Yield:  runtime.Gosched,
	}
}

// State returns the current state of the comparer
func (c *Comparer) State() State {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()

	return c.state
}

func (c *Comparer) transition(to State) {
	c.stateMu.Lock()
	from := c.state
	c.state = to
	c.stateMu.Unlock()

	if c.OnTransition != nil {
		c.OnTransition(from, to)
	}
}

func (c *Comparer) now() time.Time {
	if c.Clock == nil {
		return time.Now()
	}

	return c.Clock.Now()
}

// Validate checks the texts of the request against the given limits
func Validate(req Request, l validate.Limits) error {
	if req.Original == "" && req.Changed == "" {
		return ErrEmptyInputs
	}

	if err := validate.Input(req.Original, l); err != nil {
		return err
	}
	if err := validate.Input(req.Changed, l); err != nil {
		return err
	}

	return nil
}

// Compare runs a comparison to completion. It never returns a Go error: a
// failure is reported in the result.
func (c *Comparer) Compare(req Request) Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := c.now()
	defer c.transition(Idle)

	c.transition(Validating)
	if err := Validate(req, c.Limits); err != nil {
		return Result{
			Status:  StatusRejected,
			Message: err.Error(),
			Err:     err,
		}
	}

	if req.Original == req.Changed {
		c.transition(ShortCircuit)
		c.transition(Done)

		return Result{
			Status:   StatusIdentical,
			Message:  MessageIdentical,
			Duration: c.now().Sub(start),
		}
	}

	ret := c.run(req)
	ret.Duration = c.now().Sub(start)

	c.transition(Done)

	return ret
}

func (c *Comparer) run(req Request) Result {
	if c.Busy != nil {
		c.Busy.Show()
		defer c.Busy.Hide()
	}

	if c.Yield != nil {
		c.Yield()
	}

	c.transition(Computing)

	hunks, unified, rendered, err := c.compute(req)
	if err != nil {
		return Result{
			Status:  StatusFailed,
			Message: MessageFailed,
			Err:     err,
		}
	}

	return Result{
		Status:   StatusDifferent,
		Unified:  unified,
		Hunks:    hunks,
		Rendered: rendered,
	}
}

func (c *Comparer) compute(req Request) (hunks []diff.Hunk, unified, rendered string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("recovered from panic: %v", r)
		}
	}()

	hunks = diff.Align(diff.SplitLines(req.Original), diff.SplitLines(req.Changed), req.IgnoreWhitespace)
	unified = diff.Serialize(hunks)

	if c.Renderer == nil {
		return hunks, unified, "", nil
	}

	mode := req.ViewMode
	if mode == "" {
		mode = render.LineByLine
	}

	var sb strings.Builder
	if err := c.Renderer.Render(&sb, unified, mode); err != nil {
		return nil, "", "", errors.Wrap(err, "rendering")
	}

	return hunks, unified, sb.String(), nil
}
