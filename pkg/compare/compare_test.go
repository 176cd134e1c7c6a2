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

package compare

import (
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dnote/diffcheck/pkg/assert"
	"github.com/dnote/diffcheck/pkg/clock"
	"github.com/dnote/diffcheck/pkg/diff"
	"github.com/dnote/diffcheck/pkg/render"
	"github.com/dnote/diffcheck/pkg/validate"
	"github.com/pkg/errors"
)

type mockBusy struct {
	shown  int
	hidden int
	// visible records whether the indicator was visible when the renderer ran
	visible bool
}

func (b *mockBusy) Show() { b.shown++ }
func (b *mockBusy) Hide() { b.hidden++ }

type rendererFunc func(w io.Writer, unified string, mode render.ViewMode) error

func (f rendererFunc) Render(w io.Writer, unified string, mode render.ViewMode) error {
	return f(w, unified, mode)
}

func newTestComparer() *Comparer {
	c := New(validate.DefaultLimits)
	c.Clock = clock.NewMock()

	return c
}

func TestCompare_Scenarios(t *testing.T) {
	testCases := []struct {
		name             string
		original         string
		changed          string
		ignoreWhitespace bool
		expectedStatus   Status
		expectedHunks    []diff.Hunk
	}{
		{
			name:           "identical",
			original:       "a\nb\nc",
			changed:        "a\nb\nc",
			expectedStatus: StatusIdentical,
		},
		{
			name:           "replaced line",
			original:       "a\nb\nc",
			changed:        "a\nX\nc",
			expectedStatus: StatusDifferent,
			expectedHunks: []diff.Hunk{
				{
					OldStart: 2, OldLines: 1, NewStart: 2, NewLines: 1,
					Lines: []diff.Line{{Op: diff.OpDelete, Text: "b"}, {Op: diff.OpInsert, Text: "X"}},
				},
			},
		},
		{
			name:           "removed line",
			original:       "a\nb",
			changed:        "a",
			expectedStatus: StatusDifferent,
			expectedHunks: []diff.Hunk{
				{
					OldStart: 2, OldLines: 1, NewStart: 2, NewLines: 0,
					Lines: []diff.Line{{Op: diff.OpDelete, Text: "b"}},
				},
			},
		},
		{
			name:             "whitespace ignored",
			original:         "  a  ",
			changed:          "a",
			ignoreWhitespace: true,
			expectedStatus:   StatusDifferent,
			expectedHunks:    nil,
		},
		{
			name:           "one side empty",
			original:       "",
			changed:        "a",
			expectedStatus: StatusDifferent,
			expectedHunks: []diff.Hunk{
				{
					OldStart: 1, OldLines: 1, NewStart: 1, NewLines: 1,
					Lines: []diff.Line{{Op: diff.OpDelete, Text: ""}, {Op: diff.OpInsert, Text: "a"}},
				},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestComparer()

			res := c.Compare(Request{
				Original:         tc.original,
				Changed:          tc.changed,
				IgnoreWhitespace: tc.ignoreWhitespace,
			})

			assert.Equal(t, res.Status, tc.expectedStatus, "status mismatch")
			assert.DeepEqual(t, res.Hunks, tc.expectedHunks, "hunks mismatch")
			if res.Status == StatusDifferent {
				assert.Equal(t, res.Unified, diff.Serialize(tc.expectedHunks), "unified diff mismatch")
			}
		})
	}
}

func TestCompare_Identical(t *testing.T) {
	b := &mockBusy{}
	c := newTestComparer()
	c.Busy = b
	c.Renderer = rendererFunc(func(w io.Writer, unified string, mode render.ViewMode) error {
		t.Error("renderer should not be called")
		return nil
	})

	res := c.Compare(Request{Original: "x", Changed: "x", IgnoreWhitespace: true})

	assert.Equal(t, res.Status, StatusIdentical, "status mismatch")
	assert.Equal(t, res.Message, MessageIdentical, "message mismatch")
	assert.Equal(t, res.Unified, "", "unified diff should be empty")
	assert.Equal(t, b.shown, 0, "busy indicator should not be shown")
}

func TestCompare_Rejected(t *testing.T) {
	testCases := []struct {
		name        string
		req         Request
		expectedErr error
	}{
		{
			name:        "both empty",
			req:         Request{},
			expectedErr: ErrEmptyInputs,
		},
		{
			name:        "original too large",
			req:         Request{Original: strings.Repeat("x", 11), Changed: "y"},
			expectedErr: validate.ErrInputTooLarge,
		},
		{
			name:        "changed has too many lines",
			req:         Request{Original: "x", Changed: "a\nb\nc\nd"},
			expectedErr: validate.ErrTooManyLines,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := &mockBusy{}
			c := newTestComparer()
			c.Limits = validate.Limits{MaxBytes: 10, MaxLines: 3}
			c.Busy = b

			res := c.Compare(tc.req)

			assert.Equal(t, res.Status, StatusRejected, "status mismatch")
			assert.ErrorIs(t, res.Err, tc.expectedErr, "error mismatch")
			assert.Equal(t, res.Message, res.Err.Error(), "message mismatch")
			assert.Equal(t, b.shown, 0, "busy indicator should not be shown")
			assert.Equal(t, c.State(), Idle, "state mismatch")
		})
	}
}

func TestCompare_RenderFailure(t *testing.T) {
	b := &mockBusy{}
	c := newTestComparer()
	c.Busy = b
	c.Renderer = rendererFunc(func(w io.Writer, unified string, mode render.ViewMode) error {
		return errors.New("boom")
	})

	res := c.Compare(Request{Original: "a", Changed: "b"})

	assert.Equal(t, res.Status, StatusFailed, "status mismatch")
	assert.Equal(t, res.Message, MessageFailed, "message mismatch")
	assert.NotEqual(t, res.Err, nil, "error should be set")
	assert.Equal(t, b.shown, 1, "busy indicator shown count mismatch")
	assert.Equal(t, b.hidden, 1, "busy indicator hidden count mismatch")
	assert.Equal(t, c.State(), Idle, "state mismatch")

	// the comparer is ready for the next request
	c.Renderer = nil
	res = c.Compare(Request{Original: "a", Changed: "b"})
	assert.Equal(t, res.Status, StatusDifferent, "status mismatch after failure")
}

func TestCompare_RenderPanic(t *testing.T) {
	b := &mockBusy{}
	c := newTestComparer()
	c.Busy = b
	c.Renderer = rendererFunc(func(w io.Writer, unified string, mode render.ViewMode) error {
		panic("unexpected")
	})

	res := c.Compare(Request{Original: "a", Changed: "b"})

	assert.Equal(t, res.Status, StatusFailed, "status mismatch")
	assert.Equal(t, b.hidden, 1, "busy indicator should be hidden")
}

func TestCompare_Rendered(t *testing.T) {
	var gotMode render.ViewMode
	var gotUnified string

	b := &mockBusy{}
	c := newTestComparer()
	c.Busy = b
	c.Renderer = rendererFunc(func(w io.Writer, unified string, mode render.ViewMode) error {
		gotMode = mode
		gotUnified = unified
		b.visible = b.shown > b.hidden

		_, err := io.WriteString(w, "rendered")
		return err
	})

	res := c.Compare(Request{Original: "a", Changed: "b", ViewMode: render.SideBySide})

	assert.Equal(t, res.Status, StatusDifferent, "status mismatch")
	assert.Equal(t, res.Rendered, "rendered", "rendered output mismatch")
	assert.Equal(t, gotMode, render.SideBySide, "view mode mismatch")
	assert.Equal(t, gotUnified, res.Unified, "unified diff mismatch")
	assert.Equal(t, b.visible, true, "busy indicator should be visible while rendering")
	assert.Equal(t, b.hidden, 1, "busy indicator should be hidden")

	c.Compare(Request{Original: "a", Changed: "b"})
	assert.Equal(t, gotMode, render.LineByLine, "default view mode mismatch")
}

func TestCompare_Transitions(t *testing.T) {
	testCases := []struct {
		name     string
		req      Request
		expected []State
	}{
		{
			name:     "rejected",
			req:      Request{},
			expected: []State{Validating, Idle},
		},
		{
			name:     "identical",
			req:      Request{Original: "a", Changed: "a"},
			expected: []State{Validating, ShortCircuit, Done, Idle},
		},
		{
			name:     "different",
			req:      Request{Original: "a", Changed: "b"},
			expected: []State{Validating, Computing, Done, Idle},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got []State

			c := newTestComparer()
			c.OnTransition = func(from, to State) {
				got = append(got, to)
			}

			c.Compare(tc.req)

			assert.DeepEqual(t, got, tc.expected, "transitions mismatch")
		})
	}
}

func TestCompare_YieldsBeforeComputing(t *testing.T) {
	var yields int
	var stateAtYield State

	c := newTestComparer()
	c.Yield = func() {
		yields++
		stateAtYield = c.State()
	}

	c.Compare(Request{Original: "a", Changed: "a"})
	assert.Equal(t, yields, 0, "identical texts should not yield")

	c.Compare(Request{Original: "a", Changed: "b"})
	assert.Equal(t, yields, 1, "yield count mismatch")
	assert.Equal(t, stateAtYield, Validating, "state at yield mismatch")
}

func TestCompare_OneAtATime(t *testing.T) {
	var inFlight, maxInFlight int32

	c := newTestComparer()
	c.Renderer = rendererFunc(func(w io.Writer, unified string, mode render.ViewMode) error {
		n := atomic.AddInt32(&inFlight, 1)
		defer atomic.AddInt32(&inFlight, -1)

		for {
			m := atomic.LoadInt32(&maxInFlight)
			if n <= m || atomic.CompareAndSwapInt32(&maxInFlight, m, n) {
				break
			}
		}

		time.Sleep(time.Millisecond)
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Compare(Request{Original: "a", Changed: "b"})
		}()
	}
	wg.Wait()

	assert.Equal(t, atomic.LoadInt32(&maxInFlight), int32(1), "comparisons should not overlap")
}

func TestCompare_Duration(t *testing.T) {
	m := clock.NewMock()
	c := newTestComparer()
	c.Clock = m
	c.Renderer = rendererFunc(func(w io.Writer, unified string, mode render.ViewMode) error {
		m.Advance(2 * time.Second)
		return nil
	})

	res := c.Compare(Request{Original: "a", Changed: "b"})

	assert.Equal(t, res.Duration, 2*time.Second, "duration mismatch")
}

func TestStateString(t *testing.T) {
	assert.Equal(t, Computing.String(), "computing", "name mismatch")
	assert.Equal(t, State(42).String(), "unknown", "unknown name mismatch")
}

func TestValidate(t *testing.T) {
	l := validate.Limits{MaxBytes: 4, MaxLines: 2}

	assert.ErrorIs(t, Validate(Request{}, l), ErrEmptyInputs, "empty inputs")
	assert.ErrorIs(t, Validate(Request{Original: "a"}, l), nil, "one empty side")
	assert.ErrorIs(t, Validate(Request{Original: "abcde", Changed: "a"}, l), validate.ErrInputTooLarge, "too large")

	// within the size limit so that the line count is checked
	wide := validate.Limits{MaxBytes: 16, MaxLines: 2}
	assert.ErrorIs(t, Validate(Request{Original: "a", Changed: "a\nb\nc"}, wide), validate.ErrTooManyLines, "too many lines")
	assert.ErrorIs(t, Validate(Request{Original: "a\nb", Changed: "a"}, wide), nil, "at the line limit")
}
