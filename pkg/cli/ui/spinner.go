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

// Package ui draws the interactive parts of the cli
package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

// clearLine moves the cursor to the start of the line and erases it
const clearLine = "\r\033[K"

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Spinner is a busy indicator drawn on a single line
type Spinner struct {
	Message  string
	Interval time.Duration

	w    io.Writer
	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewSpinner returns a spinner drawing the message on w
func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{
		Message:  message,
		Interval: 100 * time.Millisecond,
		w:        w,
	}
}

// Show starts drawing the spinner until Hide is called
func (s *Spinner) Show() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop != nil {
		return
	}

	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go s.spin(s.stop, s.done)
}

func (s *Spinner) spin(stop, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		fmt.Fprintf(s.w, "\r%s %s", spinnerFrames[i%len(spinnerFrames)], s.Message)

		select {
		case <-stop:
			fmt.Fprint(s.w, clearLine)
			return
		case <-ticker.C:
		}
	}
}

// Hide erases the spinner. It returns once the line is cleared.
func (s *Spinner) Hide() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop == nil {
		return
	}

	close(s.stop)
	<-s.done

	s.stop = nil
	s.done = nil
}
