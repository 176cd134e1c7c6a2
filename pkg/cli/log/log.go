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

// Package log prints the messages of the cli to the console
package log

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

const (
	debugEnvName  = "DIFFCHECK_DEBUG"
	debugEnvValue = "1"
)

var (
	// ColorRed is a red foreground color
	ColorRed = color.New(color.FgRed)
	// ColorGreen is a green foreground color
	ColorGreen = color.New(color.FgGreen)
	// ColorBlue is a blue foreground color
	ColorBlue = color.New(color.FgBlue)
	// ColorGray is a gray foreground color
	ColorGray = color.New(color.FgHiBlack)
)

var indent = "  "

var (
	mu     sync.Mutex
	output io.Writer = color.Output
)

// SetOutput sets the destination of the messages and returns the previous one
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()

	prev := output
	output = w

	return prev
}

func write(symbol, msg string) {
	mu.Lock()
	defer mu.Unlock()

	if symbol == "" {
		fmt.Fprintf(output, "%s%s", indent, msg)
		return
	}

	fmt.Fprintf(output, "%s%s %s", indent, symbol, msg)
}

// Infof prints information with optional format verbs
func Infof(msg string, v ...interface{}) {
	write(ColorBlue.Sprint("•"), fmt.Sprintf(msg, v...))
}

// Successf prints a success message with optional format verbs
func Successf(msg string, v ...interface{}) {
	write(ColorGreen.Sprint("✔"), fmt.Sprintf(msg, v...))
}

// Plainf prints a plain message without any prefix symbol. It takes optional format verbs.
func Plainf(msg string, v ...interface{}) {
	write("", fmt.Sprintf(msg, v...))
}

// Warnf prints a warning message with optional format verbs
func Warnf(msg string, v ...interface{}) {
	write(ColorRed.Sprint("•"), fmt.Sprintf(msg, v...))
}

// Errorf prints an error message with optional format verbs
func Errorf(msg string, v ...interface{}) {
	write(ColorRed.Sprint("⨯"), fmt.Sprintf(msg, v...))
}

// isDebug returns true if debug mode is enabled
func isDebug() bool {
	return os.Getenv(debugEnvName) == debugEnvValue
}

// Debug prints to the console if DIFFCHECK_DEBUG is set
func Debug(msg string, v ...interface{}) {
	if !isDebug() {
		return
	}

	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(output, "%s %s", ColorGray.Sprint("DEBUG:"), fmt.Sprintf(msg, v...))
}
