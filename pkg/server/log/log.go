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

// Package log writes structured, line-delimited JSON logs
package log

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
)

const (
	fieldKeyLevel         = "level"
	fieldKeyMessage       = "msg"
	fieldKeyTimestamp     = "ts"
	fieldKeyUnixTimestamp = "ts_unix"

	// LevelDebug represents debug log level
	LevelDebug = "debug"
	// LevelInfo represents info log level
	LevelInfo = "info"
	// LevelWarn represents warn log level
	LevelWarn = "warn"
	// LevelError represents error log level
	LevelError = "error"
)

// ErrInvalidLevel is an error for an unknown log level
var ErrInvalidLevel = errors.New("invalid log level")

var (
	mu           sync.Mutex
	currentLevel = LevelInfo
	output       io.Writer = os.Stderr
)

// Fields represents a set of information to be included in the log
type Fields map[string]interface{}

// Entry represents a log entry
type Entry struct {
	Fields    Fields
	Timestamp time.Time
}

func newEntry(fields Fields) Entry {
	return Entry{
		Fields:    fields,
		Timestamp: time.Now().UTC(),
	}
}

// WithFields creates a log entry with the given fields
func WithFields(fields Fields) Entry {
	return newEntry(fields)
}

// With returns a copy of the entry with the given field added
func (e Entry) With(key string, val interface{}) Entry {
	fields := make(Fields, len(e.Fields)+1)
	for k, v := range e.Fields {
		fields[k] = v
	}
	fields[key] = val

	return Entry{Fields: fields, Timestamp: e.Timestamp}
}

// ParseLevel returns the level with the given name
func ParseLevel(s string) (string, error) {
	level := strings.ToLower(strings.TrimSpace(s))

	switch level {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return level, nil
	case "warning":
		return LevelWarn, nil
	}

	return "", errors.Wrapf(ErrInvalidLevel, "'%s'", s)
}

// SetLevel sets the global log level
func SetLevel(level string) {
	mu.Lock()
	defer mu.Unlock()

	currentLevel = level
}

// SetOutput sets the writer the logs are written to. It returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()

	prev := output
	output = w

	return prev
}

func levelPriority(level string) int {
	switch level {
	case LevelDebug:
		return 0
	case LevelInfo:
		return 1
	case LevelWarn:
		return 2
	case LevelError:
		return 3
	default:
		return 1
	}
}

// shouldLog returns true if the given level should be logged based on currentLevel.
// mu must be held.
func shouldLog(level string) bool {
	return levelPriority(level) >= levelPriority(currentLevel)
}

// Debug logs the given entry at a debug level
func (e Entry) Debug(msg string) {
	e.write(LevelDebug, msg)
}

// Info logs the given entry at an info level
func (e Entry) Info(msg string) {
	e.write(LevelInfo, msg)
}

// Warn logs the given entry at a warning level
func (e Entry) Warn(msg string) {
	e.write(LevelWarn, msg)
}

// Error logs the given entry at an error level
func (e Entry) Error(msg string) {
	e.write(LevelError, msg)
}

// ErrorWrap logs the given entry with the error message annotated by the given message
func (e Entry) ErrorWrap(err error, msg string) {
	e.Error(fmt.Sprintf("%s: %v", msg, err))
}

func (e Entry) formatJSON(level, msg string) []byte {
	data := make(Fields, len(e.Fields)+4)

	for k, v := range e.Fields {
		switch v := v.(type) {
		case error:
			data[k] = v.Error()
		case time.Duration:
			data[k] = v.Milliseconds()
		default:
			data[k] = v
		}
	}

	data[fieldKeyLevel] = level
	data[fieldKeyMessage] = msg
	data[fieldKeyTimestamp] = e.Timestamp
	data[fieldKeyUnixTimestamp] = e.Timestamp.Unix()

	serialized, err := json.Marshal(data)
	if err != nil {
		return []byte(fmt.Sprintf(`{"level":"error","msg":"formatting JSON: %v"}`, err))
	}

	return serialized
}

func (e Entry) write(level, msg string) {
	mu.Lock()
	defer mu.Unlock()

	if !shouldLog(level) {
		return
	}

	serialized := e.formatJSON(level, msg)

	if _, err := fmt.Fprintln(output, string(serialized)); err != nil {
		fmt.Fprintf(os.Stderr, "writing log: %v\n", err)
	}
}

// Debug logs a debug message without additional fields
func Debug(msg string) {
	newEntry(Fields{}).Debug(msg)
}

// Info logs an info message without additional fields
func Info(msg string) {
	newEntry(Fields{}).Info(msg)
}

// Warn logs a warning message without additional fields
func Warn(msg string) {
	newEntry(Fields{}).Warn(msg)
}

// Error logs an error message without additional fields
func Error(msg string) {
	newEntry(Fields{}).Error(msg)
}

// ErrorWrap logs an error message without additional fields. It annotates the given error's
// message with the given message
func ErrorWrap(err error, msg string) {
	newEntry(Fields{}).ErrorWrap(err, msg)
}
