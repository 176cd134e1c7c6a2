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

// Package presenters shapes the values returned by the JSON API
package presenters

import (
	"github.com/dnote/diffcheck/pkg/compare"
	"github.com/dnote/diffcheck/pkg/diff"
)

// Hunk is a result of PresentHunks
type Hunk struct {
	Header   string   `json:"header"`
	OldStart int      `json:"oldStart"`
	OldLines int      `json:"oldLines"`
	NewStart int      `json:"newStart"`
	NewLines int      `json:"newLines"`
	Lines    []string `json:"lines"`
}

// PresentHunk presents a hunk. Lines keep their "-" or "+" tag.
func PresentHunk(h diff.Hunk) Hunk {
	lines := make([]string, 0, len(h.Lines))
	for _, l := range h.Lines {
		lines = append(lines, l.String())
	}

	return Hunk{
		Header:   diff.HunkHeader(h),
		OldStart: h.OldStart,
		OldLines: h.OldLines,
		NewStart: h.NewStart,
		NewLines: h.NewLines,
		Lines:    lines,
	}
}

// PresentHunks presents hunks
func PresentHunks(hunks []diff.Hunk) []Hunk {
	ret := []Hunk{}

	for _, h := range hunks {
		ret = append(ret, PresentHunk(h))
	}

	return ret
}

// Comparison is a result of PresentComparison
type Comparison struct {
	Status     string  `json:"status"`
	Message    string  `json:"message"`
	Unified    string  `json:"unified"`
	Hunks      []Hunk  `json:"hunks"`
	HTML       string  `json:"html"`
	DurationMs float64 `json:"durationMs"`
}

// PresentComparison presents the result of a comparison
func PresentComparison(res compare.Result) Comparison {
	return Comparison{
		Status:     string(res.Status),
		Message:    res.Message,
		Unified:    res.Unified,
		Hunks:      PresentHunks(res.Hunks),
		HTML:       res.Rendered,
		DurationMs: float64(res.Duration.Microseconds()) / 1000,
	}
}
