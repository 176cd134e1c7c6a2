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

package presenters

import (
	"testing"
	"time"

	"github.com/dnote/diffcheck/pkg/assert"
	"github.com/dnote/diffcheck/pkg/compare"
	"github.com/dnote/diffcheck/pkg/diff"
	"github.com/dnote/diffcheck/pkg/server/database"
)

func TestFormatTS(t *testing.T) {
	loc := time.FixedZone("KST", 9*60*60)
	ts := time.Date(2025, 3, 1, 9, 0, 0, 123456789, loc)

	got := FormatTS(ts)

	assert.Equal(t, got.Location(), time.UTC, "location mismatch")
	assert.Equal(t, got.Nanosecond(), 123457000, "nanosecond mismatch")
	assert.Equal(t, got.Hour(), 0, "hour mismatch")
}

func TestPresentHunks(t *testing.T) {
	testCases := []struct {
		name     string
		input    []diff.Hunk
		expected []Hunk
	}{
		{
			name:     "no hunks",
			input:    nil,
			expected: []Hunk{},
		},
		{
			name: "replacement",
			input: []diff.Hunk{
				{
					OldStart: 2, OldLines: 1, NewStart: 2, NewLines: 1,
					Lines: []diff.Line{{Op: diff.OpDelete, Text: "b"}, {Op: diff.OpInsert, Text: "X"}},
				},
			},
			expected: []Hunk{
				{
					Header:   "@@ -2,1 +2,1 @@",
					OldStart: 2, OldLines: 1, NewStart: 2, NewLines: 1,
					Lines: []string{"-b", "+X"},
				},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.DeepEqual(t, PresentHunks(tc.input), tc.expected, "result mismatch")
		})
	}
}

func TestPresentComparison(t *testing.T) {
	res := compare.Result{
		Status:   compare.StatusIdentical,
		Message:  compare.MessageIdentical,
		Duration: 1500 * time.Microsecond,
	}

	got := PresentComparison(res)

	assert.Equal(t, got.Status, "identical", "status mismatch")
	assert.Equal(t, got.Message, compare.MessageIdentical, "message mismatch")
	assert.Equal(t, len(got.Hunks), 0, "hunk count mismatch")
	assert.Equal(t, got.DurationMs, 1.5, "duration mismatch")
}

func TestPresentSnapshot(t *testing.T) {
	createdAt := time.Date(2025, 1, 15, 10, 30, 45, 123456789, time.UTC)
	expiresAt := createdAt.Add(7 * 24 * time.Hour)

	s := database.Snapshot{
		Model:            database.Model{ID: 1, CreatedAt: createdAt, UpdatedAt: createdAt},
		UUID:             "a1b2c3d4-e5f6-4789-a012-3456789abcde",
		Original:         "a",
		Changed:          "b",
		IgnoreWhitespace: true,
		ViewMode:         "side-by-side",
		Language:         "main.go",
		ExpiresAt:        expiresAt,
	}
	url := "http://127.0.0.1/s/a1b2c3d4-e5f6-4789-a012-3456789abcde"

	assert.DeepEqual(t, PresentSnapshot(s, url), Snapshot{
		UUID:             s.UUID,
		URL:              url,
		CreatedAt:        FormatTS(createdAt),
		ExpiresAt:        FormatTS(expiresAt),
		Original:         "a",
		Changed:          "b",
		IgnoreWhitespace: true,
		ViewMode:         "side-by-side",
		Language:         "main.go",
	}, "snapshot mismatch")

	assert.DeepEqual(t, PresentSnapshotRef(s, url), SnapshotRef{
		UUID:      s.UUID,
		URL:       url,
		ExpiresAt: FormatTS(expiresAt),
	}, "ref mismatch")
}
