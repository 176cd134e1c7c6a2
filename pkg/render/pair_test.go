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

package render

import (
	"testing"

	"github.com/dnote/diffcheck/pkg/assert"
	"github.com/dnote/diffcheck/pkg/diff"
)

func TestRows(t *testing.T) {
	h := diff.Align(diff.SplitLines("1\n2\n3"), diff.SplitLines("0\n1\n2\n3"), false)[0]

	expected := []Row{
		{Number: 1, Op: diff.OpDelete, Text: "1"},
		{Number: 1, Op: diff.OpInsert, Text: "0"},
		{Number: 2, Op: diff.OpDelete, Text: "2"},
		{Number: 2, Op: diff.OpInsert, Text: "1"},
		{Number: 3, Op: diff.OpDelete, Text: "3"},
		{Number: 3, Op: diff.OpInsert, Text: "2"},
		{Number: 4, Op: diff.OpInsert, Text: "3"},
	}

	assert.DeepEqual(t, Rows(h), expected, "rows mismatch")
}

func TestPairs(t *testing.T) {
	h := diff.Hunk{
		OldStart: 3, OldLines: 3, NewStart: 3, NewLines: 1,
		Lines: []diff.Line{
			{Op: diff.OpDelete, Text: "a"},
			{Op: diff.OpInsert, Text: "b"},
			{Op: diff.OpDelete, Text: "c"},
			{Op: diff.OpDelete, Text: "d"},
		},
	}

	pairs := Pairs(h)

	assert.Equal(t, len(pairs), 3, "pair count mismatch")
	assert.Equal(t, pairs[0].Old.Text, "a", "old text of pair 0 mismatch")
	assert.Equal(t, pairs[0].New.Text, "b", "new text of pair 0 mismatch")
	assert.Equal(t, pairs[1].Old.Number, 4, "old number of pair 1 mismatch")
	assert.Equal(t, pairs[1].New == nil, true, "pair 1 should have no new row")
	assert.Equal(t, pairs[2].Old.Text, "d", "old text of pair 2 mismatch")
	assert.Equal(t, pairs[2].Old.Number, 5, "old number of pair 2 mismatch")
}
