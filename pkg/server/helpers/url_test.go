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

package helpers

import (
	"net/url"
	"testing"

	"github.com/dnote/diffcheck/pkg/assert"
)

func TestGetPath(t *testing.T) {
	t.Run("without query", func(t *testing.T) {
		got := GetPath("/s/some-uuid", nil)

		assert.Equal(t, got, "/s/some-uuid", "got mismatch")
	})

	t.Run("with query", func(t *testing.T) {
		q := url.Values{}
		q.Set("view", "side-by-side")
		q.Set("next", "/quz")
		got := GetPath("/s/some-uuid", &q)

		assert.Equal(t, got, "/s/some-uuid?next=%2Fquz&view=side-by-side", "got mismatch")
	})
}

func TestAbsoluteURL(t *testing.T) {
	testCases := []struct {
		baseURL  string
		path     string
		expected string
	}{
		{"http://localhost:3001", "/s/abc", "http://localhost:3001/s/abc"},
		{"https://diff.example.com/", "/s/abc", "https://diff.example.com/s/abc"},
	}

	for _, tc := range testCases {
		assert.Equal(t, AbsoluteURL(tc.baseURL, tc.path), tc.expected, "url mismatch")
	}
}
