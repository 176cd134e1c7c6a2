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

//go:build linux || darwin || freebsd

package dirs

import (
	"path/filepath"
	"testing"

	"github.com/dnote/diffcheck/pkg/assert"
)

func TestDirs(t *testing.T) {
	t.Setenv(envConfigHome, "")
	t.Setenv(envDataHome, "")
	Reload()

	home := Home
	assert.NotEqual(t, home, "", "home is empty")

	testCases := []struct {
		got      string
		expected string
	}{
		{
			got:      ConfigHome,
			expected: filepath.Join(home, ".config"),
		},
		{
			got:      DataHome,
			expected: filepath.Join(home, ".local", "share"),
		},
		{
			got:      ConfigDir(),
			expected: filepath.Join(home, ".config", "diffcheck"),
		},
		{
			got:      DataDir(),
			expected: filepath.Join(home, ".local", "share", "diffcheck"),
		},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.got, tc.expected, "result mismatch")
	}
}

func TestCustomDirs(t *testing.T) {
	testCases := []envTestCase{
		{
			envKey:   envConfigHome,
			envVal:   "/tmp/custom-config",
			got:      func() string { return ConfigHome },
			expected: "/tmp/custom-config",
		},
		{
			envKey:   envConfigHome,
			envVal:   "/tmp/custom-config",
			got:      ConfigDir,
			expected: "/tmp/custom-config/diffcheck",
		},
		{
			envKey:   envDataHome,
			envVal:   "/tmp/custom-data",
			got:      DataDir,
			expected: "/tmp/custom-data/diffcheck",
		},
	}

	testCustomDirs(t, testCases)
}
