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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dnote/diffcheck/pkg/assert"
	"github.com/dnote/diffcheck/pkg/cli/context"
	"github.com/dnote/diffcheck/pkg/render"
	"github.com/dnote/diffcheck/pkg/validate"
)

func newCtx(t *testing.T) context.DiffcheckCtx {
	return context.DiffcheckCtx{
		Paths: context.Paths{Config: t.TempDir()},
	}
}

func writeConfigFile(t *testing.T, ctx context.DiffcheckCtx, content string) {
	if err := os.WriteFile(GetPath(ctx), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestGetPath(t *testing.T) {
	ctx := context.DiffcheckCtx{Paths: context.Paths{Config: "/home/user/.config/diffcheck"}}

	assert.Equal(t, GetPath(ctx), filepath.Join("/home/user/.config/diffcheck", "config.yml"), "path mismatch")
}

func TestRead_Missing(t *testing.T) {
	got, err := Read(newCtx(t))
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, got, Default(), "config mismatch")
}

func TestRead(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected Config
	}{
		{
			name:    "partial",
			content: "viewMode: side-by-side\nignoreWhitespace: true\n",
			expected: Config{
				ViewMode:         string(render.SideBySide),
				IgnoreWhitespace: true,
				Width:            render.DefaultWidth,
				MaxInputBytes:    validate.DefaultMaxBytes,
				MaxInputLines:    validate.DefaultMaxLines,
			},
		},
		{
			name:    "full",
			content: "viewMode: line-by-line\nwidth: 80\nnoColor: true\nmaxInputBytes: 2048\nmaxInputLines: 10\n",
			expected: Config{
				ViewMode:      string(render.LineByLine),
				Width:         80,
				NoColor:       true,
				MaxInputBytes: 2048,
				MaxInputLines: 10,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := newCtx(t)
			writeConfigFile(t, ctx, tc.content)

			got, err := Read(ctx)
			if err != nil {
				t.Fatal(err)
			}

			assert.Equal(t, got, tc.expected, "config mismatch")
		})
	}
}

func TestRead_Invalid(t *testing.T) {
	testCases := []struct {
		name        string
		content     string
		expectedErr error
	}{
		{
			name:        "view mode",
			content:     "viewMode: split\n",
			expectedErr: render.ErrInvalidViewMode,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := newCtx(t)
			writeConfigFile(t, ctx, tc.content)

			_, err := Read(ctx)

			assert.ErrorIs(t, err, tc.expectedErr, "error mismatch")
		})
	}

	t.Run("width", func(t *testing.T) {
		ctx := newCtx(t)
		writeConfigFile(t, ctx, "width: 0\n")

		_, err := Read(ctx)
		assert.NotEqual(t, err, nil, "error should be returned")
	})

	t.Run("malformed", func(t *testing.T) {
		ctx := newCtx(t)
		writeConfigFile(t, ctx, "viewMode: [\n")

		_, err := Read(ctx)
		assert.NotEqual(t, err, nil, "error should be returned")
	})
}

func TestWrite(t *testing.T) {
	ctx := newCtx(t)
	cf := Default()
	cf.NoColor = true

	if err := Write(ctx, cf); err != nil {
		t.Fatal(err)
	}

	got, err := Read(ctx)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, got, cf, "config mismatch")
}
