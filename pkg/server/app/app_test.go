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

package app

import (
	"fmt"
	"testing"

	"github.com/dnote/diffcheck/pkg/assert"
	"github.com/dnote/diffcheck/pkg/server/testutils"
)

func TestValidate(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	testCases := []struct {
		modify      func(a *App)
		expectedErr error
	}{
		{
			modify:      func(a *App) {},
			expectedErr: nil,
		},
		{
			modify:      func(a *App) { a.DB = nil },
			expectedErr: ErrEmptyDB,
		},
		{
			modify:      func(a *App) { a.Clock = nil },
			expectedErr: ErrEmptyClock,
		},
		{
			modify:      func(a *App) { a.BaseURL = "" },
			expectedErr: ErrEmptyBaseURL,
		},
		{
			modify:      func(a *App) { a.HTTP500Page = nil },
			expectedErr: ErrEmptyHTTP500Page,
		},
		{
			modify:      func(a *App) { a.Limits.MaxBytes = 0 },
			expectedErr: ErrInvalidLimits,
		},
		{
			modify:      func(a *App) { a.SnapshotTTL = 0 },
			expectedErr: ErrInvalidSnapshotTTL,
		},
		{
			modify: func(a *App) {
				a.SnapshotTTL = 0
				a.DisableSnapshots = true
			},
			expectedErr: nil,
		},
		{
			modify:      func(a *App) { a.CSRFKey = []byte("short") },
			expectedErr: ErrInvalidCSRFKey,
		},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("test case %d", idx), func(t *testing.T) {
			a := NewTest()
			a.DB = db
			tc.modify(&a)

			assert.ErrorIs(t, a.Validate(), tc.expectedErr, "error mismatch")
		})
	}
}

func TestMaxRequestBytes(t *testing.T) {
	a := NewTest()
	a.Limits.MaxBytes = 1024
	a.MaxUploadBytes = 2048

	assert.Equal(t, a.MaxRequestBytes(), int64(2*1024+2*2048+64*1024), "size mismatch")
}
