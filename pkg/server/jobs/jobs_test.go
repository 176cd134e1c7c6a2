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

package jobs

import (
	"testing"
	"time"

	"github.com/dnote/diffcheck/pkg/assert"
	"github.com/dnote/diffcheck/pkg/clock"
	"github.com/dnote/diffcheck/pkg/server/app"
	"github.com/dnote/diffcheck/pkg/server/database"
	"github.com/dnote/diffcheck/pkg/server/testutils"
)

func TestStart(t *testing.T) {
	a := app.NewTest()
	a.DB = testutils.InitMemoryDB(t)

	r := NewRunner(&a)
	if err := r.Start(); err != nil {
		t.Fatal(err)
	}
	defer r.Stop()

	assert.Equal(t, len(r.Cron.Entries()), 1, "scheduled job count mismatch")
}

func TestStart_SnapshotsDisabled(t *testing.T) {
	a := app.NewTest()
	a.DisableSnapshots = true

	r := NewRunner(&a)
	if err := r.Start(); err != nil {
		t.Fatal(err)
	}
	defer r.Stop()

	assert.Equal(t, len(r.Cron.Entries()), 0, "scheduled job count mismatch")
}

func TestPurgeSnapshots(t *testing.T) {
	c := clock.NewMock()

	a := app.NewTest()
	a.DB = testutils.InitMemoryDB(t)
	a.Clock = c

	if _, err := a.CreateSnapshot(app.CompareParams{Original: "a", Changed: "b"}); err != nil {
		t.Fatal(err)
	}

	c.Advance(a.SnapshotTTL + time.Minute)
	NewRunner(&a).PurgeSnapshots()

	var count int64
	testutils.MustExec(t, a.DB.Model(&database.Snapshot{}).Count(&count), "counting snapshots")
	assert.Equal(t, count, int64(0), "snapshot count mismatch")
}
