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
	"github.com/dnote/diffcheck/pkg/compare"
	"github.com/dnote/diffcheck/pkg/render"
	"github.com/dnote/diffcheck/pkg/server/database"
	"github.com/dnote/diffcheck/pkg/server/helpers"
	"github.com/dnote/diffcheck/pkg/server/log"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	// ErrSnapshotNotFound is an error for a snapshot that does not exist or has expired
	ErrSnapshotNotFound = errors.New("Snapshot not found")
	// ErrSnapshotsDisabled is an error for a snapshot operation on a server with snapshots disabled
	ErrSnapshotsDisabled = errors.New("Snapshots are disabled")
)

// SnapshotPath returns the path of the page showing the snapshot with the given uuid
func SnapshotPath(uuid string) string {
	return helpers.GetPath("/s/"+uuid, nil)
}

// SnapshotURL returns the absolute URL of the page showing the given snapshot
func (a *App) SnapshotURL(s database.Snapshot) string {
	return helpers.AbsoluteURL(a.BaseURL, SnapshotPath(s.UUID))
}

// validateSnapshot applies the checks of a comparison to the stored texts so
// that no snapshot is rejected when it is opened
func (a *App) validateSnapshot(p CompareParams) error {
	if err := compare.Validate(compare.Request{Original: p.Original, Changed: p.Changed}, a.Limits); err != nil {
		return err
	}

	if p.ViewMode != "" {
		if _, err := render.ParseViewMode(string(p.ViewMode)); err != nil {
			return err
		}
	}

	return nil
}

// CreateSnapshot stores the given comparison so that it can be shared
func (a *App) CreateSnapshot(p CompareParams) (database.Snapshot, error) {
	if a.DisableSnapshots {
		return database.Snapshot{}, ErrSnapshotsDisabled
	}

	if err := a.validateSnapshot(p); err != nil {
		return database.Snapshot{}, err
	}

	uuid, err := helpers.GenUUID()
	if err != nil {
		return database.Snapshot{}, err
	}

	mode := p.ViewMode
	if mode == "" {
		mode = render.LineByLine
	}

	s := database.Snapshot{
		UUID:             uuid,
		Original:         p.Original,
		Changed:          p.Changed,
		IgnoreWhitespace: p.IgnoreWhitespace,
		ViewMode:         string(mode),
		Language:         p.Language,
		ExpiresAt:        a.Clock.Now().Add(a.SnapshotTTL).UTC(),
	}
	if err := a.DB.Create(&s).Error; err != nil {
		return database.Snapshot{}, errors.Wrap(err, "inserting snapshot")
	}

	log.WithFields(log.Fields{
		"uuid":       s.UUID,
		"expires_at": s.ExpiresAt,
	}).Info("Snapshot created.")

	return s, nil
}

// GetSnapshot returns the snapshot with the given uuid unless it has expired
func (a *App) GetSnapshot(uuid string) (database.Snapshot, error) {
	var s database.Snapshot

	if a.DisableSnapshots {
		return s, ErrSnapshotsDisabled
	}
	if !helpers.ValidateUUID(uuid) {
		return s, ErrSnapshotNotFound
	}

	err := a.DB.Where("uuid = ? AND expires_at > ?", uuid, a.Clock.Now().UTC()).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s, ErrSnapshotNotFound
	} else if err != nil {
		return s, errors.Wrap(err, "finding snapshot")
	}

	return s, nil
}

// CompareSnapshot runs the comparison stored in the given snapshot
func (a *App) CompareSnapshot(s database.Snapshot) compare.Result {
	return a.Compare(SnapshotParams(s))
}

// SnapshotParams returns the comparison parameters stored in the given snapshot
func SnapshotParams(s database.Snapshot) CompareParams {
	return CompareParams{
		Original:         s.Original,
		Changed:          s.Changed,
		IgnoreWhitespace: s.IgnoreWhitespace,
		ViewMode:         render.ViewMode(s.ViewMode),
		Language:         s.Language,
	}
}

// PurgeExpiredSnapshots deletes the snapshots that have expired and returns
// the number of deleted snapshots
func (a *App) PurgeExpiredSnapshots() (int64, error) {
	tx := a.DB.Where("expires_at <= ?", a.Clock.Now().UTC()).Delete(&database.Snapshot{})
	if err := tx.Error; err != nil {
		return 0, errors.Wrap(err, "deleting expired snapshots")
	}

	log.WithFields(log.Fields{
		"count": tx.RowsAffected,
	}).Info("Purged expired snapshots.")

	return tx.RowsAffected, nil
}
