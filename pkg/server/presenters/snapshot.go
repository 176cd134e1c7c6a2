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
	"time"

	"github.com/dnote/diffcheck/pkg/server/database"
)

// FormatTS rounds the given timestamp to the microsecond so that the times
// of a snapshot read back from the database match the ones it was created with
func FormatTS(ts time.Time) time.Time {
	return ts.UTC().Round(time.Microsecond)
}

// Snapshot is a result of PresentSnapshot
type Snapshot struct {
	UUID             string    `json:"uuid"`
	URL              string    `json:"url"`
	CreatedAt        time.Time `json:"createdAt"`
	ExpiresAt        time.Time `json:"expiresAt"`
	Original         string    `json:"original"`
	Changed          string    `json:"changed"`
	IgnoreWhitespace bool      `json:"ignoreWhitespace"`
	ViewMode         string    `json:"viewMode"`
	Language         string    `json:"language"`
}

// PresentSnapshot presents a snapshot reachable at the given url
func PresentSnapshot(s database.Snapshot, url string) Snapshot {
	return Snapshot{
		UUID:             s.UUID,
		URL:              url,
		CreatedAt:        FormatTS(s.CreatedAt),
		ExpiresAt:        FormatTS(s.ExpiresAt),
		Original:         s.Original,
		Changed:          s.Changed,
		IgnoreWhitespace: s.IgnoreWhitespace,
		ViewMode:         s.ViewMode,
		Language:         s.Language,
	}
}

// SnapshotRef is a result of PresentSnapshotRef
type SnapshotRef struct {
	UUID      string    `json:"uuid"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// PresentSnapshotRef presents the reference to a created snapshot
func PresentSnapshotRef(s database.Snapshot, url string) SnapshotRef {
	return SnapshotRef{
		UUID:      s.UUID,
		URL:       url,
		ExpiresAt: FormatTS(s.ExpiresAt),
	}
}
