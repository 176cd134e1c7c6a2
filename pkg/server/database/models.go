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

package database

import (
	"time"
)

// Model is the base model definition
type Model struct {
	ID        int       `gorm:"primaryKey" json:"-"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Snapshot is a stored comparison request that can be shared by its uuid
type Snapshot struct {
	Model
	UUID             string    `json:"uuid" gorm:"uniqueIndex;type:text"`
	Original         string    `json:"original" gorm:"type:text"`
	Changed          string    `json:"changed" gorm:"type:text"`
	IgnoreWhitespace bool      `json:"ignore_whitespace" gorm:"default:false"`
	ViewMode         string    `json:"view_mode"`
	Language         string    `json:"language"`
	ExpiresAt        time.Time `json:"expires_at" gorm:"index"`
}
