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
	"time"

	"github.com/dnote/diffcheck/pkg/clock"
	"github.com/dnote/diffcheck/pkg/validate"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	// ErrEmptyDB is an error for missing database connection in the app configuration
	ErrEmptyDB = errors.New("No database connection was provided")
	// ErrEmptyClock is an error for missing clock in the app configuration
	ErrEmptyClock = errors.New("No clock was provided")
	// ErrEmptyBaseURL is an error for missing BaseURL content in the app configuration
	ErrEmptyBaseURL = errors.New("No BaseURL was provided")
	// ErrEmptyHTTP500Page is an error for missing HTTP 500 page content
	ErrEmptyHTTP500Page = errors.New("No HTTP 500 error page was set")
	// ErrInvalidLimits is an error for input limits that are not positive
	ErrInvalidLimits = errors.New("Input limits must be positive")
	// ErrInvalidSnapshotTTL is an error for a snapshot lifetime that is not positive
	ErrInvalidSnapshotTTL = errors.New("Snapshot TTL must be positive")
	// ErrInvalidCSRFKey is an error for a CSRF key that is not 32 bytes long
	ErrInvalidCSRFKey = errors.New("CSRF key must be 32 bytes long")
)

// csrfKeyLength is the length of the key authenticating the CSRF tokens
const csrfKeyLength = 32

// App is an application context
type App struct {
	DB           *gorm.DB
	Clock        clock.Clock
	HTTP500Page  []byte
	AppEnv       string
	BaseURL      string
	AssetBaseURL string
	// CSRFKey authenticates the CSRF tokens of the web forms
	CSRFKey []byte
	Limits  validate.Limits
	// MaxUploadBytes is the maximum size of an uploaded file
	MaxUploadBytes   int
	SnapshotTTL      time.Duration
	DisableSnapshots bool
}

// Validate validates the app configuration
func (a *App) Validate() error {
	if a.BaseURL == "" {
		return ErrEmptyBaseURL
	}
	if a.Clock == nil {
		return ErrEmptyClock
	}
	if a.DB == nil {
		return ErrEmptyDB
	}
	if a.HTTP500Page == nil {
		return ErrEmptyHTTP500Page
	}
	if a.Limits.MaxBytes <= 0 || a.Limits.MaxLines <= 0 || a.MaxUploadBytes <= 0 {
		return ErrInvalidLimits
	}
	if !a.DisableSnapshots && a.SnapshotTTL <= 0 {
		return ErrInvalidSnapshotTTL
	}
	if len(a.CSRFKey) != csrfKeyLength {
		return ErrInvalidCSRFKey
	}

	return nil
}

// MaxRequestBytes returns the maximum size of a request body. A request may
// carry both texts and both uploaded files besides the other form fields.
func (a *App) MaxRequestBytes() int64 {
	return 2*int64(a.Limits.MaxBytes) + 2*int64(a.MaxUploadBytes) + 64*1024
}
