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

// Package migrations holds the SQL migrations of the server database, one
// directory per driver
package migrations

import (
	"embed"
	"io/fs"

	"github.com/pkg/errors"
)

//go:embed sqlite/*.sql postgres/*.sql
var files embed.FS

// Files returns the migrations for the given driver, situated in the root of
// the filesystem
func Files(driver string) (fs.FS, error) {
	if driver != "sqlite" && driver != "postgres" {
		return nil, errors.Errorf("no migrations for driver '%s'", driver)
	}

	sub, err := fs.Sub(files, driver)
	if err != nil {
		return nil, errors.Wrap(err, "getting sub filesystem")
	}

	return sub, nil
}
