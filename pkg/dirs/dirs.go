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

// Package dirs provides the base directories in which diffcheck keeps its
// configuration and its data
package dirs

import (
	"os"
	"os/user"
	"path/filepath"

	"github.com/pkg/errors"
)

// AppName is the name of the directory created under the base directories
const AppName = "diffcheck"

var (
	// Home is the home directory of the user
	Home string
	// ConfigHome is the full path to the directory in which user-specific
	// configurations should be written.
	ConfigHome string
	// DataHome is the full path to the directory in which user-specific data
	// files should be written.
	DataHome string
)

func init() {
	Reload()
}

// Reload reloads the directory definitions
func Reload() {
	initDirs()
}

// ConfigDir returns the directory holding the configuration of diffcheck
func ConfigDir() string {
	return filepath.Join(ConfigHome, AppName)
}

// DataDir returns the directory holding the data of diffcheck
func DataDir() string {
	return filepath.Join(DataHome, AppName)
}

// EnsureDir creates the given directory and its parents if they do not exist
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return errors.Wrapf(err, "creating directory %s", path)
	}

	return nil
}

func getHomeDir() string {
	if dir, err := os.UserHomeDir(); err == nil && dir != "" {
		return dir
	}

	usr, err := user.Current()
	if err != nil {
		panic(errors.Wrap(err, "getting home dir"))
	}

	return usr.HomeDir
}

func readPath(envName, defaultPath string) string {
	if dir := os.Getenv(envName); dir != "" {
		return dir
	}

	return defaultPath
}
