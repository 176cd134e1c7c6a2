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

// Package config reads and writes the config file of the cli
package config

import (
	"os"
	"path/filepath"

	"github.com/dnote/diffcheck/pkg/cli/context"
	"github.com/dnote/diffcheck/pkg/cli/utils"
	"github.com/dnote/diffcheck/pkg/render"
	"github.com/dnote/diffcheck/pkg/validate"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Filename is the name of the config file
const Filename = "config.yml"

// Config holds diffcheck configuration
type Config struct {
	ViewMode         string `yaml:"viewMode"`
	IgnoreWhitespace bool   `yaml:"ignoreWhitespace"`
	Width            int    `yaml:"width"`
	NoColor          bool   `yaml:"noColor"`
	MaxInputBytes    int    `yaml:"maxInputBytes"`
	MaxInputLines    int    `yaml:"maxInputLines"`
}

// Default returns the config used when no config file exists
func Default() Config {
	return Config{
		ViewMode:      string(render.LineByLine),
		Width:         render.DefaultWidth,
		MaxInputBytes: validate.DefaultMaxBytes,
		MaxInputLines: validate.DefaultMaxLines,
	}
}

// Limits returns the input limits of the config
func (c Config) Limits() validate.Limits {
	return validate.Limits{
		MaxBytes: c.MaxInputBytes,
		MaxLines: c.MaxInputLines,
	}
}

// GetPath returns the path to the diffcheck config file
func GetPath(ctx context.DiffcheckCtx) string {
	return filepath.Join(ctx.Paths.Config, Filename)
}

func (c Config) validate() error {
	if _, err := render.ParseViewMode(c.ViewMode); err != nil {
		return err
	}
	if c.Width <= 0 || c.MaxInputBytes <= 0 || c.MaxInputLines <= 0 {
		return errors.New("width and input limits must be positive")
	}

	return nil
}

// Read reads the config file. Settings missing from the file keep their
// default values. A missing file yields the default config.
func Read(ctx context.DiffcheckCtx) (Config, error) {
	ret := Default()

	path := GetPath(ctx)
	ok, err := utils.FileExists(path)
	if err != nil {
		return ret, errors.Wrap(err, "checking if config exists")
	}
	if !ok {
		return ret, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return ret, errors.Wrap(err, "reading config file")
	}

	err = yaml.Unmarshal(b, &ret)
	if err != nil {
		return ret, errors.Wrap(err, "unmarshalling config")
	}

	if err := ret.validate(); err != nil {
		return ret, errors.Wrapf(err, "invalid config at %s", path)
	}

	return ret, nil
}

// Write writes the config to the config file
func Write(ctx context.DiffcheckCtx, cf Config) error {
	path := GetPath(ctx)

	b, err := yaml.Marshal(cf)
	if err != nil {
		return errors.Wrap(err, "marshalling config into YAML")
	}

	err = os.WriteFile(path, b, 0644)
	if err != nil {
		return errors.Wrap(err, "writing the config file")
	}

	return nil
}
