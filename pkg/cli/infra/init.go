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

// Package infra sets up the local environment of the cli
package infra

import (
	"os"

	"github.com/dnote/diffcheck/pkg/cli/config"
	"github.com/dnote/diffcheck/pkg/cli/context"
	"github.com/dnote/diffcheck/pkg/cli/log"
	"github.com/dnote/diffcheck/pkg/cli/ui"
	"github.com/dnote/diffcheck/pkg/cli/utils"
	"github.com/dnote/diffcheck/pkg/clock"
	"github.com/dnote/diffcheck/pkg/dirs"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// RunEFunc is a function type of diffcheck commands
type RunEFunc func(*cobra.Command, []string) error

// newBaseCtx creates a minimal context with the paths. It is enriched with
// the config values by setupCtx.
func newBaseCtx(versionTag string) context.DiffcheckCtx {
	return context.DiffcheckCtx{
		Paths: context.Paths{
			Home:   dirs.Home,
			Config: dirs.ConfigDir(),
		},
		Version: versionTag,
	}
}

// Init initializes the diffcheck environment and returns a new context
func Init(versionTag string) (*context.DiffcheckCtx, error) {
	ctx := newBaseCtx(versionTag)

	if err := initFiles(ctx); err != nil {
		return nil, errors.Wrap(err, "initializing files")
	}

	ctx, err := setupCtx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "setting up the context")
	}

	log.Debug("context: %+v\n", ctx)

	return &ctx, nil
}

// setupCtx enriches the base context with values from the config file
func setupCtx(ctx context.DiffcheckCtx) (context.DiffcheckCtx, error) {
	cf, err := config.Read(ctx)
	if err != nil {
		return ctx, errors.Wrap(err, "reading config")
	}

	ret := context.DiffcheckCtx{
		Paths:            ctx.Paths,
		Version:          ctx.Version,
		Clock:            clock.New(),
		Limits:           cf.Limits(),
		ViewMode:         cf.ViewMode,
		IgnoreWhitespace: cf.IgnoreWhitespace,
		Width:            cf.Width,
		NoColor:          cf.NoColor,
	}
	if ui.IsTerminal(os.Stderr) {
		ret.Stderr = os.Stderr
	}

	return ret, nil
}

// initConfigFile populates a new config file if it does not exist yet
func initConfigFile(ctx context.DiffcheckCtx) error {
	path := config.GetPath(ctx)
	ok, err := utils.FileExists(path)
	if err != nil {
		return errors.Wrap(err, "checking if config exists")
	}
	if ok {
		return nil
	}

	if err := config.Write(ctx, config.Default()); err != nil {
		return errors.Wrap(err, "writing config")
	}

	return nil
}

// initFiles creates, if necessary, the diffcheck directory and files inside
func initFiles(ctx context.DiffcheckCtx) error {
	if err := dirs.EnsureDir(ctx.Paths.Config); err != nil {
		return errors.Wrap(err, "creating the config dir")
	}
	if err := initConfigFile(ctx); err != nil {
		return errors.Wrap(err, "generating the config file")
	}

	return nil
}
