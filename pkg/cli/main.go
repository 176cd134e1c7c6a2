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

package main

import (
	"os"

	"github.com/dnote/diffcheck/pkg/cli/infra"
	"github.com/dnote/diffcheck/pkg/cli/log"
	"github.com/pkg/errors"

	// commands
	"github.com/dnote/diffcheck/pkg/cli/cmd/compare"
	"github.com/dnote/diffcheck/pkg/cli/cmd/root"
	"github.com/dnote/diffcheck/pkg/cli/cmd/version"
)

// versionTag is populated during link time
var versionTag = "master"

// exitCode returns the exit status for the error returned by a command
func exitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr root.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	log.Errorf("%s\n", err.Error())

	return 2
}

func main() {
	ctx, err := infra.Init(versionTag)
	if err != nil {
		log.Errorf("%s\n", errors.Wrap(err, "initializing context").Error())
		os.Exit(2)
	}

	root.Register(compare.NewCmd(*ctx))
	root.Register(version.NewCmd(*ctx))

	os.Exit(exitCode(root.Execute()))
}
