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

package cmd

import (
	"fmt"
	"os"

	"github.com/dnote/diffcheck/pkg/server/buildinfo"
)

func rootCmd() {
	fmt.Printf(`diffcheck server - compare texts in the browser

Usage:
  diffcheck-server [command] [flags]

Available commands:
  start: Start the server (use 'diffcheck-server start --help' for flags)
  purge: Delete the expired snapshots (use 'diffcheck-server purge --help' for flags)
  version: Print the version
`)
}

func versionCmd() {
	fmt.Printf("diffcheck-server-%s\n", buildinfo.Version)
}

// Execute is the main entry point for the CLI
func Execute() {
	if len(os.Args) < 2 {
		rootCmd()
		return
	}

	cmd := os.Args[1]

	switch cmd {
	case "start":
		startCmd(os.Args[2:])
	case "purge":
		purgeCmd(os.Args[2:])
	case "version":
		versionCmd()
	default:
		fmt.Printf("Unknown command %s\n", cmd)
		rootCmd()
		os.Exit(1)
	}
}
