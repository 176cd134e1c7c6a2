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

	"github.com/dnote/diffcheck/pkg/server/config"
	"github.com/dnote/diffcheck/pkg/server/log"
)

func purgeCmd(args []string) {
	fs := setupFlagSet("purge", "diffcheck-server purge")

	db := addDBFlags(fs)

	fs.Parse(args)

	cfg, err := loadConfig(*db.envFile, config.Params{
		DBDriver: *db.driver,
		DBPath:   *db.path,
		DBURL:    *db.url,
		LogLevel: *db.logLevel,
	})
	if err != nil {
		exitWithUsage(fs, err)
	}

	a, cleanup, err := initApp(cfg)
	if err != nil {
		log.ErrorWrap(err, "initializing app")
		os.Exit(1)
	}
	defer cleanup()

	n, err := a.PurgeExpiredSnapshots()
	if err != nil {
		log.ErrorWrap(err, "purging snapshots")
		os.Exit(1)
	}

	fmt.Printf("Deleted %d expired snapshots\n", n)
}
