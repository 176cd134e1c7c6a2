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
	"crypto/rand"
	"flag"
	"fmt"
	"os"

	"github.com/dnote/diffcheck/pkg/clock"
	"github.com/dnote/diffcheck/pkg/server/app"
	"github.com/dnote/diffcheck/pkg/server/config"
	"github.com/dnote/diffcheck/pkg/server/database"
	"github.com/dnote/diffcheck/pkg/server/log"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// csrfKeyLength is the length of a generated CSRF key
const csrfKeyLength = 32

func initDB(cfg config.Config) (*gorm.DB, error) {
	db, err := database.Open(cfg.DBDriver, cfg.DSN(), cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	if err := database.Migrate(db, cfg.DBDriver); err != nil {
		database.Close(db)
		return nil, errors.Wrap(err, "running migrations")
	}

	return db, nil
}

// getCSRFKey returns the configured CSRF key. A random key is generated if
// none is configured, which invalidates the open forms on every restart.
func getCSRFKey(cfg config.Config) ([]byte, error) {
	if cfg.CSRFKey != "" {
		return []byte(cfg.CSRFKey), nil
	}

	key := make([]byte, csrfKeyLength)
	if _, err := rand.Read(key); err != nil {
		return nil, errors.Wrap(err, "generating a CSRF key")
	}

	log.Warn("CSRF_KEY is not set. Using a random key.")

	return key, nil
}

// initApp connects to the database and returns the app with a function
// releasing its resources
func initApp(cfg config.Config) (*app.App, func(), error) {
	csrfKey, err := getCSRFKey(cfg)
	if err != nil {
		return nil, nil, err
	}

	db, err := initDB(cfg)
	if err != nil {
		return nil, nil, errors.Wrap(err, "initializing database")
	}

	a := &app.App{
		DB:               db,
		Clock:            clock.New(),
		HTTP500Page:      cfg.HTTP500Page,
		AppEnv:           cfg.AppEnv,
		BaseURL:          cfg.BaseURL,
		AssetBaseURL:     cfg.AssetBaseURL,
		CSRFKey:          csrfKey,
		Limits:           cfg.Limits,
		MaxUploadBytes:   cfg.MaxUploadBytes,
		SnapshotTTL:      cfg.SnapshotTTL,
		DisableSnapshots: cfg.DisableSnapshots,
	}

	cleanup := func() {
		if err := database.Close(db); err != nil {
			log.ErrorWrap(err, "closing database")
		}
	}

	return a, cleanup, nil
}

// loadConfig loads the .env file and builds the config from the given params
func loadConfig(envFile string, p config.Params) (config.Config, error) {
	if err := config.LoadEnvFile(envFile); err != nil {
		return config.Config{}, err
	}

	cfg, err := config.New(p)
	if err != nil {
		return config.Config{}, err
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return config.Config{}, err
	}
	log.SetLevel(level)

	return cfg, nil
}

// exitWithUsage prints the error and the usage of the flag set, and exits
func exitWithUsage(fs *flag.FlagSet, err error) {
	fmt.Printf("Error: %s\n\n", err)
	fs.Usage()
	os.Exit(1)
}

// printFlags prints flags with -- prefix for consistency with CLI
func printFlags(fs *flag.FlagSet) {
	fs.VisitAll(func(f *flag.Flag) {
		fmt.Printf("  --%s", f.Name)

		// Print type hint for non-boolean flags
		name, usage := flag.UnquoteUsage(f)
		if name != "" {
			fmt.Printf(" %s", name)
		}
		fmt.Println()

		// Print usage description with indentation
		if usage != "" {
			fmt.Printf("    \t%s", usage)
			if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "0" && f.DefValue != "0s" {
				fmt.Printf(" (default: %s)", f.DefValue)
			}
			fmt.Println()
		}
	})
}

// setupFlagSet creates a FlagSet with standard usage format
func setupFlagSet(name, usageCmd string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Printf(`Usage:
  %s [flags]

Flags:
`, usageCmd)
		printFlags(fs)
	}
	return fs
}

// dbFlags are the flags selecting the database
type dbFlags struct {
	envFile  *string
	driver   *string
	path     *string
	url      *string
	logLevel *string
}

func addDBFlags(fs *flag.FlagSet) dbFlags {
	return dbFlags{
		envFile:  fs.String("envFile", ".env", "Path to a .env file holding environment variables"),
		driver:   fs.String("dbDriver", "", "Database driver: sqlite or postgres (env: DB_DRIVER, default: sqlite)"),
		path:     fs.String("dbPath", "", "Path to SQLite database file (env: DB_PATH, default: $XDG_DATA_HOME/diffcheck/server.db)"),
		url:      fs.String("dbUrl", "", "PostgreSQL connection URL (env: DATABASE_URL)"),
		logLevel: fs.String("logLevel", "", "Log level: debug, info, warn, or error (env: LOG_LEVEL, default: info)"),
	}
}
