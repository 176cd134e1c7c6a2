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
	"os"
	"path/filepath"

	"github.com/dnote/diffcheck/pkg/server/log"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	// DriverSqlite is the name of the sqlite driver
	DriverSqlite = "sqlite"
	// DriverPostgres is the name of the postgres driver
	DriverPostgres = "postgres"
)

// ErrUnknownDriver is an error for a database driver that is not supported
var ErrUnknownDriver = errors.New("unknown database driver")

// getDBLogLevel maps the server log level to the level of the gorm logger.
// Queries are only logged in debug.
func getDBLogLevel(level string) logger.LogLevel {
	switch level {
	case log.LevelDebug:
		return logger.Info
	case log.LevelWarn:
		return logger.Warn
	case log.LevelError:
		return logger.Error
	default:
		return logger.Silent
	}
}

func dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case DriverSqlite:
		// Create directory if it doesn't exist
		if dsn != ":memory:" {
			dir := filepath.Dir(dsn)
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, errors.Wrapf(err, "creating database directory at %s", dir)
			}
		}

		return sqlite.Open(dsn), nil
	case DriverPostgres:
		return postgres.Open(dsn), nil
	}

	return nil, errors.Wrapf(ErrUnknownDriver, "'%s'", driver)
}

// Open initializes the database connection
func Open(driver, dsn, logLevel string) (*gorm.DB, error) {
	d, err := dialector(driver, dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(d, &gorm.Config{
		Logger: logger.Default.LogMode(getDBLogLevel(logLevel)),
	})
	if err != nil {
		return nil, errors.Wrap(err, "opening database connection")
	}

	return db, nil
}

// Close closes the underlying connection of the given database
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "getting sql database")
	}

	return sqlDB.Close()
}
