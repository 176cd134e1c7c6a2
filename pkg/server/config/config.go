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

// Package config resolves the configuration of the server
package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dnote/diffcheck/pkg/dirs"
	"github.com/dnote/diffcheck/pkg/server/assets"
	"github.com/dnote/diffcheck/pkg/validate"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	// AppEnvProduction represents an app environment for production.
	AppEnvProduction string = "PRODUCTION"
	// AppEnvTest represents an app environment for tests.
	AppEnvTest string = "TEST"
	// DefaultDBFilename is the default database filename
	DefaultDBFilename = "server.db"

	// DBDriverSqlite is the driver name for sqlite
	DBDriverSqlite = "sqlite"
	// DBDriverPostgres is the driver name for postgres
	DBDriverPostgres = "postgres"

	// DefaultRateLimitRequests is the default number of requests a client may make in a window
	DefaultRateLimitRequests = 100
	// DefaultRateLimitWindow is the default rate limit window
	DefaultRateLimitWindow = time.Minute
	// DefaultSnapshotTTL is the default lifetime of a snapshot
	DefaultSnapshotTTL = 7 * 24 * time.Hour
)

var (
	// DefaultDBPath is the default path to the database file
	DefaultDBPath = filepath.Join(dirs.DataDir(), DefaultDBFilename)
)

var (
	// ErrDBMissingPath is an error for an incomplete configuration missing the database path
	ErrDBMissingPath = errors.New("DB Path is empty")
	// ErrDBDriverInvalid is an error for an unknown database driver
	ErrDBDriverInvalid = errors.New("Invalid DB driver")
	// ErrBaseURLInvalid is an error for an incomplete configuration with invalid base url
	ErrBaseURLInvalid = errors.New("Invalid BaseURL")
	// ErrPortInvalid is an error for an incomplete configuration with invalid port
	ErrPortInvalid = errors.New("Invalid Port")
	// ErrLimitInvalid is an error for a non-positive limit
	ErrLimitInvalid = errors.New("Invalid limit")
)

// LoadEnvFile loads the environment variables defined in the given .env
// file. Variables already set in the environment take precedence. A missing
// file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "loading %s", path)
	}

	return nil
}

func readBoolEnv(name string) bool {
	return os.Getenv(name) == "true"
}

// getOrEnv returns value if non-empty, otherwise env var, otherwise default
func getOrEnv(value, envKey, defaultVal string) string {
	if value != "" {
		return value
	}
	if env := os.Getenv(envKey); env != "" {
		return env
	}
	return defaultVal
}

// getIntOrEnv returns value if non-zero, otherwise env var, otherwise default
func getIntOrEnv(value int, envKey string, defaultVal int) (int, error) {
	if value != 0 {
		return value, nil
	}
	if env := os.Getenv(envKey); env != "" {
		n, err := strconv.Atoi(env)
		if err != nil {
			return 0, errors.Wrapf(ErrLimitInvalid, "%s '%s'", envKey, env)
		}
		return n, nil
	}
	return defaultVal, nil
}

// getDurationOrEnv returns value if non-zero, otherwise env var, otherwise default
func getDurationOrEnv(value time.Duration, envKey string, defaultVal time.Duration) (time.Duration, error) {
	if value != 0 {
		return value, nil
	}
	if env := os.Getenv(envKey); env != "" {
		d, err := time.ParseDuration(env)
		if err != nil {
			return 0, errors.Wrapf(ErrLimitInvalid, "%s '%s'", envKey, env)
		}
		return d, nil
	}
	return defaultVal, nil
}

// Config is an application configuration
type Config struct {
	AppEnv       string
	BaseURL      string
	Port         string
	DBDriver     string
	DBPath       string
	DBURL        string
	LogLevel     string
	AssetBaseURL string
	HTTP500Page  []byte
	Limits       validate.Limits
	// MaxUploadBytes is the maximum size of an uploaded file
	MaxUploadBytes    int
	RateLimitRequests int
	RateLimitWindow   time.Duration
	SnapshotTTL       time.Duration
	DisableSnapshots  bool
	// CSRFKey is the 32 byte key authenticating CSRF tokens
	CSRFKey string
}

// Params are the configuration parameters for creating a new Config
type Params struct {
	AppEnv            string
	Port              string
	BaseURL           string
	DBDriver          string
	DBPath            string
	DBURL             string
	LogLevel          string
	MaxInputBytes     int
	MaxInputLines     int
	RateLimitRequests int
	RateLimitWindow   time.Duration
	SnapshotTTL       time.Duration
	DisableSnapshots  bool
	CSRFKey           string
}

// New constructs and returns a new validated config.
// Empty params fall back to environment variables and defaults.
func New(p Params) (Config, error) {
	c := Config{
		AppEnv:           getOrEnv(p.AppEnv, "APP_ENV", AppEnvProduction),
		Port:             getOrEnv(p.Port, "PORT", "3001"),
		BaseURL:          getOrEnv(p.BaseURL, "BASE_URL", "http://localhost:3001"),
		DBDriver:         getOrEnv(p.DBDriver, "DB_DRIVER", DBDriverSqlite),
		DBPath:           getOrEnv(p.DBPath, "DB_PATH", DefaultDBPath),
		DBURL:            getOrEnv(p.DBURL, "DATABASE_URL", ""),
		LogLevel:         getOrEnv(p.LogLevel, "LOG_LEVEL", "info"),
		DisableSnapshots: p.DisableSnapshots || readBoolEnv("DISABLE_SNAPSHOTS"),
		CSRFKey:          getOrEnv(p.CSRFKey, "CSRF_KEY", ""),
		AssetBaseURL:     "/static",
		HTTP500Page:      assets.MustGetHTTP500ErrorPage(),
	}

	var err error
	if c.Limits.MaxBytes, err = getIntOrEnv(p.MaxInputBytes, "MAX_INPUT_BYTES", validate.DefaultMaxBytes); err != nil {
		return Config{}, err
	}
	if c.Limits.MaxLines, err = getIntOrEnv(p.MaxInputLines, "MAX_INPUT_LINES", validate.DefaultMaxLines); err != nil {
		return Config{}, err
	}
	if c.RateLimitRequests, err = getIntOrEnv(p.RateLimitRequests, "RATE_LIMIT_REQUESTS", DefaultRateLimitRequests); err != nil {
		return Config{}, err
	}
	if c.RateLimitWindow, err = getDurationOrEnv(p.RateLimitWindow, "RATE_LIMIT_WINDOW", DefaultRateLimitWindow); err != nil {
		return Config{}, err
	}
	if c.SnapshotTTL, err = getDurationOrEnv(p.SnapshotTTL, "SNAPSHOT_TTL", DefaultSnapshotTTL); err != nil {
		return Config{}, err
	}

	// an upload holds one side of a comparison, so it is bounded like a pasted input
	c.MaxUploadBytes = c.Limits.MaxBytes

	if err := validateConfig(c); err != nil {
		return Config{}, err
	}

	return c, nil
}

// IsProd checks if the app environment is configured to be production.
func (c Config) IsProd() bool {
	return c.AppEnv == AppEnvProduction
}

// IsTest checks if the app environment is configured to be test.
func (c Config) IsTest() bool {
	return c.AppEnv == AppEnvTest
}

// DSN returns the data source name for the configured driver
func (c Config) DSN() string {
	if c.DBDriver == DBDriverPostgres {
		return c.DBURL
	}

	return c.DBPath
}

func validateConfig(c Config) error {
	if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
		return errors.Wrapf(ErrBaseURLInvalid, "'%s'", c.BaseURL)
	}
	if c.Port == "" {
		return ErrPortInvalid
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return errors.Wrapf(ErrPortInvalid, "'%s'", c.Port)
	}

	switch c.DBDriver {
	case DBDriverSqlite:
		if c.DBPath == "" {
			return ErrDBMissingPath
		}
	case DBDriverPostgres:
		if c.DBURL == "" {
			return errors.Wrap(ErrDBMissingPath, "DATABASE_URL is required for postgres")
		}
	default:
		return errors.Wrapf(ErrDBDriverInvalid, "'%s'", c.DBDriver)
	}

	if c.Limits.MaxBytes <= 0 {
		return errors.Wrap(ErrLimitInvalid, "max input bytes")
	}
	if c.Limits.MaxLines <= 0 {
		return errors.Wrap(ErrLimitInvalid, "max input lines")
	}
	if c.RateLimitRequests <= 0 {
		return errors.Wrap(ErrLimitInvalid, "rate limit requests")
	}
	if c.RateLimitWindow <= 0 {
		return errors.Wrap(ErrLimitInvalid, "rate limit window")
	}
	if c.SnapshotTTL <= 0 {
		return errors.Wrap(ErrLimitInvalid, "snapshot ttl")
	}

	if c.CSRFKey != "" && len(c.CSRFKey) != 32 {
		return errors.Wrap(ErrLimitInvalid, "csrf key must be 32 bytes")
	}

	return nil
}
