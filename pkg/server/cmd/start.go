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
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dnote/diffcheck/pkg/server/buildinfo"
	"github.com/dnote/diffcheck/pkg/server/config"
	"github.com/dnote/diffcheck/pkg/server/controllers"
	"github.com/dnote/diffcheck/pkg/server/jobs"
	"github.com/dnote/diffcheck/pkg/server/log"
	mw "github.com/dnote/diffcheck/pkg/server/middleware"
	"github.com/pkg/errors"
)

// shutdownTimeout is how long the running requests are awaited on shutdown
const shutdownTimeout = 10 * time.Second

func startCmd(args []string) {
	fs := setupFlagSet("start", "diffcheck-server start")

	db := addDBFlags(fs)
	appEnv := fs.String("appEnv", "", "Application environment (env: APP_ENV, default: PRODUCTION)")
	port := fs.String("port", "", "Server port (env: PORT, default: 3001)")
	baseURL := fs.String("baseUrl", "", "Full URL to server without trailing slash (env: BASE_URL, default: http://localhost:3001)")
	maxInputBytes := fs.Int("maxInputBytes", 0, "Maximum size of an input in bytes (env: MAX_INPUT_BYTES, default: 1048576)")
	maxInputLines := fs.Int("maxInputLines", 0, "Maximum number of lines of an input (env: MAX_INPUT_LINES, default: 50000)")
	rateLimitRequests := fs.Int("rateLimitRequests", 0, "Requests allowed per client in a window (env: RATE_LIMIT_REQUESTS, default: 100)")
	rateLimitWindow := fs.Duration("rateLimitWindow", 0, "Rate limit window (env: RATE_LIMIT_WINDOW, default: 1m)")
	snapshotTTL := fs.Duration("snapshotTTL", 0, "Lifetime of a shared comparison (env: SNAPSHOT_TTL, default: 168h)")
	disableSnapshots := fs.Bool("disableSnapshots", false, "Disable shared comparisons (env: DISABLE_SNAPSHOTS, default: false)")

	fs.Parse(args)

	cfg, err := loadConfig(*db.envFile, config.Params{
		AppEnv:            *appEnv,
		Port:              *port,
		BaseURL:           *baseURL,
		DBDriver:          *db.driver,
		DBPath:            *db.path,
		DBURL:             *db.url,
		LogLevel:          *db.logLevel,
		MaxInputBytes:     *maxInputBytes,
		MaxInputLines:     *maxInputLines,
		RateLimitRequests: *rateLimitRequests,
		RateLimitWindow:   *rateLimitWindow,
		SnapshotTTL:       *snapshotTTL,
		DisableSnapshots:  *disableSnapshots,
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

	runner := jobs.NewRunner(a)
	if err := runner.Start(); err != nil {
		log.ErrorWrap(err, "starting jobs")
		os.Exit(1)
	}
	defer runner.Stop()

	ctl := controllers.New(a)
	rc := controllers.RouteConfig{
		WebRoutes:   controllers.NewWebRoutes(a, ctl),
		APIRoutes:   controllers.NewAPIRoutes(a, ctl),
		Controllers: ctl,
		RateLimiter: mw.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow, a.Clock),
	}

	r, err := controllers.NewRouter(a, rc)
	if err != nil {
		panic(errors.Wrap(err, "initializing router"))
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.ErrorWrap(err, "shutting down server")
		}
	}()

	log.WithFields(log.Fields{
		"version":   buildinfo.Version,
		"port":      cfg.Port,
		"db_driver": cfg.DBDriver,
		"snapshots": !cfg.DisableSnapshots,
	}).Info("diffcheck server starting")

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.ErrorWrap(err, "server failed")
		os.Exit(1)
	}

	log.Info("diffcheck server stopped")
}
