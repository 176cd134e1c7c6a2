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

// Package jobs runs the background jobs of the server
package jobs

import (
	"github.com/dnote/diffcheck/pkg/server/app"
	"github.com/dnote/diffcheck/pkg/server/log"
	"github.com/pkg/errors"
	"github.com/robfig/cron"
)

// PurgeSchedule is the schedule of the job deleting expired snapshots
const PurgeSchedule = "@hourly"

// Runner schedules the jobs
type Runner struct {
	App  *app.App
	Cron *cron.Cron
}

// NewRunner returns a new runner for the given app
func NewRunner(a *app.App) *Runner {
	return &Runner{
		App:  a,
		Cron: cron.New(),
	}
}

// PurgeSnapshots deletes the expired snapshots
func (r *Runner) PurgeSnapshots() {
	if _, err := r.App.PurgeExpiredSnapshots(); err != nil {
		log.ErrorWrap(err, "purging expired snapshots")
	}
}

// Start schedules the jobs and starts running them in the background
func (r *Runner) Start() error {
	if r.App.DisableSnapshots {
		log.Info("Snapshots are disabled. No job is scheduled.")
		return nil
	}

	if err := r.Cron.AddFunc(PurgeSchedule, r.PurgeSnapshots); err != nil {
		return errors.Wrap(err, "scheduling the snapshot purge")
	}

	r.Cron.Start()

	log.WithFields(log.Fields{
		"jobs": len(r.Cron.Entries()),
	}).Info("Started the job runner.")

	return nil
}

// Stop stops the scheduler. Running jobs are not interrupted.
func (r *Runner) Stop() {
	r.Cron.Stop()
}
