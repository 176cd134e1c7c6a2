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

package controllers

import (
	"net/http"

	"github.com/dnote/diffcheck/pkg/server/app"
	"github.com/dnote/diffcheck/pkg/server/presenters"
	"github.com/dnote/diffcheck/pkg/server/views"
	"github.com/gorilla/mux"
)

// NewSnapshots creates a new Snapshots controller.
// It panics if the necessary templates are not parsed.
func NewSnapshots(app *app.App, viewEngine *views.Engine) *Snapshots {
	return &Snapshots{
		ShowView: viewEngine.NewView(app, views.Config{Title: "Shared comparison", Layout: "base"}, "diffs/new"),
		app:      app,
	}
}

// Snapshots is a controller for the shared comparisons
type Snapshots struct {
	ShowView *views.View
	app      *app.App
}

// Create stores the submitted comparison and redirects to its page
func (s *Snapshots) Create(w http.ResponseWriter, r *http.Request) {
	form, err := readCompareForm(s.app, r)
	vd := getCompareData(s.app, form)
	if err != nil {
		handleHTMLError(w, r, err, "reading the comparison form", s.ShowView, vd)
		return
	}

	p, err := form.toParams()
	if err != nil {
		handleHTMLError(w, r, err, "parsing the view mode", s.ShowView, vd)
		return
	}

	snapshot, err := s.app.CreateSnapshot(p)
	if err != nil {
		handleHTMLError(w, r, err, "creating a snapshot", s.ShowView, vd)
		return
	}

	http.Redirect(w, r, app.SnapshotPath(snapshot.UUID), http.StatusFound)
}

// Show renders the comparison stored in a snapshot
func (s *Snapshots) Show(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.app.GetSnapshot(mux.Vars(r)["snapshotUUID"])
	if err != nil {
		handleHTMLError(w, r, err, "finding the snapshot", s.ShowView, getCompareData(s.app, CompareForm{}))
		return
	}

	p := app.SnapshotParams(snapshot)
	vd := getCompareData(s.app, formFromParams(p))
	vd.Yield["SnapshotURL"] = s.app.SnapshotURL(snapshot)
	vd.Yield["ExpiresAt"] = snapshot.ExpiresAt

	renderComparison(w, r, s.ShowView, vd, s.app.CompareSnapshot(snapshot))
}

// V1Create stores the comparison of the JSON payload
func (s *Snapshots) V1Create(w http.ResponseWriter, r *http.Request) {
	var form CompareForm
	if err := decodeJSON(r, &form); err != nil {
		handleJSONError(w, err, "decoding the payload")
		return
	}

	p, err := form.toParams()
	if err != nil {
		handleJSONError(w, err, "parsing the view mode")
		return
	}

	snapshot, err := s.app.CreateSnapshot(p)
	if err != nil {
		handleJSONError(w, err, "creating a snapshot")
		return
	}

	respondJSON(w, http.StatusCreated, presenters.PresentSnapshotRef(snapshot, s.app.SnapshotURL(snapshot)))
}

// V1Show returns the comparison stored in a snapshot
func (s *Snapshots) V1Show(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.app.GetSnapshot(mux.Vars(r)["snapshotUUID"])
	if err != nil {
		handleJSONError(w, err, "finding the snapshot")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentSnapshot(snapshot, s.app.SnapshotURL(snapshot)))
}
