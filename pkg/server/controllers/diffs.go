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
	"html/template"
	"io"
	"net/http"
	"strings"

	"github.com/dnote/diffcheck/pkg/compare"
	"github.com/dnote/diffcheck/pkg/render"
	"github.com/dnote/diffcheck/pkg/server/app"
	"github.com/dnote/diffcheck/pkg/server/presenters"
	"github.com/dnote/diffcheck/pkg/server/views"
	"github.com/dnote/diffcheck/pkg/validate"
	"github.com/pkg/errors"
)

// NewDiffs creates a new Diffs controller.
// It panics if the necessary templates are not parsed.
func NewDiffs(app *app.App, viewEngine *views.Engine) *Diffs {
	return &Diffs{
		NewView: viewEngine.NewView(app, views.Config{Title: "Compare", Layout: "base"}, "diffs/new"),
		app:     app,
	}
}

// Diffs is a controller comparing texts
type Diffs struct {
	NewView *views.View
	app     *app.App
}

// CompareForm is the form data of a comparison
type CompareForm struct {
	Original         string `schema:"original" json:"original"`
	Changed          string `schema:"changed" json:"changed"`
	IgnoreWhitespace bool   `schema:"ignore_whitespace" json:"ignoreWhitespace"`
	ViewMode         string `schema:"view_mode" json:"viewMode"`
	Language         string `schema:"language" json:"language"`
}

func (f CompareForm) toParams() (app.CompareParams, error) {
	mode, err := render.ParseViewMode(f.ViewMode)
	if err != nil {
		return app.CompareParams{}, err
	}

	return app.CompareParams{
		Original:         f.Original,
		Changed:          f.Changed,
		IgnoreWhitespace: f.IgnoreWhitespace,
		ViewMode:         mode,
		Language:         f.Language,
	}, nil
}

// formFromParams fills a form with the parameters of a comparison
func formFromParams(p app.CompareParams) CompareForm {
	return CompareForm{
		Original:         p.Original,
		Changed:          p.Changed,
		IgnoreWhitespace: p.IgnoreWhitespace,
		ViewMode:         string(p.ViewMode),
		Language:         p.Language,
	}
}

// getCompareData returns the view data of the comparison page filled with the form
func getCompareData(a *app.App, f CompareForm) views.Data {
	mode := f.ViewMode
	if mode == "" {
		mode = string(render.LineByLine)
	}

	return views.Data{
		Yield: map[string]interface{}{
			"Original":         f.Original,
			"Changed":          f.Changed,
			"IgnoreWhitespace": f.IgnoreWhitespace,
			"ViewMode":         mode,
			"Language":         f.Language,
			"Accept":           strings.Join(validate.AllowedExtensions, ","),
			"SnapshotsEnabled": !a.DisableSnapshots,
		},
	}
}

// normalizeNewlines converts the line endings submitted by browsers
func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// readUpload returns the content of the file uploaded in the given field. The
// boolean is false if no file was uploaded.
func readUpload(r *http.Request, field string, maxBytes int) (string, string, bool, error) {
	if r.MultipartForm == nil {
		return "", "", false, nil
	}

	files := r.MultipartForm.File[field]
	if len(files) == 0 || files[0].Filename == "" {
		return "", "", false, nil
	}
	fh := files[0]

	if err := validate.FileName(fh.Filename); err != nil {
		return "", "", false, err
	}
	if err := validate.FileSize(fh.Size, validate.Limits{MaxBytes: maxBytes}); err != nil {
		return "", "", false, err
	}

	f, err := fh.Open()
	if err != nil {
		return "", "", false, errors.Wrapf(err, "opening the uploaded file '%s'", field)
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return "", "", false, errors.Wrapf(err, "reading the uploaded file '%s'", field)
	}

	return string(b), fh.Filename, true, nil
}

// readCompareForm reads a comparison form. Uploaded files take the place of
// the texts typed in the same side.
func readCompareForm(a *app.App, r *http.Request) (CompareForm, error) {
	var form CompareForm
	if err := parseForm(r, &form, int64(2*a.MaxUploadBytes)); err != nil {
		return form, err
	}

	for _, side := range []struct {
		field string
		text  *string
	}{
		{"original_file", &form.Original},
		{"changed_file", &form.Changed},
	} {
		content, name, ok, err := readUpload(r, side.field, a.MaxUploadBytes)
		if err != nil {
			return form, err
		}
		if !ok {
			continue
		}

		*side.text = content
		if form.Language == "" {
			form.Language = name
		}
	}

	form.Original = normalizeNewlines(form.Original)
	form.Changed = normalizeNewlines(form.Changed)

	return form, nil
}

// renderComparison renders the comparison page with the given result
func renderComparison(w http.ResponseWriter, r *http.Request, v *views.View, d views.Data, res compare.Result) {
	switch res.Status {
	case compare.StatusRejected:
		d.PutAlert(views.AlertLvlError, res.Message)
		v.Render(w, r, &d, http.StatusBadRequest)
	case compare.StatusFailed:
		d.PutAlert(views.AlertLvlError, res.Message)
		v.Render(w, r, &d, http.StatusInternalServerError)
	case compare.StatusIdentical:
		d.PutAlert(views.AlertLvlSuccess, res.Message)
		v.Render(w, r, &d, http.StatusOK)
	default:
		d.Yield["Diff"] = template.HTML(res.Rendered)
		d.Yield["Unified"] = res.Unified
		v.Render(w, r, &d, http.StatusOK)
	}
}

// comparisonStatusCode returns the HTTP status code of a comparison result
func comparisonStatusCode(res compare.Result) int {
	switch res.Status {
	case compare.StatusRejected:
		return http.StatusBadRequest
	case compare.StatusFailed:
		return http.StatusInternalServerError
	}

	return http.StatusOK
}

// New renders the comparison page
func (d *Diffs) New(w http.ResponseWriter, r *http.Request) {
	vd := getCompareData(d.app, CompareForm{})
	d.NewView.Render(w, r, &vd, http.StatusOK)
}

// Create compares the texts of the submitted form
func (d *Diffs) Create(w http.ResponseWriter, r *http.Request) {
	form, err := readCompareForm(d.app, r)
	vd := getCompareData(d.app, form)
	if err != nil {
		handleHTMLError(w, r, err, "reading the comparison form", d.NewView, vd)
		return
	}

	p, err := form.toParams()
	if err != nil {
		handleHTMLError(w, r, err, "parsing the view mode", d.NewView, vd)
		return
	}

	renderComparison(w, r, d.NewView, vd, d.app.Compare(p))
}

// V1Compare compares the texts of the JSON payload
func (d *Diffs) V1Compare(w http.ResponseWriter, r *http.Request) {
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

	res := d.app.Compare(p)
	respondJSON(w, comparisonStatusCode(res), presenters.PresentComparison(res))
}
