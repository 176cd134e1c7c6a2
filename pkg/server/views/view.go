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

// Package views renders the HTML pages of the server
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"time"

	"github.com/dnote/diffcheck/pkg/server/app"
	"github.com/dnote/diffcheck/pkg/server/log"
	"github.com/gorilla/csrf"
)

const (
	// TemplateExt is the template extension
	TemplateExt string = ".gohtml"
	// defaultLayout is the layout wrapping the pages
	defaultLayout = "layouts/base"
)

//go:embed templates
var templateFiles embed.FS

// Config is a view config
type Config struct {
	Title       string
	Layout      string
	HelperFuncs map[string]interface{}
}

func (c Config) getLayout() string {
	if c.Layout == "" {
		return "base"
	}

	return c.Layout
}

// Engine parses the templates of the views
type Engine struct {
	fs fs.FS
}

// NewEngine returns an engine parsing the templates in the given filesystem
func NewEngine(fsys fs.FS) *Engine {
	return &Engine{fs: fsys}
}

// NewDefaultEngine returns an engine parsing the embedded templates
func NewDefaultEngine() *Engine {
	sub, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic(err)
	}

	return NewEngine(sub)
}

// View holds the information about a view
type View struct {
	Template *template.Template
	Layout   string
	Title    string
	App      *app.App
}

// NewView parses the layout and the given page into a view.
// It panics if the templates cannot be parsed.
func (e *Engine) NewView(a *app.App, c Config, page string) *View {
	funcs := template.FuncMap{
		// replaced for every request
		"csrfField": func() template.HTML { return "" },
		"assetPath": func(name string) string {
			return path.Join(a.AssetBaseURL, name)
		},
		"timeUntil": func(t time.Time) string {
			return relativeTime(a.Clock.Now(), t)
		},
	}
	for k, v := range c.HelperFuncs {
		funcs[k] = v
	}

	t := template.Must(template.New(page).Funcs(funcs).ParseFS(e.fs, defaultLayout+TemplateExt, page+TemplateExt))

	return &View{
		Template: t,
		Layout:   c.getLayout(),
		Title:    c.Title,
		App:      a,
	}
}

func (v *View) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	v.Render(w, r, nil, http.StatusOK)
}

// Render is used to render the view with the predefined layout
func (v *View) Render(w http.ResponseWriter, r *http.Request, data *Data, statusCode int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	var vd Data
	if data != nil {
		vd = *data
	}
	if vd.Title == "" {
		vd.Title = v.Title
	}
	if vd.Yield == nil {
		vd.Yield = map[string]interface{}{}
	}
	vd.Yield["CurrentPath"] = r.URL.Path

	tpl, err := v.Template.Clone()
	if err != nil {
		log.ErrorWrap(err, "cloning template")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write(v.App.HTTP500Page)
		return
	}

	csrfField := csrf.TemplateField(r)
	tpl.Funcs(template.FuncMap{
		"csrfField": func() template.HTML {
			return csrfField
		},
	})

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, v.Layout, vd); err != nil {
		log.ErrorWrap(err, fmt.Sprintf("executing template for URI '%s'", r.RequestURI))
		w.WriteHeader(http.StatusInternalServerError)
		w.Write(v.App.HTTP500Page)
		return
	}

	w.WriteHeader(statusCode)
	io.Copy(w, &buf)
}
