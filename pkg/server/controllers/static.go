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
	"strings"

	"github.com/dnote/diffcheck/pkg/render"
	"github.com/dnote/diffcheck/pkg/server/app"
	"github.com/dnote/diffcheck/pkg/server/log"
	"github.com/dnote/diffcheck/pkg/server/views"
)

// NewStatic creates a new Static controller.
func NewStatic(app *app.App, viewEngine *views.Engine) *Static {
	css, err := render.SyntaxCSS(render.DefaultSyntaxStyle)

	return &Static{
		NotFoundView: viewEngine.NewView(app, views.Config{Title: "Not Found", Layout: "base"}, "static/not_found"),
		syntaxCSS:    css,
		syntaxCSSErr: err,
	}
}

// Static is a static controller
type Static struct {
	NotFoundView *views.View
	syntaxCSS    string
	syntaxCSSErr error
}

// NotFound is a catch-all handler for requests with no matching handler
func (s *Static) NotFound(w http.ResponseWriter, r *http.Request) {
	accept := r.Header.Get("Accept")

	if strings.Contains(accept, "text/html") {
		s.NotFoundView.Render(w, r, nil, http.StatusNotFound)
	} else {
		w.WriteHeader(http.StatusNotFound)
		statusText := http.StatusText(http.StatusNotFound)
		w.Write([]byte(statusText))
	}
}

// SyntaxCSS serves the stylesheet of the syntax highlighting
func (s *Static) SyntaxCSS(w http.ResponseWriter, r *http.Request) {
	if s.syntaxCSSErr != nil {
		log.ErrorWrap(s.syntaxCSSErr, "generating the syntax stylesheet")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write([]byte(s.syntaxCSS))
}
