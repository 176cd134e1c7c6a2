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

	"github.com/dnote/diffcheck/pkg/server/app"
	"github.com/dnote/diffcheck/pkg/server/assets"
	mw "github.com/dnote/diffcheck/pkg/server/middleware"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

// Route represents a single route
type Route struct {
	Method    string
	Pattern   string
	Handler   http.HandlerFunc
	RateLimit bool
}

// RouteConfig is the configuration for routes
type RouteConfig struct {
	Controllers *Controllers
	WebRoutes   []Route
	APIRoutes   []Route
	// RateLimiter limits the rate limited routes. Routes are not limited if it is nil.
	RateLimiter *mw.RateLimiter
}

// NewWebRoutes returns a new web routes
func NewWebRoutes(a *app.App, c *Controllers) []Route {
	ret := []Route{
		{"GET", "/", c.Diffs.New, true},
		{"POST", "/", c.Diffs.Create, true},
		{"GET", "/health", c.Health.Index, false},
	}

	if !a.DisableSnapshots {
		ret = append(ret, Route{"POST", "/s", c.Snapshots.Create, true})
		ret = append(ret, Route{"GET", "/s/{snapshotUUID}", c.Snapshots.Show, true})
	}

	return ret
}

// NewAPIRoutes returns a new api routes
func NewAPIRoutes(a *app.App, c *Controllers) []Route {
	ret := []Route{
		{"POST", "/compare", c.Diffs.V1Compare, true},
	}

	if !a.DisableSnapshots {
		ret = append(ret, Route{"POST", "/snapshots", c.Snapshots.V1Create, true})
		ret = append(ret, Route{"GET", "/snapshots/{snapshotUUID}", c.Snapshots.V1Show, true})
	}

	return ret
}

func registerRoutes(router *mux.Router, wrapper mw.Middleware, routes []Route) {
	for _, route := range routes {
		wrappedHandler := wrapper(route.Handler, route.RateLimit)

		router.
			Handle(route.Pattern, wrappedHandler).
			Methods(route.Method)
	}
}

// NewRouter creates and returns a new router
func NewRouter(app *app.App, rc RouteConfig) (http.Handler, error) {
	if err := app.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating the app parameters")
	}

	protect := mw.NewCSRF(mw.CSRFParams{
		Key:       app.CSRFKey,
		Plaintext: !strings.HasPrefix(app.BaseURL, "https://"),
	})

	router := mux.NewRouter().StrictSlash(true)

	webRouter := router.PathPrefix("/").Subrouter()
	apiRouter := router.PathPrefix("/api").Subrouter()
	registerRoutes(webRouter, mw.WebMw(rc.RateLimiter, protect), rc.WebRoutes)
	registerRoutes(apiRouter, mw.APIMw(rc.RateLimiter), rc.APIRoutes)

	// static
	router.HandleFunc("/static/syntax.css", rc.Controllers.Static.SyntaxCSS).Methods("GET")

	staticHandler, err := assets.NewStaticHandler("/static/")
	if err != nil {
		return nil, errors.Wrap(err, "initializing the handler for static files")
	}
	router.PathPrefix("/static/").Handler(staticHandler)

	router.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("User-agent: *\nAllow: /\nDisallow: /s/"))
	})

	// catch-all
	router.PathPrefix("/").HandlerFunc(rc.Controllers.Static.NotFound)

	return mw.Global(mw.LimitBody(router, app.MaxRequestBytes()), app.HTTP500Page), nil
}
