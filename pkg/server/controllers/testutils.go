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
	"net/http/httptest"
	"net/url"
	"regexp"
	"testing"

	"github.com/dnote/diffcheck/pkg/server/app"
	mw "github.com/dnote/diffcheck/pkg/server/middleware"
	"github.com/dnote/diffcheck/pkg/server/testutils"
	"github.com/pkg/errors"
)

// MustNewServer is a test utility function to initialize a new server
// with the given app
func MustNewServer(t *testing.T, a *app.App) *httptest.Server {
	server, err := NewServer(a, nil)
	if err != nil {
		t.Fatal(errors.Wrap(err, "initializing router"))
	}

	return server
}

// NewServer initializes a new server with the given app and rate limiter
func NewServer(a *app.App, limiter *mw.RateLimiter) (*httptest.Server, error) {
	ctl := New(a)
	rc := RouteConfig{
		WebRoutes:   NewWebRoutes(a, ctl),
		APIRoutes:   NewAPIRoutes(a, ctl),
		Controllers: ctl,
		RateLimiter: limiter,
	}
	r, err := NewRouter(a, rc)
	if err != nil {
		return nil, errors.Wrap(err, "initializing router")
	}

	server := httptest.NewServer(r)

	return server, nil
}

var csrfFieldRegexp = regexp.MustCompile(`name="gorilla.csrf.Token" value="([^"]+)"`)

// csrfSession is a CSRF cookie with the token of a form
type csrfSession struct {
	cookie *http.Cookie
	token  string
}

// mustGetCSRF loads the comparison page and returns its CSRF cookie and token
func mustGetCSRF(t *testing.T, server *httptest.Server) csrfSession {
	res := testutils.HTTPDo(t, testutils.MakeReq(server.URL, "GET", "/", ""))
	cookie := testutils.GetCookieByName(res.Cookies(), "_gorilla_csrf")
	body := testutils.ReadBody(t, res)

	m := csrfFieldRegexp.FindStringSubmatch(body)
	if cookie == nil || m == nil {
		t.Fatal("the comparison page has no CSRF token")
	}

	return csrfSession{cookie: cookie, token: m[1]}
}

// makeCSRFFormReq makes a form request carrying the CSRF token of the session
func makeCSRFFormReq(s csrfSession, endpoint, path string, data url.Values) *http.Request {
	data.Set("gorilla.csrf.Token", s.token)

	req := testutils.MakeFormReq(endpoint, "POST", path, data)
	req.AddCookie(s.cookie)

	return req
}
