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
	"testing"
	"time"

	"github.com/dnote/diffcheck/pkg/assert"
	"github.com/dnote/diffcheck/pkg/clock"
	"github.com/dnote/diffcheck/pkg/server/app"
	mw "github.com/dnote/diffcheck/pkg/server/middleware"
	"github.com/dnote/diffcheck/pkg/server/testutils"
)

// newTestApp returns an app backed by an in-memory database
func newTestApp(t *testing.T) app.App {
	a := app.NewTest()
	a.DB = testutils.InitMemoryDB(t)

	return a
}

func TestNewRouter_InvalidApp(t *testing.T) {
	a := newTestApp(t)
	a.CSRFKey = nil

	_, err := NewServer(&a, nil)

	assert.ErrorIs(t, err, app.ErrInvalidCSRFKey, "error mismatch")
}

func TestNotFound(t *testing.T) {
	testCases := []struct {
		path         string
		accept       string
		expectedBody string
	}{
		{
			path:         "/foo",
			accept:       "",
			expectedBody: "Not Found",
		},
		{
			path:         "/api/foo",
			accept:       "application/json",
			expectedBody: "Not Found",
		},
		{
			path:         "/foo/bar",
			accept:       "text/html,application/xhtml+xml",
			expectedBody: "The page you are looking for does not exist",
		},
	}

	a := newTestApp(t)
	server := MustNewServer(t, &a)
	defer server.Close()

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			req := testutils.MakeReq(server.URL, "GET", tc.path, "")
			req.Header.Set("Accept", tc.accept)
			res := testutils.HTTPDo(t, req)

			assert.Equal(t, res.StatusCode, http.StatusNotFound, "status code mismatch")
			assert.Contains(t, testutils.ReadBody(t, res), tc.expectedBody, "body mismatch")
		})
	}
}

func TestRateLimit(t *testing.T) {
	a := newTestApp(t)
	server, err := NewServer(&a, mw.NewRateLimiter(2, time.Minute, clock.NewMock()))
	if err != nil {
		t.Fatal(err)
	}
	defer server.Close()

	payload := map[string]interface{}{"original": "a", "changed": "b"}

	for i := 0; i < 2; i++ {
		res := testutils.HTTPDo(t, testutils.MakeJSONReq(server.URL, "POST", "/api/compare", payload))
		assert.StatusCodeEquals(t, res, http.StatusOK, "request within the limit")
		res.Body.Close()
	}

	res := testutils.HTTPDo(t, testutils.MakeJSONReq(server.URL, "POST", "/api/compare", payload))
	assert.Equal(t, res.StatusCode, http.StatusTooManyRequests, "status code mismatch")
	assert.Equal(t, res.Header.Get("Retry-After"), "60", "Retry-After mismatch")
	assert.Equal(t, strings.TrimSpace(testutils.ReadBody(t, res)), mw.RateLimitMessage, "body mismatch")

	// the health check is not rate limited
	res = testutils.HTTPDo(t, testutils.MakeReq(server.URL, "GET", "/health", ""))
	assert.StatusCodeEquals(t, res, http.StatusOK, "health check")
	res.Body.Close()
}

func TestHealth(t *testing.T) {
	a := newTestApp(t)
	server := MustNewServer(t, &a)
	defer server.Close()

	res := testutils.HTTPDo(t, testutils.MakeReq(server.URL, "GET", "/health", ""))

	assert.Equal(t, res.StatusCode, http.StatusOK, "status code mismatch")
	assert.Equal(t, testutils.ReadBody(t, res), "ok", "body mismatch")
}

func TestStatic(t *testing.T) {
	testCases := []struct {
		path         string
		contentType  string
		expectedBody string
	}{
		{
			path:         "/static/style.css",
			contentType:  "text/css; charset=utf-8",
			expectedBody: ".diff-del",
		},
		{
			path:         "/static/syntax.css",
			contentType:  "text/css; charset=utf-8",
			expectedBody: ".chroma",
		},
		{
			path:         "/static/app.js",
			contentType:  "text/javascript; charset=utf-8",
			expectedBody: "compare-form",
		},
	}

	a := newTestApp(t)
	server := MustNewServer(t, &a)
	defer server.Close()

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			res := testutils.HTTPDo(t, testutils.MakeReq(server.URL, "GET", tc.path, ""))

			assert.Equal(t, res.StatusCode, http.StatusOK, "status code mismatch")
			assert.Equal(t, res.Header.Get("Content-Type"), tc.contentType, "content type mismatch")
			assert.Equal(t, res.Header.Get("Cache-Control"), "public, max-age=3600", "cache control mismatch")
			assert.Contains(t, testutils.ReadBody(t, res), tc.expectedBody, "body mismatch")
		})
	}
}

func TestRobots(t *testing.T) {
	a := newTestApp(t)
	server := MustNewServer(t, &a)
	defer server.Close()

	res := testutils.HTTPDo(t, testutils.MakeReq(server.URL, "GET", "/robots.txt", ""))

	assert.Equal(t, res.StatusCode, http.StatusOK, "status code mismatch")
	assert.Contains(t, testutils.ReadBody(t, res), "Disallow: /s/", "body mismatch")
}
