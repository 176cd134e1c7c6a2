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

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dnote/diffcheck/pkg/assert"
	"github.com/dnote/diffcheck/pkg/clock"
	"github.com/dnote/diffcheck/pkg/server/log"
)

func TestRecover(t *testing.T) {
	var buf bytes.Buffer
	prev := log.SetOutput(&buf)
	defer log.SetOutput(prev)

	h := Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}), []byte("<h1>500</h1>"))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, w.Code, http.StatusInternalServerError, "status code mismatch")
	assert.Equal(t, w.Body.String(), "<h1>500</h1>", "body mismatch")
	assert.Contains(t, buf.String(), `"msg":"recovered from a panic"`, "log mismatch")
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	prev := log.SetOutput(&buf)
	defer log.SetOutput(prev)

	h := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("tea"))
	}))

	r := httptest.NewRequest("POST", "/api/compare", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	h.ServeHTTP(httptest.NewRecorder(), r)

	line := buf.String()
	assert.Contains(t, line, `"status":418`, "status mismatch")
	assert.Contains(t, line, `"path":"/api/compare"`, "path mismatch")
	assert.Contains(t, line, `"bytes":3`, "bytes mismatch")
	assert.Contains(t, line, `"ip":"10.0.0.1"`, "ip mismatch")
}

func TestApplyLimit(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute, clock.NewMock())

	testCases := []struct {
		rateLimit    bool
		expectedCode int
	}{
		{rateLimit: true, expectedCode: http.StatusTooManyRequests},
		{rateLimit: false, expectedCode: http.StatusOK},
	}

	for _, tc := range testCases {
		h := APIMw(limiter)(okHandler().ServeHTTP, tc.rateLimit)

		var w *httptest.ResponseRecorder
		for i := 0; i < 2; i++ {
			w = doLimitedRequest(h, "10.0.0.9:1")
		}

		assert.Equal(t, w.Code, tc.expectedCode, "status code mismatch")
	}
}

func TestCSRF(t *testing.T) {
	protect := NewCSRF(CSRFParams{
		Key:       []byte(strings.Repeat("k", 32)),
		Plaintext: true,
	})
	h := WebMw(nil, protect)(okHandler().ServeHTTP, false)

	t.Run("safe method", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest("GET", "http://example.com/", nil))

		assert.Equal(t, w.Code, http.StatusOK, "status code mismatch")
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest("POST", "http://example.com/", strings.NewReader("original=a")))

		assert.Equal(t, w.Code, http.StatusForbidden, "status code mismatch")
	})
}

func TestLimitBody(t *testing.T) {
	h := LimitBody(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
			return
		}

		w.WriteHeader(http.StatusOK)
	}), 8)

	testCases := []struct {
		body         string
		expectedCode int
	}{
		{body: "a=1", expectedCode: http.StatusOK},
		{body: "a=123456789", expectedCode: http.StatusRequestEntityTooLarge},
	}

	for _, tc := range testCases {
		t.Run(tc.body, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/", strings.NewReader(tc.body))
			r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			w := httptest.NewRecorder()

			h.ServeHTTP(w, r)

			assert.Equal(t, w.Code, tc.expectedCode, "status code mismatch")
		})
	}
}
