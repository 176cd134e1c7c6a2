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
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dnote/diffcheck/pkg/assert"
	"github.com/dnote/diffcheck/pkg/clock"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doLimitedRequest(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/compare", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	return w
}

func TestLimit(t *testing.T) {
	limiter := NewRateLimiter(100, time.Minute, clock.NewMock())
	h := limiter.Limit(okHandler())

	for i := 0; i < 100; i++ {
		w := doLimitedRequest(h, "192.168.1.1:1234")
		assert.Equal(t, w.Code, http.StatusOK, "request within the limit")
	}

	w := doLimitedRequest(h, "192.168.1.1:1234")
	assert.Equal(t, w.Code, http.StatusTooManyRequests, "request over the limit")
	assert.Equal(t, w.Header().Get("Retry-After"), "60", "Retry-After mismatch")
	assert.Equal(t, strings.TrimSpace(w.Body.String()), RateLimitMessage, "body mismatch")
}

func TestLimit_FixedWindow(t *testing.T) {
	c := clock.NewMock()
	limiter := NewRateLimiter(100, time.Minute, c)
	h := limiter.Limit(okHandler())

	// ten requests per second for a minute
	var allowed int
	for i := 0; i < 600; i++ {
		if doLimitedRequest(h, "10.0.0.1:1").Code == http.StatusOK {
			allowed++
		}
		c.Advance(100 * time.Millisecond)
	}
	assert.Equal(t, allowed, 100, "allowed requests in a window")

	// the next window starts with the first request after the previous one
	assert.Equal(t, doLimitedRequest(h, "10.0.0.1:1").Code, http.StatusOK, "new window")
}

func TestLimit_NoRefillWithinWindow(t *testing.T) {
	c := clock.NewMock()
	limiter := NewRateLimiter(2, time.Minute, c)
	h := limiter.Limit(okHandler())

	doLimitedRequest(h, "10.0.0.1:1")
	doLimitedRequest(h, "10.0.0.1:1")
	assert.Equal(t, doLimitedRequest(h, "10.0.0.1:1").Code, http.StatusTooManyRequests, "exhausted")

	c.Advance(59 * time.Second)
	assert.Equal(t, doLimitedRequest(h, "10.0.0.1:1").Code, http.StatusTooManyRequests, "still exhausted")

	c.Advance(time.Second)
	assert.Equal(t, doLimitedRequest(h, "10.0.0.1:1").Code, http.StatusOK, "window passed")
	assert.Equal(t, doLimitedRequest(h, "10.0.0.1:1").Code, http.StatusOK, "second of the window")
	assert.Equal(t, doLimitedRequest(h, "10.0.0.1:1").Code, http.StatusTooManyRequests, "exhausted again")
}

func TestLimit_DifferentIPs(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute, clock.NewMock())
	h := limiter.Limit(okHandler())

	doLimitedRequest(h, "192.168.1.1:1234")
	assert.Equal(t, doLimitedRequest(h, "192.168.1.1:1234").Code, http.StatusTooManyRequests, "first IP should be limited")

	// the port does not identify a client
	assert.Equal(t, doLimitedRequest(h, "192.168.1.1:9999").Code, http.StatusTooManyRequests, "same host should be limited")

	assert.Equal(t, doLimitedRequest(h, "192.168.1.2:5678").Code, http.StatusOK, "different IP should succeed")
}

func TestLimit_Prune(t *testing.T) {
	c := clock.NewMock()
	limiter := NewRateLimiter(10, time.Minute, c)
	h := limiter.Limit(okHandler())

	doLimitedRequest(h, "10.0.0.1:1")
	doLimitedRequest(h, "10.0.0.2:1")
	assert.Equal(t, limiter.visitorCount(), 2, "visitor count mismatch")

	c.Advance(4 * time.Minute)
	doLimitedRequest(h, "10.0.0.3:1")
	assert.Equal(t, limiter.visitorCount(), 1, "idle visitors should be pruned")
}

func TestLookupIP(t *testing.T) {
	testCases := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expected   string
	}{
		{
			name:       "forwarded for",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.1, 10.0.0.1", "X-Real-IP": "198.51.100.1"},
			remoteAddr: "10.0.0.1:80",
			expected:   "203.0.113.1",
		},
		{
			name:       "real ip",
			headers:    map[string]string{"X-Real-IP": "198.51.100.1"},
			remoteAddr: "10.0.0.1:80",
			expected:   "198.51.100.1",
		},
		{
			name:       "remote address",
			remoteAddr: "10.0.0.1:80",
			expected:   "10.0.0.1",
		},
		{
			name:       "remote address without port",
			remoteAddr: "10.0.0.1",
			expected:   "10.0.0.1",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				r.Header.Set(k, v)
			}

			assert.Equal(t, lookupIP(r), tc.expected, "ip mismatch")
		})
	}
}
