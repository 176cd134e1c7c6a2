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

// Package middleware provides the middlewares wrapping the handlers of the server
package middleware

import (
	"net/http"
	"time"

	"github.com/dnote/diffcheck/pkg/server/log"
	"github.com/gorilla/csrf"
)

// Middleware wraps the handler of a route
type Middleware func(h http.HandlerFunc, rateLimit bool) http.Handler

// ApplyLimit applies the given rate limiter if the route is rate limited
func ApplyLimit(h http.Handler, limiter *RateLimiter, rateLimit bool) http.Handler {
	if !rateLimit || limiter == nil {
		return h
	}

	return limiter.Limit(h)
}

// CSRFParams are the parameters of the CSRF protection
type CSRFParams struct {
	Key []byte
	// Plaintext must be set when the server is reached over plain HTTP
	Plaintext bool
}

// NewCSRF returns a middleware rejecting form submissions without a valid CSRF token
func NewCSRF(p CSRFParams) func(http.Handler) http.Handler {
	protect := csrf.Protect(
		p.Key,
		csrf.Secure(!p.Plaintext),
		csrf.Path("/"),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.WithFields(log.Fields{
				"path":   r.URL.Path,
				"reason": csrf.FailureReason(r),
			}).Warn("Invalid CSRF token")

			http.Error(w, "Forbidden - invalid CSRF token", http.StatusForbidden)
		})),
	)

	return func(next http.Handler) http.Handler {
		h := protect(next)

		if !p.Plaintext {
			return h
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}

// WebMw returns the middleware of the routes serving HTML pages
func WebMw(limiter *RateLimiter, protect func(http.Handler) http.Handler) Middleware {
	return func(h http.HandlerFunc, rateLimit bool) http.Handler {
		var ret http.Handler = h
		if protect != nil {
			ret = protect(ret)
		}

		return ApplyLimit(ret, limiter, rateLimit)
	}
}

// APIMw returns the middleware of the routes serving JSON
func APIMw(limiter *RateLimiter) Middleware {
	return func(h http.HandlerFunc, rateLimit bool) http.Handler {
		return ApplyLimit(h, limiter, rateLimit)
	}
}

// statusRecorder records the status code written to a response
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}

	n, err := r.ResponseWriter.Write(b)
	r.bytes += n

	return n, err
}

// Logging logs a line for every request
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}

		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   status,
			"bytes":    rec.bytes,
			"ip":       lookupIP(r),
			"duration": time.Since(start),
		}).Info("incoming request")
	})
}

// Recover responds with the given page for the requests whose handler panics
func Recover(next http.Handler, page500 []byte) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.WithFields(log.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
					"panic":  err,
				}).Error("recovered from a panic")

				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.WriteHeader(http.StatusInternalServerError)
				w.Write(page500)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// Global wraps the router with the middlewares applied to every request
func Global(h http.Handler, page500 []byte) http.Handler {
	return Logging(Recover(h, page500))
}

// LimitBody caps the size of the request bodies
func LimitBody(next http.Handler, n int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, n)
		}

		next.ServeHTTP(w, r)
	})
}
