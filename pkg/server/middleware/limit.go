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
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dnote/diffcheck/pkg/clock"
	"github.com/dnote/diffcheck/pkg/server/log"
	"golang.org/x/time/rate"
)

// RateLimitMessage is the body of a response to a rate limited request
const RateLimitMessage = "Rate limit exceeded. Please try again later."

type visitor struct {
	// limiter holds the allowance of the current window. It is never refilled.
	limiter     *rate.Limiter
	windowStart time.Time
	lastSeen    time.Time
}

// RateLimiter allows each client address a number of requests per window
type RateLimiter struct {
	requests int
	window   time.Duration
	// ttl is how long an idle visitor is remembered
	ttl   time.Duration
	clock clock.Clock

	mtx        sync.Mutex
	visitors   map[string]*visitor
	lastPruned time.Time
}

// NewRateLimiter creates a rate limiter allowing the given number of requests
// in fixed windows. A visitor's window starts with its first request, and the
// allowance is restored once the window has passed.
func NewRateLimiter(requests int, window time.Duration, c clock.Clock) *RateLimiter {
	if c == nil {
		c = clock.New()
	}

	return &RateLimiter{
		requests: requests,
		window:   window,
		ttl:      3 * window,
		clock:    c,
		visitors: make(map[string]*visitor),
	}
}

// allow reports whether the visitor with the given identifier may make a request
func (rl *RateLimiter) allow(identifier string) bool {
	now := rl.clock.Now()

	rl.mtx.Lock()
	defer rl.mtx.Unlock()

	rl.pruneLocked(now)

	v, ok := rl.visitors[identifier]
	if !ok || now.Sub(v.windowStart) >= rl.window {
		v = &visitor{
			limiter:     rate.NewLimiter(0, rl.requests),
			windowStart: now,
		}
		rl.visitors[identifier] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

// pruneLocked forgets visitors that have not been seen within the ttl, at most
// once per window
func (rl *RateLimiter) pruneLocked(now time.Time) {
	if !rl.lastPruned.IsZero() && now.Sub(rl.lastPruned) < rl.window {
		return
	}

	for identifier, v := range rl.visitors {
		if now.Sub(v.lastSeen) > rl.ttl {
			delete(rl.visitors, identifier)
		}
	}
	rl.lastPruned = now
}

func (rl *RateLimiter) visitorCount() int {
	rl.mtx.Lock()
	defer rl.mtx.Unlock()

	return len(rl.visitors)
}

// lookupIP returns the address of the client making the request
func lookupIP(r *http.Request) string {
	if forwardedFor := r.Header.Get("X-Forwarded-For"); forwardedFor != "" {
		parts := strings.Split(forwardedFor, ",")
		return strings.TrimSpace(parts[0])
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}

// Limit is a middleware to rate limit the handler
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identifier := lookupIP(r)

		if !rl.allow(identifier) {
			log.WithFields(log.Fields{
				"ip":   identifier,
				"path": r.URL.Path,
			}).Warn("Too many requests")

			w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			http.Error(w, RateLimitMessage, http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
