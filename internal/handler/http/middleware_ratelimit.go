// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/MKhiriev/hello-auth/internal/logger"
	"github.com/MKhiriev/hello-auth/internal/utils"
)

// keyRateLimiter keeps one token bucket per key. Buckets idle for longer
// than idleTTL are dropped on a later call.
type keyRateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	rate      rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newKeyRateLimiter(reqPerMinute float64) *keyRateLimiter {
	burst := int(reqPerMinute / 6) // 10 seconds worth
	if burst < 1 {
		burst = 1
	}

	// an idle bucket is full again after burst/rate
	idleTTL := time.Duration(float64(burst) / reqPerMinute * float64(time.Minute))
	if idleTTL < time.Minute {
		idleTTL = time.Minute
	}

	return &keyRateLimiter{
		buckets: make(map[string]*bucket),
		rate:    rate.Limit(reqPerMinute / 60),
		burst:   burst,
		idleTTL: idleTTL,
		now:     time.Now,
	}
}

func (l *keyRateLimiter) limiter(key string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.idleTTL {
		l.evictIdle(now)
		l.lastSweep = now
	}

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter
}

// evictIdle must be called with mu held.
func (l *keyRateLimiter) evictIdle(now time.Time) {
	cutoff := now.Add(-l.idleTTL)
	for key, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

func (l *keyRateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Allow reports whether key may make a request now. When it may not, the
// returned duration estimates when the next request will be allowed.
func (l *keyRateLimiter) Allow(key string) (bool, time.Duration) {
	now := l.now()
	limiter := l.limiter(key, now)
	if limiter.AllowN(now, 1) {
		return true, 0
	}

	reservation := limiter.ReserveN(now, 1)
	delay := reservation.DelayFrom(now)
	reservation.CancelAt(now)
	return false, delay
}

// ipRateLimiter limits requests per client IP. A non-positive limit
// disables it.
type ipRateLimiter struct {
	inner *keyRateLimiter
}

func newIPRateLimiter(reqPerMinute float64) *ipRateLimiter {
	if reqPerMinute <= 0 {
		return &ipRateLimiter{}
	}
	return &ipRateLimiter{inner: newKeyRateLimiter(reqPerMinute)}
}

func (l *ipRateLimiter) middleware(next http.Handler) http.Handler {
	if l.inner == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := utils.ClientIP(r)

		ok, retryAfter := l.inner.Allow(ip)
		if !ok {
			logger.FromRequest(r).Warn().Str("ip", ip).Msg("rate limit exceeded")
			w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
			utils.WriteJSON(w, errorBody(ErrRateLimited), http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
