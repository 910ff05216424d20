package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

type windowEntry struct {
	requests []time.Time
	mu       sync.Mutex
	// evicted entries are no longer in the store and must not be counted on.
	evicted bool
}

// RateLimiter allows max requests per client inside a sliding window.
// Clients are keyed by socket address unless TrustForwardedFor is set,
// which is only safe behind a proxy that overwrites X-Forwarded-For.
type RateLimiter struct {
	max               int
	window            time.Duration
	store             sync.Map
	now               func() time.Time
	TrustForwardedFor bool

	sweepMu   sync.Mutex
	lastSweep time.Time
}

func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	return &RateLimiter{max: max, window: window, now: time.Now}
}

// allow reports whether the client may proceed and, if not, how long until
// the oldest request leaves the window.
func (rl *RateLimiter) allow(client string) (bool, time.Duration) {
	now := rl.now()
	cutoff := now.Add(-rl.window)
	rl.sweep(now, cutoff)

	for {
		v, _ := rl.store.LoadOrStore(client, &windowEntry{})
		entry := v.(*windowEntry)

		entry.mu.Lock()
		if entry.evicted {
			entry.mu.Unlock()
			continue
		}

		entry.prune(cutoff)
		if len(entry.requests) >= rl.max {
			retry := entry.requests[0].Sub(cutoff)
			entry.mu.Unlock()
			return false, retry
		}
		entry.requests = append(entry.requests, now)
		entry.mu.Unlock()
		return true, 0
	}
}

func (e *windowEntry) prune(cutoff time.Time) {
	filtered := e.requests[:0]
	for _, t := range e.requests {
		if t.After(cutoff) {
			filtered = append(filtered, t)
		}
	}
	e.requests = filtered
}

// sweep drops clients with no request inside the window, at most once per window.
func (rl *RateLimiter) sweep(now, cutoff time.Time) {
	rl.sweepMu.Lock()
	if now.Sub(rl.lastSweep) < rl.window {
		rl.sweepMu.Unlock()
		return
	}
	rl.lastSweep = now
	rl.sweepMu.Unlock()

	rl.store.Range(func(key, v any) bool {
		entry := v.(*windowEntry)
		entry.mu.Lock()
		entry.prune(cutoff)
		if len(entry.requests) == 0 {
			entry.evicted = true
			rl.store.Delete(key)
		}
		entry.mu.Unlock()
		return true
	})
}

func (rl *RateLimiter) clients() int {
	n := 0
	rl.store.Range(func(any, any) bool {
		n++
		return true
	})
	return n
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, retryAfter := rl.allow(rl.clientKey(r))
		if !ok {
			w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
			writeJSONError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) clientKey(r *http.Request) string {
	if rl.TrustForwardedFor {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			first, _, _ := strings.Cut(forwarded, ",")
			return strings.TrimSpace(first)
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
