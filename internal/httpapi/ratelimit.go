package httpapi

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// clientLimiter tracks one limiter per client address. Entries idle for
// longer than limiterIdleTTL are dropped on the next sweep.
type clientLimiter struct {
	mu      sync.Mutex
	clients map[string]*limiterEntry
	rps     rate.Limit
	burst   int
	lastGC  time.Time
}

type limiterEntry struct {
	lim  *rate.Limiter
	seen time.Time
}

const limiterIdleTTL = 5 * time.Minute

func newClientLimiter(rps float64, burst int) *clientLimiter {
	return &clientLimiter{
		clients: make(map[string]*limiterEntry),
		rps:     rate.Limit(rps),
		burst:   burst,
		lastGC:  time.Now(),
	}
}

func (cl *clientLimiter) allow(addr string) bool {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	now := time.Now()
	if now.Sub(cl.lastGC) > limiterIdleTTL {
		for k, e := range cl.clients {
			if now.Sub(e.seen) > limiterIdleTTL {
				delete(cl.clients, k)
			}
		}
		cl.lastGC = now
	}
	e, ok := cl.clients[addr]
	if !ok {
		e = &limiterEntry{lim: rate.NewLimiter(cl.rps, cl.burst)}
		cl.clients[addr] = e
	}
	e.seen = now
	return e.lim.Allow()
}

// RateLimitMiddleware rejects clients exceeding the configured request rate.
// middleware.RealIP runs earlier in the chain, so RemoteAddr identifies the
// client even behind a proxy.
func RateLimitMiddleware(rps float64, burst int) func(http.Handler) http.Handler {
	cl := newClientLimiter(rps, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cl.allow(r.RemoteAddr) {
				rateLimitedTotal.WithLabelValues(routePatternOrPath(r)).Inc()
				writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
