package tournamenthandlers

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	tournamentservice "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/application"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

// Idle clients are swept once more than cleanupThreshold are tracked.
const (
	cleanupThreshold = 500
	maxIdleAge       = 10 * time.Minute
)

type clientBucket struct {
	*rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter hands out one token bucket per client address.
type IPRateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*clientBucket
	limit   rate.Limit
	burst   int
	now     func() time.Time
}

// NewIPRateLimiter allows limit score updates per second per client with
// bursts of burst.
func NewIPRateLimiter(limit rate.Limit, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		buckets: make(map[string]*clientBucket),
		limit:   limit,
		burst:   burst,
		now:     time.Now,
	}
}

// GetLimiter returns the bucket for client, creating it on first use.
func (l *IPRateLimiter) GetLimiter(client string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if len(l.buckets) > cleanupThreshold {
		l.sweep(now.Add(-maxIdleAge))
	}

	b, ok := l.buckets[client]
	if !ok {
		b = &clientBucket{Limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[client] = b
	}
	b.lastSeen = now
	return b.Limiter
}

// Allow spends one token from client's bucket.
func (l *IPRateLimiter) Allow(client string) bool {
	return l.GetLimiter(client).Allow()
}

// sweep drops buckets idle since before cutoff. Callers hold mu.
func (l *IPRateLimiter) sweep(cutoff time.Time) {
	for client, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, client)
		}
	}
}

// Len reports how many clients are tracked.
func (l *IPRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// retryAfter is the Retry-After header value: the time to earn one token,
// rounded to whole seconds and at least 1.
func (l *IPRateLimiter) retryAfter() string {
	if l.limit > 0 && l.limit < 1 {
		return strconv.Itoa(int(math.Round(1 / float64(l.limit))))
	}
	return "1"
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimitMiddleware answers 429 with a Retry-After hint once a client
// has spent its budget.
func RateLimitMiddleware(limiter *IPRateLimiter) func(http.Handler) http.Handler {
	retryAfter := limiter.retryAfter()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientAddr(r)) {
				w.Header().Set("Retry-After", retryAfter)
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CorrelationMiddleware ties service logs and published events to the chi
// request id. It must run after middleware.RequestID.
func CorrelationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			r = r.WithContext(tournamentservice.WithCorrelationID(r.Context(), id))
			w.Header().Set(middleware.RequestIDHeader, id)
		}
		next.ServeHTTP(w, r)
	})
}
