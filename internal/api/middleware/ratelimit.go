package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/contesthub/contest-api/internal/api/handler/v1/response"
)

const (
	// cleanupThreshold is the map size above which idle clients are pruned.
	cleanupThreshold = 500
	maxIdleAge       = 10 * time.Minute
)

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter hands out one token bucket per client IP.
type IPRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientEntry
	r       rate.Limit
	b       int
	now     func() time.Time
}

func NewIPRateLimiter(perSecond float64, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		clients: make(map[string]*clientEntry),
		r:       rate.Limit(perSecond),
		b:       burst,
		now:     time.Now,
	}
}

func (l *IPRateLimiter) Limiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if len(l.clients) > cleanupThreshold {
		cutoff := now.Add(-maxIdleAge)
		for k, e := range l.clients {
			if e.lastSeen.Before(cutoff) {
				delete(l.clients, k)
			}
		}
	}

	e, ok := l.clients[ip]
	if !ok {
		e = &clientEntry{limiter: rate.NewLimiter(l.r, l.b)}
		l.clients[ip] = e
	}
	e.lastSeen = now

	return e.limiter
}

// RateLimit answers 429 once a client IP exhausts its bucket. A nil limiter
// disables limiting.
func RateLimit(l *IPRateLimiter) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if l != nil && !l.Limiter(ctx.ClientIP()).Allow() {
			response.RenderErr(ctx, response.ErrTooManyRequests())
			return
		}

		ctx.Next()
	}
}
