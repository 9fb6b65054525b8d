package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"photoshare/api/internal/config"
	"photoshare/api/internal/httpx"
)

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter holds one token bucket per client IP for a single route quota.
// Idle entries are dropped so the map does not grow with every IP ever seen.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*ipLimiter
	limit   rate.Limit
	burst   int
}

func NewRateLimiter(quota config.RateQuota) *RateLimiter {
	limit := rate.Inf
	if quota.Window > 0 && quota.Requests > 0 {
		limit = rate.Limit(float64(quota.Requests) / quota.Window.Seconds())
	}
	burst := quota.Burst
	if burst <= 0 {
		burst = quota.Requests
	}

	rl := &RateLimiter{
		clients: make(map[string]*ipLimiter),
		limit:   limit,
		burst:   burst,
	}
	go rl.cleanupLoop()
	return rl
}

func (rl *RateLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if c, ok := rl.clients[ip]; ok {
		c.lastSeen = time.Now()
		return c.limiter
	}

	limiter := rate.NewLimiter(rl.limit, rl.burst)
	rl.clients[ip] = &ipLimiter{limiter: limiter, lastSeen: time.Now()}
	return limiter
}

func (rl *RateLimiter) cleanupLoop() {
	for {
		time.Sleep(time.Minute)
		rl.mu.Lock()
		for ip, c := range rl.clients {
			if time.Since(c.lastSeen) > 3*time.Minute {
				delete(rl.clients, ip)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *RateLimiter) Allow(ip string) bool {
	return rl.limiterFor(ip).Allow()
}

// RateLimit enforces a fixed per-IP quota on the routes it wraps.
func RateLimit(cfg config.RateLimitConfig, quota config.RateQuota) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	rl := NewRateLimiter(quota)
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			httpx.AbortDetail(c, http.StatusTooManyRequests, "Too many requests")
			return
		}
		c.Next()
	}
}
