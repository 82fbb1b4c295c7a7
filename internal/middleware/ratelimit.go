package middleware

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ipRateLimiter keeps one token bucket per client IP. Idle buckets are
// dropped periodically to bound memory.
type ipRateLimiter struct {
	clients map[string]*clientBucket
	limit   rate.Limit
	burst   int
	mu      sync.Mutex
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPRateLimiter(requests int, window time.Duration) *ipRateLimiter {
	rl := &ipRateLimiter{
		clients: make(map[string]*clientBucket),
		limit:   rate.Every(window / time.Duration(requests)),
		burst:   requests,
	}

	go rl.cleanup(window)

	return rl
}

func (rl *ipRateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	client, ok := rl.clients[key]
	if !ok {
		client = &clientBucket{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = client
	}
	client.lastSeen = time.Now()

	return client.limiter.Allow()
}

func (rl *ipRateLimiter) cleanup(window time.Duration) {
	ticker := time.NewTicker(window * 2)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		cutoff := time.Now().Add(-window * 2)
		for key, client := range rl.clients {
			if client.lastSeen.Before(cutoff) {
				delete(rl.clients, key)
			}
		}
		rl.mu.Unlock()
	}
}

// RateLimitByIP limits each client IP to the given number of requests per
// window. Used on the password endpoints to slow down token guessing.
func RateLimitByIP(requests int, window time.Duration) gin.HandlerFunc {
	limiter := newIPRateLimiter(requests, window)

	return func(c *gin.Context) {
		key := c.ClientIP()
		if !limiter.allow(key) {
			log.Printf("Rate limit exceeded: ip=%s path=%s", key, c.FullPath())
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests. Please try again later",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
