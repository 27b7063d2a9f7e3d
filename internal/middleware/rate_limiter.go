package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter implements rate limiting for the auth endpoints. Requests are
// limited per client IP, and authentication attempts additionally per
// IP+account so one address cannot walk a single account's password space.
type RateLimiter struct {
	ipLimiters      map[string]*rate.Limiter
	authLimiters    map[string]*rate.Limiter
	ipMutex         sync.RWMutex
	authMutex       sync.RWMutex
	ipLimiterRate   rate.Limit
	authLimiterRate rate.Limit
	ipBurst         int
	authBurst       int
	cleanupTicker   *time.Ticker
}

// NewRateLimiter creates a limiter allowing ipRequestsPerMinute sustained
// requests per client IP and authAttemptsPerMinute per IP+account, with the
// given bursts.
func NewRateLimiter(ipRequestsPerMinute float64, ipBurst int, authAttemptsPerMinute float64, authBurst int) *RateLimiter {
	limiter := &RateLimiter{
		ipLimiters:      make(map[string]*rate.Limiter),
		authLimiters:    make(map[string]*rate.Limiter),
		ipLimiterRate:   rate.Limit(ipRequestsPerMinute / 60),
		authLimiterRate: rate.Limit(authAttemptsPerMinute / 60),
		ipBurst:         ipBurst,
		authBurst:       authBurst,
		cleanupTicker:   time.NewTicker(5 * time.Minute),
	}

	go limiter.cleanup()

	return limiter
}

// cleanup periodically drops idle limiters to bound memory.
func (rl *RateLimiter) cleanup() {
	for range rl.cleanupTicker.C {
		rl.ipMutex.Lock()
		rl.ipLimiters = make(map[string]*rate.Limiter)
		rl.ipMutex.Unlock()

		rl.authMutex.Lock()
		rl.authLimiters = make(map[string]*rate.Limiter)
		rl.authMutex.Unlock()
	}
}

// Stop stops the cleanup ticker.
func (rl *RateLimiter) Stop() {
	rl.cleanupTicker.Stop()
}

func (rl *RateLimiter) getIPLimiter(ip string) *rate.Limiter {
	rl.ipMutex.RLock()
	limiter, exists := rl.ipLimiters[ip]
	rl.ipMutex.RUnlock()

	if !exists {
		rl.ipMutex.Lock()
		limiter, exists = rl.ipLimiters[ip]
		if !exists {
			limiter = rate.NewLimiter(rl.ipLimiterRate, rl.ipBurst)
			rl.ipLimiters[ip] = limiter
		}
		rl.ipMutex.Unlock()
	}

	return limiter
}

func (rl *RateLimiter) getAuthLimiter(key string) *rate.Limiter {
	rl.authMutex.RLock()
	limiter, exists := rl.authLimiters[key]
	rl.authMutex.RUnlock()

	if !exists {
		rl.authMutex.Lock()
		limiter, exists = rl.authLimiters[key]
		if !exists {
			limiter = rate.NewLimiter(rl.authLimiterRate, rl.authBurst)
			rl.authLimiters[key] = limiter
		}
		rl.authMutex.Unlock()
	}

	return limiter
}

// IPRateLimiterMiddleware rejects requests over the per-IP limit with 429.
func (rl *RateLimiter) IPRateLimiterMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.getIPLimiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}

// AuthRateLimiterMiddleware limits authentication attempts by IP and, for
// POST bodies naming an account, by IP+email (or IP+username). The body is
// restored after peeking so the handler can still bind it.
func (rl *RateLimiter) AuthRateLimiterMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		if !rl.getIPLimiter(ip).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}

		if c.Request.Method == http.MethodPost && c.Request.Body != nil {
			body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
				return
			}
			c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

			var requestBody struct {
				Email    string `json:"email"`
				Username string `json:"username"`
			}
			if err := json.Unmarshal(body, &requestBody); err == nil {
				identifier := requestBody.Email
				if identifier == "" {
					identifier = requestBody.Username
				}
				if identifier != "" {
					if !rl.getAuthLimiter(ip + ":" + identifier).Allow() {
						c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
							"error": "too many authentication attempts, please try again later",
						})
						return
					}
				}
			}
		}

		c.Next()
	}
}
