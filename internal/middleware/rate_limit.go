// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/javajoker/storefront/internal/config"
	"github.com/javajoker/storefront/internal/i18n"
	"github.com/javajoker/storefront/internal/utils"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimiter struct {
	visitors map[string]*visitor
	mtx      sync.Mutex
	rate     rate.Limit
	burst    int
	stop     chan struct{}
	stopOnce sync.Once
}

func NewRateLimiter(r rate.Limit, b int) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     r,
		burst:    b,
		stop:     make(chan struct{}),
	}

	// Clean up old visitors every minute
	go rl.cleanupVisitors()

	return rl
}

func (rl *RateLimiter) cleanupVisitors() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
		}
		rl.mtx.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(rl.visitors, ip)
			}
		}
		rl.mtx.Unlock()
	}
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) getVisitor(ip string) *rate.Limiter {
	rl.mtx.Lock()
	defer rl.mtx.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(rl.rate, rl.burst)
		rl.visitors[ip] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := rl.getVisitor(c.ClientIP())

		if !limiter.Allow() {
			lang := utils.GetLangFromContext(c)
			utils.ErrorResponse(c, http.StatusTooManyRequests, "RATE_LIMITED", i18n.T(lang, i18n.KeyRateLimited), nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RateLimiters groups the general, login/register and upload limiters.
type RateLimiters struct {
	General *RateLimiter
	Auth    *RateLimiter
	Upload  *RateLimiter
}

// NewRateLimiters builds the limiters from config. A non-positive rate
// disables that limiter.
func NewRateLimiters(cfg config.RateLimitConfig) *RateLimiters {
	perMinute := func(n int) *RateLimiter {
		if n <= 0 {
			return nil
		}
		return NewRateLimiter(rate.Every(time.Minute/time.Duration(n)), n)
	}

	rls := &RateLimiters{
		Auth:   perMinute(cfg.AuthPerMinute),
		Upload: perMinute(cfg.UploadPerMinute),
	}
	if cfg.RequestsPerSecond > 0 {
		rls.General = NewRateLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)
	}
	return rls
}

func (rls *RateLimiters) GeneralRateLimit() gin.HandlerFunc {
	return middlewareOrPass(rls.General)
}

func (rls *RateLimiters) AuthRateLimit() gin.HandlerFunc {
	return middlewareOrPass(rls.Auth)
}

func (rls *RateLimiters) UploadRateLimit() gin.HandlerFunc {
	return middlewareOrPass(rls.Upload)
}

// Stop ends the cleanup goroutines of the enabled limiters.
func (rls *RateLimiters) Stop() {
	for _, rl := range []*RateLimiter{rls.General, rls.Auth, rls.Upload} {
		if rl != nil {
			rl.Stop()
		}
	}
}

func middlewareOrPass(rl *RateLimiter) gin.HandlerFunc {
	if rl == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return rl.Middleware()
}
