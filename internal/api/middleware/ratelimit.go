package middleware

import (
	"Yatube/internal/api/config"
	"Yatube/internal/pkg/response"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// visitorLimiter 每个用户（未登录按 IP）一个令牌桶
type visitorLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	lastSweep time.Time
}

func newVisitorLimiter(rps float64, burst int) *visitorLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &visitorLimiter{
		visitors:  make(map[string]*visitor),
		limit:     rate.Limit(rps),
		burst:     burst,
		lastSweep: time.Now(),
	}
}

func (s *visitorLimiter) allow(key string) bool {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastSweep) > limiterIdleTTL {
		for k, v := range s.visitors {
			if now.Sub(v.lastSeen) > limiterIdleTTL {
				delete(s.visitors, k)
			}
		}
		s.lastSweep = now
	}

	v, ok := s.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// RateLimitMiddleware 写接口限流，需放在鉴权之后
func RateLimitMiddleware(cfg config.RateLimitConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.RPS <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	limiter := newVisitorLimiter(cfg.RPS, cfg.Burst)
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if uid := c.GetUint64("user_id"); uid != 0 {
			key = "uid:" + strconv.FormatUint(uid, 10)
		}
		if !limiter.allow(key) {
			response.Fail(c, response.TooManyRequests, "请求过于频繁，请稍后再试")
			c.Abort()
			return
		}
		c.Next()
	}
}
