package middleware

import (
	"sync"
	"time"

	"bnb-ops-service/internal/error/code"
	"bnb-ops-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// tokenBucket 简单的令牌桶
type tokenBucket struct {
	rate       float64 // 每秒填充的令牌数
	capacity   float64 // 桶的容量
	tokens     float64
	lastRefill time.Time
	lastSeen   time.Time
	mu         sync.Mutex
}

func newTokenBucket(rate float64, burst int) *tokenBucket {
	now := time.Now()
	return &tokenBucket{
		rate:       rate,
		capacity:   float64(burst),
		tokens:     float64(burst),
		lastRefill: now,
		lastSeen:   now,
	}
}

// allow 尝试获取一个令牌
func (b *tokenBucket) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens += now.Sub(b.lastRefill).Seconds() * b.rate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.lastRefill = now
	b.lastSeen = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// limiterPool 按键保存限流器，闲置的定期清理
type limiterPool struct {
	mu      sync.Mutex
	buckets map[string]*tokenBucket
	rate    float64
	burst   int
}

func newLimiterPool(rate float64, burst int) *limiterPool {
	p := &limiterPool{
		buckets: make(map[string]*tokenBucket),
		rate:    rate,
		burst:   burst,
	}
	go p.evictLoop()
	return p
}

func (p *limiterPool) get(key string) *tokenBucket {
	p.mu.Lock()
	defer p.mu.Unlock()

	bucket, ok := p.buckets[key]
	if !ok {
		bucket = newTokenBucket(p.rate, p.burst)
		p.buckets[key] = bucket
	}
	return bucket
}

// evictLoop 清理超过一小时未使用的限流器
func (p *limiterPool) evictLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-1 * time.Hour)
		p.mu.Lock()
		for key, bucket := range p.buckets {
			bucket.mu.Lock()
			idle := bucket.lastSeen.Before(cutoff)
			bucket.mu.Unlock()
			if idle {
				delete(p.buckets, key)
			}
		}
		p.mu.Unlock()
	}
}

func rateLimitWith(pool *limiterPool, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !pool.get(keyFunc(c)).allow() {
			response.FailWithMessage(c, code.ErrTooManyRequests, "请求频率过高，请稍后再试", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// IPRateLimiter 按客户端IP限流
func IPRateLimiter(rate float64, burst int) gin.HandlerFunc {
	pool := newLimiterPool(rate, burst)
	return rateLimitWith(pool, func(c *gin.Context) string {
		return c.ClientIP()
	})
}

// CombinedRateLimiter 按IP和路径组合限流
func CombinedRateLimiter(rate float64, burst int) gin.HandlerFunc {
	pool := newLimiterPool(rate, burst)
	return rateLimitWith(pool, func(c *gin.Context) string {
		return c.ClientIP() + ":" + c.Request.URL.Path
	})
}
