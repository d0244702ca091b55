package middleware

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// cacheEntry 缓存条目
type cacheEntry struct {
	content    []byte
	expiration time.Time
}

// responseCache 进程内的响应缓存
type responseCache struct {
	sync.RWMutex
	items map[string]cacheEntry
}

var cache = &responseCache{items: make(map[string]cacheEntry)}

// cacheKey 生成缓存键
// 列表和报表接口按调用者做了数据隔离，键里必须带上调用者身份，
// 否则一个用户会看到另一个用户的缓存结果
func cacheKey(c *gin.Context) string {
	var actorID uint
	if actor, ok := GetActingUser(c); ok {
		actorID = actor.ID
	}

	query := c.Request.URL.Query()
	keys := make([]string, 0, len(query))
	for key := range query {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	raw := fmt.Sprintf("%d|%s", actorID, c.Request.URL.Path)
	for _, key := range keys {
		values := query[key]
		sort.Strings(values)
		for _, value := range values {
			raw += "&" + key + "=" + value
		}
	}

	sum := md5.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// CacheResponse 缓存GET请求的成功响应
func CacheResponse(expiration time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := cacheKey(c)

		cache.RLock()
		entry, found := cache.items[key]
		cache.RUnlock()

		if found && entry.expiration.After(time.Now()) {
			c.Data(http.StatusOK, "application/json; charset=utf-8", entry.content)
			c.Abort()
			return
		}

		// 捕获响应内容
		writer := &bufferedWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		c.Next()

		if c.Writer.Status() == http.StatusOK {
			cache.Lock()
			cache.items[key] = cacheEntry{
				content:    writer.body.Bytes(),
				expiration: time.Now().Add(expiration),
			}
			cache.Unlock()
		}
	}
}

// PurgeCache 清除所有缓存
func PurgeCache() {
	cache.Lock()
	cache.items = make(map[string]cacheEntry)
	cache.Unlock()
}

// bufferedWriter 同时写入原始响应和缓冲区
type bufferedWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// 定期清理过期缓存
func init() {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()
			cache.Lock()
			for key, entry := range cache.items {
				if entry.expiration.Before(now) {
					delete(cache.items, key)
				}
			}
			cache.Unlock()
		}
	}()
}
