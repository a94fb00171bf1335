package utility

import (
	"sync"
	"time"
)

// cacheItem là một giá trị trong cache kèm thời điểm hết hạn.
// expiresAt zero nghĩa là không hết hạn theo TTL.
type cacheItem struct {
	value     interface{}
	expiresAt time.Time
}

// expired kiểm tra item đã quá hạn tại thời điểm now chưa
func (i cacheItem) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && now.After(i.expiresAt)
}

// Cache là struct để quản lý cache in-process với TTL theo từng item
// và dọn dẹp định kỳ các item đã hết hạn
type Cache struct {
	items    map[string]cacheItem
	mu       sync.RWMutex
	ttl      time.Duration
	cleanup  time.Duration
	stopChan chan struct{}
}

// NewCache tạo một instance mới của Cache
func NewCache(ttl, cleanup time.Duration) *Cache {
	cache := &Cache{
		items:    make(map[string]cacheItem),
		ttl:      ttl,
		cleanup:  cleanup,
		stopChan: make(chan struct{}),
	}
	go cache.cleanupLoop()
	return cache
}

// Set lưu giá trị vào cache, hết hạn sau ttl kể từ lúc ghi
func (c *Cache) Set(key string, value interface{}) {
	item := cacheItem{value: value}
	if c.ttl > 0 {
		item.expiresAt = time.Now().Add(c.ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = item
}

// Get lấy giá trị từ cache. Item đã quá TTL coi như không tồn tại,
// bản ghi sẽ được cleanup loop thu dọn sau.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.items[key]
	if !exists || item.expired(time.Now()) {
		return nil, false
	}
	return item.value, true
}

// Delete xóa một key khỏi cache
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// cleanupLoop thu dọn các item đã hết hạn theo chu kỳ cleanup
func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(c.cleanup)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for k, item := range c.items {
				if item.expired(now) {
					delete(c.items, k)
				}
			}
			c.mu.Unlock()
		case <-c.stopChan:
			return
		}
	}
}

// Stop dừng cleanup loop
func (c *Cache) Stop() {
	close(c.stopChan)
}
