// Package memory là cache.Cache in-process, dùng cho test và làm fallback
// khi Redis không kết nối được ở môi trường development.
package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"bookstore-admin/pkg/cache"
)

type entry struct {
	data      []byte
	expiresAt time.Time // zero = không hết hạn
}

type Cache struct {
	mu    sync.RWMutex
	items map[string]entry
	now   func() time.Time
}

var _ cache.Cache = (*Cache)(nil)

func New() *Cache {
	return &Cache{items: make(map[string]entry), now: time.Now}
}

// WithClock thay đồng hồ, dùng để test TTL
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

func (c *Cache) lookup(key string) (entry, bool) {
	e, ok := c.items[key]
	if !ok {
		return entry{}, false
	}
	if !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt) {
		return entry{}, false
	}
	return e, true
}

func (c *Cache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.RLock()
	e, ok := c.lookup(key)
	c.mu.RUnlock()
	if !ok {
		return false, nil
	}

	switch d := dest.(type) {
	case *string:
		*d = string(e.data)
		return true, nil
	case *[]byte:
		*d = append([]byte(nil), e.data...)
		return true, nil
	}
	if err := json.Unmarshal(e.data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Cache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = append([]byte(nil), v...)
	default:
		b, err := json.Marshal(value)
		if err != nil {
			return err
		}
		data = b
	}

	e := entry{data: data}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}

	c.mu.Lock()
	c.items[key] = e
	c.mu.Unlock()
	return nil
}

func (c *Cache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	for _, k := range keys {
		delete(c.items, k)
	}
	c.mu.Unlock()
	return nil
}

func (c *Cache) Exists(_ context.Context, key string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.lookup(key)
	return ok, nil
}

func (c *Cache) Ping(context.Context) error {
	return nil
}
