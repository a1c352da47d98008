package mcpserver

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// schemaCache keeps recently loaded schemas for the lifetime of the server
// process. It is bounded by entry count with least-recently-used eviction,
// and every entry expires after the TTL it was stored with.
type schemaCache struct {
	mu       sync.Mutex
	maxSize  int
	order    *list.List // front is most recently used
	byKey    map[string]*list.Element
	sweeping atomic.Bool
}

type cached struct {
	key       string
	schema    *loadedSchema
	expiresAt time.Time
}

var docCache = newSchemaCache(cfg.CacheMaxSize)

func newSchemaCache(maxSize int) *schemaCache {
	return &schemaCache{
		maxSize: maxSize,
		order:   list.New(),
		byKey:   make(map[string]*list.Element),
	}
}

func (c *schemaCache) get(key string) *loadedSchema {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.byKey[key]
	if !ok {
		return nil
	}
	e := el.Value.(*cached)
	if time.Now().After(e.expiresAt) {
		c.removeLocked(el)
		return nil
	}
	c.order.MoveToFront(el)
	return e.schema
}

func (c *schemaCache) put(key string, s *loadedSchema, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := &cached{key: key, schema: s, expiresAt: time.Now().Add(ttl)}
	if el, ok := c.byKey[key]; ok {
		el.Value = e
		c.order.MoveToFront(el)
		return
	}
	for c.maxSize > 0 && c.order.Len() >= c.maxSize {
		c.removeLocked(c.order.Back())
	}
	c.byKey[key] = c.order.PushFront(e)
}

// sweep drops every expired entry.
func (c *schemaCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for el := c.order.Front(); el != nil; {
		next := el.Next()
		if now.After(el.Value.(*cached).expiresAt) {
			c.removeLocked(el)
		}
		el = next
	}
}

// startSweeper sweeps every interval until ctx is done. Only one sweeper
// runs at a time; later calls are no-ops while it is alive.
func (c *schemaCache) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || !c.sweeping.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeping.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

func (c *schemaCache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	clear(c.byKey)
}

func (c *schemaCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *schemaCache) removeLocked(el *list.Element) {
	c.order.Remove(el)
	delete(c.byKey, el.Value.(*cached).key)
}
