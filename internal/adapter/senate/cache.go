package senate

import (
	"context"
	"fmt"
	"sync"

	"github.com/cartovote/vote-map/internal/domain"
	"github.com/cartovote/vote-map/internal/observability"
)

// Source fetches a roll call by its (congress, session, roll) reference.
type Source interface {
	Fetch(ctx context.Context, congress, session, roll int) (domain.RollCall, error)
}

// CachedSource wraps a Source with an in-memory LRU cache. Serve mode uses it
// so repeated requests for the same roll call skip the network; roll-call
// results never change once published, so entries have no TTL.
type CachedSource struct {
	inner   Source
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedSource creates a cache decorator around a vote source.
func NewCachedSource(inner Source, maxEntries int, metrics *observability.Metrics) *CachedSource {
	return &CachedSource{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedSource) Fetch(ctx context.Context, congress, session, roll int) (domain.RollCall, error) {
	key := fmt.Sprintf("%d|%d|%d", congress, session, roll)
	if rc, ok := c.cache.get(key); ok {
		c.metrics.VoteCache.WithLabelValues("hit").Inc()
		return rc, nil
	}
	c.metrics.VoteCache.WithLabelValues("miss").Inc()

	rc, err := c.inner.Fetch(ctx, congress, session, roll)
	if err != nil {
		// Not cached: a not-yet-published roll call may exist on retry.
		return rc, err
	}
	c.cache.put(key, rc)
	return rc, nil
}

// lruCache is a simple thread-safe LRU cache for roll calls.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value domain.RollCall
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (domain.RollCall, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.RollCall{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value domain.RollCall) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
