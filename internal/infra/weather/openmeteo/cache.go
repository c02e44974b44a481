package openmeteo

import (
	"context"
	"sync"

	"farmweather/internal/domain/entity"
	"farmweather/internal/domain/service"
	"farmweather/internal/observability"
)

// CachedGeocoder wraps a Geocoder with an in-memory LRU cache. Postal codes
// do not move, so cached coordinates stay valid for the process lifetime.
type CachedGeocoder struct {
	inner   service.Geocoder
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedGeocoder creates a cache decorator around a geocoder.
func NewCachedGeocoder(inner service.Geocoder, maxEntries int, metrics *observability.Metrics) *CachedGeocoder {
	return &CachedGeocoder{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

// LookupPincode resolves a pincode through the cache.
func (c *CachedGeocoder) LookupPincode(ctx context.Context, pincode string) (*entity.Location, error) {
	if location, ok := c.cache.get(pincode); ok {
		c.metrics.GeocodeCache.WithLabelValues("hit").Inc()

		return location, nil
	}
	c.metrics.GeocodeCache.WithLabelValues("miss").Inc()

	location, err := c.inner.LookupPincode(ctx, pincode)
	if err != nil {
		return nil, err
	}
	// Only cache matches so transient "not found" responses can be retried.
	if location != nil {
		c.cache.put(pincode, location)
	}

	return location, nil
}

// lruCache is a simple thread-safe LRU cache for geocoding results.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*cacheEntry
	head       *cacheEntry // most recently used
	tail       *cacheEntry // least recently used
}

type cacheEntry struct {
	key   string
	value *entity.Location
	prev  *cacheEntry
	next  *cacheEntry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*cacheEntry),
	}
}

func (c *lruCache) get(key string) (*entity.Location, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)

	return e.value, true
}

func (c *lruCache) put(key string, value *entity.Location) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)

		return
	}

	e := &cacheEntry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *cacheEntry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *cacheEntry) {
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

func (c *lruCache) remove(e *cacheEntry) {
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
