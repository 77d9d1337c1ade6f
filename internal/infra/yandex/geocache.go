package yandex

import (
	"container/list"
	"strings"
	"sync"
	"time"

	"github.com/artkolev/yandex-delivery/internal/domain"
)

type GeoCacheConfig struct {
	MaxSize int
	TTL     time.Duration
}

// GeoCache keeps resolved addresses, least recently used first out.
type GeoCache struct {
	maxSize int
	ttl     time.Duration
	now     func() time.Time

	mu    sync.Mutex
	items map[string]*list.Element
	order *list.List
}

type geoEntry struct {
	key      string
	point    domain.Coordinate
	storedAt time.Time
}

func NewGeoCache(config GeoCacheConfig) *GeoCache {
	if config.MaxSize <= 0 {
		config.MaxSize = 100
	}

	return &GeoCache{
		maxSize: config.MaxSize,
		ttl:     config.TTL,
		now:     time.Now,
		items:   make(map[string]*list.Element),
		order:   list.New(),
	}
}

func cacheKey(address string) string {
	return strings.ToLower(strings.Join(strings.Fields(address), " "))
}

func (c *GeoCache) Get(address string) (domain.Coordinate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	element, ok := c.items[cacheKey(address)]
	if !ok {
		return domain.Coordinate{}, false
	}

	entry := element.Value.(*geoEntry)
	if c.ttl > 0 && c.now().Sub(entry.storedAt) > c.ttl {
		c.remove(element)
		return domain.Coordinate{}, false
	}

	c.order.MoveToFront(element)
	return entry.point, true
}

func (c *GeoCache) Set(address string, point domain.Coordinate) {
	if point.IsEmpty() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(address)
	if element, ok := c.items[key]; ok {
		entry := element.Value.(*geoEntry)
		entry.point = point
		entry.storedAt = c.now()
		c.order.MoveToFront(element)
		return
	}

	c.items[key] = c.order.PushFront(&geoEntry{key: key, point: point, storedAt: c.now()})
	if c.order.Len() > c.maxSize {
		if oldest := c.order.Back(); oldest != nil {
			c.remove(oldest)
		}
	}
}

func (c *GeoCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *GeoCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.order.Init()
}

func (c *GeoCache) Stats() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return map[string]int{
		"size":        len(c.items),
		"max_size":    c.maxSize,
		"ttl_seconds": int(c.ttl.Seconds()),
	}
}

// CleanupExpired drops stale entries from the cold end of the list.
func (c *GeoCache) CleanupExpired() {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for element := c.order.Back(); element != nil; {
		entry := element.Value.(*geoEntry)
		if now.Sub(entry.storedAt) <= c.ttl {
			break
		}
		prev := element.Prev()
		c.remove(element)
		element = prev
	}
}

func (c *GeoCache) remove(element *list.Element) {
	delete(c.items, element.Value.(*geoEntry).key)
	c.order.Remove(element)
}
