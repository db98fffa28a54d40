package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/merchly/order-lookup/internal/domain"
)

// Cache maps contact cache keys to previously computed result lists.
// Entries expire ttl after the write; when the key count would exceed
// capacity, the least-recently-set entry is evicted. Reads go through
// Peek so a hit never refreshes recency or TTL.
type Cache struct {
	lru       *expirable.LRU[string, []domain.OrderSummary]
	maxOrders int
}

// New builds a cache holding up to capacity keys for ttl each. Result
// lists longer than maxOrders are rejected by Set (0 disables the limit) —
// a safety valve against pathological contacts.
func New(capacity, maxOrders int, ttl time.Duration) *Cache {
	// expirable.LRU treats size 0 as unlimited; the key cap must hold.
	if capacity < 1 {
		capacity = 1
	}
	return &Cache{
		lru:       expirable.NewLRU[string, []domain.OrderSummary](capacity, nil, ttl),
		maxOrders: maxOrders,
	}
}

func (c *Cache) Get(key string) ([]domain.OrderSummary, bool) {
	return c.lru.Peek(key)
}

// Set stores the result list. Returns false when the list exceeds the
// per-entry order limit and was not stored.
func (c *Cache) Set(key string, orders []domain.OrderSummary) bool {
	if c.maxOrders > 0 && len(orders) > c.maxOrders {
		return false
	}
	c.lru.Add(key, orders)
	return true
}

func (c *Cache) Len() int { return c.lru.Len() }
