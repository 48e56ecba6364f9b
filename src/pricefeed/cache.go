package pricefeed

import (
	"sync"

	"botbackend/src/model"
)

// Cache holds the last observed price per tracked symbol. Entries are
// overwritten on each successful poll and never evicted; the symbol
// universe is small and fixed.
type Cache struct {
	mu     sync.RWMutex
	points map[string]model.PricePoint
}

func NewCache() *Cache {
	return &Cache{points: make(map[string]model.PricePoint)}
}

func (c *Cache) Set(symbol string, point model.PricePoint) {
	c.mu.Lock()
	c.points[symbol] = point
	c.mu.Unlock()
}

func (c *Cache) Get(symbol string) (model.PricePoint, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	point, ok := c.points[symbol]
	return point, ok
}

// Snapshot copies the current cache contents.
func (c *Cache) Snapshot() map[string]model.PricePoint {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]model.PricePoint, len(c.points))
	for symbol, point := range c.points {
		out[symbol] = point
	}
	return out
}
