// Package orders keeps the console's local copy of the order list. Status
// changes from the dropdown mutate this cache only; the fulfilment
// endpoints of the storefront are a separate surface.
package orders

import (
	"errors"
	"sync"

	"github.com/ovenside/bakery-admin/internal/orders/domain"
)

var ErrIndexOutOfRange = errors.New("no order at this position")

type Cache struct {
	mu     sync.RWMutex
	loaded bool
	orders []domain.OrderSummary
}

func NewCache() *Cache {
	return &Cache{}
}

// Replace swaps in a freshly fetched order list.
func (c *Cache) Replace(orders []domain.OrderSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orders = append([]domain.OrderSummary(nil), orders...)
	c.loaded = true
}

func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// List returns a copy of the cached orders in their cached positions.
func (c *Cache) List() []domain.OrderSummary {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.OrderSummary(nil), c.orders...)
}

// SetStatus updates the status of the order at the given position.
func (c *Cache) SetStatus(index int, status string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.orders) {
		return ErrIndexOutOfRange
	}
	c.orders[index].OrderStatus = status
	return nil
}
