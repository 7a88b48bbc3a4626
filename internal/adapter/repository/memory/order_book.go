package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/srgjo27/cowork_booking/internal/core/domain"
)

// OrderBook is an in-memory order system used by tests and local runs.
type OrderBook struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

func NewOrderBook(orders ...domain.Order) *OrderBook {
	b := &OrderBook{orders: make(map[string]domain.Order)}
	for _, o := range orders {
		b.orders[o.ExternalRef] = o
	}
	return b
}

func (b *OrderBook) Put(o domain.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.orders[o.ExternalRef] = o
}

func (b *OrderBook) SetStatus(externalRef string, status domain.OrderStatus) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if o, ok := b.orders[externalRef]; ok {
		o.Status = status
		b.orders[externalRef] = o
	}
}

func (b *OrderBook) GetOrder(_ context.Context, externalRef string) (*domain.Order, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	o, ok := b.orders[externalRef]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (b *OrderBook) HasInFlightOrder(_ context.Context, holdToken string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, o := range b.orders {
		if o.HoldToken == holdToken && o.IsInFlight() {
			return true, nil
		}
	}
	return false, nil
}

func (b *OrderBook) ActiveOrdersForResource(_ context.Context, resourceID string) ([]domain.Order, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var out []domain.Order
	for _, o := range b.orders {
		if o.ResourceID == resourceID && o.IsActive() {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExternalRef < out[j].ExternalRef })
	return out, nil
}
