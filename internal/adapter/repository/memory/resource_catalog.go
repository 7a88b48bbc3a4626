package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/srgjo27/cowork_booking/internal/core/domain"
)

type ResourceCatalog struct {
	mu        sync.RWMutex
	resources map[string]domain.Resource
}

func NewResourceCatalog(resources ...domain.Resource) *ResourceCatalog {
	c := &ResourceCatalog{resources: make(map[string]domain.Resource)}
	for _, r := range resources {
		c.resources[r.ID] = r
	}
	return c
}

func (c *ResourceCatalog) Put(r domain.Resource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resources[r.ID] = r
}

func (c *ResourceCatalog) GetByID(_ context.Context, resourceID string) (*domain.Resource, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.resources[resourceID]
	if !ok {
		return nil, domain.ErrResourceNotFound
	}
	r.Blackouts = append([]domain.BlackoutEntry(nil), r.Blackouts...)
	return &r, nil
}

func (c *ResourceCatalog) List(_ context.Context) ([]domain.Resource, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Resource, 0, len(c.resources))
	for _, r := range c.resources {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
