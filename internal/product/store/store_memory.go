package store

import (
	"context"
	"sort"
	"sync"

	"posadmin/internal/product/models"
	"posadmin/pkg/platform/sentinel"
)

// InMemory keeps products in a map for unit tests and local development.
type InMemory struct {
	mu       sync.RWMutex
	products map[int64]*models.Product
	nextID   int64
}

func NewInMemory() *InMemory {
	return &InMemory{products: make(map[int64]*models.Product), nextID: 1}
}

func (s *InMemory) List(_ context.Context, limit, offset int) ([]*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*models.Product, 0, len(s.products))
	for _, p := range s.products {
		copied := *p
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products), nil
}

func (s *InMemory) Create(_ context.Context, product *models.Product) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	copied := *product
	copied.ID = id
	s.products[id] = &copied
	return id, nil
}

func (s *InMemory) Update(_ context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.products[product.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	copied := *product
	// The order code is assigned at creation and never rewritten.
	copied.OrderCode = existing.OrderCode
	s.products[product.ID] = &copied
	return nil
}

func (s *InMemory) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.products, id)
	return nil
}
