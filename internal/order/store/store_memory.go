package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"posadmin/internal/order/models"
	"posadmin/pkg/platform/sentinel"
)

// InMemory keeps orders in a map for unit tests and local development.
type InMemory struct {
	mu     sync.RWMutex
	orders map[int64]*models.Order
}

func NewInMemory() *InMemory {
	return &InMemory{orders: make(map[int64]*models.Order)}
}

// Seed inserts an order directly; orders are created outside this system.
func (s *InMemory) Seed(order *models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *order
	s.orders[order.ID] = &copied
}

func (s *InMemory) List(_ context.Context) ([]*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		copied := *o
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OrderDate.Equal(out[j].OrderDate) {
			return out[i].ID > out[j].ID
		}
		return out[i].OrderDate.After(out[j].OrderDate)
	})
	return out, nil
}

func (s *InMemory) Get(_ context.Context, id int64) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *o
	return &copied, nil
}

func (s *InMemory) UpdateStatus(_ context.Context, id int64, status models.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	o.Status = status
	return nil
}

func (s *InMemory) UpdateOrderDate(_ context.Context, id int64, orderDate time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	o.OrderDate = orderDate
	return nil
}

func (s *InMemory) ClearSalesReport(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	o.InSalesReport = false
	return nil
}

func (s *InMemory) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.orders, id)
	return nil
}
