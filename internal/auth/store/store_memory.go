package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"posadmin/internal/auth/models"
	"posadmin/pkg/platform/sentinel"
)

// In-memory stores back unit tests and local development. They intentionally
// favor clarity over performance.
type InMemoryAdminStore struct {
	mu     sync.RWMutex
	admins map[string]*models.Admin
}

func NewInMemoryAdminStore() *InMemoryAdminStore {
	return &InMemoryAdminStore{admins: make(map[string]*models.Admin)}
}

func (s *InMemoryAdminStore) Save(_ context.Context, admin *models.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admins[strings.ToLower(admin.Username)] = admin
	return nil
}

func (s *InMemoryAdminStore) FindByUsername(_ context.Context, username string) (*models.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if admin, ok := s.admins[strings.ToLower(username)]; ok {
		copied := *admin
		return &copied, nil
	}
	return nil, sentinel.ErrNotFound
}

type InMemoryLoginEventStore struct {
	mu     sync.RWMutex
	events []*models.LoginEvent
}

func NewInMemoryLoginEventStore() *InMemoryLoginEventStore {
	return &InMemoryLoginEventStore{}
}

func (s *InMemoryLoginEventStore) Record(_ context.Context, event *models.LoginEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *event
	s.events = append(s.events, &copied)
	return nil
}

func (s *InMemoryLoginEventStore) ListRecent(_ context.Context, limit int) ([]*models.LoginEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.LoginEvent, len(s.events))
	for i, e := range s.events {
		copied := *e
		out[i] = &copied
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
