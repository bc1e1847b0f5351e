package schedule

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryStore keeps tasks in a map. Used by unit tests; it deliberately
// shares the postgres store semantics (claim removes).
type InMemoryStore struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*Task
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{tasks: make(map[uuid.UUID]*Task)}
}

func (s *InMemoryStore) Add(_ context.Context, task *Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *task
	s.tasks[task.ID] = &copied
	return nil
}

func (s *InMemoryStore) ClaimDue(_ context.Context, now time.Time, limit int) ([]*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []*Task
	for _, t := range s.tasks {
		if !t.DueAt.After(now) {
			copied := *t
			due = append(due, &copied)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].DueAt.Before(due[j].DueAt) })
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	for _, t := range due {
		delete(s.tasks, t.ID)
	}
	return due, nil
}

func (s *InMemoryStore) CancelForOrder(_ context.Context, orderID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.tasks {
		if t.OrderID == orderID {
			delete(s.tasks, id)
		}
	}
	return nil
}

func (s *InMemoryStore) PendingForOrder(_ context.Context, orderID int64) ([]*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Task
	for _, t := range s.tasks {
		if t.OrderID == orderID {
			copied := *t
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueAt.Before(out[j].DueAt) })
	return out, nil
}
