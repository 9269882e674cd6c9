package db

import (
	"context"
	"sort"
	"sync"

	"github.com/Spok95/fitness-tracker/internal/fitness"
	"github.com/Spok95/fitness-tracker/internal/models"
)

// MemStore keeps students in process memory. Used with DB_DRIVER=memory and in tests.
type MemStore struct {
	mu       sync.RWMutex
	nextID   int64
	students map[int64]models.Student
}

func NewMemStore() *MemStore {
	return &MemStore{students: map[int64]models.Student{}}
}

func (m *MemStore) CreateStudent(_ context.Context, s models.Student) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	s.ID = m.nextID
	m.students[s.ID] = s
	return s.ID, nil
}

func (m *MemStore) ListStudents(_ context.Context) ([]models.Student, error) {
	m.mu.RLock()
	out := make([]models.Student, 0, len(m.students))
	for _, s := range m.students {
		out = append(out, s)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *MemStore) GetStudent(_ context.Context, id int64) (models.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.students[id]
	if !ok {
		return models.Student{}, ErrNotFound
	}
	return s, nil
}

func (m *MemStore) DeleteStudent(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.students[id]; !ok {
		return ErrNotFound
	}
	delete(m.students, id)
	return nil
}

func (m *MemStore) CountByLevel(_ context.Context) (map[fitness.Level]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[fitness.Level]int, len(fitness.Levels))
	for _, l := range fitness.Levels {
		out[l] = 0
	}
	for _, s := range m.students {
		out[s.Level]++
	}
	return out, nil
}

func (m *MemStore) Ping(context.Context) error { return nil }
