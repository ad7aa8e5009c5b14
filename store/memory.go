package store

import (
	"context"
	"sync"

	"TodoWebService/models"
)

// MemoryStore keeps tasks in creation order. Ids start at 1 and are never reused.
type MemoryStore struct {
	mu     sync.Mutex
	tasks  []models.Task
	nextID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) List(ctx context.Context) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks := make([]models.Task, len(s.tasks))
	copy(tasks, s.tasks)
	return tasks, nil
}

func (s *MemoryStore) Get(ctx context.Context, id int64) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return models.Task{}, ErrNotFound
	}
	return s.tasks[i], nil
}

func (s *MemoryStore) Create(ctx context.Context, task models.Task) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task.Id = s.nextID
	s.nextID++
	s.tasks = append(s.tasks, task)
	return task, nil
}

func (s *MemoryStore) Update(ctx context.Context, id int64, task models.Task) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return models.Task{}, ErrNotFound
	}
	s.tasks[i].Title = task.Title
	return s.tasks[i], nil
}

func (s *MemoryStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return ErrNotFound
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// index must be called with mu held.
func (s *MemoryStore) index(id int64) int {
	for i, t := range s.tasks {
		if t.Id == id {
			return i
		}
	}
	return -1
}
