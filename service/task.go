// Package service coordinates the task store with the optional cache and the
// event publisher.
package service

import (
	"context"
	"sync"
	"time"

	"TodoWebService/cache"
	"TodoWebService/events"
	"TodoWebService/models"
	"TodoWebService/store"

	"github.com/sirupsen/logrus"
)

// TaskService serves task operations. Store errors, including
// store.ErrNotFound, are returned unchanged. Cache and publish failures are
// only logged.
type TaskService struct {
	store     store.Store
	cache     cache.TaskCache
	publisher events.Publisher
	ttl       time.Duration
	log       logrus.FieldLogger
	now       func() time.Time

	// fillMu orders cache fills against invalidations. generation counts
	// completed writes; a read only fills the cache if no write completed
	// since it started reading the store.
	fillMu     sync.Mutex
	generation uint64
}

type Option func(*TaskService)

// WithCache enables read-through caching with the given ttl.
func WithCache(c cache.TaskCache, ttl time.Duration) Option {
	return func(s *TaskService) {
		s.cache = c
		s.ttl = ttl
	}
}

func WithPublisher(p events.Publisher) Option {
	return func(s *TaskService) { s.publisher = p }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *TaskService) { s.log = log }
}

func NewTaskService(st store.Store, opts ...Option) *TaskService {
	s := &TaskService{
		store:     st,
		publisher: events.NopPublisher{},
		log:       logrus.StandardLogger(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TaskService) List(ctx context.Context) ([]models.Task, error) {
	if s.cache != nil {
		tasks, err := s.cache.GetTaskList(ctx)
		if err != nil {
			s.cacheFailed("get task list", err)
		} else if tasks != nil {
			return tasks, nil
		}
	}

	gen := s.currentGeneration()
	tasks, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.fill(gen, func() {
			if err := s.cache.SetTaskList(ctx, tasks, s.ttl); err != nil {
				s.cacheFailed("set task list", err)
			}
		})
	}
	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, id int64) (models.Task, error) {
	if s.cache != nil {
		task, err := s.cache.GetTask(ctx, id)
		if err != nil {
			s.cacheFailed("get task", err)
		} else if task != nil {
			return *task, nil
		}
	}

	gen := s.currentGeneration()
	task, err := s.store.Get(ctx, id)
	if err != nil {
		return models.Task{}, err
	}
	if s.cache != nil {
		s.fill(gen, func() {
			if err := s.cache.SetTask(ctx, task, s.ttl); err != nil {
				s.cacheFailed("set task", err)
			}
		})
	}
	return task, nil
}

func (s *TaskService) Create(ctx context.Context, task models.Task) (models.Task, error) {
	created, err := s.store.Create(ctx, task)
	if err != nil {
		return models.Task{}, err
	}
	s.invalidate(ctx, 0)
	s.publish(ctx, events.ActionCreated, created)
	return created, nil
}

func (s *TaskService) Update(ctx context.Context, id int64, task models.Task) (models.Task, error) {
	updated, err := s.store.Update(ctx, id, task)
	if err != nil {
		return models.Task{}, err
	}
	s.invalidate(ctx, id)
	s.publish(ctx, events.ActionUpdated, updated)
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	s.publish(ctx, events.ActionDeleted, models.Task{Id: id})
	return nil
}

// invalidate drops the cached list and, for a non-zero id, the cached task.
func (s *TaskService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	s.fillMu.Lock()
	defer s.fillMu.Unlock()
	s.generation++
	if id != 0 {
		if err := s.cache.DeleteTask(ctx, id); err != nil {
			s.cacheFailed("delete task", err)
		}
	}
	if err := s.cache.DeleteTaskList(ctx); err != nil {
		s.cacheFailed("delete task list", err)
	}
}

func (s *TaskService) currentGeneration() uint64 {
	s.fillMu.Lock()
	defer s.fillMu.Unlock()
	return s.generation
}

// fill runs set unless a write completed after gen was read. A read that saw
// the store before a write either fills before that write invalidates, or is
// skipped.
func (s *TaskService) fill(gen uint64, set func()) {
	s.fillMu.Lock()
	defer s.fillMu.Unlock()
	if s.generation != gen {
		return
	}
	set()
}

func (s *TaskService) publish(ctx context.Context, action string, task models.Task) {
	event := events.Event{Action: action, Task: task, At: s.now()}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.WithFields(logrus.Fields{
			"task operation": "publish " + action + " event",
			"task id":        task.Id,
		}).Error(err.Error())
	}
}

func (s *TaskService) cacheFailed(operation string, err error) {
	s.log.WithFields(logrus.Fields{
		"task operation": "cache " + operation,
	}).Warn(err.Error())
}
