// Package store provides the persistence layer for tasks.
//
// The in-memory store is the default. MySQL and PostgreSQL backed stores share
// one database/sql implementation and differ only in their dialect.
package store

import (
	"context"
	"errors"
	"fmt"

	"TodoWebService/models"
)

// ErrNotFound is returned when no task with the requested id exists.
var ErrNotFound = errors.New("task not found")

// Store is the contract the task service needs from a persistence backend.
type Store interface {
	List(ctx context.Context) ([]models.Task, error)
	Get(ctx context.Context, id int64) (models.Task, error)
	Create(ctx context.Context, task models.Task) (models.Task, error)
	Update(ctx context.Context, id int64, task models.Task) (models.Task, error)
	Delete(ctx context.Context, id int64) error
	Close() error
}

// Config selects and configures a backend.
type Config struct {
	Driver      string
	DBUsername  string
	DBPassword  string
	DBAddress   string
	DBName      string
	PostgresDSN string
}

// Open returns the store named by cfg.Driver. SQL stores are pinged and
// migrated before they are returned.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case "", "memory":
		return NewMemoryStore(), nil
	case "mysql":
		s, err := OpenMySQL(cfg)
		if err != nil {
			return nil, err
		}
		return prepare(ctx, s)
	case "postgres":
		s, err := OpenPostgres(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return prepare(ctx, s)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

func prepare(ctx context.Context, s *SQLStore) (Store, error) {
	if err := s.db.PingContext(ctx); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err := s.Migrate(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}
