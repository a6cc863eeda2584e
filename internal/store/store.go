// Package store persists tasks for the list owner.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"todo-cli/internal/model"
)

var ErrNotFound = errors.New("task not found")

// Store is the owner's persistence boundary. Rows never talk to it.
type Store interface {
	List(ctx context.Context) ([]model.Task, error)
	Create(ctx context.Context, title string) (model.Task, error)
	Update(ctx context.Context, t model.Task) (model.Task, error)
	Delete(ctx context.Context, id int64) error
	Close() error
}

func notFound(id int64) error {
	return fmt.Errorf("%w: %d", ErrNotFound, id)
}

func nowUTC() time.Time {
	// Millisecond precision matches what SQLite round-trips.
	return time.Now().UTC().Truncate(time.Millisecond)
}

var (
	_ Store = (*SQLite)(nil)
	_ Store = (*Memory)(nil)
)
