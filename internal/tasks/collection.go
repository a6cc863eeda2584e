// Package tasks owns the task list shown by the TUI and mutated by the CLI.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"todo-cli/internal/model"
	"todo-cli/internal/row"
	"todo-cli/internal/store"

	"github.com/charmbracelet/log"
)

var (
	ErrEmptyTitle = errors.New("task title is empty")
	// ErrTaskGone reports a task that was deleted from the store behind the
	// collection's back, for example by a CLI call sharing the database.
	ErrTaskGone = errors.New("task no longer exists")
)

// Collection is the authoritative task list. It implements row.Owner: rows
// request changes through it and it writes them to the store. The context
// given to New is used for the row-initiated writes, which carry none.
type Collection struct {
	ctx    context.Context
	store  store.Store
	logger *log.Logger

	tasks []model.Task
	err   error
}

var _ row.Owner = (*Collection)(nil)

func New(ctx context.Context, s store.Store, logger *log.Logger) *Collection {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Collection{ctx: ctx, store: s, logger: logger}
}

func (c *Collection) Load(ctx context.Context) error {
	ts, err := c.store.List(ctx)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	c.tasks = ts
	c.logger.Debug("loaded tasks", "count", len(ts))
	return nil
}

// Tasks returns a copy of the current list in display order.
func (c *Collection) Tasks() []model.Task {
	out := make([]model.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

func (c *Collection) Len() int { return len(c.tasks) }

// Err returns the last storage error raised by a row-initiated change, if any.
func (c *Collection) Err() error { return c.err }

func (c *Collection) ClearErr() { c.err = nil }

func (c *Collection) Find(id int64) (model.Task, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.tasks[i], true
	}
	return model.Task{}, false
}

func (c *Collection) indexOf(id int64) int {
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Add appends a new task. Unlike edits, new titles must not be blank.
func (c *Collection) Add(title string) (model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Task{}, ErrEmptyTitle
	}
	t, err := c.store.Create(c.ctx, title)
	if err != nil {
		return model.Task{}, fmt.Errorf("add task: %w", err)
	}
	c.tasks = append(c.tasks, t)
	c.logger.Info("task added", "id", t.ID)
	return t, nil
}

func (c *Collection) Toggle(id int64) (model.Task, error) {
	i := c.indexOf(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("toggle task: %w", notFound(id))
	}
	t := c.tasks[i]
	t.Done = !t.Done
	return c.replace(i, t, "toggle task")
}

func (c *Collection) Rename(id int64, title string) (model.Task, error) {
	i := c.indexOf(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("edit task: %w", notFound(id))
	}
	t := c.tasks[i]
	t.Title = title
	return c.replace(i, t, "edit task")
}

func (c *Collection) Delete(id int64) error {
	i := c.indexOf(id)
	if i < 0 {
		return fmt.Errorf("remove task: %w", notFound(id))
	}
	if err := c.store.Delete(c.ctx, id); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("remove task: %w", err)
		}
		c.logger.Warn("task already removed from store", "id", id)
	}
	c.drop(i)
	c.logger.Info("task removed", "id", id)
	return nil
}

func (c *Collection) drop(i int) {
	c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
}

func (c *Collection) replace(i int, t model.Task, op string) (model.Task, error) {
	saved, err := c.store.Update(c.ctx, t)
	if errors.Is(err, store.ErrNotFound) {
		c.drop(i)
		return model.Task{}, fmt.Errorf("%s %d: %w", op, t.ID, ErrTaskGone)
	}
	if err != nil {
		return model.Task{}, fmt.Errorf("%s: %w", op, err)
	}
	c.tasks[i] = saved
	c.logger.Info(op, "id", saved.ID, "done", saved.Done)
	return saved, nil
}

func notFound(id int64) error {
	return fmt.Errorf("%w: %d", store.ErrNotFound, id)
}

// row.Owner. Errors are kept for the host to surface; rows never see them.

func (c *Collection) ToggleTaskDone(id int64) {
	_, err := c.Toggle(id)
	c.record(err)
}

func (c *Collection) RemoveTask(id int64) {
	c.record(c.Delete(id))
}

func (c *Collection) EditTask(id int64, title string) {
	_, err := c.Rename(id, title)
	c.record(err)
}

func (c *Collection) record(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, store.ErrNotFound) {
		c.logger.Debug("ignoring change to unknown task", "err", err)
		return
	}
	c.logger.Error("task change failed", "err", err)
	c.err = err
}
