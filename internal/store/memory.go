package store

import (
	"context"
	"sync"

	"todo-cli/internal/model"
)

// Memory keeps tasks in process memory. Used for --ephemeral runs and tests.
type Memory struct {
	mu     sync.Mutex
	nextID int64
	tasks  []model.Task
}

func NewMemory(seed ...model.Task) *Memory {
	m := &Memory{nextID: 1}
	for _, t := range seed {
		m.tasks = append(m.tasks, t)
		if t.ID >= m.nextID {
			m.nextID = t.ID + 1
		}
	}
	return m
}

func (m *Memory) List(context.Context) ([]model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Task, len(m.tasks))
	copy(out, m.tasks)
	return out, nil
}

func (m *Memory) Create(_ context.Context, title string) (model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := nowUTC()
	t := model.Task{ID: m.nextID, Title: title, CreatedAt: now, UpdatedAt: now}
	m.nextID++
	m.tasks = append(m.tasks, t)
	return t, nil
}

func (m *Memory) Update(_ context.Context, t model.Task) (model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tasks {
		if m.tasks[i].ID == t.ID {
			t.CreatedAt = m.tasks[i].CreatedAt
			t.UpdatedAt = nowUTC()
			m.tasks[i] = t
			return t, nil
		}
	}
	return model.Task{}, notFound(t.ID)
}

func (m *Memory) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return nil
		}
	}
	return notFound(id)
}

func (m *Memory) Close() error { return nil }
