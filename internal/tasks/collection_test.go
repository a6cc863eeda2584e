package tasks

import (
	"context"
	"errors"
	"testing"

	"todo-cli/internal/model"
	"todo-cli/internal/row"
	"todo-cli/internal/store"
)

func newCollection(t *testing.T, seed ...model.Task) *Collection {
	t.Helper()
	c := New(context.Background(), store.NewMemory(seed...), nil)
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return c
}

func TestCollection_AddRejectsBlankTitles(t *testing.T) {
	c := newCollection(t)
	if _, err := c.Add("   "); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle; got %v", err)
	}
	got, err := c.Add("  Buy milk ")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if got.Title != "Buy milk" {
		t.Fatalf("expected trimmed title; got %q", got.Title)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 task; got %d", c.Len())
	}
}

func TestCollection_OwnerMethods(t *testing.T) {
	c := newCollection(t,
		model.Task{ID: 1, Title: "Buy milk"},
		model.Task{ID: 2, Title: "Walk dog"},
	)

	c.ToggleTaskDone(1)
	if got, _ := c.Find(1); !got.Done {
		t.Fatalf("expected task 1 done")
	}
	c.ToggleTaskDone(1)
	if got, _ := c.Find(1); got.Done {
		t.Fatalf("expected task 1 undone")
	}

	c.EditTask(2, "  ")
	if got, _ := c.Find(2); got.Title != "  " {
		t.Fatalf("expected edits to be stored as-is; got %q", got.Title)
	}

	c.RemoveTask(1)
	if _, ok := c.Find(1); ok {
		t.Fatalf("expected task 1 removed")
	}
	if c.Err() != nil {
		t.Fatalf("unexpected error: %v", c.Err())
	}
}

func TestCollection_UnknownIDsAreIgnored(t *testing.T) {
	c := newCollection(t, model.Task{ID: 1, Title: "a"})
	c.ToggleTaskDone(42)
	c.RemoveTask(42)
	c.EditTask(42, "x")
	if c.Err() != nil {
		t.Fatalf("expected unknown ids to be ignored; got %v", c.Err())
	}
	if _, err := c.Toggle(42); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from Toggle; got %v", err)
	}
}

func TestCollection_DropsTasksDeletedElsewhere(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory(
		model.Task{ID: 1, Title: "a"},
		model.Task{ID: 2, Title: "b"},
	)
	c := New(ctx, s, nil)
	if err := c.Load(ctx); err != nil {
		t.Fatal(err)
	}

	// Another process removes both tasks from the shared store.
	if err := s.Delete(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, 2); err != nil {
		t.Fatal(err)
	}

	c.RemoveTask(1)
	if _, ok := c.Find(1); ok {
		t.Fatalf("expected task 1 dropped after remove")
	}
	if c.Err() != nil {
		t.Fatalf("expected removing a vanished task to succeed; got %v", c.Err())
	}

	c.ToggleTaskDone(2)
	if _, ok := c.Find(2); ok {
		t.Fatalf("expected task 2 dropped after toggle")
	}
	if !errors.Is(c.Err(), ErrTaskGone) {
		t.Fatalf("expected ErrTaskGone; got %v", c.Err())
	}
	if c.Len() != 0 {
		t.Fatalf("expected empty collection; got %d", c.Len())
	}
}

type failingStore struct{ *store.Memory }

func (failingStore) Update(context.Context, model.Task) (model.Task, error) {
	return model.Task{}, errors.New("disk full")
}

func TestCollection_RecordsStoreErrors(t *testing.T) {
	c := New(context.Background(), failingStore{store.NewMemory(model.Task{ID: 1, Title: "a"})}, nil)
	if err := c.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	c.ToggleTaskDone(1)
	if c.Err() == nil {
		t.Fatalf("expected storage error to be recorded")
	}
	if got, _ := c.Find(1); got.Done {
		t.Fatalf("expected in-memory task unchanged after failed write")
	}
	c.ClearErr()
	if c.Err() != nil {
		t.Fatalf("expected error cleared")
	}
}

func TestCollection_DrivesRowScenario(t *testing.T) {
	c := newCollection(t, model.Task{ID: 1, Title: "Buy milk"})
	r := row.New(0, c.Tasks()[0], c)

	r.StartEdit()
	r.SetDraft("Buy oat milk")
	r.Commit()

	got, _ := c.Find(1)
	if got.Title != "Buy oat milk" {
		t.Fatalf("expected owner to store the commit; got %q", got.Title)
	}
	r.SetTask(got)
	if r.DraftTitle() != "Buy oat milk" {
		t.Fatalf("expected row to show committed title; got %q", r.DraftTitle())
	}

	r.StartEdit()
	if r.Remove() {
		t.Fatalf("expected remove refused while editing")
	}
	if c.Len() != 1 {
		t.Fatalf("expected task kept")
	}
	r.Close()
	if got, _ := c.Find(1); got.Title != "Buy oat milk" {
		t.Fatalf("expected close to leave title alone; got %q", got.Title)
	}
}
