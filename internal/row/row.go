// Package row implements a single to-do list entry: a completion marker, an
// inline-editable title and edit/delete actions.
//
// A Row never mutates task data. It buffers a draft title while editing and
// asks its Owner to apply changes.
package row

import (
	"todo-cli/internal/model"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Owner holds the authoritative task collection. Rows call it to request
// mutations and never inspect it.
type Owner interface {
	ToggleTaskDone(id int64)
	RemoveTask(id int64)
	EditTask(id int64, title string)
}

type Mode int

const (
	Viewing Mode = iota
	Editing
)

func (m Mode) String() string {
	if m == Editing {
		return "editing"
	}
	return "viewing"
}

// YankedMsg reports the result of copying a title to the system clipboard.
type YankedMsg struct {
	ID    int64
	Title string
	Err   error
}

var writeClipboard = clipboard.WriteAll

type Row struct {
	index int
	task  model.Task
	owner Owner

	keys  KeyMap
	theme Theme

	editing bool
	// input holds the draft title. Outside edit mode it mirrors the last
	// title this row displayed and is never fed key events.
	input textinput.Model
}

func New(index int, task model.Task, owner Owner) *Row {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = "Task title"
	in.SetValue(task.Title)
	in.Blur()

	return &Row{
		index: index,
		task:  task,
		owner: owner,
		keys:  DefaultKeyMap(),
		theme: DefaultTheme(),
		input: in,
	}
}

func (r *Row) SetTheme(t Theme)   { r.theme = t }
func (r *Row) SetKeyMap(k KeyMap) { r.keys = k }
func (r *Row) SetIndex(i int)     { r.index = i }
func (r *Row) Index() int         { return r.index }
func (r *Row) Task() model.Task   { return r.task }
func (r *Row) Editing() bool      { return r.editing }
func (r *Row) Focused() bool      { return r.input.Focused() }
func (r *Row) DraftTitle() string { return r.input.Value() }
func (r *Row) KeyMap() KeyMap     { return r.keys }

func (r *Row) Mode() Mode {
	if r.editing {
		return Editing
	}
	return Viewing
}

// SetTask replaces the row's view of its task after the owner changed it.
// The draft follows the new title unless an edit is in progress.
func (r *Row) SetTask(t model.Task) {
	r.task = t
	if !r.editing {
		r.input.SetValue(t.Title)
	}
}

// SetDraft replaces the draft title. Ignored outside edit mode.
func (r *Row) SetDraft(s string) {
	if !r.editing {
		return
	}
	r.input.SetValue(s)
	r.input.CursorEnd()
}

// setEditing is the only place editing changes, so focus always matches it.
func (r *Row) setEditing(v bool) tea.Cmd {
	if r.editing == v {
		return nil
	}
	r.editing = v
	if v {
		return r.input.Focus()
	}
	r.input.Blur()
	return nil
}

func (r *Row) StartEdit() tea.Cmd {
	if r.editing {
		return nil
	}
	r.input.SetValue(r.task.Title)
	r.input.CursorEnd()
	return r.setEditing(true)
}

func (r *Row) CancelEdit() {
	if !r.editing {
		return
	}
	r.input.SetValue(r.task.Title)
	r.setEditing(false)
}

// Commit hands the draft to the owner as-is, empty or not, and leaves edit mode.
func (r *Row) Commit() {
	if !r.editing {
		return
	}
	title := r.input.Value()
	r.setEditing(false)
	r.owner.EditTask(r.task.ID, title)
}

// ToggleDone is allowed in both modes.
func (r *Row) ToggleDone() {
	r.owner.ToggleTaskDone(r.task.ID)
}

// Remove reports whether the owner was asked to remove the task. Removal is
// refused while an edit is unresolved.
func (r *Row) Remove() bool {
	if r.editing {
		return false
	}
	r.owner.RemoveTask(r.task.ID)
	return true
}

// Close discards local state. An edit in progress is cancelled, never committed.
func (r *Row) Close() {
	r.CancelEdit()
}

func (r *Row) Yank() tea.Cmd {
	id, title := r.task.ID, r.input.Value()
	return func() tea.Msg {
		return YankedMsg{ID: id, Title: title, Err: writeClipboard(title)}
	}
}

// Update handles key input for the row. While editing, everything except the
// commit/cancel/toggle bindings goes to the title input.
func (r *Row) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		if r.editing {
			var cmd tea.Cmd
			r.input, cmd = r.input.Update(msg)
			return cmd
		}
		return nil
	}

	if r.editing {
		switch {
		case key.Matches(km, r.keys.Commit):
			r.Commit()
			return nil
		case key.Matches(km, r.keys.Cancel):
			r.CancelEdit()
			return nil
		case key.Matches(km, r.keys.ToggleEditing):
			r.ToggleDone()
			return nil
		}
		var cmd tea.Cmd
		r.input, cmd = r.input.Update(km)
		return cmd
	}

	switch {
	case key.Matches(km, r.keys.Toggle):
		r.ToggleDone()
	case key.Matches(km, r.keys.Edit):
		return r.StartEdit()
	case key.Matches(km, r.keys.Remove):
		r.Remove()
	case key.Matches(km, r.keys.Yank):
		return r.Yank()
	}
	return nil
}

// Click activates the control at cell x of a row rendered at width.
func (r *Row) Click(x, width int) tea.Cmd {
	switch r.HitTest(x, width) {
	case ControlMarker:
		r.ToggleDone()
	case ControlTitle:
		if !r.editing {
			r.ToggleDone()
		}
	case ControlEdit:
		if r.editing {
			r.CancelEdit()
			return nil
		}
		return r.StartEdit()
	case ControlTrash:
		r.Remove()
	}
	return nil
}
