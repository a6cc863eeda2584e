package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"todo-cli/internal/model"
	"todo-cli/internal/row"
	"todo-cli/internal/store"
	"todo-cli/internal/tasks"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func newTestModel(t *testing.T, seed ...model.Task) (appModel, *tasks.Collection) {
	t.Helper()
	c := tasks.New(context.Background(), store.NewMemory(seed...), nil)
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return newAppModel(c, Options{}), c
}

func send(m appModel, msgs ...tea.Msg) appModel {
	for _, msg := range msgs {
		mm, _ := m.Update(msg)
		m = mm.(appModel)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func typeText(m appModel, s string) appModel {
	for _, r := range s {
		m = send(m, runes(string(r)))
	}
	return m
}

func TestApp_AddTask(t *testing.T) {
	m, c := newTestModel(t)

	m = send(m, runes("a"))
	if !m.adding {
		t.Fatalf("expected add mode")
	}
	m = typeText(m, "Buy milk")
	m = send(m, enter)

	if c.Len() != 1 || c.Tasks()[0].Title != "Buy milk" {
		t.Fatalf("expected task added; got %+v", c.Tasks())
	}
	if len(m.rows) != 1 || m.cursor != 0 {
		t.Fatalf("expected one row selected; rows=%d cursor=%d", len(m.rows), m.cursor)
	}
	if m.addInput.Value() != "" {
		t.Fatalf("expected input cleared after add")
	}

	m = send(m, esc)
	if m.adding {
		t.Fatalf("expected esc to leave add mode")
	}
}

func TestApp_AddBlankShowsError(t *testing.T) {
	m, c := newTestModel(t)
	m = send(m, runes("a"), enter)
	if c.Len() != 0 {
		t.Fatalf("expected no task")
	}
	if !m.minibufferErr || m.minibufferText == "" {
		t.Fatalf("expected error in minibuffer")
	}
}

func TestApp_EditCommitScenario(t *testing.T) {
	m, c := newTestModel(t, model.Task{ID: 1, Title: "Buy milk"})

	m = send(m, runes("e"))
	if !m.rows[0].Editing() {
		t.Fatalf("expected row to be editing")
	}
	for i := 0; i < len("milk"); i++ {
		m = send(m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	m = typeText(m, "oat milk")
	m = send(m, enter)

	got, _ := c.Find(1)
	if got.Title != "Buy oat milk" {
		t.Fatalf("expected committed title; got %q", got.Title)
	}
	if m.rows[0].Editing() || m.rows[0].DraftTitle() != "Buy oat milk" {
		t.Fatalf("expected row back in viewing with new title")
	}
}

func TestApp_NavigationKeysAreTextWhileEditing(t *testing.T) {
	m, c := newTestModel(t,
		model.Task{ID: 1, Title: "a"},
		model.Task{ID: 2, Title: "b"},
	)

	m = send(m, runes("e"), runes("j"), runes("q"), runes("d"))
	if m.cursor != 0 {
		t.Fatalf("expected cursor pinned while editing; got %d", m.cursor)
	}
	if c.Len() != 2 {
		t.Fatalf("expected no removal while editing")
	}
	if got := m.rows[0].DraftTitle(); got != "ajqd" {
		t.Fatalf("expected keys typed into draft; got %q", got)
	}

	m = send(m, esc)
	if got, _ := c.Find(1); got.Title != "a" {
		t.Fatalf("expected cancel to keep title; got %q", got.Title)
	}
}

func TestApp_ToggleAndRemove(t *testing.T) {
	m, c := newTestModel(t,
		model.Task{ID: 1, Title: "a"},
		model.Task{ID: 2, Title: "b"},
	)

	m = send(m, runes("j"), runes("x"))
	if got, _ := c.Find(2); !got.Done {
		t.Fatalf("expected task 2 done")
	}
	if !m.rows[1].Task().Done {
		t.Fatalf("expected row to see the new done state")
	}

	m = send(m, runes("d"))
	if c.Len() != 1 || len(m.rows) != 1 {
		t.Fatalf("expected task removed; tasks=%d rows=%d", c.Len(), len(m.rows))
	}
	if m.cursor != 0 {
		t.Fatalf("expected cursor clamped; got %d", m.cursor)
	}
	if m.rows[0].Index() != 0 {
		t.Fatalf("expected remaining row reindexed")
	}
}

func TestApp_TaskDeletedElsewhereLeavesList(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory(model.Task{ID: 1, Title: "gone"}, model.Task{ID: 2, Title: "kept"})
	c := tasks.New(ctx, s, nil)
	if err := c.Load(ctx); err != nil {
		t.Fatal(err)
	}
	m := newAppModel(c, Options{})
	if err := s.Delete(ctx, 1); err != nil {
		t.Fatal(err)
	}

	m = send(m, runes("x"))
	if len(m.rows) != 1 || m.rows[0].Task().ID != 2 {
		t.Fatalf("expected vanished task dropped from the list; rows=%d", len(m.rows))
	}
	if !m.minibufferErr || !strings.Contains(m.minibufferText, "no longer exists") {
		t.Fatalf("expected error in minibuffer; got %q", m.minibufferText)
	}
}

func TestApp_QuitMidEditDoesNotCommit(t *testing.T) {
	m, c := newTestModel(t, model.Task{ID: 1, Title: "keep"})
	m = send(m, runes("e"))
	m = typeText(m, " me")

	mm, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = mm.(appModel)
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	if got, _ := c.Find(1); got.Title != "keep" {
		t.Fatalf("expected draft discarded on quit; got %q", got.Title)
	}
	if m.rows[0].Editing() || m.rows[0].Focused() {
		t.Fatalf("expected row closed")
	}
}

func TestApp_MouseClicks(t *testing.T) {
	m, c := newTestModel(t,
		model.Task{ID: 1, Title: "a"},
		model.Task{ID: 2, Title: "b"},
	)
	m = send(m, tea.WindowSizeMsg{Width: 40, Height: 20})

	click := func(x, y int) tea.MouseMsg {
		return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	}

	// Marker of the second row.
	m = send(m, click(2, rowsTop+1))
	if m.cursor != 1 {
		t.Fatalf("expected click to select row 1; got %d", m.cursor)
	}
	if got, _ := c.Find(2); !got.Done {
		t.Fatalf("expected marker click to toggle")
	}

	// Edit action on row 2, then trash is refused.
	m = send(m, click(30, rowsTop+1), click(37, rowsTop+1))
	if !m.rows[1].Editing() || c.Len() != 2 {
		t.Fatalf("expected editing and no removal")
	}

	// Clicking another row cancels the pending edit.
	m = send(m, click(10, rowsTop))
	if m.rows[1].Editing() {
		t.Fatalf("expected edit cancelled when leaving the row")
	}
	if got, _ := c.Find(1); !got.Done {
		t.Fatalf("expected title click on row 0 to toggle")
	}

	// Clicks outside the rows do nothing.
	m = send(m, click(2, 0), click(2, rowsTop+5))
	if m.cursor != 0 {
		t.Fatalf("unexpected cursor %d", m.cursor)
	}
}

func TestApp_YankedMsgShowsMinibuffer(t *testing.T) {
	m, _ := newTestModel(t, model.Task{ID: 1, Title: "a"})

	m = send(m, row.YankedMsg{ID: 1, Title: "a"})
	if m.minibufferErr || !strings.Contains(m.minibufferText, "Copied") {
		t.Fatalf("unexpected minibuffer %q", m.minibufferText)
	}

	m = send(m, row.YankedMsg{ID: 1, Err: errors.New("no clipboard")})
	if !m.minibufferErr {
		t.Fatalf("expected error minibuffer")
	}
}

func TestApp_TickClearsOldMinibuffer(t *testing.T) {
	m, _ := newTestModel(t)
	(&m).showMinibuffer("hello")
	m.minibufferSetAt = time.Now().Add(-minibufferAutoClearAfter - 100*time.Millisecond)
	m = send(m, tickMsg{})
	if m.minibufferText != "" {
		t.Fatalf("expected minibuffer cleared; got %q", m.minibufferText)
	}

	(&m).showMinibuffer("fresh")
	m = send(m, tickMsg{})
	if m.minibufferText == "" {
		t.Fatalf("expected recent minibuffer kept")
	}
}

func TestApp_View(t *testing.T) {
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })

	m, _ := newTestModel(t)
	if out := m.View(); !strings.Contains(out, "No tasks yet") {
		t.Fatalf("expected empty state; got:\n%s", out)
	}

	m, _ = newTestModel(t,
		model.Task{ID: 1, Title: "Buy milk", Done: true},
		model.Task{ID: 2, Title: "Walk dog"},
	)
	m = send(m, tea.WindowSizeMsg{Width: 60, Height: 20})
	out := m.View()
	for _, want := range []string{"Tasks", "1 open, 1 done", "[✓] Buy milk", "[ ] Walk dog", "a add task", "? help", "q quit"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view; got:\n%s", want, out)
		}
	}

	m = send(m, runes("e"))
	if out := m.View(); !strings.Contains(out, "cancel") || !strings.Contains(out, "save") {
		t.Fatalf("expected editing actions and help; got:\n%s", out)
	}
}

func TestRowTheme_ASCII(t *testing.T) {
	if got := rowTheme("ascii").Glyphs; got != row.ASCIIGlyphs {
		t.Fatalf("expected ascii glyphs; got %+v", got)
	}
	if got := rowTheme("unicode").Glyphs; got != row.UnicodeGlyphs {
		t.Fatalf("expected unicode glyphs; got %+v", got)
	}
}

func TestApp_RestoresSelectionAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	c := tasks.New(context.Background(), store.NewMemory(
		model.Task{ID: 1, Title: "a"},
		model.Task{ID: 2, Title: "b"},
		model.Task{ID: 3, Title: "c"},
	), nil)
	if err := c.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	m := newAppModel(c, Options{StateDir: dir})
	m = send(m, runes("j"), runes("j"), runes("?"), runes("q"))

	st, err := store.LoadTUIState(dir)
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if st.SelectedTaskID != 3 || !st.ShowFullHelp {
		t.Fatalf("unexpected saved state: %#v", st)
	}

	m = newAppModel(c, Options{StateDir: dir})
	if m.cursor != 2 || !m.help.ShowAll {
		t.Fatalf("expected restored cursor=2 and full help; got cursor=%d showAll=%v", m.cursor, m.help.ShowAll)
	}
}
