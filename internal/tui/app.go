package tui

import (
	"fmt"
	"strings"
	"time"

	"todo-cli/internal/logging"
	"todo-cli/internal/row"
	"todo-cli/internal/store"
	"todo-cli/internal/tasks"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	// header, add line, blank
	rowsTop = 3
	// blank, minibuffer, help
	footerLines = 3

	minibufferAutoClearAfter = 4 * time.Second
	tickEvery                = time.Second
)

type tickMsg struct{}

func tick() tea.Cmd {
	return tea.Tick(tickEvery, func(time.Time) tea.Msg { return tickMsg{} })
}

type appModel struct {
	tasks    *tasks.Collection
	logger   *log.Logger
	stateDir string

	rows   []*row.Row
	cursor int
	offset int

	width  int
	height int

	adding   bool
	addInput textinput.Model

	keys  keyMap
	help  help.Model
	theme row.Theme

	minibufferText  string
	minibufferErr   bool
	minibufferSetAt time.Time
}

func newAppModel(c *tasks.Collection, opts Options) appModel {
	in := textinput.New()
	in.Prompt = "+ "
	in.Placeholder = "New task"

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	m := appModel{
		tasks:    c,
		logger:   logger,
		stateDir: opts.StateDir,
		width:    80,
		height:   24,
		addInput: in,
		keys:     defaultKeyMap(),
		help:     help.New(),
		theme:    rowTheme(opts.Glyphs),
	}
	m.syncRows()
	m.restoreState()
	return m
}

func (m *appModel) restoreState() {
	st, err := store.LoadTUIState(m.stateDir)
	if err != nil {
		m.logger.Warn("load tui state", "err", err)
		return
	}
	m.help.ShowAll = st.ShowFullHelp
	for i, r := range m.rows {
		if r.Task().ID == st.SelectedTaskID {
			m.cursor = i
			break
		}
	}
	m.scrollToCursor()
}

func (m *appModel) saveState() {
	st := &store.TUIState{ShowFullHelp: m.help.ShowAll}
	if r := m.selected(); r != nil {
		st.SelectedTaskID = r.Task().ID
	}
	if err := store.SaveTUIState(m.stateDir, st); err != nil {
		m.logger.Warn("save tui state", "err", err)
	}
}

func (m appModel) Init() tea.Cmd { return tick() }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width - 1
		m.scrollToCursor()
		return m, nil

	case tickMsg:
		if m.minibufferText != "" && time.Since(m.minibufferSetAt) > minibufferAutoClearAfter {
			m.minibufferText = ""
		}
		return m, tick()

	case row.YankedMsg:
		if msg.Err != nil {
			m.showError(fmt.Errorf("copy: %w", msg.Err))
		} else {
			m.showMinibuffer(fmt.Sprintf("Copied %q", msg.Title))
		}
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	// Cursor blink and other input-driven messages.
	if m.adding {
		var cmd tea.Cmd
		m.addInput, cmd = m.addInput.Update(msg)
		return m, cmd
	}
	if r := m.selected(); r != nil {
		return m, r.Update(msg)
	}
	return m, nil
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	if m.adding {
		switch {
		case key.Matches(msg, m.keys.Submit):
			if _, err := m.tasks.Add(m.addInput.Value()); err != nil {
				m.showError(err)
				return m, nil
			}
			m.addInput.SetValue("")
			m.syncRows()
			m.cursor = len(m.rows) - 1
			m.scrollToCursor()
			return m, nil
		case key.Matches(msg, m.keys.Back):
			m.stopAdding()
			return m, nil
		}
		var cmd tea.Cmd
		m.addInput, cmd = m.addInput.Update(msg)
		return m, cmd
	}

	r := m.selected()
	if r != nil && r.Editing() {
		cmd := r.Update(msg)
		m.syncRows()
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil
	case key.Matches(msg, m.keys.Add):
		m.adding = true
		return m, m.addInput.Focus()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if r == nil {
		return m, nil
	}
	cmd := r.Update(msg)
	m.syncRows()
	return m, cmd
}

func (m appModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.moveCursor(-1)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.moveCursor(1)
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	idx := m.offset + msg.Y - rowsTop
	if msg.Y < rowsTop || idx < 0 || idx >= len(m.rows) || idx >= m.offset+m.visibleRows() {
		return m, nil
	}
	if m.adding {
		m.stopAdding()
	}
	if idx != m.cursor {
		// Leaving a row mid-edit discards the draft.
		if r := m.selected(); r != nil {
			r.CancelEdit()
		}
		m.cursor = idx
	}
	cmd := m.rows[idx].Click(msg.X, m.width)
	m.syncRows()
	return m, cmd
}

func (m *appModel) quit() (tea.Model, tea.Cmd) {
	for _, r := range m.rows {
		r.Close()
	}
	m.saveState()
	return *m, tea.Quit
}

func (m *appModel) stopAdding() {
	m.adding = false
	m.addInput.Blur()
	m.addInput.SetValue("")
}

func (m *appModel) selected() *row.Row {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor]
}

func (m *appModel) moveCursor(delta int) {
	if r := m.selected(); r != nil && r.Editing() {
		return
	}
	m.cursor += delta
	m.clampCursor()
	m.scrollToCursor()
}

func (m *appModel) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *appModel) visibleRows() int {
	n := m.height - rowsTop - footerLines
	if m.help.ShowAll {
		n -= 3
	}
	if n < 1 {
		n = 1
	}
	return n
}

func (m *appModel) scrollToCursor() {
	vis := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+vis {
		m.offset = m.cursor - vis + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// syncRows reconciles rows with the collection after a change. Rows keep
// their local state (including an edit in progress) as long as their task exists.
func (m *appModel) syncRows() {
	byID := make(map[int64]*row.Row, len(m.rows))
	for _, r := range m.rows {
		byID[r.Task().ID] = r
	}

	ts := m.tasks.Tasks()
	next := make([]*row.Row, 0, len(ts))
	for i, t := range ts {
		r, ok := byID[t.ID]
		if ok {
			delete(byID, t.ID)
			r.SetIndex(i)
			r.SetTask(t)
		} else {
			r = row.New(i, t, m.tasks)
			r.SetTheme(m.theme)
		}
		next = append(next, r)
	}
	for _, gone := range byID {
		gone.Close()
	}
	m.rows = next
	m.clampCursor()
	m.scrollToCursor()

	if err := m.tasks.Err(); err != nil {
		m.showError(err)
		m.tasks.ClearErr()
	}
}

func (m *appModel) showMinibuffer(s string) {
	m.minibufferText = s
	m.minibufferErr = false
	m.minibufferSetAt = time.Now()
}

func (m *appModel) showError(err error) {
	m.logger.Warn("shown to user", "err", err)
	m.minibufferText = err.Error()
	m.minibufferErr = true
	m.minibufferSetAt = time.Now()
}

func (m appModel) View() string {
	var b strings.Builder

	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.addLineView())
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(styleMuted().Render(" No tasks yet. Press a to add one."))
		b.WriteString("\n")
	} else {
		end := m.offset + m.visibleRows()
		if end > len(m.rows) {
			end = len(m.rows)
		}
		for i := m.offset; i < end; i++ {
			b.WriteString(m.rows[i].View(m.width, i == m.cursor))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.minibufferView())
	b.WriteString("\n")

	k := m.keys
	if r := m.selected(); r != nil {
		k.mode = r.Mode()
	}
	b.WriteString(" " + m.help.View(k))
	return b.String()
}

func (m appModel) headerView() string {
	open, done := 0, 0
	for _, r := range m.rows {
		if r.Task().Done {
			done++
		} else {
			open++
		}
	}
	title := styleHeader().Render(" Tasks")
	counts := styleMuted().Render(fmt.Sprintf("%d open, %d done", open, done))
	gap := m.width - xansi.StringWidth(title) - xansi.StringWidth(counts) - 1
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + counts
}

func (m appModel) addLineView() string {
	if !m.adding {
		return styleMuted().Render(" a: add a task")
	}
	w := m.width
	if w < 10 {
		w = 10
	}
	v := strings.ReplaceAll(m.addInput.View(), "\n", " ")
	line := lipgloss.PlaceHorizontal(
		w,
		lipgloss.Left,
		" "+v+" ",
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
	if xansi.StringWidth(line) > w {
		line = xansi.Truncate(line, w, "") + "\x1b[0m"
	}
	return line
}

func (m appModel) minibufferView() string {
	if m.minibufferText == "" {
		return ""
	}
	st := styleMuted()
	if m.minibufferErr {
		st = styleError()
	}
	return st.Render(" " + xansi.Truncate(m.minibufferText, m.width-2, "…"))
}
