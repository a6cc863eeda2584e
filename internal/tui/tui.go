package tui

import (
	"todo-cli/internal/tasks"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type Options struct {
	// Glyphs is one of: unicode|ascii
	Glyphs string
	Mouse  bool
	Logger *log.Logger

	// StateDir holds tui_state.json. Empty disables restoring the last screen.
	StateDir string
}

func Run(c *tasks.Collection, opts Options) error {
	applyTerminalPreferences()

	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}
	_, err := tea.NewProgram(newAppModel(c, opts), progOpts...).Run()
	return err
}
