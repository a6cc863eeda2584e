package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"todo-cli/internal/config"
	"todo-cli/internal/format"
	"todo-cli/internal/logging"
	"todo-cli/internal/store"
	"todo-cli/internal/tasks"
	"todo-cli/internal/tui"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	ConfigPath string
	PrettyJSON bool
	Format     string
	Ephemeral  bool

	cfg       config.Config
	logger    *log.Logger
	logCloser io.Closer
	store     store.Store
	tasks     *tasks.Collection
}

// Execute runs the command line in args. The store and log file are released
// even when the command fails, since cobra skips post-run hooks after an error.
func Execute(args []string, stdout, stderr io.Writer) error {
	return execute(&App{}, args, stdout, stderr)
}

func execute(app *App, args []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd(app)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	err := cmd.Execute()
	if cerr := app.teardown(); err == nil {
		err = cerr
	}
	return err
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "todo",
		Short:        "Terminal to-do list",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  todo

  # Scriptable commands
  todo add Buy milk
  todo list --format text
  todo edit 1 Buy oat milk
  todo done 1
  todo rm 1
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup(cmd)
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", "", "Directory holding todo.sqlite (overrides store.dir and TODO_DIR)")
	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Path to config.toml (default: ~/.todo/config.toml)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TODO_FORMAT", "json"), "Output format (json|text)")
	cmd.PersistentFlags().BoolVar(&app.Ephemeral, "ephemeral", false, "Keep tasks in memory only")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newDoneCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newRmCmd(app))

	return cmd
}

func (app *App) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return writeErr(cmd, err)
	}
	if app.Dir != "" {
		cfg.Store.Dir = app.Dir
	}
	app.cfg = cfg

	logger, closer, err := logging.Open(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.LogPath(),
	})
	if err != nil {
		// Logging is best effort; never block the command on it.
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", err.Error())
	}
	app.logger = logger
	app.logCloser = closer
	app.logger.Debug("command start", "cmd", cmd.CommandPath(), "dir", cfg.Store.Dir)
	return nil
}

func (app *App) teardown() error {
	var firstErr error
	if app.store != nil {
		if err := app.store.Close(); err != nil {
			firstErr = err
		}
		app.store = nil
	}
	if app.logCloser != nil {
		if err := app.logCloser.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		app.logCloser = nil
	}
	return firstErr
}

// openTasks opens the store and loads the task collection once per command.
func openTasks(ctx context.Context, app *App) (*tasks.Collection, error) {
	if app.tasks != nil {
		return app.tasks, nil
	}
	var s store.Store
	if app.Ephemeral {
		s = store.NewMemory()
	} else {
		sq, err := store.OpenSQLite(ctx, app.cfg.Store.Dir)
		if err != nil {
			return nil, err
		}
		s = sq
	}
	app.store = s

	c := tasks.New(ctx, s, app.logger)
	if err := c.Load(ctx); err != nil {
		return nil, err
	}
	app.tasks = c
	return c, nil
}

func runTUI(cmd *cobra.Command, app *App) error {
	c, err := openTasks(cmd.Context(), app)
	if err != nil {
		return writeErr(cmd, err)
	}
	opts := tui.Options{
		Glyphs: app.cfg.UI.Glyphs,
		Mouse:  app.cfg.UI.Mouse,
		Logger: app.logger,
	}
	if !app.Ephemeral {
		opts.StateDir = app.cfg.Store.Dir
	}
	return tui.Run(c, opts)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
