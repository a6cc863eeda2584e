package cli

import (
	"errors"
	"os"

	"todo-cli/internal/config"
	"todo-cli/internal/store"

	"github.com/spf13/cobra"
)

type kvTable [][2]string

func (kvTable) Headers() []string { return []string{"KEY", "VALUE"} }

func (t kvTable) Rows() [][]string {
	out := make([][]string, 0, len(t))
	for _, kv := range t {
		out = append(out, []string{kv[0], kv[1]})
	}
	return out
}

func newInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default config file and create the task database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.ConfigPath
			if path == "" {
				p, err := config.Path()
				if err != nil {
					return writeErr(cmd, err)
				}
				path = p
			}

			created := false
			if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
				if err := config.Save(path, config.Default()); err != nil {
					return writeErr(cmd, err)
				}
				created = true
			}

			if !app.Ephemeral {
				if _, err := openTasks(cmd.Context(), app); err != nil {
					return writeErr(cmd, err)
				}
			}

			if app.Format == "text" {
				return writeOut(cmd, app, kvTable{
					{"config", path},
					{"sqlitePath", store.SQLitePath(app.cfg.Store.Dir)},
				})
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"config":        path,
					"configCreated": created,
					"dir":           app.cfg.Store.Dir,
					"sqlitePath":    store.SQLitePath(app.cfg.Store.Dir),
				},
			})
		},
	}
}
