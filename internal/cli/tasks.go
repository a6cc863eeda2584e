package cli

import (
	"strconv"
	"strings"

	"todo-cli/internal/model"

	"github.com/spf13/cobra"
)

// taskTable renders tasks in the text format.
type taskTable []model.Task

func (t taskTable) Headers() []string { return []string{"ID", "DONE", "TITLE"} }

func (t taskTable) Rows() [][]string {
	out := make([][]string, 0, len(t))
	for _, task := range t {
		done := ""
		if task.Done {
			done = "x"
		}
		out = append(out, []string{strconv.FormatInt(task.ID, 10), done, task.Title})
	}
	return out
}

func writeTasks(cmd *cobra.Command, app *App, ts ...model.Task) error {
	if app.Format == "text" {
		return writeOut(cmd, app, taskTable(ts))
	}
	if len(ts) == 1 {
		return writeOut(cmd, app, map[string]any{"data": ts[0]})
	}
	return writeOut(cmd, app, map[string]any{"data": ts})
}

func parseTaskID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID(s)
	}
	return id, nil
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openTasks(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, err := c.Add(strings.Join(args, " "))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeTasks(cmd, app, t)
		},
	}
}

func newListCmd(app *App) *cobra.Command {
	var open, done bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openTasks(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := []model.Task{}
			for _, t := range c.Tasks() {
				if open && t.Done || done && !t.Done {
					continue
				}
				out = append(out, t)
			}
			if app.Format == "text" {
				return writeOut(cmd, app, taskTable(out))
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
	cmd.Flags().BoolVar(&open, "open", false, "Only tasks not done")
	cmd.Flags().BoolVar(&done, "done", false, "Only tasks done")
	cmd.MarkFlagsMutuallyExclusive("open", "done")
	return cmd
}

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task's done state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := openTasks(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, err := c.Toggle(id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeTasks(cmd, app, t)
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <title...>",
		Short: "Replace a task's title",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := openTasks(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			// Titles are stored as given, same as an inline edit in the TUI.
			t, err := c.Rename(id, strings.Join(args[1:], " "))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeTasks(cmd, app, t)
		},
	}
}

func newRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Remove a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := openTasks(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := c.Delete(id); err != nil {
				return writeErr(cmd, err)
			}
			if app.Format == "text" {
				return writeOut(cmd, app, kvTable{{"removed", strconv.FormatInt(id, 10)}})
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "removed": true}})
		},
	}
}
