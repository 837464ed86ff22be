package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"task-tracker/internal/config"
	"task-tracker/internal/db"
	"task-tracker/pkg/task"
)

// app holds the state shared by every subcommand.
type app struct {
	out    io.Writer
	dbPath string
	format string
	conn   *sql.DB
	tasks  *task.Service
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:           "taskctl",
		Short:         "Inspect and edit the task database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultDB := config.DefaultDBPath
	if cfg, err := config.Load(); err == nil {
		defaultDB = cfg.DBPath
	}
	root.PersistentFlags().StringVar(&a.dbPath, "db", defaultDB, "SQLite database file")
	root.PersistentFlags().StringVar(&a.format, "format", "json", "output format: json or short")

	root.AddCommand(
		a.initCmd(),
		a.listCmd(),
		a.getCmd(),
		a.addCmd(),
		a.updateCmd(),
		a.rmCmd(),
		a.statusCmd(),
	)
	return root
}

// withTasks opens the database for the duration of fn.
func (a *app) withTasks(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if a.format != "json" && a.format != "short" {
			return fmt.Errorf("invalid --format %q: want json or short", a.format)
		}
		if err := a.open(cmd.Context()); err != nil {
			return err
		}
		defer a.close()
		return fn(cmd, args)
	}
}

func (a *app) open(ctx context.Context) error {
	conn, err := db.Connect(ctx, a.dbPath)
	if err != nil {
		return err
	}
	store := task.NewSQLStore(conn)
	if err := store.EnsureTable(ctx); err != nil {
		conn.Close()
		return err
	}
	a.conn = conn
	a.tasks = task.NewService(store)
	return nil
}

func (a *app) close() error {
	if a.conn == nil {
		return nil
	}
	err := a.conn.Close()
	a.conn = nil
	return err
}

func (a *app) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the tasks table",
		Args:  cobra.NoArgs,
		RunE: a.withTasks(func(cmd *cobra.Command, args []string) error {
			// the table is created when the database is opened
			fmt.Fprintf(a.out, "initialized %s\n", a.dbPath)
			return nil
		}),
	}
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tasks",
		Args:  cobra.NoArgs,
		RunE: a.withTasks(func(cmd *cobra.Command, args []string) error {
			tasks, err := a.tasks.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list tasks: %w", err)
			}
			if a.format == "short" {
				printShortTasks(a.out, tasks)
				return nil
			}
			return printJSON(a.out, tasks)
		}),
	}
}

func (a *app) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: a.withTasks(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			t, err := a.tasks.Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get task %d: %w", id, err)
			}
			return printJSON(a.out, t)
		}),
	}
}

func (a *app) addCmd() *cobra.Command {
	var title, description string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		Args:  cobra.NoArgs,
		RunE: a.withTasks(func(cmd *cobra.Command, args []string) error {
			id, err := a.tasks.Create(cmd.Context(), title, description)
			if err != nil {
				return fmt.Errorf("create task: %w", err)
			}
			return printJSON(a.out, map[string]int64{"id": id})
		}),
	}
	cmd.Flags().StringVar(&title, "title", "", "task title (required)")
	cmd.Flags().StringVar(&description, "description", "", "task description")
	return cmd
}

func (a *app) updateCmd() *cobra.Command {
	var title, description string
	var completed bool
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a task's title, description and completed flag",
		Long: "Replace a task's title, description and completed flag.\n" +
			"Every field is overwritten: an omitted --description clears it.",
		Args: cobra.ExactArgs(1),
		RunE: a.withTasks(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := a.tasks.Update(cmd.Context(), id, title, description, completed)
			if err != nil {
				return fmt.Errorf("update task %d: %w", id, err)
			}
			if !ok {
				return fmt.Errorf("task %d not found", id)
			}
			fmt.Fprintf(a.out, "updated task %d\n", id)
			return nil
		}),
	}
	cmd.Flags().StringVar(&title, "title", "", "task title (required)")
	cmd.Flags().StringVar(&description, "description", "", "task description")
	cmd.Flags().BoolVar(&completed, "completed", false, "mark the task completed")
	return cmd
}

func (a *app) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: a.withTasks(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := a.tasks.Delete(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("delete task %d: %w", id, err)
			}
			if !ok {
				return fmt.Errorf("task %d not found", id)
			}
			fmt.Fprintf(a.out, "deleted task %d\n", id)
			return nil
		}),
	}
}

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show a task summary",
		Args:  cobra.NoArgs,
		RunE: a.withTasks(func(cmd *cobra.Command, args []string) error {
			tasks, err := a.tasks.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list tasks: %w", err)
			}
			done := 0
			for _, t := range tasks {
				if t.Completed {
					done++
				}
			}
			return printJSON(a.out, map[string]any{
				"db":        a.dbPath,
				"tasks":     len(tasks),
				"completed": done,
				"pending":   len(tasks) - done,
			})
		}),
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncStr(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}

func printShortTasks(w io.Writer, tasks []task.Task) {
	for _, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		fmt.Fprintf(w, "%-6d [%s]  %s\n", t.ID, mark, truncStr(t.Title, 60))
	}
}
