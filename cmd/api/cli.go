package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ai-task-manager/internal/analytics"
	"ai-task-manager/internal/auth"
	"ai-task-manager/internal/config"
	"ai-task-manager/internal/tasks"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			database, err := openDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer database.Close()
			fmt.Fprintln(cmd.OutOrStdout(), "✅ Schema is up to date")
			return nil
		},
	}
}

func newProcessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   `process "<text>"`,
		Short: "File one update: complete a task or create a new one",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := strings.TrimSpace(strings.Join(args, " "))
			if input == "" {
				return fmt.Errorf("input is required")
			}

			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.service.Process(cmd.Context(), analytics.Envelope{Platform: "cli"}, input)
			out := cmd.OutOrStdout()
			if err != nil {
				fmt.Fprintln(out, "❌ Error:", err)
				return err
			}
			fmt.Fprintln(out, res.Message)
			printUrgent(out, res.Urgent)
			return nil
		},
	}
}

func newTasksCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List tasks, urgent ones first",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := tasks.Status(status)
			if st != "" && !st.Valid() {
				return fmt.Errorf("invalid status %q", status)
			}

			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			database, err := openDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			list, err := tasks.NewSQLStore(database).ListTasks(cmd.Context(), tasks.Filter{Status: st})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printUrgent(out, tasks.UrgentActive(list))
			printTasks(out, list)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "active or completed")
	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password",
		Short: "Read a password from stdin and print its bcrypt hash",
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && err != io.EOF {
				return err
			}
			pw := strings.TrimRight(line, "\r\n")
			if pw == "" {
				return fmt.Errorf("empty password")
			}
			h, err := auth.HashPassword(pw)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}
}

func newTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Print a signed owner token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if cfg.JWTSecret == "" {
				return fmt.Errorf("JWT_SECRET is not set")
			}
			tok, err := auth.GenerateToken([]byte(cfg.JWTSecret), time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
}

func printUrgent(w io.Writer, urgent []tasks.Task) {
	if len(urgent) == 0 {
		return
	}
	fmt.Fprintf(w, "🚨 URGENT (%d)\n", len(urgent))
	for _, t := range urgent {
		fmt.Fprintf(w, "  • %s [%s]\n", t.Title, t.Workflow)
	}
}

func printTasks(w io.Writer, list []tasks.Task) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No tasks yet")
		return
	}
	for _, t := range list {
		mark := "[ ]"
		if t.Status == tasks.StatusCompleted {
			mark = "[x]"
		}
		fmt.Fprintf(w, "%s %s  %s · %s · %s\n", mark, t.ID, t.Title, t.Workflow, t.Priority)
	}
}

