package main

import (
	"fmt"

	"studyBuddy/internal/client"
	"studyBuddy/internal/handlers/dto"

	"github.com/spf13/cobra"
)

func newTasksCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task", "t"},
		Short:   "Manage study tasks",
	}

	cmd.AddCommand(newTasksListCmd(opts))
	cmd.AddCommand(newTasksGetCmd(opts))
	cmd.AddCommand(newTasksAddCmd(opts))
	cmd.AddCommand(newTasksStatusCmd(opts))
	cmd.AddCommand(newTasksRmCmd(opts))

	return cmd
}

func newTasksListCmd(opts *rootOptions) *cobra.Command {
	var listOpts client.ListOptions

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := opts.client().ListTasks(cmd.Context(), listOpts)
			if err != nil {
				return err
			}
			return renderTasks(cmd.OutOrStdout(), opts.output, tasks)
		},
	}

	cmd.Flags().StringVar(&listOpts.Status, "status", "", "Only tasks with this status (todo, in-progress, done)")
	cmd.Flags().StringVar(&listOpts.Sort, "sort", "", "Order by creation time (asc, desc)")

	return cmd
}

func newTasksGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := opts.client().GetTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return renderTask(cmd.OutOrStdout(), opts.output, t)
		},
	}
}

func newTasksAddCmd(opts *rootOptions) *cobra.Command {
	var (
		title      string
		subject    string
		minutes    int
		difficulty string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := dto.CreateTaskRequest{Title: title, Subject: subject}
			if cmd.Flags().Changed("minutes") {
				req.EstimatedMinutes = &minutes
			}
			if cmd.Flags().Changed("difficulty") {
				req.Difficulty = &difficulty
			}

			t, err := opts.client().CreateTask(cmd.Context(), req)
			if err != nil {
				return err
			}
			return renderTask(cmd.OutOrStdout(), opts.output, t)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&subject, "subject", "", "Subject")
	cmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "Estimated minutes")
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", "", "Difficulty (easy, medium, hard)")

	return cmd
}

func newTasksStatusCmd(opts *rootOptions) *cobra.Command {
	var fun int

	cmd := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Change a task's status, optionally rating a finished task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var rating *int
			if cmd.Flags().Changed("fun") {
				rating = &fun
			}

			t, err := opts.client().UpdateTaskStatus(cmd.Context(), args[0], args[1], rating)
			if err != nil {
				return err
			}
			return renderTask(cmd.OutOrStdout(), opts.output, t)
		},
	}

	cmd.Flags().IntVar(&fun, "fun", 0, "Fun rating from 1 to 5 (done only)")

	return cmd
}

func newTasksRmCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.client().DeleteTask(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", args[0])
			return nil
		},
	}
}

func newResetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the seeded tasks and drop all timer history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.client().Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Tasks reset")
			return nil
		},
	}
}
