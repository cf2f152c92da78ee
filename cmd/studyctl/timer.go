package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTimerCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Control the server-side timer of a task",
	}

	cmd.AddCommand(newTimerStartCmd(opts))
	cmd.AddCommand(&cobra.Command{
		Use:   "stop <id>",
		Short: "Stop the running timer and credit the task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.client().StopTimer(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return renderSession(cmd.OutOrStdout(), opts.output, s)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "active <id>",
		Short: "Show the running timer, if any",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.client().GetActiveTimer(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if s == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "No active timer for task %s\n", args[0])
				return nil
			}
			return renderSession(cmd.OutOrStdout(), opts.output, s)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "sessions <id>",
		Short: "List the recorded sessions of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := opts.client().ListTimerSessions(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return renderSessions(cmd.OutOrStdout(), opts.output, sessions)
		},
	})

	return cmd
}

func newTimerStartCmd(opts *rootOptions) *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "start <id>",
		Short: "Start a timer, stopping any timer already running for the task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.client().StartTimer(cmd.Context(), args[0], mode)
			if err != nil {
				return err
			}
			return renderSession(cmd.OutOrStdout(), opts.output, s)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "normal", "Timer mode (normal, pomodoro)")

	return cmd
}
