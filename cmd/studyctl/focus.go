package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studyBuddy/internal/clock"
	"studyBuddy/internal/models/task"

	"github.com/spf13/cobra"
)

type focusOptions struct {
	mode        string
	limit       time.Duration
	statusEvery time.Duration
}

func newFocusCmd(opts *rootOptions) *cobra.Command {
	focus := &focusOptions{}

	cmd := &cobra.Command{
		Use:   "focus <id>",
		Short: "Run a focus timer in the terminal and record it on the task",
		Long: `Starts a server-side timer for the task and a local clock that shows progress.
In pomodoro mode the clock alternates 25 minute focus and 5 minute break phases.
Ctrl-C, or the end of --for, stops both and credits the task.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFocus(cmd, opts, focus, args[0])
		},
	}

	cmd.Flags().StringVar(&focus.mode, "mode", string(task.TimerModePomodoro), "Timer mode (normal, pomodoro)")
	cmd.Flags().DurationVar(&focus.limit, "for", 0, "Stop after this long (default: until interrupted)")
	cmd.Flags().DurationVar(&focus.statusEvery, "status-every", time.Minute, "How often to print a status line")

	return cmd
}

func runFocus(cmd *cobra.Command, opts *rootOptions, focus *focusOptions, id string) error {
	mode, ok := task.ParseTimerMode(focus.mode)
	if !ok {
		return fmt.Errorf("unknown mode %q", focus.mode)
	}
	if focus.statusEvery <= 0 {
		return fmt.Errorf("--status-every must be positive")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if focus.limit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, focus.limit)
		defer cancel()
	}

	api := opts.client()
	out := cmd.OutOrStdout()

	session, err := api.StartTimer(ctx, id, string(mode))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Started %s session %s on task %s\n", session.Mode, session.ID, id)

	clk := clock.New(
		clock.WithMode(mode),
		clock.OnPhaseChange(func(p clock.Phase) {
			if p == clock.PhaseBreak {
				fmt.Fprintln(out, "Focus done, take a break")
			} else {
				fmt.Fprintln(out, "Break over, back to focus")
			}
		}),
	)
	clk.Start()

	ticker := time.NewTicker(focus.statusEvery)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-ticker.C:
			fmt.Fprintln(out, statusLine(clk.Snapshot()))
		case <-ctx.Done():
			break loop
		}
	}

	last := clk.Stop()

	// ctx is already done here
	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	stopped, err := api.StopTimer(stopCtx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Recorded %s on task %s", clock.FormatSeconds(stopped.DurationSeconds), id)
	if mode == task.TimerModePomodoro {
		fmt.Fprintf(out, " (%d intervals)", last.Intervals)
	}
	fmt.Fprintln(out)
	return nil
}
