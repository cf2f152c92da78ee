package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"studyBuddy/internal/clock"
	"studyBuddy/internal/handlers/dto"

	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// render writes v as JSON or YAML, or hands a tabwriter to table.
func render(w io.Writer, format string, v any, table func(tw *tabwriter.Writer)) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		table(tw)
		return tw.Flush()
	}
}

func renderTasks(w io.Writer, format string, tasks []dto.TaskResponse) error {
	return render(w, format, tasks, func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "ID\tTITLE\tSUBJECT\tSTATUS\tDIFFICULTY\tEST\tACTUAL\tFUN")
		for _, t := range tasks {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%dm\t%dm\t%s\n",
				t.ID, t.Title, t.Subject, t.Status, t.Difficulty,
				t.EstimatedMinutes, t.ActualMinutes, funRating(t.FunRating))
		}
	})
}

func renderTask(w io.Writer, format string, t *dto.TaskResponse) error {
	return render(w, format, t, func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "ID:\t%s\n", t.ID)
		fmt.Fprintf(tw, "Title:\t%s\n", t.Title)
		fmt.Fprintf(tw, "Subject:\t%s\n", t.Subject)
		fmt.Fprintf(tw, "Status:\t%s\n", t.Status)
		fmt.Fprintf(tw, "Difficulty:\t%s\n", t.Difficulty)
		fmt.Fprintf(tw, "Estimated:\t%dm\n", t.EstimatedMinutes)
		fmt.Fprintf(tw, "Actual:\t%dm\n", t.ActualMinutes)
		fmt.Fprintf(tw, "Fun:\t%s\n", funRating(t.FunRating))
		fmt.Fprintf(tw, "Created:\t%s\n", t.CreatedAt.Local().Format(time.DateTime))
		fmt.Fprintf(tw, "Sessions:\t%d\n", len(t.TimerSessions))
	})
}

func renderSessions(w io.Writer, format string, sessions []dto.TimerSessionResponse) error {
	return render(w, format, sessions, func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "ID\tMODE\tSTARTED\tENDED\tDURATION")
		for _, s := range sessions {
			writeSessionRow(tw, s)
		}
	})
}

func renderSession(w io.Writer, format string, s *dto.TimerSessionResponse) error {
	return render(w, format, s, func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "ID\tMODE\tSTARTED\tENDED\tDURATION")
		writeSessionRow(tw, *s)
	})
}

func writeSessionRow(tw *tabwriter.Writer, s dto.TimerSessionResponse) {
	ended := "running"
	if s.EndedAt != nil {
		ended = s.EndedAt.Local().Format(time.DateTime)
	}
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		s.ID, s.Mode, s.StartedAt.Local().Format(time.DateTime), ended,
		clock.FormatSeconds(s.DurationSeconds))
}

func funRating(r *int) string {
	if r == nil {
		return "-"
	}
	return strconv.Itoa(*r) + "/5"
}

// statusLine is the one-line view of a running focus clock.
func statusLine(s clock.Snapshot) string {
	if s.TargetSeconds == 0 {
		return fmt.Sprintf("%s elapsed", clock.FormatSeconds(s.ElapsedSeconds))
	}
	return fmt.Sprintf("%s: %s left (%.0f%%), %d intervals",
		s.Phase, clock.FormatSeconds(s.RemainingSeconds()), s.Progress(), s.Intervals)
}
