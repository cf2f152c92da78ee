package clock

import (
	"fmt"

	"studyBuddy/internal/models/task"
)

// Snapshot is a point-in-time view of a Clock.
type Snapshot struct {
	State          State          `json:"state" yaml:"state"`
	Mode           task.TimerMode `json:"mode" yaml:"mode"`
	Phase          Phase          `json:"phase" yaml:"phase"`
	ElapsedSeconds int            `json:"elapsedSeconds" yaml:"elapsedSeconds"`
	Intervals      int            `json:"intervals" yaml:"intervals"`
	TargetSeconds  int            `json:"targetSeconds" yaml:"targetSeconds"` // 0 in normal mode
}

// RemainingSeconds is the time left in the current phase, or 0 without a target.
func (s Snapshot) RemainingSeconds() int {
	if s.TargetSeconds == 0 || s.ElapsedSeconds >= s.TargetSeconds {
		return 0
	}
	return s.TargetSeconds - s.ElapsedSeconds
}

// Progress is the completed share of the current phase in percent.
func (s Snapshot) Progress() float64 {
	if s.TargetSeconds == 0 {
		return 0
	}
	p := float64(s.ElapsedSeconds) / float64(s.TargetSeconds) * 100
	if p > 100 {
		return 100
	}
	return p
}

// FormatSeconds renders m:ss, or h:mm:ss from one hour on.
func FormatSeconds(total int) string {
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}
