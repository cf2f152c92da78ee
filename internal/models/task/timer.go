package task

import (
	"strings"
	"time"
)

type TimerMode string

const TimerModeNormal TimerMode = "normal"
const TimerModePomodoro TimerMode = "pomodoro"

func ParseTimerMode(s string) (TimerMode, bool) {
	switch TimerMode(strings.ToLower(strings.TrimSpace(s))) {
	case TimerModeNormal:
		return TimerModeNormal, true
	case TimerModePomodoro:
		return TimerModePomodoro, true
	}
	return "", false
}

type TimerSession struct {
	ID                string     `json:"id"`
	TaskID            string     `json:"taskId"`
	StartedAt         time.Time  `json:"startedAt"`
	EndedAt           *time.Time `json:"endedAt"`
	DurationSeconds   int        `json:"durationSeconds"`
	Mode              TimerMode  `json:"mode"`
	PomodoroIntervals int        `json:"pomodoroIntervals"`
}

func (s *TimerSession) Active() bool {
	return s.EndedAt == nil
}

// Finish ends the session at endedAt and returns the whole minutes it adds
// to the owning task. It must be called at most once per session.
func (s *TimerSession) Finish(endedAt time.Time) int {
	if endedAt.Before(s.StartedAt) {
		endedAt = s.StartedAt
	}
	s.EndedAt = &endedAt
	s.DurationSeconds = int(endedAt.Sub(s.StartedAt) / time.Second)
	return MinutesFromSeconds(s.DurationSeconds)
}

// MinutesFromSeconds rounds up, so any started minute counts as a full one.
func MinutesFromSeconds(seconds int) int {
	if seconds <= 0 {
		return 0
	}
	return (seconds + 59) / 60
}

func (s *TimerSession) Clone() *TimerSession {
	if s == nil {
		return nil
	}
	c := *s
	if s.EndedAt != nil {
		e := *s.EndedAt
		c.EndedAt = &e
	}
	return &c
}
