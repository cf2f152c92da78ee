package task

import (
	"strings"
	"time"
)

type Task struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Subject          string          `json:"subject"`
	EstimatedMinutes int             `json:"estimatedMinutes"`
	Status           Status          `json:"status"`
	Difficulty       Difficulty      `json:"difficulty"`
	FunRating        *int            `json:"funRating,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	ActualMinutes    int             `json:"actualMinutes"`
	TimerSessions    []*TimerSession `json:"timerSessions"`
}

type Status string
type Difficulty string

const StatusTodo Status = "todo"
const StatusInProgress Status = "in-progress"
const StatusDone Status = "done"

const DifficultyEasy Difficulty = "easy"
const DifficultyMedium Difficulty = "medium"
const DifficultyHard Difficulty = "hard"

const (
	MinFunRating = 1
	MaxFunRating = 5
)

// ParseStatus matches the three status tokens case-insensitively.
func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusTodo:
		return StatusTodo, true
	case StatusInProgress:
		return StatusInProgress, true
	case StatusDone:
		return StatusDone, true
	}
	return "", false
}

func ParseDifficulty(s string) (Difficulty, bool) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyEasy:
		return DifficultyEasy, true
	case DifficultyMedium:
		return DifficultyMedium, true
	case DifficultyHard:
		return DifficultyHard, true
	}
	return "", false
}

func ValidFunRating(r int) bool {
	return r >= MinFunRating && r <= MaxFunRating
}

// Clone returns a copy that shares no memory with t.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	if t.FunRating != nil {
		r := *t.FunRating
		c.FunRating = &r
	}
	c.TimerSessions = make([]*TimerSession, len(t.TimerSessions))
	for i, s := range t.TimerSessions {
		c.TimerSessions[i] = s.Clone()
	}
	return &c
}
