package dto

import (
	"bytes"
	"encoding/json"
	"math"
	"time"

	"studyBuddy/internal/models/task"
	"studyBuddy/internal/service"
)

type CreateTaskRequest struct {
	Title            string  `json:"title"`
	Subject          string  `json:"subject"`
	EstimatedMinutes *int    `json:"estimatedMinutes"`
	Difficulty       *string `json:"difficulty"`
}

func (r CreateTaskRequest) ToInput() service.CreateTaskInput {
	return service.CreateTaskInput{
		Title:            r.Title,
		Subject:          r.Subject,
		EstimatedMinutes: r.EstimatedMinutes,
		Difficulty:       r.Difficulty,
	}
}

// UpdateTaskRequest keeps both fields raw so that a value of the wrong JSON
// type is reported as a validation error of that field.
type UpdateTaskRequest struct {
	Status    json.RawMessage `json:"status,omitempty"`
	FunRating json.RawMessage `json:"funRating,omitempty"`
}

func (r UpdateTaskRequest) ToStatusUpdate() service.StatusUpdate {
	update := service.StatusUpdate{}

	if !isNull(r.Status) {
		var status string
		if err := json.Unmarshal(r.Status, &status); err == nil {
			update.Status = status
		}
	}

	if !isNull(r.FunRating) {
		var rating float64
		if err := json.Unmarshal(r.FunRating, &rating); err != nil || rating != math.Trunc(rating) ||
			rating < math.MinInt32 || rating > math.MaxInt32 {
			update.FunRatingMalformed = true
		} else {
			v := int(rating)
			update.FunRating = &v
		}
	}

	return update
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

type StartTimerRequest struct {
	Mode string `json:"mode"`
}

type TaskResponse struct {
	ID               string                 `json:"id" yaml:"id"`
	Title            string                 `json:"title" yaml:"title"`
	Subject          string                 `json:"subject" yaml:"subject"`
	EstimatedMinutes int                    `json:"estimatedMinutes" yaml:"estimatedMinutes"`
	Status           string                 `json:"status" yaml:"status"`
	Difficulty       string                 `json:"difficulty" yaml:"difficulty"`
	FunRating        *int                   `json:"funRating,omitempty" yaml:"funRating,omitempty"`
	CreatedAt        time.Time              `json:"createdAt" yaml:"createdAt"`
	ActualMinutes    int                    `json:"actualMinutes" yaml:"actualMinutes"`
	TimerSessions    []TimerSessionResponse `json:"timerSessions" yaml:"timerSessions"`
}

type TimerSessionResponse struct {
	ID                string     `json:"id" yaml:"id"`
	TaskID            string     `json:"taskId" yaml:"taskId"`
	StartedAt         time.Time  `json:"startedAt" yaml:"startedAt"`
	EndedAt           *time.Time `json:"endedAt" yaml:"endedAt"`
	DurationSeconds   int        `json:"durationSeconds" yaml:"durationSeconds"`
	Mode              string     `json:"mode" yaml:"mode"`
	PomodoroIntervals int        `json:"pomodoroIntervals" yaml:"pomodoroIntervals"`
}

func FromTask(t *task.Task) TaskResponse {
	return TaskResponse{
		ID:               t.ID,
		Title:            t.Title,
		Subject:          t.Subject,
		EstimatedMinutes: t.EstimatedMinutes,
		Status:           string(t.Status),
		Difficulty:       string(t.Difficulty),
		FunRating:        t.FunRating,
		CreatedAt:        t.CreatedAt,
		ActualMinutes:    t.ActualMinutes,
		TimerSessions:    FromSessionList(t.TimerSessions),
	}
}

func FromTaskList(tasks []*task.Task) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = FromTask(t)
	}
	return result
}

func FromSession(s *task.TimerSession) TimerSessionResponse {
	return TimerSessionResponse{
		ID:                s.ID,
		TaskID:            s.TaskID,
		StartedAt:         s.StartedAt,
		EndedAt:           s.EndedAt,
		DurationSeconds:   s.DurationSeconds,
		Mode:              string(s.Mode),
		PomodoroIntervals: s.PomodoroIntervals,
	}
}

func FromSessionList(sessions []*task.TimerSession) []TimerSessionResponse {
	result := make([]TimerSessionResponse, len(sessions))
	for i, s := range sessions {
		result[i] = FromSession(s)
	}
	return result
}
