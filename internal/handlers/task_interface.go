package handlers

import (
	"context"

	"studyBuddy/internal/models/task"
	"studyBuddy/internal/service"
)

type Service interface {
	HealthCheck(context.Context) error
	Reset(context.Context) error

	ListTasks(ctx context.Context, status, sort string) ([]*task.Task, error)
	GetTask(context.Context, string) (*task.Task, error)
	CreateTask(context.Context, service.CreateTaskInput) (*task.Task, error)
	UpdateStatus(context.Context, string, service.StatusUpdate) (*task.Task, error)
	DeleteTask(context.Context, string) error

	StartTimer(ctx context.Context, id, mode string) (*task.TimerSession, error)
	StopTimer(context.Context, string) (*task.TimerSession, error)
	ActiveTimer(context.Context, string) (*task.TimerSession, error)
	Sessions(context.Context, string) ([]*task.TimerSession, error)
}
