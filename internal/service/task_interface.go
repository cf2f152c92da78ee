package service

import (
	"context"

	"studyBuddy/internal/models/task"
	"studyBuddy/internal/repository"
)

type TaskRepository interface {
	HealthCheck(context.Context) error
	Reset(context.Context) error

	Create(context.Context, *task.Task) (*task.Task, error)
	GetByID(context.Context, string) (*task.Task, error)
	Update(context.Context, string, ...task.TaskOption) (*task.Task, error)
	Delete(context.Context, string) error
	List(context.Context, repository.ListFilter) ([]*task.Task, error)

	StartTimer(context.Context, string, task.TimerMode) (*task.TimerSession, error)
	StopTimer(context.Context, string) (*task.TimerSession, error)
	ActiveTimer(context.Context, string) (*task.TimerSession, error)
	Sessions(context.Context, string) ([]*task.TimerSession, error)
}
