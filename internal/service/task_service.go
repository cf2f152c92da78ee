package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"studyBuddy/internal/logger"
	"studyBuddy/internal/models/task"
	rep "studyBuddy/internal/repository"

	"go.uber.org/zap"
)

// CreateTaskInput carries the creation fields as the client sent them.
// Nil pointers mean the field was absent.
type CreateTaskInput struct {
	Title            string
	Subject          string
	EstimatedMinutes *int
	Difficulty       *string
}

// StatusUpdate is a status transition request. FunRatingMalformed is set by
// the transport when a funRating value was present but was not an integer.
type StatusUpdate struct {
	Status             string
	FunRating          *int
	FunRatingMalformed bool
}

type TaskService struct {
	repo TaskRepository
}

func NewTaskService(repo TaskRepository) *TaskService {
	return &TaskService{
		repo: repo,
	}
}

func (s *TaskService) HealthCheck(ctx context.Context) error {
	if err := s.repo.HealthCheck(ctx); err != nil {
		logger.Error("Service: Health check failed", err)
		return fmt.Errorf("health check: %w", err)
	}
	return nil
}

// ListTasks returns tasks filtered by status and ordered by creation time.
// Empty arguments disable the filter and keep insertion order.
func (s *TaskService) ListTasks(ctx context.Context, status, sort string) ([]*task.Task, error) {
	filter := rep.ListFilter{}

	if strings.TrimSpace(status) != "" {
		parsed, ok := task.ParseStatus(status)
		if !ok {
			logger.Info("Service: Invalid status filter", zap.String("status", status))
			return nil, NewValidationError("status", MsgInvalidStatus)
		}
		filter.Status = parsed
	}

	direction, ok := rep.ParseSortDirection(sort)
	if !ok {
		logger.Info("Service: Invalid sort direction", zap.String("sort", sort))
		return nil, NewValidationError("sort", MsgInvalidSort)
	}
	filter.Sort = direction

	tasks, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*task.Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.taskError(err, id, "get task")
	}
	return t, nil
}

func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*task.Task, error) {
	title := strings.TrimSpace(input.Title)
	subject := strings.TrimSpace(input.Subject)

	if title == "" || subject == "" || input.EstimatedMinutes == nil || input.Difficulty == nil {
		logger.Info("Service: Create rejected, missing fields",
			zap.Bool("title", title != ""),
			zap.Bool("subject", subject != ""),
			zap.Bool("estimated_minutes", input.EstimatedMinutes != nil),
			zap.Bool("difficulty", input.Difficulty != nil))
		return nil, NewValidationError("", MsgMissingFields)
	}

	if *input.EstimatedMinutes < 0 {
		return nil, NewValidationError("estimatedMinutes", MsgInvalidEstimate)
	}

	difficulty, ok := task.ParseDifficulty(*input.Difficulty)
	if !ok {
		return nil, NewValidationError("difficulty", MsgInvalidDifficulty)
	}

	created, err := s.repo.Create(ctx, &task.Task{
		Title:            title,
		Subject:          subject,
		EstimatedMinutes: *input.EstimatedMinutes,
		Difficulty:       difficulty,
	})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	logger.Info("Service: Task created",
		zap.String("task_id", created.ID),
		zap.String("difficulty", string(created.Difficulty)))
	return created, nil
}

// UpdateStatus validates the whole request before looking the task up, so a
// malformed body is reported even for an unknown id.
func (s *TaskService) UpdateStatus(ctx context.Context, id string, update StatusUpdate) (*task.Task, error) {
	status, ok := task.ParseStatus(update.Status)
	if !ok {
		return nil, NewValidationError("status", MsgInvalidStatus)
	}

	if update.FunRatingMalformed || (update.FunRating != nil && !task.ValidFunRating(*update.FunRating)) {
		return nil, NewValidationError("funRating", MsgInvalidFunRating)
	}

	if update.FunRating != nil && status != task.StatusDone {
		return nil, NewValidationError("funRating", MsgFunRatingRequiresDone)
	}

	updated, err := s.repo.Update(ctx, id, task.WithStatus(status), task.WithFunRating(update.FunRating))
	if err != nil {
		return nil, s.taskError(err, id, "update task")
	}

	logger.Info("Service: Task status changed",
		zap.String("task_id", id),
		zap.String("status", string(updated.Status)))
	return updated, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.taskError(err, id, "delete task")
	}
	logger.Info("Service: Task deleted", zap.String("task_id", id))
	return nil
}

func (s *TaskService) Reset(ctx context.Context) error {
	if err := s.repo.Reset(ctx); err != nil {
		return fmt.Errorf("reset storage: %w", err)
	}
	logger.Info("Service: Storage reset")
	return nil
}

func (s *TaskService) taskError(err error, id, operation string) error {
	if errors.Is(err, rep.ErrNotFound) {
		logger.Info("Service: Task not found", zap.String("target_id", id))
		return NewNotFound(MsgTaskNotFound, err, ToDetail("id", id))
	}
	return fmt.Errorf("%s: %w", operation, err)
}
