package service

import (
	"context"
	"errors"
	"fmt"

	"studyBuddy/internal/logger"
	"studyBuddy/internal/models/task"
	rep "studyBuddy/internal/repository"

	"go.uber.org/zap"
)

// StartTimer parses the mode before touching the task, so a bad mode is a 400
// even for an unknown task.
func (s *TaskService) StartTimer(ctx context.Context, id, mode string) (*task.TimerSession, error) {
	parsed, ok := task.ParseTimerMode(mode)
	if !ok {
		return nil, NewValidationError("mode", MsgInvalidTimerMode)
	}

	session, err := s.repo.StartTimer(ctx, id, parsed)
	if err != nil {
		return nil, s.taskError(err, id, "start timer")
	}

	logger.Info("Service: Timer started",
		zap.String("task_id", id),
		zap.String("session_id", session.ID),
		zap.String("mode", string(session.Mode)))
	return session, nil
}

func (s *TaskService) StopTimer(ctx context.Context, id string) (*task.TimerSession, error) {
	session, err := s.repo.StopTimer(ctx, id)
	if err != nil {
		return nil, s.timerError(err, id, "stop timer")
	}

	logger.Info("Service: Timer stopped",
		zap.String("task_id", id),
		zap.String("session_id", session.ID),
		zap.Int("duration_seconds", session.DurationSeconds))
	return session, nil
}

func (s *TaskService) ActiveTimer(ctx context.Context, id string) (*task.TimerSession, error) {
	session, err := s.repo.ActiveTimer(ctx, id)
	if err != nil {
		return nil, s.timerError(err, id, "active timer")
	}
	return session, nil
}

func (s *TaskService) Sessions(ctx context.Context, id string) ([]*task.TimerSession, error) {
	sessions, err := s.repo.Sessions(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

func (s *TaskService) timerError(err error, id, operation string) error {
	if errors.Is(err, rep.ErrNoActiveTimer) {
		logger.Debug("Service: No active timer", zap.String("task_id", id))
		return NewNotFound(MsgNoActiveTimer, err, ToDetail("task_id", id))
	}
	return s.taskError(err, id, operation)
}
