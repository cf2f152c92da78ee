package inmemory

import (
	"context"
	"strconv"

	"studyBuddy/internal/logger"
	"studyBuddy/internal/models/task"
	repo "studyBuddy/internal/repository"

	"go.uber.org/zap"
)

// StartTimer opens a new session for the task. A session that is already
// running for the task is stopped first, with its minutes credited, so a task
// never has two open sessions.
func (s *TaskStorage) StartTimer(ctx context.Context, taskID string, mode task.TimerMode) (*task.TimerSession, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	owner, ok := s.storage[taskID]
	if !ok {
		return nil, repo.ErrNotFound
	}

	if previous, ok := s.stopLocked(taskID); ok {
		logger.Info("Repository: Previous timer stopped before start",
			zap.String("task_id", taskID),
			zap.String("session_id", previous.ID),
			zap.Int("duration_seconds", previous.DurationSeconds))
	}

	session := &task.TimerSession{
		ID:              strconv.Itoa(s.nextSessionID),
		TaskID:          taskID,
		StartedAt:       s.now().UTC(),
		DurationSeconds: 0,
		Mode:            mode,
	}
	s.nextSessionID++

	s.active[taskID] = session
	s.sessions = append(s.sessions, session)
	owner.TimerSessions = append(owner.TimerSessions, session)

	return session.Clone(), nil
}

func (s *TaskStorage) StopTimer(ctx context.Context, taskID string) (*task.TimerSession, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	session, ok := s.stopLocked(taskID)
	if !ok {
		return nil, repo.ErrNoActiveTimer
	}
	return session.Clone(), nil
}

func (s *TaskStorage) stopLocked(taskID string) (*task.TimerSession, bool) {
	session, ok := s.active[taskID]
	if !ok {
		return nil, false
	}

	minutes := session.Finish(s.now().UTC())
	if owner, ok := s.storage[taskID]; ok {
		owner.ActualMinutes += minutes
	}
	delete(s.active, taskID)
	return session, true
}

func (s *TaskStorage) ActiveTimer(ctx context.Context, taskID string) (*task.TimerSession, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	session, ok := s.active[taskID]
	if !ok {
		return nil, repo.ErrNoActiveTimer
	}
	return session.Clone(), nil
}

// Sessions lists every session recorded for taskID in creation order. Unknown
// tasks simply have none.
func (s *TaskStorage) Sessions(ctx context.Context, taskID string) ([]*task.TimerSession, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*task.TimerSession{}
	for _, session := range s.sessions {
		if session.TaskID == taskID {
			res = append(res, session.Clone())
		}
	}
	return res, nil
}
