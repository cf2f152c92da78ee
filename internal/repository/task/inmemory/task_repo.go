package inmemory

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"studyBuddy/internal/logger"
	"studyBuddy/internal/models/task"
	repo "studyBuddy/internal/repository"

	"go.uber.org/zap"
)

// firstFreeID follows the seeded fixtures, which occupy ids 1..4.
const firstFreeID = 5

// TaskStorage keeps tasks and timer state in process memory. One mutex covers
// both, so a timer stop and the task's minute counter change together.
type TaskStorage struct {
	storage map[string]*task.Task
	ids     []string
	nextID  int

	active        map[string]*task.TimerSession // taskID -> running session
	sessions      []*task.TimerSession
	nextSessionID int

	mtx *sync.RWMutex
	now func() time.Time
}

type Option func(*TaskStorage)

// WithClock replaces time.Now for timestamps and timer durations.
func WithClock(now func() time.Time) Option {
	return func(s *TaskStorage) {
		s.now = now
	}
}

func NewTaskStorage(opts ...Option) *TaskStorage {
	s := &TaskStorage{
		mtx: &sync.RWMutex{},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.resetLocked()
	return s
}

func (s *TaskStorage) HealthCheck(ctx context.Context) error {
	logger.Debug("Repository: In-memory storage is available")
	return nil
}

func fixtures(now time.Time) []*task.Task {
	return []*task.Task{
		{
			ID:               "1",
			Title:            "Complete Calculus Problem Set",
			Subject:          "Math",
			EstimatedMinutes: 60,
			Status:           task.StatusTodo,
			Difficulty:       task.DifficultyMedium,
			CreatedAt:        now.Add(-24 * time.Hour),
		},
		{
			ID:               "2",
			Title:            "Read Chapter 4: Cell Structure",
			Subject:          "Biology",
			EstimatedMinutes: 45,
			Status:           task.StatusInProgress,
			Difficulty:       task.DifficultyEasy,
			CreatedAt:        now.Add(-48 * time.Hour),
		},
		{
			ID:               "3",
			Title:            "Write History Essay Draft",
			Subject:          "History",
			EstimatedMinutes: 120,
			Status:           task.StatusTodo,
			Difficulty:       task.DifficultyHard,
			CreatedAt:        now.Add(-12 * time.Hour),
		},
		{
			ID:               "4",
			Title:            "Review French Vocabulary",
			Subject:          "French",
			EstimatedMinutes: 30,
			Status:           task.StatusDone,
			Difficulty:       task.DifficultyEasy,
			CreatedAt:        now.Add(-72 * time.Hour),
		},
	}
}

func (s *TaskStorage) resetLocked() {
	s.storage = make(map[string]*task.Task)
	s.ids = []string{}
	for _, t := range fixtures(s.now().UTC()) {
		t.TimerSessions = []*task.TimerSession{}
		s.storage[t.ID] = t
		s.ids = append(s.ids, t.ID)
	}
	s.nextID = firstFreeID

	s.active = make(map[string]*task.TimerSession)
	s.sessions = []*task.TimerSession{}
	s.nextSessionID = 1
}

// Reset restores the seeded fixtures and drops all timer state.
func (s *TaskStorage) Reset(ctx context.Context) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.resetLocked()
	logger.Info("Repository: Storage reset to fixtures", zap.Int("tasks", len(s.ids)))
	return nil
}

// Create assigns the id, status, creation time and counters. Only title,
// subject, estimated minutes and difficulty are taken from taskToCreate.
func (s *TaskStorage) Create(ctx context.Context, taskToCreate *task.Task) (*task.Task, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	created := &task.Task{
		ID:               strconv.Itoa(s.nextID),
		Title:            taskToCreate.Title,
		Subject:          taskToCreate.Subject,
		EstimatedMinutes: taskToCreate.EstimatedMinutes,
		Difficulty:       taskToCreate.Difficulty,
		Status:           task.StatusTodo,
		CreatedAt:        s.now().UTC(),
		ActualMinutes:    0,
		TimerSessions:    []*task.TimerSession{},
	}
	s.nextID++

	s.storage[created.ID] = created
	s.ids = append(s.ids, created.ID)
	return created.Clone(), nil
}

func (s *TaskStorage) GetByID(ctx context.Context, id string) (*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	taskToGet, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return taskToGet.Clone(), nil
}

// Update applies options to the stored task in place and returns a copy.
func (s *TaskStorage) Update(ctx context.Context, id string, options ...task.TaskOption) (*task.Task, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	taskToUpdate, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	task.Apply(taskToUpdate, options...)
	return taskToUpdate.Clone(), nil
}

func (s *TaskStorage) Delete(ctx context.Context, id string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return repo.ErrNotFound
	}

	// a running session of a removed task is closed, there is nothing left to credit
	if session, ok := s.active[id]; ok {
		session.Finish(s.now().UTC())
		delete(s.active, id)
	}

	delete(s.storage, id)
	for ind, val := range s.ids {
		if val == id {
			s.ids = append(s.ids[:ind], s.ids[ind+1:]...)
			break
		}
	}
	return nil
}

// List returns copies of the tasks that match filter.
func (s *TaskStorage) List(ctx context.Context, filter repo.ListFilter) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*task.Task{}
	for _, id := range s.ids {
		taskToGet := s.storage[id]
		if filter.Status != "" && taskToGet.Status != filter.Status {
			continue
		}
		res = append(res, taskToGet.Clone())
	}

	switch filter.Sort {
	case repo.SortAsc:
		sort.SliceStable(res, func(i, j int) bool { return res[i].CreatedAt.Before(res[j].CreatedAt) })
	case repo.SortDesc:
		sort.SliceStable(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	}

	return res, nil
}
