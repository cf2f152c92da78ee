package inmemory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"studyBuddy/internal/models/task"
	"studyBuddy/internal/repository"
	"studyBuddy/internal/repository/task/inmemory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	cur time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{cur: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(d)
}

func newStorage() (*inmemory.TaskStorage, *fakeClock) {
	clock := newFakeClock()
	return inmemory.NewTaskStorage(inmemory.WithClock(clock.Now)), clock
}

func newTask(title string) *task.Task {
	return &task.Task{
		Title:            title,
		Subject:          "Testing",
		EstimatedMinutes: 30,
		Difficulty:       task.DifficultyMedium,
	}
}

// TestTaskStorage_Fixtures checks the seeded state
func TestTaskStorage_Fixtures(t *testing.T) {
	ctx := context.Background()
	storage, _ := newStorage()

	tasks, err := storage.List(ctx, repository.ListFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 4)

	for i, tk := range tasks {
		assert.Equal(t, fmt.Sprint(i+1), tk.ID)
		assert.Equal(t, 0, tk.ActualMinutes)
		assert.NotNil(t, tk.TimerSessions)
		assert.Empty(t, tk.TimerSessions)
		assert.NotEmpty(t, tk.Difficulty)
	}
	assert.Equal(t, task.StatusInProgress, tasks[1].Status)
	assert.Equal(t, task.StatusDone, tasks[3].Status)

	require.NoError(t, storage.HealthCheck(ctx))
}

// TestTaskStorage_Create checks id assignment and defaults
func TestTaskStorage_Create(t *testing.T) {
	ctx := context.Background()
	storage, clock := newStorage()

	input := newTask("Test")
	input.ID = "999"
	input.Status = task.StatusDone
	input.ActualMinutes = 50

	created, err := storage.Create(ctx, input)
	require.NoError(t, err)

	assert.Equal(t, "5", created.ID)
	assert.Equal(t, task.StatusTodo, created.Status)
	assert.Equal(t, 0, created.ActualMinutes)
	assert.Equal(t, clock.Now(), created.CreatedAt)
	assert.Empty(t, created.TimerSessions)
	assert.Equal(t, "Test", created.Title)

	second, err := storage.Create(ctx, newTask("Second"))
	require.NoError(t, err)
	assert.Equal(t, "6", second.ID)

	retrieved, err := storage.GetByID(ctx, "5")
	require.NoError(t, err)
	assert.Equal(t, "Test", retrieved.Title)
}

// TestTaskStorage_GetByID checks lookups and the not found sentinel
func TestTaskStorage_GetByID(t *testing.T) {
	ctx := context.Background()
	storage, _ := newStorage()

	tk, err := storage.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Complete Calculus Problem Set", tk.Title)

	_, err = storage.GetByID(ctx, "999")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// TestTaskStorage_ReturnsCopies checks that callers cannot reach internal state
func TestTaskStorage_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	storage, _ := newStorage()

	_, err := storage.StartTimer(ctx, "1", task.TimerModeNormal)
	require.NoError(t, err)

	list, err := storage.List(ctx, repository.ListFilter{})
	require.NoError(t, err)
	list[0].Title = "changed"
	list[0].TimerSessions[0].DurationSeconds = 500
	_ = append(list, &task.Task{ID: "x"})

	got, err := storage.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Complete Calculus Problem Set", got.Title)
	assert.Equal(t, 0, got.TimerSessions[0].DurationSeconds)

	got.Status = task.StatusDone
	again, err := storage.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, task.StatusTodo, again.Status)
}

// TestTaskStorage_Update checks that a status overwrite leaves other fields alone
func TestTaskStorage_Update(t *testing.T) {
	ctx := context.Background()
	storage, _ := newStorage()
	rating := 3

	before, err := storage.GetByID(ctx, "1")
	require.NoError(t, err)

	updated, err := storage.Update(ctx, "1", task.WithStatus(task.StatusDone), task.WithFunRating(&rating))
	require.NoError(t, err)
	assert.Equal(t, task.StatusDone, updated.Status)
	require.NotNil(t, updated.FunRating)
	assert.Equal(t, 3, *updated.FunRating)
	assert.Equal(t, before.Title, updated.Title)
	assert.Equal(t, before.Subject, updated.Subject)
	assert.Equal(t, before.EstimatedMinutes, updated.EstimatedMinutes)
	assert.Equal(t, before.CreatedAt, updated.CreatedAt)

	_, err = storage.Update(ctx, "999", task.WithStatus(task.StatusDone))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// TestTaskStorage_Delete checks removal
func TestTaskStorage_Delete(t *testing.T) {
	ctx := context.Background()
	storage, _ := newStorage()

	err := storage.Delete(ctx, "999")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, storage.Delete(ctx, "2"))

	tasks, err := storage.List(ctx, repository.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, tasks, 3)

	_, err = storage.GetByID(ctx, "2")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// neighbours stay reachable and ordered
	assert.Equal(t, []string{"1", "3", "4"}, ids(tasks))

	err = storage.Delete(ctx, "2")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// TestTaskStorage_DeleteClosesActiveTimer checks that no open session outlives its task
func TestTaskStorage_DeleteClosesActiveTimer(t *testing.T) {
	ctx := context.Background()
	storage, clock := newStorage()

	_, err := storage.StartTimer(ctx, "3", task.TimerModePomodoro)
	require.NoError(t, err)
	clock.Advance(10 * time.Second)

	require.NoError(t, storage.Delete(ctx, "3"))

	_, err = storage.ActiveTimer(ctx, "3")
	assert.ErrorIs(t, err, repository.ErrNoActiveTimer)

	sessions, err := storage.Sessions(ctx, "3")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.NotNil(t, sessions[0].EndedAt)
	assert.Equal(t, 10, sessions[0].DurationSeconds)
}

// TestTaskStorage_List checks filtering and sorting
func TestTaskStorage_List(t *testing.T) {
	ctx := context.Background()
	storage, _ := newStorage()

	tests := []struct {
		name   string
		filter repository.ListFilter
		want   []string
	}{
		{"insertion order", repository.ListFilter{}, []string{"1", "2", "3", "4"}},
		{"todo only", repository.ListFilter{Status: task.StatusTodo}, []string{"1", "3"}},
		{"done only", repository.ListFilter{Status: task.StatusDone}, []string{"4"}},
		{"newest first", repository.ListFilter{Sort: repository.SortDesc}, []string{"3", "1", "2", "4"}},
		{"oldest first", repository.ListFilter{Sort: repository.SortAsc}, []string{"4", "2", "1", "3"}},
		{"todo newest first", repository.ListFilter{Status: task.StatusTodo, Sort: repository.SortDesc}, []string{"3", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, err := storage.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(tasks))
		})
	}
}

// TestTaskStorage_Reset checks that fixtures, counters and timers are restored
func TestTaskStorage_Reset(t *testing.T) {
	ctx := context.Background()
	storage, _ := newStorage()

	_, err := storage.Create(ctx, newTask("A"))
	require.NoError(t, err)
	_, err = storage.Create(ctx, newTask("B"))
	require.NoError(t, err)
	require.NoError(t, storage.Delete(ctx, "1"))
	_, err = storage.StartTimer(ctx, "2", task.TimerModeNormal)
	require.NoError(t, err)

	require.NoError(t, storage.Reset(ctx))

	tasks, err := storage.List(ctx, repository.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(tasks))

	_, err = storage.ActiveTimer(ctx, "2")
	assert.ErrorIs(t, err, repository.ErrNoActiveTimer)
	sessions, err := storage.Sessions(ctx, "2")
	require.NoError(t, err)
	assert.Empty(t, sessions)

	created, err := storage.Create(ctx, newTask("after reset"))
	require.NoError(t, err)
	assert.Equal(t, "5", created.ID)

	session, err := storage.StartTimer(ctx, "1", task.TimerModeNormal)
	require.NoError(t, err)
	assert.Equal(t, "1", session.ID)
}

// TestTaskStorage_StartTimer checks session creation
func TestTaskStorage_StartTimer(t *testing.T) {
	ctx := context.Background()
	storage, clock := newStorage()

	_, err := storage.StartTimer(ctx, "999", task.TimerModeNormal)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	session, err := storage.StartTimer(ctx, "1", task.TimerModePomodoro)
	require.NoError(t, err)
	assert.Equal(t, "1", session.ID)
	assert.Equal(t, "1", session.TaskID)
	assert.Equal(t, task.TimerModePomodoro, session.Mode)
	assert.Equal(t, clock.Now(), session.StartedAt)
	assert.Nil(t, session.EndedAt)
	assert.Equal(t, 0, session.DurationSeconds)
	assert.Equal(t, 0, session.PomodoroIntervals)

	active, err := storage.ActiveTimer(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, session.ID, active.ID)

	tk, err := storage.GetByID(ctx, "1")
	require.NoError(t, err)
	require.Len(t, tk.TimerSessions, 1)
	assert.Equal(t, session.ID, tk.TimerSessions[0].ID)
}

// TestTaskStorage_StartStopsPrevious checks the stop-before-start transaction
func TestTaskStorage_StartStopsPrevious(t *testing.T) {
	ctx := context.Background()
	storage, clock := newStorage()

	first, err := storage.StartTimer(ctx, "1", task.TimerModeNormal)
	require.NoError(t, err)

	clock.Advance(61 * time.Second)

	second, err := storage.StartTimer(ctx, "1", task.TimerModeNormal)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	sessions, err := storage.Sessions(ctx, "1")
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	require.NotNil(t, sessions[0].EndedAt)
	assert.False(t, sessions[0].EndedAt.After(sessions[1].StartedAt))
	assert.Equal(t, 61, sessions[0].DurationSeconds)
	assert.Nil(t, sessions[1].EndedAt)

	tk, err := storage.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 2, tk.ActualMinutes)

	openCount := 0
	for _, s := range tk.TimerSessions {
		if s.Active() {
			openCount++
		}
	}
	assert.Equal(t, 1, openCount)
}

// TestTaskStorage_StopTimer checks duration accounting
func TestTaskStorage_StopTimer(t *testing.T) {
	tests := []struct {
		name            string
		elapsed         time.Duration
		expectedSeconds int
		expectedMinutes int
	}{
		{"zero elapsed", 0, 0, 0},
		{"sub-second floors to zero", 900 * time.Millisecond, 0, 0},
		{"one second", time.Second, 1, 1},
		{"exactly a minute", time.Minute, 60, 1},
		{"just over a minute", 61 * time.Second, 61, 2},
		{"twenty five minutes", 25 * time.Minute, 1500, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			storage, clock := newStorage()

			_, err := storage.StartTimer(ctx, "2", task.TimerModeNormal)
			require.NoError(t, err)
			clock.Advance(tt.elapsed)

			stopped, err := storage.StopTimer(ctx, "2")
			require.NoError(t, err)
			require.NotNil(t, stopped.EndedAt)
			assert.Equal(t, tt.expectedSeconds, stopped.DurationSeconds)

			tk, err := storage.GetByID(ctx, "2")
			require.NoError(t, err)
			assert.Equal(t, tt.expectedMinutes, tk.ActualMinutes)

			_, err = storage.StopTimer(ctx, "2")
			assert.ErrorIs(t, err, repository.ErrNoActiveTimer)
		})
	}
}

// TestTaskStorage_ActualMinutesAccumulate checks that sessions add up
func TestTaskStorage_ActualMinutesAccumulate(t *testing.T) {
	ctx := context.Background()
	storage, clock := newStorage()

	for i := 0; i < 3; i++ {
		_, err := storage.StartTimer(ctx, "4", task.TimerModeNormal)
		require.NoError(t, err)
		clock.Advance(90 * time.Second)
		_, err = storage.StopTimer(ctx, "4")
		require.NoError(t, err)
	}

	tk, err := storage.GetByID(ctx, "4")
	require.NoError(t, err)
	assert.Equal(t, 6, tk.ActualMinutes)

	sessions, err := storage.Sessions(ctx, "4")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, []string{sessions[0].ID, sessions[1].ID, sessions[2].ID})

	other, err := storage.Sessions(ctx, "1")
	require.NoError(t, err)
	assert.Empty(t, other)

	unknown, err := storage.Sessions(ctx, "999")
	require.NoError(t, err)
	assert.NotNil(t, unknown)
	assert.Empty(t, unknown)
}

// TestTaskStorage_ConcurrentAccess checks that parallel writers keep the invariants
func TestTaskStorage_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTaskStorage()
	taskCount := 100
	goroutines := 10

	var wg sync.WaitGroup
	errs := make(chan error, taskCount*2)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for j := 0; j < taskCount/goroutines; j++ {
				if _, err := storage.Create(ctx, newTask(fmt.Sprintf("Task %d-%d", workerID, j))); err != nil {
					errs <- err
				}
				if _, err := storage.StartTimer(ctx, "1", task.TimerModeNormal); err != nil {
					errs <- err
				}
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	tasks, err := storage.List(ctx, repository.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, tasks, taskCount+4)

	seen := make(map[string]bool)
	for _, tk := range tasks {
		assert.False(t, seen[tk.ID], "duplicate id %s", tk.ID)
		seen[tk.ID] = true
	}

	sessions, err := storage.Sessions(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, sessions, taskCount)
	open := 0
	for _, s := range sessions {
		if s.Active() {
			open++
		}
	}
	assert.Equal(t, 1, open)
}

func ids(tasks []*task.Task) []string {
	res := make([]string, len(tasks))
	for i, tk := range tasks {
		res[i] = tk.ID
	}
	return res
}
