package task_test

import (
	"testing"
	"time"

	"studyBuddy/internal/models/task"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in     string
		want   task.Status
		wantOK bool
	}{
		{"todo", task.StatusTodo, true},
		{"IN-PROGRESS", task.StatusInProgress, true},
		{" Done ", task.StatusDone, true},
		{"in progress", "", false},
		{"invalid-status", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := task.ParseStatus(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDifficultyAndMode(t *testing.T) {
	d, ok := task.ParseDifficulty("Hard")
	assert.True(t, ok)
	assert.Equal(t, task.DifficultyHard, d)

	_, ok = task.ParseDifficulty("super-hard")
	assert.False(t, ok)

	m, ok := task.ParseTimerMode("POMODORO")
	assert.True(t, ok)
	assert.Equal(t, task.TimerModePomodoro, m)

	_, ok = task.ParseTimerMode("turbo")
	assert.False(t, ok)
}

func TestValidFunRating(t *testing.T) {
	for r := 1; r <= 5; r++ {
		assert.True(t, task.ValidFunRating(r), r)
	}
	assert.False(t, task.ValidFunRating(0))
	assert.False(t, task.ValidFunRating(6))
	assert.False(t, task.ValidFunRating(-1))
}

func TestMinutesFromSeconds(t *testing.T) {
	tests := []struct {
		seconds int
		minutes int
	}{
		{0, 0},
		{1, 1},
		{59, 1},
		{60, 1},
		{61, 2},
		{3600, 60},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.minutes, task.MinutesFromSeconds(tt.seconds), "seconds=%d", tt.seconds)
	}
}

func TestTimerSession_Finish(t *testing.T) {
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	t.Run("floors partial seconds", func(t *testing.T) {
		s := &task.TimerSession{StartedAt: start}
		require.True(t, s.Active())

		minutes := s.Finish(start.Add(90*time.Second + 900*time.Millisecond))
		assert.False(t, s.Active())
		assert.Equal(t, 90, s.DurationSeconds)
		assert.Equal(t, 2, minutes)
	})

	t.Run("zero elapsed adds nothing", func(t *testing.T) {
		s := &task.TimerSession{StartedAt: start}
		assert.Equal(t, 0, s.Finish(start))
		assert.Equal(t, 0, s.DurationSeconds)
	})

	t.Run("end before start is clamped", func(t *testing.T) {
		s := &task.TimerSession{StartedAt: start}
		assert.Equal(t, 0, s.Finish(start.Add(-time.Minute)))
		assert.Equal(t, start, *s.EndedAt)
	})
}

func TestTask_Clone(t *testing.T) {
	rating := 4
	ended := time.Now()
	orig := &task.Task{
		ID:        "1",
		FunRating: &rating,
		TimerSessions: []*task.TimerSession{
			{ID: "1", TaskID: "1", EndedAt: &ended},
		},
	}

	c := orig.Clone()
	*c.FunRating = 1
	c.TimerSessions[0].DurationSeconds = 99
	*c.TimerSessions[0].EndedAt = ended.Add(time.Hour)
	c.TimerSessions = append(c.TimerSessions, &task.TimerSession{ID: "2"})

	assert.Equal(t, 4, *orig.FunRating)
	assert.Equal(t, 0, orig.TimerSessions[0].DurationSeconds)
	assert.Equal(t, ended, *orig.TimerSessions[0].EndedAt)
	assert.Len(t, orig.TimerSessions, 1)
}

func TestTaskOptions(t *testing.T) {
	rating := 5
	tk := &task.Task{Status: task.StatusTodo}

	task.Apply(tk, task.WithStatus(task.StatusDone), task.WithFunRating(&rating))
	assert.Equal(t, task.StatusDone, tk.Status)
	require.NotNil(t, tk.FunRating)
	assert.Equal(t, 5, *tk.FunRating)

	// done without a rating keeps the existing one
	task.Apply(tk, task.WithStatus(task.StatusDone), task.WithFunRating(nil))
	require.NotNil(t, tk.FunRating)

	task.Apply(tk, task.WithStatus(task.StatusInProgress))
	assert.Equal(t, task.StatusInProgress, tk.Status)
	assert.Nil(t, tk.FunRating)

	assert.Nil(t, task.WithStatus(""))
}
