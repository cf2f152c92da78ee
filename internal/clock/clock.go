// Package clock implements the local focus timer: a stopwatch that can also
// cycle through Pomodoro focus and break phases.
//
// Elapsed time is derived from a wall-clock anchor on every tick rather than
// accumulated, so missed or late ticks do not cause drift.
package clock

import (
	"context"
	"sync"
	"time"

	"studyBuddy/internal/logger"
	"studyBuddy/internal/models/task"

	"go.uber.org/zap"
)

type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

type Phase string

const (
	PhaseFocus Phase = "focus"
	PhaseBreak Phase = "break"
)

const (
	FocusDuration = 25 * time.Minute
	BreakDuration = 5 * time.Minute

	DefaultTickInterval = time.Second
)

type Clock struct {
	mu sync.Mutex

	now           func() time.Time
	tickInterval  time.Duration
	onPhaseChange func(Phase)

	state     State
	mode      task.TimerMode
	phase     Phase
	anchor    time.Time
	elapsed   time.Duration
	intervals int

	// generation identifies the current tick source; ticks from an older one are ignored
	generation int
	cancelTick context.CancelFunc
}

type Option func(*Clock)

// WithNow replaces time.Now.
func WithNow(now func() time.Time) Option {
	return func(c *Clock) {
		c.now = now
	}
}

// WithTickInterval sets the cadence of the background ticker. Zero disables
// it, leaving the caller to drive the clock with Tick.
func WithTickInterval(d time.Duration) Option {
	return func(c *Clock) {
		c.tickInterval = d
	}
}

func WithMode(mode task.TimerMode) Option {
	return func(c *Clock) {
		c.mode = mode
	}
}

// OnPhaseChange registers fn to be called with the new phase after every
// Pomodoro phase flip. fn runs without the clock's lock held and may call
// back into the clock.
func OnPhaseChange(fn func(Phase)) Option {
	return func(c *Clock) {
		c.onPhaseChange = fn
	}
}

func New(opts ...Option) *Clock {
	c := &Clock{
		now:          time.Now,
		tickInterval: DefaultTickInterval,
		state:        StateIdle,
		mode:         task.TimerModeNormal,
		phase:        PhaseFocus,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start moves idle or paused to running. Time already elapsed is kept.
func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateRunning {
		return
	}

	c.anchor = c.now().Add(-c.elapsed)
	c.state = StateRunning
	c.startTickLocked()

	logger.Debug("Clock: Started",
		zap.String("mode", string(c.mode)),
		zap.String("phase", string(c.phase)),
		zap.Int("elapsed_seconds", seconds(c.elapsed)))
}

// Pause freezes elapsed time. Time since the last tick is still counted.
func (c *Clock) Pause() {
	c.mu.Lock()

	if c.state != StateRunning {
		c.mu.Unlock()
		return
	}

	c.stopTickLocked()
	flipped := c.advanceLocked(c.now())
	c.state = StatePaused
	phase := c.phase
	c.mu.Unlock()

	if flipped {
		c.notify(phase)
	}
}

// Stop returns to idle and clears elapsed time, phase and interval count. The
// returned snapshot describes the clock just before it was cleared.
func (c *Clock) Stop() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTickLocked()
	if c.state == StateRunning {
		c.elapsed = c.now().Sub(c.anchor)
	}
	last := c.snapshotLocked()

	c.state = StateIdle
	c.elapsed = 0
	c.phase = PhaseFocus
	c.intervals = 0
	c.anchor = time.Time{}

	return last
}

// Reset zeroes elapsed time in the current phase without changing state.
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.elapsed = 0
	c.anchor = c.now()
}

// SetMode switches between normal and pomodoro. A running clock keeps
// counting and the target follows the new mode from the next read.
func (c *Clock) SetMode(mode task.TimerMode) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mode = mode
}

// Tick recomputes elapsed time from the anchor and flips the Pomodoro phase
// when its target is reached. It does nothing unless the clock is running.
func (c *Clock) Tick() Snapshot {
	return c.tick(-1)
}

func (c *Clock) tick(generation int) Snapshot {
	c.mu.Lock()

	if c.state != StateRunning || (generation >= 0 && generation != c.generation) {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap
	}

	flipped := c.advanceLocked(c.now())
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if flipped {
		c.notify(snap.Phase)
	}
	return snap
}

// advanceLocked performs at most one phase flip. Overshoot past the target is
// carried into the new phase, clamped to that phase's length, so a clock that
// was suspended for a long time catches up one phase per tick.
func (c *Clock) advanceLocked(now time.Time) bool {
	c.elapsed = now.Sub(c.anchor)
	if c.elapsed < 0 {
		c.elapsed = 0
		c.anchor = now
	}

	target := c.targetLocked()
	if c.mode != task.TimerModePomodoro || target == 0 || c.elapsed < target {
		return false
	}

	overshoot := c.elapsed - target
	if c.phase == PhaseFocus {
		c.phase = PhaseBreak
		c.intervals++
	} else {
		c.phase = PhaseFocus
	}

	if next := c.targetLocked(); overshoot > next {
		overshoot = next
	}
	c.elapsed = overshoot
	c.anchor = now.Add(-overshoot)

	logger.Debug("Clock: Phase changed",
		zap.String("phase", string(c.phase)),
		zap.Int("intervals", c.intervals))
	return true
}

func (c *Clock) targetLocked() time.Duration {
	if c.mode != task.TimerModePomodoro {
		return 0
	}
	if c.phase == PhaseBreak {
		return BreakDuration
	}
	return FocusDuration
}

func (c *Clock) notify(phase Phase) {
	if c.onPhaseChange != nil {
		c.onPhaseChange(phase)
	}
}

func (c *Clock) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshotLocked()
}

func (c *Clock) snapshotLocked() Snapshot {
	return Snapshot{
		State:          c.state,
		Mode:           c.mode,
		Phase:          c.phase,
		ElapsedSeconds: seconds(c.elapsed),
		Intervals:      c.intervals,
		TargetSeconds:  seconds(c.targetLocked()),
	}
}

func seconds(d time.Duration) int {
	return int(d / time.Second)
}
