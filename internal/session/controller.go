package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/2beens/fitforge/internal/calories"
	"github.com/2beens/fitforge/internal/workouts"

	"github.com/google/uuid"
)

var (
	ErrNoWorkout    = errors.New("no workout selected")
	ErrEmptyWorkout = errors.New("workout has no exercises")
)

const (
	DefaultRestDuration = 60 * time.Second
	tickInterval        = time.Second
)

// Reporter turns the calorie label of a finished workout into an estimate,
// persisting it where it can.
type Reporter interface {
	Report(ctx context.Context, uid, label string) int
}

type ControllerParams struct {
	UID          string
	RestDuration time.Duration
	NewTicker    TickerFactory
	Reporter     Reporter
	// OnTick, if set, receives the session state after every clock tick. It
	// runs on the ticker goroutine and must not pause, reset, finish or close
	// the controller.
	OnTick func(Snapshot)
}

// Controller runs one guided workout session:
//
//	idle -> paused (selected) -> running <-> resting -> idle
//
// All mutation happens under mu. While the session is running the controller
// owns exactly one ticker goroutine; leaving the running state stops it and
// waits for it to exit, and a tick that raced the stop is dropped.
type Controller struct {
	mu sync.Mutex

	uid          string
	restDuration int
	newTicker    TickerFactory
	reporter     Reporter
	onTick       func(Snapshot)

	id            string
	workout       *workouts.Workout
	elapsed       int
	index         int
	running       bool
	resting       bool
	restRemaining int

	ticker Ticker
	stop   chan struct{}
	done   chan struct{}
}

func NewController(params ControllerParams) *Controller {
	restDuration := params.RestDuration
	if restDuration <= 0 {
		restDuration = DefaultRestDuration
	}
	newTicker := params.NewTicker
	if newTicker == nil {
		newTicker = NewTimeTicker
	}
	var reporter Reporter = calories.Estimator{}
	if params.Reporter != nil {
		reporter = params.Reporter
	}

	return &Controller{
		uid:          params.UID,
		restDuration: int(restDuration / time.Second),
		newTicker:    newTicker,
		reporter:     reporter,
		onTick:       params.OnTick,
	}
}

// Select makes w the session's workout and rewinds everything. A running clock is stopped.
func (c *Controller) Select(w workouts.Workout) error {
	if len(w.Exercises) == 0 {
		return ErrEmptyWorkout
	}

	c.mu.Lock()
	done := c.stopTickerLocked()
	c.id = uuid.NewString()
	c.workout = &w
	c.clearLocked()
	c.mu.Unlock()

	waitStopped(done)
	return nil
}

// Start runs the clock. Starting an already running session changes nothing.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.workout == nil {
		return ErrNoWorkout
	}
	if c.running {
		return nil
	}
	c.running = true
	c.startTickerLocked()
	return nil
}

// Pause stops the clock, keeping elapsed time, exercise and any rest countdown.
func (c *Controller) Pause() error {
	c.mu.Lock()
	if c.workout == nil {
		c.mu.Unlock()
		return ErrNoWorkout
	}
	c.running = false
	done := c.stopTickerLocked()
	c.mu.Unlock()

	waitStopped(done)
	return nil
}

// Tick advances the session by one second: the rest countdown while resting,
// the elapsed time otherwise. A session that is not running does not move.
func (c *Controller) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tickLocked()
}

// AdvanceExercise moves to the next exercise and starts a rest period, running
// the clock if it was paused. On the last exercise it does nothing.
func (c *Controller) AdvanceExercise() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.workout == nil {
		return ErrNoWorkout
	}
	if c.index >= c.workout.LastExerciseIndex() {
		return nil
	}

	c.index++
	c.resting = true
	c.restRemaining = c.restDuration
	if !c.running {
		c.running = true
		c.startTickerLocked()
	}
	return nil
}

// RetreatExercise goes back one exercise without touching the clock or the rest state.
func (c *Controller) RetreatExercise() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.workout == nil {
		return ErrNoWorkout
	}
	if c.index > 0 {
		c.index--
	}
	return nil
}

func (c *Controller) SkipRest() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.workout == nil {
		return ErrNoWorkout
	}
	c.resting = false
	c.restRemaining = 0
	return nil
}

// Reset rewinds the session to its first exercise with a stopped clock.
func (c *Controller) Reset() error {
	c.mu.Lock()
	if c.workout == nil {
		c.mu.Unlock()
		return ErrNoWorkout
	}
	done := c.stopTickerLocked()
	c.clearLocked()
	c.mu.Unlock()

	waitStopped(done)
	return nil
}

// Finish ends the session, reports the workout's calories and leaves the
// controller idle. The clock is stopped before the report is made.
func (c *Controller) Finish(ctx context.Context) (FinishResult, error) {
	c.mu.Lock()
	if c.workout == nil {
		c.mu.Unlock()
		return FinishResult{}, ErrNoWorkout
	}
	done := c.stopTickerLocked()
	result := FinishResult{
		SessionID:      c.id,
		Workout:        *c.workout,
		ElapsedSeconds: c.elapsed,
	}
	c.idleLocked()
	c.mu.Unlock()

	waitStopped(done)
	result.Calories = c.reporter.Report(ctx, c.uid, result.Workout.Calories)
	return result, nil
}

// Close leaves the session without reporting anything.
func (c *Controller) Close() {
	c.mu.Lock()
	done := c.stopTickerLocked()
	c.idleLocked()
	c.mu.Unlock()

	waitStopped(done)
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:             c.id,
		State:          c.stateLocked(),
		ElapsedSeconds: c.elapsed,
		Clock:          FormatClock(c.elapsed),
		ExerciseIndex:  c.index,
		Running:        c.running,
		Resting:        c.resting,
		RestRemaining:  c.restRemaining,
		RestDuration:   c.restDuration,
	}
	if c.workout != nil {
		w := *c.workout
		snap.Workout = &w
		snap.CurrentExercise = w.Exercises[c.index]
	}
	return snap
}

func (c *Controller) stateLocked() State {
	switch {
	case c.workout == nil:
		return StateIdle
	case !c.running:
		return StatePaused
	case c.resting:
		return StateResting
	default:
		return StateRunning
	}
}

func (c *Controller) tickLocked() {
	if c.workout == nil || !c.running {
		return
	}
	if c.resting {
		if c.restRemaining <= 1 {
			c.restRemaining = 0
			c.resting = false
		} else {
			c.restRemaining--
		}
		return
	}
	c.elapsed++
}

func (c *Controller) clearLocked() {
	c.elapsed = 0
	c.index = 0
	c.running = false
	c.resting = false
	c.restRemaining = 0
}

func (c *Controller) idleLocked() {
	c.clearLocked()
	c.id = ""
	c.workout = nil
}

func (c *Controller) startTickerLocked() {
	if c.ticker != nil {
		return
	}
	t := c.newTicker(tickInterval)
	stop := make(chan struct{})
	done := make(chan struct{})
	c.ticker, c.stop, c.done = t, stop, done
	go c.loop(t, stop, done)
}

// stopTickerLocked stops the running ticker, if any, and returns a channel
// closed once its goroutine is gone. The caller must release mu before
// waiting on it.
func (c *Controller) stopTickerLocked() <-chan struct{} {
	if c.ticker == nil {
		return nil
	}
	c.ticker.Stop()
	close(c.stop)
	done := c.done
	c.ticker, c.stop, c.done = nil, nil, nil
	return done
}

func (c *Controller) loop(t Ticker, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case <-stop:
			return
		case <-t.C():
			c.tickFromLoop(stop)
		}
	}
}

func (c *Controller) tickFromLoop(stop <-chan struct{}) {
	c.mu.Lock()
	if c.stop != stop {
		// stale tick from a ticker that was stopped meanwhile
		c.mu.Unlock()
		return
	}
	c.tickLocked()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if c.onTick != nil {
		c.onTick(snap)
	}
}

func waitStopped(done <-chan struct{}) {
	if done != nil {
		<-done
	}
}
