package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/2beens/fitforge/internal/events"
	"github.com/2beens/fitforge/internal/telemetry/metrics"
	"github.com/2beens/fitforge/internal/telemetry/tracing"
	"github.com/2beens/fitforge/internal/workouts"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var ErrNoSession = errors.New("no active session")

//go:generate mockgen -source=$GOFILE -destination=manager_mocks_test.go -package=session_test

type workoutFinder interface {
	Get(ctx context.Context, uid, id string) (workouts.Workout, error)
}

type trainingRecorder interface {
	AddTrainingStart(ctx context.Context, uid string, ts events.TrainingStart) (int, error)
	AddTrainingFinish(ctx context.Context, uid string, tf events.TrainingFinish) (int, error)
}

type NewManagerParams struct {
	Catalog        workoutFinder
	Reporter       Reporter
	Recorder       trainingRecorder
	NewTicker      TickerFactory
	RestDuration   time.Duration
	MetricsManager *metrics.Manager
}

// Manager keeps at most one session per signed in user. A session lives from
// the workout selection until it is finished or exited.
type Manager struct {
	mu             sync.Mutex
	sessions       map[string]*Controller
	startsRecorded map[string]bool

	catalog        workoutFinder
	reporter       Reporter
	recorder       trainingRecorder
	newTicker      TickerFactory
	restDuration   time.Duration
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewManager(params NewManagerParams) *Manager {
	return &Manager{
		sessions:       map[string]*Controller{},
		startsRecorded: map[string]bool{},
		catalog:        params.Catalog,
		reporter:       params.Reporter,
		recorder:       params.Recorder,
		newTicker:      params.NewTicker,
		restDuration:   params.RestDuration,
		metricsManager: params.MetricsManager,
		now:            time.Now,
	}
}

// Select starts a new session for workoutID, replacing the user's current one.
func (m *Manager) Select(ctx context.Context, uid, workoutID string) (_ Snapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "session.manager.select")
	defer tracing.EndSpanWithErrCheck(span, &err)
	span.SetAttributes(attribute.String("workout", workoutID))

	workout, err := m.catalog.Get(ctx, uid, workoutID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("find workout %s: %w", workoutID, err)
	}

	m.mu.Lock()
	c, ok := m.sessions[uid]
	if !ok {
		c = NewController(ControllerParams{
			UID:          uid,
			RestDuration: m.restDuration,
			NewTicker:    m.newTicker,
			Reporter:     m.reporter,
		})
	}
	m.mu.Unlock()

	previousID := c.Snapshot().ID
	if err := c.Select(workout); err != nil {
		return Snapshot{}, err
	}

	m.mu.Lock()
	m.sessions[uid] = c
	delete(m.startsRecorded, previousID)
	m.updateGaugeLocked()
	m.mu.Unlock()

	log.Debugf("session %s: %s selected workout %s", c.Snapshot().ID, uid, workoutID)
	return c.Snapshot(), nil
}

func (m *Manager) Current(uid string) (Snapshot, error) {
	c, err := m.controller(uid)
	if err != nil {
		return Snapshot{}, err
	}
	return c.Snapshot(), nil
}

// Start runs the session clock. The first start of a session is recorded as a
// training_started event.
func (m *Manager) Start(ctx context.Context, uid string) (Snapshot, error) {
	c, err := m.controller(uid)
	if err != nil {
		return Snapshot{}, err
	}
	if err := c.Start(); err != nil {
		return Snapshot{}, err
	}

	snap := c.Snapshot()
	m.recordStart(ctx, uid, snap)
	return snap, nil
}

func (m *Manager) Pause(uid string) (Snapshot, error) {
	return m.apply(uid, (*Controller).Pause)
}

// Next advances the exercise. Like Start it may be what starts the clock.
func (m *Manager) Next(ctx context.Context, uid string) (Snapshot, error) {
	snap, err := m.apply(uid, (*Controller).AdvanceExercise)
	if err != nil {
		return Snapshot{}, err
	}
	if snap.Running {
		m.recordStart(ctx, uid, snap)
	}
	return snap, nil
}

func (m *Manager) Prev(uid string) (Snapshot, error) {
	return m.apply(uid, (*Controller).RetreatExercise)
}

func (m *Manager) SkipRest(uid string) (Snapshot, error) {
	return m.apply(uid, (*Controller).SkipRest)
}

func (m *Manager) Reset(uid string) (Snapshot, error) {
	return m.apply(uid, (*Controller).Reset)
}

// Finish ends the user's session, reporting calories and recording a
// training_finished event.
func (m *Manager) Finish(ctx context.Context, uid string) (_ FinishResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "session.manager.finish")
	defer tracing.EndSpanWithErrCheck(span, &err)

	c, err := m.controller(uid)
	if err != nil {
		return FinishResult{}, err
	}

	result, err := c.Finish(ctx)
	if err != nil {
		return FinishResult{}, err
	}
	m.remove(uid, c, result.SessionID)
	span.SetAttributes(attribute.Int("calories", result.Calories))

	if m.metricsManager != nil {
		m.metricsManager.CounterSessionsFinished.Inc()
	}
	if m.recorder != nil {
		if _, err := m.recorder.AddTrainingFinish(ctx, uid, events.TrainingFinish{
			SessionID:      result.SessionID,
			WorkoutID:      result.Workout.ID,
			Title:          result.Workout.Title,
			Timestamp:      m.now(),
			Calories:       result.Calories,
			ElapsedSeconds: result.ElapsedSeconds,
		}); err != nil {
			log.Errorf("record training finish for %s: %s", uid, err)
		}
	}

	log.Debugf("session %s: %s finished, %d kcal", result.SessionID, uid, result.Calories)
	return result, nil
}

// Exit drops the user's session without reporting anything.
func (m *Manager) Exit(uid string) error {
	c, err := m.controller(uid)
	if err != nil {
		return err
	}
	id := c.Snapshot().ID
	c.Close()
	m.remove(uid, c, id)
	return nil
}

// CloseAll stops every session clock. Used on shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = map[string]*Controller{}
	m.startsRecorded = map[string]bool{}
	m.updateGaugeLocked()
	m.mu.Unlock()

	for _, c := range sessions {
		c.Close()
	}
}

func (m *Manager) ActiveSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) apply(uid string, op func(*Controller) error) (Snapshot, error) {
	c, err := m.controller(uid)
	if err != nil {
		return Snapshot{}, err
	}
	if err := op(c); err != nil {
		return Snapshot{}, err
	}
	return c.Snapshot(), nil
}

func (m *Manager) controller(uid string) (*Controller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.sessions[uid]
	if !ok {
		return nil, ErrNoSession
	}
	return c, nil
}

func (m *Manager) remove(uid string, c *Controller, sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// a concurrent select may have replaced the controller's session already
	if m.sessions[uid] == c {
		delete(m.sessions, uid)
	}
	delete(m.startsRecorded, sessionID)
	m.updateGaugeLocked()
}

func (m *Manager) recordStart(ctx context.Context, uid string, snap Snapshot) {
	if m.recorder == nil || snap.Workout == nil {
		return
	}

	m.mu.Lock()
	if m.startsRecorded[snap.ID] {
		m.mu.Unlock()
		return
	}
	m.startsRecorded[snap.ID] = true
	m.mu.Unlock()

	if _, err := m.recorder.AddTrainingStart(ctx, uid, events.TrainingStart{
		SessionID: snap.ID,
		WorkoutID: snap.Workout.ID,
		Title:     snap.Workout.Title,
		Timestamp: m.now(),
	}); err != nil {
		log.Errorf("record training start for %s: %s", uid, err)
	}
}

func (m *Manager) updateGaugeLocked() {
	if m.metricsManager != nil {
		m.metricsManager.GaugeActiveSessions.Set(float64(len(m.sessions)))
	}
}
