package session

import (
	"fmt"

	"github.com/2beens/fitforge/internal/workouts"
)

type State string

const (
	StateIdle    State = "idle"
	StatePaused  State = "paused"
	StateRunning State = "running"
	StateResting State = "resting"
)

// Snapshot is a point in time copy of a session.
type Snapshot struct {
	ID              string            `json:"id"`
	State           State             `json:"state"`
	Workout         *workouts.Workout `json:"workout,omitempty"`
	ElapsedSeconds  int               `json:"elapsedSeconds"`
	Clock           string            `json:"clock"`
	ExerciseIndex   int               `json:"exerciseIndex"`
	CurrentExercise string            `json:"currentExercise,omitempty"`
	Running         bool              `json:"running"`
	Resting         bool              `json:"resting"`
	RestRemaining   int               `json:"restRemaining"`
	RestDuration    int               `json:"restDuration"`
}

// IsLastExercise reports whether advancing is no longer possible.
func (s Snapshot) IsLastExercise() bool {
	return s.Workout != nil && s.ExerciseIndex >= s.Workout.LastExerciseIndex()
}

// FinishResult is what a finished session leaves behind.
type FinishResult struct {
	SessionID      string           `json:"sessionId"`
	Workout        workouts.Workout `json:"workout"`
	ElapsedSeconds int              `json:"elapsedSeconds"`
	Calories       int              `json:"calories"`
}

// FormatClock renders seconds as mm:ss. Minutes are not wrapped at an hour.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
