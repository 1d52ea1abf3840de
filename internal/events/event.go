package events

import (
	"fmt"
	"strconv"
	"time"
)

type TrainingStart struct {
	SessionID string    `json:"sessionId"`
	WorkoutID string    `json:"workoutId"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
}

type TrainingFinish struct {
	SessionID      string    `json:"sessionId"`
	WorkoutID      string    `json:"workoutId"`
	Title          string    `json:"title"`
	Timestamp      time.Time `json:"timestamp"`
	Calories       int       `json:"calories"`
	ElapsedSeconds int       `json:"elapsedSeconds"`
}

type WeightReport struct {
	Timestamp time.Time `json:"timestamp"`
	Weight    float64   `json:"weight"`
	BMI       float64   `json:"bmi"`
}

// Event is the stored form of everything a user reports while training:
//   - training started (session and workout)
//   - training finished (calories burned, time spent)
//   - weight report (weight in kilos and the resulting BMI)
type Event struct {
	ID        int               `json:"id"`
	UID       string            `json:"uid"`
	Type      EventType         `json:"type"`
	Timestamp time.Time         `json:"timestamp"`
	Data      map[string]string `json:"data"`
}

func NewTrainingStartEvent(uid string, ts TrainingStart) Event {
	return Event{
		UID:       uid,
		Type:      EventTypeTrainingStarted,
		Timestamp: ts.Timestamp,
		Data: map[string]string{
			"session": ts.SessionID,
			"workout": ts.WorkoutID,
			"title":   ts.Title,
		},
	}
}

func NewTrainingFinishEvent(uid string, tf TrainingFinish) Event {
	return Event{
		UID:       uid,
		Type:      EventTypeTrainingFinished,
		Timestamp: tf.Timestamp,
		Data: map[string]string{
			"session":  tf.SessionID,
			"workout":  tf.WorkoutID,
			"title":    tf.Title,
			"calories": strconv.Itoa(tf.Calories),
			"elapsed":  strconv.Itoa(tf.ElapsedSeconds),
		},
	}
}

func NewWeightReportEvent(uid string, wr WeightReport) Event {
	return Event{
		UID:       uid,
		Type:      EventTypeWeightReport,
		Timestamp: wr.Timestamp,
		Data: map[string]string{
			"weight": fmt.Sprintf("%.1f", wr.Weight),
			"bmi":    fmt.Sprintf("%.1f", wr.BMI),
		},
	}
}

// EventType can be one of:
//   - training_started
//   - training_finished
//   - weight_report
type EventType string

const (
	EventTypeTrainingStarted  EventType = "training_started"
	EventTypeTrainingFinished EventType = "training_finished"
	EventTypeWeightReport     EventType = "weight_report"
)

func (et EventType) String() string {
	return string(et)
}

func (et EventType) IsValid() bool {
	switch et {
	case EventTypeTrainingStarted,
		EventTypeTrainingFinished,
		EventTypeWeightReport:
		return true
	default:
		return false
	}
}
