package workouts

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrMissingFields   = errors.New("all fields are required")
	ErrInvalidCategory = errors.New("category must be gym or home")
)

type Category string

const (
	CategoryGym  Category = "gym"
	CategoryHome Category = "home"
)

func (c Category) IsValid() bool {
	return c == CategoryGym || c == CategoryHome
}

// OrDefault returns the category a workout is listed under; workouts
// without one are home workouts.
func (c Category) OrDefault() Category {
	if c == "" {
		return CategoryHome
	}
	return c
}

type Workout struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Category    Category `json:"category,omitempty" yaml:"category"`
	MuscleGroup string   `json:"muscleGroup,omitempty" yaml:"muscleGroup"`
	Exercises   []string `json:"exercises" yaml:"exercises"`
	Duration    string   `json:"duration" yaml:"duration"`
	Calories    string   `json:"calories" yaml:"calories"`
	Custom      bool     `json:"custom,omitempty" yaml:"-"`
	CreatedAt   string   `json:"createdAt,omitempty" yaml:"-"`
}

// LastExerciseIndex returns the index of the final exercise, -1 for an empty workout.
func (w Workout) LastExerciseIndex() int {
	return len(w.Exercises) - 1
}

// CustomWorkoutInput is what a user submits when creating or editing a custom workout.
// Exercises may come as a list or as one comma separated string.
type CustomWorkoutInput struct {
	Title         string   `json:"title"`
	Category      Category `json:"category"`
	MuscleGroup   string   `json:"muscleGroup"`
	Duration      string   `json:"duration"`
	Calories      string   `json:"calories"`
	Exercises     []string `json:"exercises"`
	ExercisesText string   `json:"exercisesText"`
}

// Normalize trims all fields and merges ExercisesText into Exercises.
func (in CustomWorkoutInput) Normalize() CustomWorkoutInput {
	out := CustomWorkoutInput{
		Title:       strings.TrimSpace(in.Title),
		Category:    Category(strings.ToLower(strings.TrimSpace(string(in.Category)))),
		MuscleGroup: strings.TrimSpace(in.MuscleGroup),
		Duration:    strings.TrimSpace(in.Duration),
		Calories:    strings.TrimSpace(in.Calories),
	}
	for _, e := range in.Exercises {
		if e = strings.TrimSpace(e); e != "" {
			out.Exercises = append(out.Exercises, e)
		}
	}
	out.Exercises = append(out.Exercises, SplitExercises(in.ExercisesText)...)
	return out
}

func (in CustomWorkoutInput) Validate() error {
	if in.Title == "" || in.MuscleGroup == "" || in.Duration == "" || in.Calories == "" || len(in.Exercises) == 0 {
		return ErrMissingFields
	}
	if in.Category != "" && !in.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, in.Category)
	}
	return nil
}

// SplitExercises splits a comma separated list, dropping blanks.
func SplitExercises(s string) []string {
	var exercises []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			exercises = append(exercises, part)
		}
	}
	return exercises
}
