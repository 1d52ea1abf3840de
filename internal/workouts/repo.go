package workouts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/fitforge/internal/docstore"
	"github.com/2beens/fitforge/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

type documentStore interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, in any) (string, error)
	Put(ctx context.Context, path string, in any) error
	Delete(ctx context.Context, path string) error
	List(ctx context.Context, path string) ([]string, map[string]json.RawMessage, error)
}

// customRecord is the stored shape of a custom workout. ClientID is a unix
// millisecond stamp written for older clients that key workouts by it.
type customRecord struct {
	ClientID    int64    `json:"id"`
	Title       string   `json:"title"`
	Category    Category `json:"category,omitempty"`
	MuscleGroup string   `json:"muscleGroup"`
	Duration    string   `json:"duration"`
	Calories    string   `json:"calories"`
	Exercises   []string `json:"exercises"`
	CreatedAt   string   `json:"createdAt"`
}

// storedRecord decodes records leniently: ids written by other clients may be
// strings or numbers and are not used.
type storedRecord struct {
	Title       string   `json:"title"`
	Category    Category `json:"category"`
	MuscleGroup string   `json:"muscleGroup"`
	Duration    string   `json:"duration"`
	Calories    string   `json:"calories"`
	Exercises   []string `json:"exercises"`
	CreatedAt   string   `json:"createdAt"`
}

func (r storedRecord) toWorkout(key string) Workout {
	return Workout{
		ID:          key,
		Title:       r.Title,
		Category:    r.Category,
		MuscleGroup: r.MuscleGroup,
		Exercises:   r.Exercises,
		Duration:    r.Duration,
		Calories:    r.Calories,
		Custom:      true,
		CreatedAt:   r.CreatedAt,
	}
}

// CustomRepo stores user defined workouts under CustomWorkouts/{uid}.
type CustomRepo struct {
	store documentStore
	now   func() time.Time
}

func NewCustomRepo(store documentStore) *CustomRepo {
	return &CustomRepo{
		store: store,
		now:   time.Now,
	}
}

// List returns the user's custom workouts in creation order. The workout id
// is the store key.
func (r *CustomRepo) List(ctx context.Context, uid string) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.custom.list")
	defer tracing.EndSpanWithErrCheck(span, &err)

	keys, docs, err := r.store.List(ctx, docstore.CustomWorkoutsPath(uid))
	if err != nil {
		return nil, fmt.Errorf("list custom workouts: %w", err)
	}

	list := make([]Workout, 0, len(keys))
	for _, key := range keys {
		var rec storedRecord
		if err := json.Unmarshal(docs[key], &rec); err != nil {
			log.Warnf("skipping malformed custom workout %s/%s: %s", uid, key, err)
			continue
		}
		list = append(list, rec.toWorkout(key))
	}
	return list, nil
}

func (r *CustomRepo) Create(ctx context.Context, uid string, in CustomWorkoutInput) (_ Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.custom.create")
	defer tracing.EndSpanWithErrCheck(span, &err)

	rec := r.newRecord(in)
	key, err := r.store.Post(ctx, docstore.CustomWorkoutsPath(uid), rec)
	if err != nil {
		return Workout{}, fmt.Errorf("create custom workout: %w", err)
	}
	return recordToWorkout(key, rec), nil
}

func (r *CustomRepo) Update(ctx context.Context, uid, id string, in CustomWorkoutInput) (_ Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.custom.update")
	defer tracing.EndSpanWithErrCheck(span, &err)

	var existing storedRecord
	if err := r.store.Get(ctx, docstore.CustomWorkoutPath(uid, id), &existing); err != nil {
		return Workout{}, fmt.Errorf("get custom workout %s: %w", id, err)
	}

	rec := r.newRecord(in)
	if existing.CreatedAt != "" {
		rec.CreatedAt = existing.CreatedAt
	}
	if err := r.store.Put(ctx, docstore.CustomWorkoutPath(uid, id), rec); err != nil {
		return Workout{}, fmt.Errorf("update custom workout %s: %w", id, err)
	}
	return recordToWorkout(id, rec), nil
}

func (r *CustomRepo) Delete(ctx context.Context, uid, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.custom.delete")
	defer tracing.EndSpanWithErrCheck(span, &err)

	if err := r.store.Delete(ctx, docstore.CustomWorkoutPath(uid, id)); err != nil {
		return fmt.Errorf("delete custom workout %s: %w", id, err)
	}
	return nil
}

func (r *CustomRepo) newRecord(in CustomWorkoutInput) customRecord {
	now := r.now()
	return customRecord{
		ClientID:    now.UnixMilli(),
		Title:       in.Title,
		Category:    in.Category,
		MuscleGroup: in.MuscleGroup,
		Duration:    in.Duration,
		Calories:    in.Calories,
		Exercises:   in.Exercises,
		CreatedAt:   now.UTC().Format(time.RFC3339Nano),
	}
}

func recordToWorkout(key string, rec customRecord) Workout {
	return Workout{
		ID:          key,
		Title:       rec.Title,
		Category:    rec.Category,
		MuscleGroup: rec.MuscleGroup,
		Exercises:   rec.Exercises,
		Duration:    rec.Duration,
		Calories:    rec.Calories,
		Custom:      true,
		CreatedAt:   rec.CreatedAt,
	}
}
