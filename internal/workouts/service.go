package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/2beens/fitforge/internal/docstore"
	"github.com/2beens/fitforge/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type customRepo interface {
	List(ctx context.Context, uid string) ([]Workout, error)
	Create(ctx context.Context, uid string, in CustomWorkoutInput) (Workout, error)
	Update(ctx context.Context, uid, id string, in CustomWorkoutInput) (Workout, error)
	Delete(ctx context.Context, uid, id string) error
}

// Service is the workout catalog: the built-in workouts merged with the
// user's custom ones. Custom workouts are fetched once per user and served
// from the cache afterwards; only writes made through the service drop the
// cached copy.
type Service struct {
	builtIn         []Workout
	repo            customRepo
	cache           *freecache.Cache
	cacheTTLSeconds int
}

func NewService(builtIn []Workout, repo customRepo, cacheSizeBytes, cacheTTLSeconds int) *Service {
	return &Service{
		builtIn:         builtIn,
		repo:            repo,
		cache:           freecache.NewCache(cacheSizeBytes),
		cacheTTLSeconds: cacheTTLSeconds,
	}
}

func (s *Service) BuiltIn() []Workout {
	return append([]Workout{}, s.builtIn...)
}

// List returns the merged catalog filtered by category and muscle group search term.
// A failed custom workouts fetch degrades to built-ins only.
func (s *Service) List(ctx context.Context, uid string, category Category, searchTerm string) []Workout {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.list")
	defer span.End()
	span.SetAttributes(
		attribute.String("category", string(category)),
		attribute.String("search", searchTerm),
	)

	return Filter(s.all(ctx, uid), category.OrDefault(), searchTerm)
}

// Get finds a workout by id among built-ins and the user's custom workouts.
func (s *Service) Get(ctx context.Context, uid, id string) (Workout, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.get")
	defer span.End()

	w, ok := Find(s.all(ctx, uid), id)
	if !ok {
		return Workout{}, ErrWorkoutNotFound
	}
	return w, nil
}

func (s *Service) ListCustom(ctx context.Context, uid string) ([]Workout, error) {
	return s.custom(ctx, uid)
}

func (s *Service) CreateCustom(ctx context.Context, uid string, in CustomWorkoutInput) (Workout, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return Workout{}, err
	}

	w, err := s.repo.Create(ctx, uid, in)
	if err != nil {
		return Workout{}, err
	}
	s.invalidate(uid)
	return w, nil
}

func (s *Service) UpdateCustom(ctx context.Context, uid, id string, in CustomWorkoutInput) (Workout, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return Workout{}, err
	}

	w, err := s.repo.Update(ctx, uid, id, in)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return Workout{}, ErrWorkoutNotFound
		}
		return Workout{}, err
	}
	s.invalidate(uid)
	return w, nil
}

func (s *Service) DeleteCustom(ctx context.Context, uid, id string) error {
	if err := s.repo.Delete(ctx, uid, id); err != nil {
		return err
	}
	s.invalidate(uid)
	return nil
}

func (s *Service) all(ctx context.Context, uid string) []Workout {
	custom, err := s.custom(ctx, uid)
	if err != nil {
		log.Errorf("load custom workouts for %s: %s", uid, err)
	}
	return Merge(s.builtIn, custom)
}

func (s *Service) custom(ctx context.Context, uid string) ([]Workout, error) {
	if uid == "" {
		return nil, nil
	}

	cacheKey := []byte(uid)
	if cached, err := s.cache.Get(cacheKey); err == nil {
		var list []Workout
		if err := json.Unmarshal(cached, &list); err == nil {
			return list, nil
		}
		log.Warnf("drop malformed cached custom workouts for %s", uid)
		s.cache.Del(cacheKey)
	}

	list, err := s.repo.List(ctx, uid)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("marshal custom workouts: %w", err)
	}
	if err := s.cache.Set(cacheKey, raw, s.cacheTTLSeconds); err != nil {
		log.Warnf("cache custom workouts for %s: %s", uid, err)
	}
	return list, nil
}

func (s *Service) invalidate(uid string) {
	s.cache.Del([]byte(uid))
}
