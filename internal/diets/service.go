package diets

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/fitforge/internal/docstore"
	"github.com/2beens/fitforge/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

// planDateLayout matches the short date the mobile app writes into plan names.
const planDateLayout = "1/2/2006"

type documentStore interface {
	Post(ctx context.Context, path string, in any) (string, error)
	Delete(ctx context.Context, path string) error
	List(ctx context.Context, path string) ([]string, map[string]json.RawMessage, error)
}

type storedPlan struct {
	PlanName  string `json:"planName"`
	Meals     Meals  `json:"meals"`
	CreatedAt string `json:"createdAt"`
}

type Service struct {
	builtIn []Plan
	store   documentStore
	now     func() time.Time
}

func NewService(builtIn []Plan, store documentStore) *Service {
	return &Service{
		builtIn: builtIn,
		store:   store,
		now:     time.Now,
	}
}

func (s *Service) BuiltIn() []Plan {
	return append([]Plan{}, s.builtIn...)
}

// ListCustom returns the user's plans in creation order.
func (s *Service) ListCustom(ctx context.Context, uid string) (_ []CustomPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.diets.custom.list")
	defer tracing.EndSpanWithErrCheck(span, &err)

	keys, docs, err := s.store.List(ctx, docstore.CustomDietsPath(uid))
	if err != nil {
		return nil, fmt.Errorf("list custom diets: %w", err)
	}

	plans := make([]CustomPlan, 0, len(keys))
	for _, key := range keys {
		var p storedPlan
		if err := json.Unmarshal(docs[key], &p); err != nil {
			log.Warnf("skipping malformed diet plan %s/%s: %s", uid, key, err)
			continue
		}
		plans = append(plans, CustomPlan{
			ID:        key,
			PlanName:  p.PlanName,
			Meals:     p.Meals,
			CreatedAt: p.CreatedAt,
		})
	}
	return plans, nil
}

// CreateCustom stores a new plan named after the creation date. At least one
// meal must be filled in.
func (s *Service) CreateCustom(ctx context.Context, uid string, meals Meals) (_ CustomPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.diets.custom.create")
	defer tracing.EndSpanWithErrCheck(span, &err)

	meals = meals.Normalize()
	if meals.Empty() {
		return CustomPlan{}, ErrNoMeals
	}

	date := s.now().Format(planDateLayout)
	p := storedPlan{
		PlanName:  "Diet Plan - " + date,
		Meals:     meals,
		CreatedAt: date,
	}
	key, err := s.store.Post(ctx, docstore.CustomDietsPath(uid), p)
	if err != nil {
		return CustomPlan{}, fmt.Errorf("create custom diet: %w", err)
	}
	return CustomPlan{
		ID:        key,
		PlanName:  p.PlanName,
		Meals:     p.Meals,
		CreatedAt: p.CreatedAt,
	}, nil
}

func (s *Service) DeleteCustom(ctx context.Context, uid, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.diets.custom.delete")
	defer tracing.EndSpanWithErrCheck(span, &err)

	if err := s.store.Delete(ctx, docstore.CustomDietPath(uid, id)); err != nil {
		return fmt.Errorf("delete custom diet %s: %w", id, err)
	}
	return nil
}
