package calories

import (
	"context"
	"errors"
	"math"

	"github.com/2beens/fitforge/internal/docstore"
	"github.com/2beens/fitforge/internal/telemetry/metrics"
	"github.com/2beens/fitforge/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type documentStore interface {
	Get(ctx context.Context, path string, out any) error
	Put(ctx context.Context, path string, in any) error
}

// Reporter adds finished workout estimates to the user's burnt calories total.
// The total is read and written back without any transaction: two sessions
// finishing at the same time may lose one of the updates.
type Reporter struct {
	store          documentStore
	metricsManager *metrics.Manager
}

func NewReporter(store documentStore, metricsManager *metrics.Manager) *Reporter {
	return &Reporter{
		store:          store,
		metricsManager: metricsManager,
	}
}

// Report estimates the calories for label and adds them to the stored total.
// Store failures are logged only, the estimate is returned regardless.
func (r *Reporter) Report(ctx context.Context, uid, label string) int {
	ctx, span := tracing.GlobalTracer.Start(ctx, "calories.report")
	defer span.End()

	estimate := EstimateCalories(label)
	span.SetAttributes(attribute.Int("estimate", estimate))
	if r.metricsManager != nil {
		r.metricsManager.CounterCaloriesBurned.Add(float64(estimate))
	}

	if uid == "" {
		return estimate
	}

	if err := r.addToTotal(ctx, uid, estimate); err != nil {
		span.RecordError(err)
		log.Errorf("save burnt calories for %s: %s", uid, err)
		if r.metricsManager != nil {
			r.metricsManager.CounterCaloriesReportFails.Inc()
		}
	}
	return estimate
}

// Total returns the accumulated burnt calories, 0 if nothing was stored yet.
func (r *Reporter) Total(ctx context.Context, uid string) (int, error) {
	var total float64
	if err := r.store.Get(ctx, docstore.BurntCaloriesPath(uid), &total); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return int(math.Round(total)), nil
}

func (r *Reporter) addToTotal(ctx context.Context, uid string, estimate int) error {
	total, err := r.Total(ctx, uid)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, docstore.BurntCaloriesPath(uid), total+estimate)
}

// Estimator only estimates, nothing is persisted. Used by clients without
// store access.
type Estimator struct{}

func (Estimator) Report(_ context.Context, _ string, label string) int {
	return EstimateCalories(label)
}
