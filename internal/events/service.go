package events

import (
	"context"
	"fmt"

	"github.com/2beens/fitforge/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=events_test

type eventsRepo interface {
	Add(ctx context.Context, event Event) (*Event, error)
	List(ctx context.Context, params ListParams) ([]*Event, error)
	Count(ctx context.Context, params EventParams) (int, error)
}

type Service struct {
	repo eventsRepo
}

func NewService(repo eventsRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) AddTrainingStart(ctx context.Context, uid string, ts TrainingStart) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.events.add.trainingstart")
	defer tracing.EndSpanWithErrCheck(span, &err)

	event, err := s.repo.Add(ctx, NewTrainingStartEvent(uid, ts))
	if err != nil {
		return 0, fmt.Errorf("add training start event: %w", err)
	}
	return event.ID, nil
}

func (s *Service) AddTrainingFinish(ctx context.Context, uid string, tf TrainingFinish) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.events.add.trainingfinish")
	defer tracing.EndSpanWithErrCheck(span, &err)

	event, err := s.repo.Add(ctx, NewTrainingFinishEvent(uid, tf))
	if err != nil {
		return 0, fmt.Errorf("add training finish event: %w", err)
	}
	return event.ID, nil
}

func (s *Service) AddWeightReport(ctx context.Context, uid string, wr WeightReport) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.events.add.weightreport")
	defer tracing.EndSpanWithErrCheck(span, &err)

	event, err := s.repo.Add(ctx, NewWeightReportEvent(uid, wr))
	if err != nil {
		return 0, fmt.Errorf("add weight report event: %w", err)
	}
	return event.ID, nil
}

// List returns a page of the user's events along with the total number of
// events matching the params.
func (s *Service) List(ctx context.Context, params ListParams) (_ []*Event, _ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.events.list")
	defer tracing.EndSpanWithErrCheck(span, &err)

	events, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}

	total, err := s.repo.Count(ctx, params.EventParams)
	if err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}
	return events, total, nil
}
