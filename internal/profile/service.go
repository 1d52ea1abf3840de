package profile

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/2beens/fitforge/internal/docstore"
	"github.com/2beens/fitforge/internal/events"
	"github.com/2beens/fitforge/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

type documentStore interface {
	Get(ctx context.Context, path string, out any) error
	Put(ctx context.Context, path string, in any) error
	Patch(ctx context.Context, path string, in any) error
}

type weightRecorder interface {
	AddWeightReport(ctx context.Context, uid string, wr events.WeightReport) (int, error)
}

type Service struct {
	store    documentStore
	recorder weightRecorder
	now      func() time.Time
}

// NewService creates the profile service. recorder may be nil, in which case
// weight reports are not logged as training events.
func NewService(store documentStore, recorder weightRecorder) *Service {
	return &Service{
		store:    store,
		recorder: recorder,
		now:      time.Now,
	}
}

// CreateUser writes the sign up record of a new account.
func (s *Service) CreateUser(ctx context.Context, uid string, user User) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profile.createUser")
	defer tracing.EndSpanWithErrCheck(span, &err)

	if err := s.store.Put(ctx, docstore.UserPath(uid), user); err != nil {
		return fmt.Errorf("save user %s: %w", uid, err)
	}
	return nil
}

// Get reads the user and profile records. Read failures degrade to empty records.
func (s *Service) Get(ctx context.Context, uid string) View {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profile.get")
	defer span.End()

	view := View{
		User:    s.user(ctx, uid),
		Profile: s.profile(ctx, uid),
	}
	if view.Profile.BMI != nil {
		view.BMICategory = BMICategory(*view.Profile.BMI)
	} else {
		view.BMICategory = BMICategory(BMI(view.Profile.Weight, view.Profile.Height))
	}
	return view
}

// Save validates weight and height, then merges them with the computed BMI
// into the profile record. Nothing is sent when validation fails.
func (s *Service) Save(ctx context.Context, uid string, in MeasurementsInput) (_ Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profile.save")
	defer tracing.EndSpanWithErrCheck(span, &err)

	weight, height, err := in.Parse()
	if err != nil {
		return Profile{}, err
	}

	bmi := BMI(weight, height)
	now := s.now()
	update := struct {
		Weight    float64 `json:"weight"`
		Height    float64 `json:"height"`
		BMI       float64 `json:"bmi"`
		UpdatedAt string  `json:"updatedAt"`
	}{
		Weight:    weight,
		Height:    height,
		BMI:       bmi,
		UpdatedAt: now.UTC().Format(time.RFC3339Nano),
	}
	if err := s.store.Patch(ctx, docstore.UserProfilePath(uid), update); err != nil {
		return Profile{}, fmt.Errorf("save profile %s: %w", uid, err)
	}

	if s.recorder != nil {
		wr := events.WeightReport{Timestamp: now, Weight: weight, BMI: bmi}
		if _, err := s.recorder.AddWeightReport(ctx, uid, wr); err != nil {
			log.Errorf("profile: record weight report for %s: %s", uid, err)
		}
	}

	return Profile{
		Weight:    weight,
		Height:    height,
		BMI:       &bmi,
		UpdatedAt: update.UpdatedAt,
	}, nil
}

// SaveGoal computes the daily calorie target for goal from the stored
// records and merges both into the profile.
func (s *Service) SaveGoal(ctx context.Context, uid string, goal Goal) (_ GoalResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profile.saveGoal")
	defer tracing.EndSpanWithErrCheck(span, &err)

	if !goal.IsValid() {
		return GoalResult{}, ErrInvalidGoal
	}

	user, prof := s.user(ctx, uid), s.profile(ctx, uid)
	bmr := BMR(prof.Weight, prof.Height, user.Age, user.Gender)
	res := GoalResult{
		Goal:          goal,
		BMR:           bmr,
		DailyCalories: DailyCalories(bmr, goal),
	}

	update := struct {
		TotalCalories int  `json:"totalCalories"`
		GoalSelected  Goal `json:"GoalSelected"`
	}{
		TotalCalories: res.DailyCalories,
		GoalSelected:  goal,
	}
	if err := s.store.Patch(ctx, docstore.UserProfilePath(uid), update); err != nil {
		return GoalResult{}, fmt.Errorf("save goal %s: %w", uid, err)
	}
	return res, nil
}

func (s *Service) Dashboard(ctx context.Context, uid string) Dashboard {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profile.dashboard")
	defer span.End()

	view := s.Get(ctx, uid)
	d := Dashboard{
		View:          view,
		BMR:           BMR(view.Profile.Weight, view.Profile.Height, view.User.Age, view.User.Gender),
		BurntCalories: int(math.Round(view.Profile.BurntCalories)),
	}
	if goal := view.Profile.GoalSelected; goal.IsValid() {
		d.Goal = goal
		d.GoalTitle = goal.Title()
		d.GoalDescription = goal.Description()
		d.DailyCalories = DailyCalories(d.BMR, goal)
	}
	return d
}

func (s *Service) user(ctx context.Context, uid string) User {
	var u User
	if err := s.store.Get(ctx, docstore.UserPath(uid), &u); err != nil && !errors.Is(err, docstore.ErrNotFound) {
		log.Errorf("profile: get user %s: %s", uid, err)
	}
	return u
}

func (s *Service) profile(ctx context.Context, uid string) Profile {
	var p Profile
	if err := s.store.Get(ctx, docstore.UserProfilePath(uid), &p); err != nil && !errors.Is(err, docstore.ErrNotFound) {
		log.Errorf("profile: get profile %s: %s", uid, err)
	}
	return p
}
