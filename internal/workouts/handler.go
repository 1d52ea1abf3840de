package workouts

import (
	"context"
	"errors"
	"net/http"

	"github.com/2beens/fitforge/internal/auth"
	"github.com/2beens/fitforge/internal/docstore"
	"github.com/2beens/fitforge/internal/telemetry/metrics"
	"github.com/2beens/fitforge/internal/telemetry/tracing"
	"github.com/2beens/fitforge/pkg"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workouts_test

type catalogService interface {
	List(ctx context.Context, uid string, category Category, searchTerm string) []Workout
	Get(ctx context.Context, uid, id string) (Workout, error)
	ListCustom(ctx context.Context, uid string) ([]Workout, error)
	CreateCustom(ctx context.Context, uid string, in CustomWorkoutInput) (Workout, error)
	UpdateCustom(ctx context.Context, uid, id string, in CustomWorkoutInput) (Workout, error)
	DeleteCustom(ctx context.Context, uid, id string) error
}

type Handler struct {
	service        catalogService
	metricsManager *metrics.Manager
}

func NewHandler(service catalogService, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service:        service,
		metricsManager: metricsManager,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/workouts", h.HandleList).Methods("GET", "OPTIONS").Name("list-workouts")
	r.HandleFunc("/workouts/custom", h.HandleListCustom).Methods("GET", "OPTIONS").Name("list-custom-workouts")
	r.HandleFunc("/workouts/custom", h.HandleCreateCustom).Methods("POST", "OPTIONS").Name("new-custom-workout")
	r.HandleFunc("/workouts/custom/{id}", h.HandleUpdateCustom).Methods("PUT", "OPTIONS").Name("update-custom-workout")
	r.HandleFunc("/workouts/custom/{id}", h.HandleDeleteCustom).Methods("DELETE", "OPTIONS").Name("remove-custom-workout")
	r.HandleFunc("/workouts/{id}", h.HandleGet).Methods("GET", "OPTIONS").Name("get-workout")
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	uid, _ := auth.UserIDFromContext(ctx)
	category := Category(r.URL.Query().Get("category"))
	if category != "" && !category.IsValid() {
		http.Error(w, ErrInvalidCategory.Error(), http.StatusBadRequest)
		return
	}

	list := h.service.List(ctx, uid, category, r.URL.Query().Get("search"))
	pkg.WriteJSON(w, list, http.StatusOK)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get")
	defer span.End()

	uid, _ := auth.UserIDFromContext(ctx)
	workout, err := h.service.Get(ctx, uid, mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			http.Error(w, "workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("get workout: %s", err)
		http.Error(w, "get workout failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, workout, http.StatusOK)
}

func (h *Handler) HandleListCustom(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.custom.list")
	defer span.End()

	uid, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	list, err := h.service.ListCustom(ctx, uid)
	if err != nil {
		log.Errorf("list custom workouts: %s", err)
		http.Error(w, "failed to get custom workouts", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, list, http.StatusOK)
}

func (h *Handler) HandleCreateCustom(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.custom.create")
	defer span.End()

	uid, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var in CustomWorkoutInput
	if err := pkg.ReadJSON(r, &in); err != nil {
		log.Errorf("new custom workout, unmarshal json params: %s", err)
		http.Error(w, "invalid workout", http.StatusBadRequest)
		return
	}

	workout, err := h.service.CreateCustom(ctx, uid, in)
	if err != nil {
		h.writeSaveError(w, "create", err)
		return
	}

	if h.metricsManager != nil {
		h.metricsManager.CounterCustomRecords.With(prometheus.Labels{"kind": "workout"}).Inc()
	}
	pkg.WriteJSON(w, workout, http.StatusCreated)
}

func (h *Handler) HandleUpdateCustom(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.custom.update")
	defer span.End()

	uid, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var in CustomWorkoutInput
	if err := pkg.ReadJSON(r, &in); err != nil {
		log.Errorf("update custom workout, unmarshal json params: %s", err)
		http.Error(w, "invalid workout", http.StatusBadRequest)
		return
	}

	workout, err := h.service.UpdateCustom(ctx, uid, mux.Vars(r)["id"], in)
	if err != nil {
		h.writeSaveError(w, "update", err)
		return
	}
	pkg.WriteJSON(w, workout, http.StatusOK)
}

func (h *Handler) HandleDeleteCustom(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.custom.delete")
	defer span.End()

	uid, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if err := h.service.DeleteCustom(ctx, uid, mux.Vars(r)["id"]); err != nil {
		log.Errorf("delete custom workout: %s", err)
		http.Error(w, "failed to delete workout", http.StatusInternalServerError)
		return
	}
	pkg.WriteTextResponseOK(w, "deleted")
}

func (h *Handler) writeSaveError(w http.ResponseWriter, op string, err error) {
	var statusErr *docstore.StatusError
	switch {
	case errors.Is(err, ErrMissingFields), errors.Is(err, ErrInvalidCategory):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrWorkoutNotFound):
		http.Error(w, "workout not found", http.StatusNotFound)
	case errors.As(err, &statusErr):
		log.Errorf("%s custom workout, store responded %d: %s", op, statusErr.StatusCode, err)
		http.Error(w, "Error saving workout", http.StatusBadGateway)
	default:
		log.Errorf("%s custom workout: %s", op, err)
		http.Error(w, "Error saving workout", http.StatusInternalServerError)
	}
}
