package diets

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

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=diets_test

type dietService interface {
	BuiltIn() []Plan
	ListCustom(ctx context.Context, uid string) ([]CustomPlan, error)
	CreateCustom(ctx context.Context, uid string, meals Meals) (CustomPlan, error)
	DeleteCustom(ctx context.Context, uid, id string) error
}

type Handler struct {
	service        dietService
	metricsManager *metrics.Manager
}

func NewHandler(service dietService, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service:        service,
		metricsManager: metricsManager,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/diets", h.HandleList).Methods("GET", "OPTIONS").Name("list-diets")
	r.HandleFunc("/diets/custom", h.HandleListCustom).Methods("GET", "OPTIONS").Name("list-custom-diets")
	r.HandleFunc("/diets/custom", h.HandleCreateCustom).Methods("POST", "OPTIONS").Name("new-custom-diet")
	r.HandleFunc("/diets/custom/{id}", h.HandleDeleteCustom).Methods("DELETE", "OPTIONS").Name("remove-custom-diet")
}

func (h *Handler) HandleList(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSON(w, h.service.BuiltIn(), http.StatusOK)
}

func (h *Handler) HandleListCustom(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.diets.custom.list")
	defer span.End()

	uid, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	plans, err := h.service.ListCustom(ctx, uid)
	if err != nil {
		log.Errorf("list custom diets: %s", err)
		http.Error(w, "failed to get diet plans", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, plans, http.StatusOK)
}

func (h *Handler) HandleCreateCustom(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.diets.custom.create")
	defer span.End()

	uid, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var meals Meals
	if err := pkg.ReadJSON(r, &meals); err != nil {
		log.Errorf("new custom diet, unmarshal json params: %s", err)
		http.Error(w, "invalid diet plan", http.StatusBadRequest)
		return
	}

	plan, err := h.service.CreateCustom(ctx, uid, meals)
	if err != nil {
		var statusErr *docstore.StatusError
		switch {
		case errors.Is(err, ErrNoMeals):
			http.Error(w, NoMealsMessage, http.StatusBadRequest)
		case errors.As(err, &statusErr):
			log.Errorf("new custom diet, store responded %d: %s", statusErr.StatusCode, err)
			http.Error(w, "Error saving diet plan", http.StatusBadGateway)
		default:
			log.Errorf("new custom diet: %s", err)
			http.Error(w, "Error saving diet plan", http.StatusInternalServerError)
		}
		return
	}

	if h.metricsManager != nil {
		h.metricsManager.CounterCustomRecords.With(prometheus.Labels{"kind": "diet"}).Inc()
	}
	pkg.WriteJSON(w, plan, http.StatusCreated)
}

func (h *Handler) HandleDeleteCustom(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.diets.custom.delete")
	defer span.End()

	uid, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if err := h.service.DeleteCustom(ctx, uid, mux.Vars(r)["id"]); err != nil {
		log.Errorf("delete custom diet: %s", err)
		http.Error(w, "failed to delete diet plan", http.StatusInternalServerError)
		return
	}
	pkg.WriteTextResponseOK(w, "deleted")
}
