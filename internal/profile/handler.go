package profile

import (
	"context"
	"errors"
	"net/http"

	"github.com/2beens/fitforge/internal/auth"
	"github.com/2beens/fitforge/internal/docstore"
	"github.com/2beens/fitforge/internal/telemetry/tracing"
	"github.com/2beens/fitforge/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type profileService interface {
	Get(ctx context.Context, uid string) View
	Save(ctx context.Context, uid string, in MeasurementsInput) (Profile, error)
	SaveGoal(ctx context.Context, uid string, goal Goal) (GoalResult, error)
	Dashboard(ctx context.Context, uid string) Dashboard
}

type Handler struct {
	service profileService
}

func NewHandler(service profileService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/profile", h.HandleGet).Methods("GET", "OPTIONS").Name("get-profile")
	r.HandleFunc("/profile", h.HandleSave).Methods("PUT", "OPTIONS").Name("save-profile")
	r.HandleFunc("/profile/goal", h.HandleSaveGoal).Methods("PUT", "OPTIONS").Name("save-goal")
	r.HandleFunc("/profile/dashboard", h.HandleDashboard).Methods("GET", "OPTIONS").Name("dashboard")
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.get")
	defer span.End()

	uid, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	pkg.WriteJSON(w, h.service.Get(ctx, uid), http.StatusOK)
}

func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.save")
	defer span.End()

	uid, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var in MeasurementsInput
	if err := pkg.ReadJSON(r, &in); err != nil {
		log.Errorf("save profile, unmarshal json params: %s", err)
		http.Error(w, ErrInvalidInput.Error(), http.StatusBadRequest)
		return
	}

	saved, err := h.service.Save(ctx, uid, in)
	if err != nil {
		writeSaveError(w, "profile", err)
		return
	}
	pkg.WriteJSON(w, saved, http.StatusOK)
}

func (h *Handler) HandleSaveGoal(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.goal")
	defer span.End()

	uid, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var in GoalInput
	if err := pkg.ReadJSON(r, &in); err != nil {
		log.Errorf("save goal, unmarshal json params: %s", err)
		http.Error(w, ErrInvalidGoal.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.service.SaveGoal(ctx, uid, in.Goal)
	if err != nil {
		writeSaveError(w, "goal", err)
		return
	}
	pkg.WriteJSON(w, res, http.StatusOK)
}

func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.dashboard")
	defer span.End()

	uid, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	pkg.WriteJSON(w, h.service.Dashboard(ctx, uid), http.StatusOK)
}

func writeSaveError(w http.ResponseWriter, what string, err error) {
	var statusErr *docstore.StatusError
	switch {
	case errors.Is(err, ErrMissingData), errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidGoal):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &statusErr):
		log.Errorf("save %s, store responded %d: %s", what, statusErr.StatusCode, err)
		http.Error(w, "Failed to save "+what+". Please try again later.", http.StatusBadGateway)
	default:
		log.Errorf("save %s: %s", what, err)
		http.Error(w, "Failed to save "+what+". Please try again later.", http.StatusInternalServerError)
	}
}
