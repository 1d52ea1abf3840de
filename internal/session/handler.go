package session

import (
	"context"
	"errors"
	"net/http"

	"github.com/2beens/fitforge/internal/auth"
	"github.com/2beens/fitforge/internal/telemetry/tracing"
	"github.com/2beens/fitforge/internal/workouts"
	"github.com/2beens/fitforge/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=session_test

type sessionManager interface {
	Select(ctx context.Context, uid, workoutID string) (Snapshot, error)
	Current(uid string) (Snapshot, error)
	Start(ctx context.Context, uid string) (Snapshot, error)
	Pause(uid string) (Snapshot, error)
	Next(ctx context.Context, uid string) (Snapshot, error)
	Prev(uid string) (Snapshot, error)
	SkipRest(uid string) (Snapshot, error)
	Reset(uid string) (Snapshot, error)
	Finish(ctx context.Context, uid string) (FinishResult, error)
	Exit(uid string) error
}

type SelectRequest struct {
	WorkoutID string `json:"workoutId"`
}

type Handler struct {
	manager sessionManager
}

func NewHandler(manager sessionManager) *Handler {
	return &Handler{
		manager: manager,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/sessions/select", h.HandleSelect).Methods("POST", "OPTIONS").Name("session-select")
	r.HandleFunc("/sessions/start", h.HandleStart).Methods("POST", "OPTIONS").Name("session-start")
	r.HandleFunc("/sessions/pause", h.HandlePause).Methods("POST", "OPTIONS").Name("session-pause")
	r.HandleFunc("/sessions/next", h.HandleNext).Methods("POST", "OPTIONS").Name("session-next")
	r.HandleFunc("/sessions/prev", h.HandlePrev).Methods("POST", "OPTIONS").Name("session-prev")
	r.HandleFunc("/sessions/skip-rest", h.HandleSkipRest).Methods("POST", "OPTIONS").Name("session-skip-rest")
	r.HandleFunc("/sessions/reset", h.HandleReset).Methods("POST", "OPTIONS").Name("session-reset")
	r.HandleFunc("/sessions/finish", h.HandleFinish).Methods("POST", "OPTIONS").Name("session-finish")
	r.HandleFunc("/sessions/current", h.HandleCurrent).Methods("GET", "OPTIONS").Name("session-current")
	r.HandleFunc("/sessions/current", h.HandleExit).Methods("DELETE", "OPTIONS").Name("session-exit")
}

func (h *Handler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.select")
	defer span.End()

	uid, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req SelectRequest
	if err := pkg.ReadJSON(r, &req); err != nil {
		log.Errorf("select workout, unmarshal json params: %s", err)
		http.Error(w, "invalid select request", http.StatusBadRequest)
		return
	}
	if req.WorkoutID == "" {
		http.Error(w, "workoutId is required", http.StatusBadRequest)
		return
	}

	snap, err := h.manager.Select(ctx, uid, req.WorkoutID)
	if err != nil {
		writeError(w, "select", err)
		return
	}
	pkg.WriteJSON(w, snap, http.StatusOK)
}

func (h *Handler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "current", func(_ context.Context, uid string) (Snapshot, error) {
		return h.manager.Current(uid)
	})
}

func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "start", h.manager.Start)
}

func (h *Handler) HandlePause(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "pause", func(_ context.Context, uid string) (Snapshot, error) {
		return h.manager.Pause(uid)
	})
}

func (h *Handler) HandleNext(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "next", h.manager.Next)
}

func (h *Handler) HandlePrev(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "prev", func(_ context.Context, uid string) (Snapshot, error) {
		return h.manager.Prev(uid)
	})
}

func (h *Handler) HandleSkipRest(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "skip-rest", func(_ context.Context, uid string) (Snapshot, error) {
		return h.manager.SkipRest(uid)
	})
}

func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "reset", func(_ context.Context, uid string) (Snapshot, error) {
		return h.manager.Reset(uid)
	})
}

func (h *Handler) HandleFinish(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.finish")
	defer span.End()

	uid, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	result, err := h.manager.Finish(ctx, uid)
	if err != nil {
		writeError(w, "finish", err)
		return
	}
	pkg.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) HandleExit(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.exit")
	defer span.End()

	uid, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if err := h.manager.Exit(uid); err != nil {
		writeError(w, "exit", err)
		return
	}
	pkg.WriteTextResponseOK(w, "exited")
}

func (h *Handler) handle(
	w http.ResponseWriter,
	r *http.Request,
	action string,
	op func(ctx context.Context, uid string) (Snapshot, error),
) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions."+action)
	defer span.End()

	uid, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	snap, err := op(ctx, uid)
	if err != nil {
		writeError(w, action, err)
		return
	}
	pkg.WriteJSON(w, snap, http.StatusOK)
}

func writeError(w http.ResponseWriter, action string, err error) {
	switch {
	case errors.Is(err, ErrNoSession):
		http.Error(w, "no active session", http.StatusNotFound)
	case errors.Is(err, workouts.ErrWorkoutNotFound):
		http.Error(w, "workout not found", http.StatusNotFound)
	case errors.Is(err, ErrNoWorkout):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrEmptyWorkout):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Errorf("session %s: %s", action, err)
		http.Error(w, "session "+action+" failed", http.StatusInternalServerError)
	}
}
