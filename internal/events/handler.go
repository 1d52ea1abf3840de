package events

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/fitforge/internal/auth"
	"github.com/2beens/fitforge/internal/telemetry/tracing"
	"github.com/2beens/fitforge/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=events_test

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

type eventsService interface {
	List(ctx context.Context, params ListParams) ([]*Event, int, error)
}

type ListResponse struct {
	Events []*Event `json:"events"`
	Total  int      `json:"total"`
}

type Handler struct {
	service eventsService
}

func NewHandler(service eventsService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/events", h.HandleList).Methods("GET", "OPTIONS").Name("list-events")
}

// HandleList serves GET /events?type=&from=&to=&page=&size=. from and to are RFC 3339 timestamps.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.events.list")
	defer span.End()

	uid, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	query := r.URL.Query()
	params := ListParams{
		EventParams: EventParams{UID: uid},
		Page:        1,
		Size:        defaultPageSize,
	}

	if typeStr := query.Get("type"); typeStr != "" {
		eventType := EventType(typeStr)
		if !eventType.IsValid() {
			http.Error(w, "invalid event type", http.StatusBadRequest)
			return
		}
		params.Type = &eventType
	}

	var err error
	if params.From, err = parseTimeParam(query.Get("from")); err != nil {
		log.Tracef("list events, <from> param: %s", err)
		http.Error(w, "parse form error, parameter <from>", http.StatusBadRequest)
		return
	}
	if params.To, err = parseTimeParam(query.Get("to")); err != nil {
		log.Tracef("list events, <to> param: %s", err)
		http.Error(w, "parse form error, parameter <to>", http.StatusBadRequest)
		return
	}

	if pageStr := query.Get("page"); pageStr != "" {
		params.Page, err = strconv.Atoi(pageStr)
		if err != nil || params.Page < 1 {
			http.Error(w, "invalid page (has to be a positive number)", http.StatusBadRequest)
			return
		}
	}
	if sizeStr := query.Get("size"); sizeStr != "" {
		params.Size, err = strconv.Atoi(sizeStr)
		if err != nil || params.Size < 1 || params.Size > maxPageSize {
			http.Error(w, "invalid size (has to be between 1 and 200)", http.StatusBadRequest)
			return
		}
	}

	events, total, err := h.service.List(ctx, params)
	if err != nil {
		log.Errorf("list events for %s: %s", uid, err)
		http.Error(w, "failed to get events", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, ListResponse{
		Events: events,
		Total:  total,
	}, http.StatusOK)
}

func parseTimeParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
