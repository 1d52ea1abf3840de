package chatbot

import (
	"context"
	"errors"
	"net/http"

	"github.com/2beens/fitforge/internal/telemetry/metrics"
	"github.com/2beens/fitforge/internal/telemetry/tracing"
	"github.com/2beens/fitforge/pkg"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=chatbot_test

type replier interface {
	Reply(ctx context.Context, prompt string) (Reply, error)
}

type Handler struct {
	bot            replier
	metricsManager *metrics.Manager
}

func NewHandler(bot replier, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		bot:            bot,
		metricsManager: metricsManager,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/chat", h.HandleChat).Methods("POST", "OPTIONS").Name("chat")
}

type chatRequest struct {
	Prompt string `json:"prompt"`
}

func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.chat")
	defer span.End()

	var req chatRequest
	if err := pkg.ReadJSON(r, &req); err != nil {
		log.Errorf("chat, unmarshal json params: %s", err)
		http.Error(w, "invalid chat request", http.StatusBadRequest)
		return
	}

	reply, err := h.bot.Reply(ctx, req.Prompt)
	if err != nil {
		if errors.Is(err, ErrEmptyPrompt) {
			http.Error(w, "prompt is empty", http.StatusBadRequest)
			return
		}
		log.Errorf("chat reply: %s", err)
		http.Error(w, "Network error", http.StatusBadGateway)
		return
	}

	if h.metricsManager != nil {
		h.metricsManager.CounterChatReplies.With(prometheus.Labels{"source": string(reply.Source)}).Inc()
	}
	pkg.WriteJSON(w, reply, http.StatusOK)
}
