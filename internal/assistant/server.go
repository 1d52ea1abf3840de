// Package assistant exposes the workout catalog, calorie estimates, diet plans
// and the chat assistant as Model Context Protocol tools.
package assistant

import (
	"context"
	"net/http"

	"github.com/2beens/fitforge/internal/auth"
	"github.com/2beens/fitforge/internal/chatbot"
	"github.com/2beens/fitforge/internal/diets"
	"github.com/2beens/fitforge/internal/workouts"

	"github.com/mark3labs/mcp-go/server"
)

type workoutLister interface {
	List(ctx context.Context, uid string, category workouts.Category, searchTerm string) []workouts.Workout
}

type dietLister interface {
	BuiltIn() []diets.Plan
	ListCustom(ctx context.Context, uid string) ([]diets.CustomPlan, error)
}

type replier interface {
	Reply(ctx context.Context, prompt string) (chatbot.Reply, error)
}

type NewServerParams struct {
	Version  string
	Workouts workoutLister
	Diets    dietLister
	Bot      replier
}

// NewServer builds the MCP server with all fitforge tools registered.
func NewServer(params NewServerParams) *server.MCPServer {
	s := server.NewMCPServer("fitforge", params.Version,
		server.WithToolCapabilities(false),
		server.WithInstructions("FitForge fitness assistant. Browse workouts and diet plans, estimate burnt calories and chat with the assistant. Results are scoped to the authenticated user."),
	)

	h := &tools{
		workouts: params.Workouts,
		diets:    params.Diets,
		bot:      params.Bot,
	}
	s.AddTools(
		server.ServerTool{Tool: toolListWorkouts, Handler: h.listWorkouts},
		server.ServerTool{Tool: toolEstimateCalories, Handler: h.estimateCalories},
		server.ServerTool{Tool: toolAskAssistant, Handler: h.askAssistant},
		server.ServerTool{Tool: toolGetDietPlans, Handler: h.getDietPlans},
	)
	return s
}

// NewHTTPHandler serves s over streamable HTTP. The caller id set by the auth
// middleware is carried into tool calls.
func NewHTTPHandler(s *server.MCPServer) http.Handler {
	return server.NewStreamableHTTPServer(s,
		server.WithStateLess(true),
		server.WithHTTPContextFunc(func(ctx context.Context, r *http.Request) context.Context {
			if uid, ok := auth.UserIDFromContext(r.Context()); ok {
				return auth.WithUserID(ctx, uid)
			}
			return ctx
		}),
	)
}
