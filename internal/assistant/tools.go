package assistant

import (
	"context"
	"encoding/json"

	"github.com/2beens/fitforge/internal/auth"
	"github.com/2beens/fitforge/internal/calories"
	"github.com/2beens/fitforge/internal/diets"
	"github.com/2beens/fitforge/internal/workouts"

	"github.com/mark3labs/mcp-go/mcp"
	log "github.com/sirupsen/logrus"
)

var toolListWorkouts = mcp.NewTool("list_workouts",
	mcp.WithDescription("Lists built-in and the user's custom workouts. Workouts without a category are home workouts."),
	mcp.WithString("category", mcp.Description("Workout category. Defaults to home."), mcp.Enum("gym", "home")),
	mcp.WithString("search", mcp.Description("Case-insensitive muscle group filter (e.g. chest, legs)")),
)

var toolEstimateCalories = mcp.NewTool("estimate_calories",
	mcp.WithDescription("Estimates burnt calories from a workout calorie label such as '200–250 kcal' (the range midpoint) or '150 kcal'."),
	mcp.WithString("label", mcp.Required(), mcp.Description("Calorie label of a workout")),
)

var toolAskAssistant = mcp.NewTool("ask_assistant",
	mcp.WithDescription("Asks the FitForge chat assistant. Known phrases get canned replies, anything else goes to the text generator when one is configured."),
	mcp.WithString("prompt", mcp.Required(), mcp.Description("Message for the assistant")),
)

var toolGetDietPlans = mcp.NewTool("get_diet_plans",
	mcp.WithDescription("Returns the built-in diet plans for weight loss, maintenance and weight gain, plus the user's own diet plans."),
)

type tools struct {
	workouts workoutLister
	diets    dietLister
	bot      replier
}

func (t *tools) listWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := workouts.Category(req.GetString("category", ""))
	if category != "" && !category.IsValid() {
		return mcp.NewToolResultError(workouts.ErrInvalidCategory.Error()), nil
	}

	uid, _ := auth.UserIDFromContext(ctx)
	return jsonResult(t.workouts.List(ctx, uid, category, req.GetString("search", "")))
}

type calorieEstimate struct {
	Label    string `json:"label"`
	Calories int    `json:"calories"`
}

func (t *tools) estimateCalories(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	label, err := req.RequireString("label")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(calorieEstimate{
		Label:    label,
		Calories: calories.EstimateCalories(label),
	})
}

func (t *tools) askAssistant(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt, err := req.RequireString("prompt")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	reply, err := t.bot.Reply(ctx, prompt)
	if err != nil {
		log.Errorf("mcp ask_assistant: %s", err)
		return mcp.NewToolResultError("assistant failed: " + err.Error()), nil
	}
	return mcp.NewToolResultText(reply.Text), nil
}

type dietPlans struct {
	BuiltIn []diets.Plan       `json:"builtIn"`
	Custom  []diets.CustomPlan `json:"custom"`
}

func (t *tools) getDietPlans(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	plans := dietPlans{
		BuiltIn: t.diets.BuiltIn(),
		Custom:  []diets.CustomPlan{},
	}
	if uid, ok := auth.UserIDFromContext(ctx); ok {
		custom, err := t.diets.ListCustom(ctx, uid)
		if err != nil {
			log.Errorf("mcp get_diet_plans for %s: %s", uid, err)
		} else {
			plans.Custom = custom
		}
	}
	return jsonResult(plans)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("Error encoding response: " + err.Error()), nil
	}
	return mcp.NewToolResultText(string(raw)), nil
}
