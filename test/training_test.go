//go:build integration_test || all_tests

package test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/2beens/fitforge/internal/chatbot"
	"github.com/2beens/fitforge/internal/diets"
	"github.com/2beens/fitforge/internal/docstore"
	"github.com/2beens/fitforge/internal/events"
	"github.com/2beens/fitforge/internal/session"
	"github.com/2beens/fitforge/internal/workouts"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) deleteAllEvents(ctx context.Context) {
	_, err := s.DB.ExecContext(ctx, "DELETE FROM training_event")
	require.NoError(s.T(), err)
}

func (s *IntegrationTestSuite) countEvents(ctx context.Context, eventType events.EventType) int {
	var count int
	err := s.DB.QueryRowContext(
		ctx,
		"SELECT COUNT(*) FROM training_event WHERE uid = $1 AND type = $2",
		testUID, string(eventType),
	).Scan(&count)
	require.NoError(s.T(), err)
	return count
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func (s *IntegrationTestSuite) TestWorkoutSession() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.deleteAllEvents(ctx)
	token := s.doLogin(ctx).Token

	resp := s.doRequest(ctx, token, "GET", "/workouts/101", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	workout := decodeBody[workouts.Workout](t, resp)
	require.Equal(t, "Chest (Push)", workout.Title)

	resp = s.doRequest(ctx, token, "POST", "/sessions/select", session.SelectRequest{WorkoutID: "101"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap := decodeBody[session.Snapshot](t, resp)
	assert.Equal(t, "00:00", snap.Clock)
	assert.Equal(t, 0, snap.ExerciseIndex)
	assert.False(t, snap.Running)

	resp = s.doRequest(ctx, token, "POST", "/sessions/start", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap = decodeBody[session.Snapshot](t, resp)
	assert.True(t, snap.Running)

	resp = s.doRequest(ctx, token, "POST", "/sessions/next", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap = decodeBody[session.Snapshot](t, resp)
	assert.Equal(t, 1, snap.ExerciseIndex)
	assert.True(t, snap.Resting)

	resp = s.doRequest(ctx, token, "POST", "/sessions/finish", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decodeBody[session.FinishResult](t, resp)
	assert.Equal(t, snap.ID, result.SessionID)
	assert.Equal(t, 425, result.Calories)

	resp = s.doRequest(ctx, token, "GET", "/sessions/current", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	assert.Equal(t, 1, s.countEvents(ctx, events.EventTypeTrainingStarted))
	assert.Equal(t, 1, s.countEvents(ctx, events.EventTypeTrainingFinished))
	assert.EqualValues(t, 425, s.store.Value(docstore.BurntCaloriesPath(testUID)))

	resp = s.doRequest(ctx, token, "GET", "/events?page=1&size=10", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	eventsResp := decodeBody[events.ListResponse](t, resp)
	require.Len(t, eventsResp.Events, 2)
	assert.Equal(t, 2, eventsResp.Total)
	// newest first
	assert.Equal(t, events.EventTypeTrainingFinished, eventsResp.Events[0].Type)
	assert.Equal(t, events.EventTypeTrainingStarted, eventsResp.Events[1].Type)
}

func (s *IntegrationTestSuite) TestCustomWorkouts() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := s.doLogin(ctx).Token

	title := gofakeit.HipsterWord() + " circuit"
	resp := s.doRequest(ctx, token, "POST", "/workouts/custom", workouts.CustomWorkoutInput{
		Title:         title,
		MuscleGroup:   "Legs",
		Duration:      "30 minutes",
		Calories:      "200 kcal",
		ExercisesText: "Squats, Lunges",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[workouts.Workout](t, resp)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, []string{"Squats", "Lunges"}, created.Exercises)
	assert.True(t, created.Custom)

	resp = s.doRequest(ctx, token, "GET", "/workouts/custom", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	custom := decodeBody[[]workouts.Workout](t, resp)
	require.Len(t, custom, 1)
	assert.Equal(t, title, custom[0].Title)

	resp = s.doRequest(ctx, token, "DELETE", "/workouts/custom/"+created.ID, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.doRequest(ctx, token, "GET", "/workouts/custom", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeBody[[]workouts.Workout](t, resp))
}

func (s *IntegrationTestSuite) TestDietsAndChat() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := s.doLogin(ctx).Token

	resp := s.doRequest(ctx, token, "GET", "/diets", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	plans := decodeBody[[]diets.Plan](t, resp)
	assert.Len(t, plans, 3)

	resp = s.doRequest(ctx, token, "POST", "/diets/custom", diets.Meals{})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.doRequest(ctx, token, "POST", "/chat", map[string]string{"prompt": "Hello"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	reply := decodeBody[chatbot.Reply](t, resp)
	assert.Equal(t, chatbot.SourceRule, reply.Source)
	assert.NotEmpty(t, reply.Text)
}
