//go:build integration_test || all_tests

package events

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/2beens/fitforge/internal/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deleteAllFor(ctx context.Context, repo *Repo, uid string) (int64, error) {
	tag, err := repo.db.Exec(ctx, `DELETE FROM training_event WHERE uid = $1`, uid)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func testRepoSetup(t *testing.T) (*Repo, func()) {
	t.Helper()

	timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	host := os.Getenv("POSTGRES_HOST")
	if host == "" {
		host = "localhost"
	}
	t.Logf("using postres host: %s", host)

	params := db.NewDBPoolParams{
		DBHost:         host,
		DBPort:         "5432",
		DBName:         "fitforge",
		TracingEnabled: false,
	}
	require.NoError(t, db.Migrate(params.ConnString()))

	dbPool, err := db.NewDBPool(timeoutCtx, params)
	require.NoError(t, err)

	return NewRepo(dbPool), func() {
		dbPool.Close()
	}
}

func TestRepo_AddListCount(t *testing.T) {
	repo, shutdown := testRepoSetup(t)
	defer shutdown()

	ctx := context.Background()
	uid := "repo-test-uid"
	deleted, err := deleteAllFor(ctx, repo, uid)
	require.NoError(t, err)
	t.Logf("test setup, deleted events: %d", deleted)

	now := time.Now().UTC().Truncate(time.Second)
	start, err := repo.Add(ctx, NewTrainingStartEvent(uid, TrainingStart{
		SessionID: "s-1",
		WorkoutID: "101",
		Title:     "Chest (Push)",
		Timestamp: now.Add(-time.Hour),
	}))
	require.NoError(t, err)
	require.NotZero(t, start.ID)

	finish, err := repo.Add(ctx, NewTrainingFinishEvent(uid, TrainingFinish{
		SessionID:      "s-1",
		WorkoutID:      "101",
		Title:          "Chest (Push)",
		Timestamp:      now,
		Calories:       425,
		ElapsedSeconds: 3000,
	}))
	require.NoError(t, err)

	// another user's events never show up
	_, err = repo.Add(ctx, NewWeightReportEvent("someone-else", WeightReport{Weight: 80, Timestamp: now}))
	require.NoError(t, err)

	got, err := repo.Get(ctx, finish.ID)
	require.NoError(t, err)
	assert.Equal(t, EventTypeTrainingFinished, got.Type)
	assert.Equal(t, "425", got.Data["calories"])
	assert.True(t, now.Equal(got.Timestamp))

	list, err := repo.List(ctx, ListParams{EventParams: EventParams{UID: uid}, Page: 1, Size: 10})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, finish.ID, list[0].ID)
	assert.Equal(t, start.ID, list[1].ID)

	startedType := EventTypeTrainingStarted
	count, err := repo.Count(ctx, EventParams{UID: uid, Type: &startedType})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	from := now.Add(-time.Minute)
	list, err = repo.List(ctx, ListParams{EventParams: EventParams{UID: uid, From: &from}, Page: 1, Size: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, finish.ID, list[0].ID)

	list, err = repo.List(ctx, ListParams{EventParams: EventParams{UID: uid}, Page: 2, Size: 1})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, start.ID, list[0].ID)

	_, err = deleteAllFor(ctx, repo, "someone-else")
	require.NoError(t, err)
}
