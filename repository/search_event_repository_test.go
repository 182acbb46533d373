package repository

import (
	"testing"
	"time"

	"discover/database"
	"discover/models"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T) (*SearchEventRepository, *database.DB, func()) {
	testDB, err := database.NewDB(":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	if err := testDB.InitSchema(); err != nil {
		t.Fatalf("Failed to initialize test schema: %v", err)
	}

	cleanup := func() {
		if err := testDB.Close(); err != nil {
			t.Logf("Failed to close test database: %v", err)
		}
	}

	return NewSearchEventRepository(testDB), testDB, cleanup
}

func TestSearchEventRepository_CreateAndGet(t *testing.T) {
	repo, _, cleanup := setupTestRepo(t)
	defer cleanup()

	require.NoError(t, repo.Create("s1", "dune", models.EventSearchStarted, "Search started", map[string]interface{}{"generation": 1}))
	require.NoError(t, repo.Create("s1", "dune", models.EventCatalogCompleted, "Received catalog results", map[string]interface{}{"count": 12}))
	require.NoError(t, repo.Create("s2", "alien", models.EventSearchStarted, "Search started", nil))

	events, err := repo.GetBySessionID("s1")
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, models.EventCatalogCompleted, events[0].Type, "newest first")
	assert.Equal(t, models.EventSearchStarted, events[1].Type)
	assert.Equal(t, "dune", events[0].Query)
	assert.False(t, events[0].CreatedAt.IsZero())

	var details map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(events[0].Details), &details))
	assert.Equal(t, float64(12), details["count"])

	others, err := repo.GetBySessionID("s2")
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Empty(t, others[0].Details)
}

func TestSearchEventRepository_GetUnknownSession(t *testing.T) {
	repo, _, cleanup := setupTestRepo(t)
	defer cleanup()

	events, err := repo.GetBySessionID("missing")
	assert.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestSearchEventRepository_CreateRejectsUnmarshalableDetails(t *testing.T) {
	repo, _, cleanup := setupTestRepo(t)
	defer cleanup()

	err := repo.Create("s1", "dune", models.EventSearchStarted, "Search started", map[string]interface{}{"fn": func() {}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to marshal event details")
}

func TestSearchEventRepository_GetStatistics(t *testing.T) {
	repo, _, cleanup := setupTestRepo(t)
	defer cleanup()

	for _, eventType := range []models.SearchEventType{
		models.EventSearchStarted,
		models.EventCatalogFailed,
		models.EventRecommendationsCompleted,
		models.EventSearchStarted,
		models.EventResponseDiscarded,
		models.EventResponseDiscarded,
		models.EventRecommendationsFailed,
	} {
		require.NoError(t, repo.Create("s1", "dune", eventType, string(eventType), nil))
	}

	stats, err := repo.GetStatistics("s1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalSearches)
	assert.Equal(t, 1, stats.CatalogFailures)
	assert.Equal(t, 1, stats.RecommendFailures)
	assert.Equal(t, 2, stats.DiscardedResponses)
	assert.NotEmpty(t, stats.LastSearchTime)

	empty, err := repo.GetStatistics("nobody")
	require.NoError(t, err)
	assert.Equal(t, models.SearchStats{}, *empty)
}

func TestSearchEventRepository_DeleteOldEvents(t *testing.T) {
	repo, db, cleanup := setupTestRepo(t)
	defer cleanup()

	_, err := db.Exec(`INSERT INTO search_events (session_id, query, type, message, created_at) VALUES (?, ?, ?, ?, ?)`,
		"old", "heat", models.EventSearchStarted, "Search started", "2020-01-01 00:00:00")
	require.NoError(t, err)
	require.NoError(t, repo.Create("new", "heat", models.EventSearchStarted, "Search started", nil))

	removed, err := repo.DeleteOldEvents(7 * 24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	old, err := repo.GetBySessionID("old")
	require.NoError(t, err)
	assert.Empty(t, old)

	kept, err := repo.GetBySessionID("new")
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}
