package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/analytics"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/domain"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/repository/filestore"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeSession_Latency(t *testing.T) {
	t0 := int64(1_700_000_000_000)
	session := domain.ChatSession{
		ID: "chat_1_a",
		Messages: []domain.Message{
			{ID: "m1", Role: domain.RoleUser, Text: "q1", Timestamp: t0},
			{ID: "m2", Role: domain.RoleAI, Text: "a1", Timestamp: t0 + 2000},
			{ID: "m3", Role: domain.RoleUser, Text: "q2", Timestamp: t0 + 5000},
			{ID: "m4", Role: domain.RoleAI, Text: "a2", Timestamp: t0 + 7000},
		},
	}

	stats := analytics.AnalyzeSession(session)

	assert.Equal(t, 2, stats.UserMessages)
	assert.Equal(t, 2, stats.AIMessages)
	assert.Equal(t, 2, stats.ResponsesCounted)
	assert.InDelta(t, 2000.0, stats.AvgResponseMs, 0.001)
	assert.Equal(t, int64(7000), stats.DurationMs)
}

func TestAnalyzeSession_OnlyAdjacentPairsCounted(t *testing.T) {
	session := domain.ChatSession{
		Messages: []domain.Message{
			{Role: domain.RoleUser, Text: "q1", Timestamp: 1000},
			{Role: domain.RoleUser, Text: "q2", Timestamp: 2000}, // no ai follows q1
			{Role: domain.RoleAI, Text: "a", Timestamp: 5000},
		},
	}

	stats := analytics.AnalyzeSession(session)
	assert.Equal(t, 1, stats.ResponsesCounted)
	assert.InDelta(t, 3000.0, stats.AvgResponseMs, 0.001)
}

func TestAnalyzeSession_Topics(t *testing.T) {
	session := domain.ChatSession{
		Messages: []domain.Message{
			{Role: domain.RoleUser, Text: "soil and irrigation for wheat", Timestamp: 1},
			{Role: domain.RoleUser, Text: "soil pH correction", Timestamp: 2},
			{Role: domain.RoleAI, Text: "soil soil soil irrelevant", Timestamp: 3}, // ai ignored
			{Role: domain.RoleUser, Text: "pest on leaves", Timestamp: 4},
		},
	}

	stats := analytics.AnalyzeSession(session)
	require.NotEmpty(t, stats.Topics)
	assert.Equal(t, analytics.Topic{Name: "soil", Count: 2}, stats.Topics[0])

	names := map[string]int{}
	for _, topic := range stats.Topics {
		names[topic.Name] = topic.Count
	}
	assert.Equal(t, 1, names["irrigation"])
	assert.Equal(t, 1, names["pest"])
	assert.NotContains(t, names, "weather")
}

func TestAnalyzeSession_WordCount(t *testing.T) {
	session := domain.ChatSession{
		Messages: []domain.Message{
			{Role: domain.RoleUser, Text: "two words", Timestamp: 1},
			{Role: domain.RoleAI, Text: "three more  words", Timestamp: 2},
		},
	}

	stats := analytics.AnalyzeSession(session)
	assert.Equal(t, 5, stats.TotalWords)
}

func TestAnalyzeAll(t *testing.T) {
	day := time.Date(2026, 8, 20, 12, 0, 0, 0, time.Local)
	all := map[string]domain.ChatSession{
		"chat_1_a": {
			ID: "chat_1_a", Created: 1000, LastUpdated: day.UnixMilli(),
			Messages: []domain.Message{{Timestamp: 1000}, {Timestamp: 2000}},
		},
		"chat_2_b": {
			ID: "chat_2_b", Created: 2000, LastUpdated: day.Add(time.Hour).UnixMilli(),
			Messages: []domain.Message{{Timestamp: 2000}},
		},
		"chat_3_c": {
			ID: "chat_3_c", Created: 3000, LastUpdated: day.Add(48 * time.Hour).UnixMilli(),
			Messages: []domain.Message{{Timestamp: 3000}, {Timestamp: 4000}, {Timestamp: 5000}},
		},
	}

	stats := analytics.AnalyzeAll(all)

	assert.Equal(t, 3, stats.TotalSessions)
	assert.Equal(t, 6, stats.TotalMessages)
	assert.InDelta(t, 2.0, stats.AvgMessages, 0.001)
	assert.Equal(t, day.Format("2006-01-02"), stats.MostActiveDay)
	assert.Equal(t, 2, stats.MostActiveDayCount)
	assert.Equal(t, "chat_1_a", stats.OldestSessionID)
	assert.Equal(t, "chat_3_c", stats.NewestSessionID)
}

func TestAnalyzeAll_Empty(t *testing.T) {
	stats := analytics.AnalyzeAll(map[string]domain.ChatSession{})
	assert.Equal(t, 0, stats.TotalSessions)
	assert.Empty(t, stats.MostActiveDay)
}

func TestCleanupOldSessions(t *testing.T) {
	ks, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	s := store.New(ks)
	ctx := context.Background()

	now := time.Now().UnixMilli()
	tenDaysAgo := time.Now().AddDate(0, 0, -10).UnixMilli()
	fortyDaysAgo := time.Now().AddDate(0, 0, -40).UnixMilli()

	require.NoError(t, s.ReplaceAll(ctx, map[string]domain.ChatSession{
		"chat_now":   {ID: "chat_now", LastUpdated: now},
		"chat_10d":   {ID: "chat_10d", LastUpdated: tenDaysAgo},
		"chat_stale": {ID: "chat_stale", LastUpdated: fortyDaysAgo},
	}))

	deleted, err := analytics.CleanupOldSessions(ctx, s, 30)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	all, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Contains(t, all, "chat_now")
	assert.Contains(t, all, "chat_10d")
	assert.NotContains(t, all, "chat_stale")
}

func TestCleanupOldSessions_NothingToDelete(t *testing.T) {
	ks, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	s := store.New(ks)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "chat_fresh", []domain.Message{{ID: "m", Role: domain.RoleUser, Text: "hi", Timestamp: 1}}))

	deleted, err := analytics.CleanupOldSessions(ctx, s, 30)
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)
}
