package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historyClientFor(serverURL string) *HistoryClient {
	return NewHistoryClient(config.RemoteConfig{
		HistoryURL: serverURL + "/history",
		ClearURL:   serverURL + "/clear",
		Timeout:    5 * time.Second,
	})
}

func TestNewHistoryClient_NilWithoutURL(t *testing.T) {
	assert.Nil(t, NewHistoryClient(config.RemoteConfig{}))
}

func TestHistoryClient_List_WrappedRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"history": []any{
				map[string]any{
					"id":       "chat_1_a",
					"title":    "Soil advice",
					"messages": []any{map[string]any{"text": "hi"}},
					"created":  float64(1000),
					"updatedAt": time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC).
						Format(time.RFC3339),
				},
				map[string]any{"title": "no id, skipped"},
			},
		})
	}))
	defer server.Close()

	client := historyClientFor(server.URL)
	records, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	record := records[0]
	assert.Equal(t, "chat_1_a", record.ID)
	assert.Equal(t, "Soil advice", record.Title)
	assert.Equal(t, 1, record.MessageCount)
	assert.Equal(t, int64(1000), record.Created)
	assert.Equal(t, "remote", record.Source)
	assert.Greater(t, record.LastUpdated, int64(0))
}

func TestHistoryClient_List_BareArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]any{
			map[string]any{"chatId": "chat_2_b"},
		})
	}))
	defer server.Close()

	client := historyClientFor(server.URL)
	records, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "chat_2_b", records[0].ID)
	assert.Equal(t, "New Chat", records[0].Title)
}

func TestHistoryClient_List_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer server.Close()

	client := historyClientFor(server.URL)
	_, err := client.List(context.Background())
	assert.Error(t, err)
}

func TestHistoryClient_Clear(t *testing.T) {
	var cleared bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/clear" && r.Method == http.MethodPost {
			cleared = true
			w.WriteHeader(http.StatusOK)
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := historyClientFor(server.URL)
	require.NoError(t, client.Clear(context.Background()))
	assert.True(t, cleared)
}
