package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/config"
)

// HistoryClient talks to the backend history endpoints. Responses are
// parsed tolerantly: record lists may sit at the top level or under a
// wrapper key, and timestamp/title fields vary by backend version.
type HistoryClient struct {
	historyURL string
	clearURL   string
	client     *http.Client
}

// NewHistoryClient creates a history client from config. Returns nil
// when no history URL is wired, so callers can treat the backend as
// absent.
func NewHistoryClient(cfg config.RemoteConfig) *HistoryClient {
	if cfg.HistoryURL == "" {
		return nil
	}
	return &HistoryClient{
		historyURL: cfg.HistoryURL,
		clearURL:   cfg.ClearURL,
		client:     &http.Client{Timeout: cfg.Timeout},
	}
}

// List fetches the remote session list
func (c *HistoryClient) List(ctx context.Context) ([]SessionSummary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.historyURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build history request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("history request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("history endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read history response: %w", err)
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse history response: %w", err)
	}

	return parseRecords(payload), nil
}

// Clear asks the backend to drop its history
func (c *HistoryClient) Clear(ctx context.Context) error {
	if c.clearURL == "" {
		return fmt.Errorf("no clear endpoint configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.clearURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build clear request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("clear request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("clear endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

// parseRecords finds the record list in the payload and maps each entry
// to a summary, skipping entries without an id.
func parseRecords(payload any) []SessionSummary {
	items, ok := payload.([]any)
	if !ok {
		obj, isObj := payload.(map[string]any)
		if !isObj {
			return nil
		}
		for _, key := range []string{"history", "chats", "sessions", "data"} {
			if list, found := obj[key].([]any); found {
				items = list
				break
			}
		}
	}

	var summaries []SessionSummary
	for _, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			continue
		}

		id := stringField(record, "id", "chatId", "sessionId", "_id")
		if id == "" {
			continue
		}

		summary := SessionSummary{
			ID:          id,
			Title:       stringField(record, "title"),
			Created:     timeField(record, "created", "created_at", "createdAt"),
			LastUpdated: timeField(record, "lastUpdated", "updated_at", "updatedAt"),
			Source:      "remote",
		}
		if messages, ok := record["messages"].([]any); ok {
			summary.MessageCount = len(messages)
		}
		if summary.Title == "" {
			summary.Title = "New Chat"
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

func stringField(record map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := record[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// timeField accepts epoch milliseconds or RFC3339 strings
func timeField(record map[string]any, keys ...string) int64 {
	for _, key := range keys {
		switch v := record[key].(type) {
		case float64:
			return int64(v)
		case string:
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				return t.UnixMilli()
			}
		}
	}
	return 0
}
