// Package remote asks the Upaj backend for an answer. The endpoint's
// response shape is not strictly contracted, so the body is mined for
// the first usable string rather than decoded into a fixed struct.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/advisor"
)

// statusError marks a non-2xx reply. The endpoint answered, so the
// retry budget does not apply to it.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("ask endpoint returned status %d", e.code)
}

// Provider implements advisor.Provider against the remote ask endpoint
type Provider struct {
	askURL  string
	retries int
	client  *http.Client
}

type askRequest struct {
	Question string     `json:"question"`
	Context  askContext `json:"context"`
}

type askContext struct {
	Language  string `json:"language"`
	ChatID    string `json:"chatId"`
	Timestamp int64  `json:"timestamp"`
}

// New creates a remote provider. timeout bounds each attempt; retries
// is the number of extra attempts after a timeout or transport error.
func New(askURL string, timeout time.Duration, retries int) *Provider {
	if retries < 0 {
		retries = 0
	}
	return &Provider{
		askURL:  askURL,
		retries: retries,
		client:  &http.Client{Timeout: timeout},
	}
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return "remote"
}

// IsConfigured reports whether an ask URL is wired
func (p *Provider) IsConfigured() bool {
	return p.askURL != ""
}

// Answer posts the question and mines the response for an answer string
func (p *Provider) Answer(ctx context.Context, req advisor.Request) (*advisor.Response, error) {
	payload, err := json.Marshal(askRequest{
		Question: req.Question,
		Context: askContext{
			Language:  req.Language,
			ChatID:    req.ChatID,
			Timestamp: req.Timestamp,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ask request: %w", err)
	}

	start := time.Now()

	var lastErr error
	for attempt := 0; attempt <= p.retries; attempt++ {
		body, err := p.post(ctx, payload)
		if err != nil {
			lastErr = err
			var se *statusError
			if errors.As(err, &se) || ctx.Err() != nil {
				break
			}
			continue
		}

		return &advisor.Response{
			Text:      answerFrom(body),
			LatencyMs: time.Since(start).Milliseconds(),
		}, nil
	}

	return nil, fmt.Errorf("ask endpoint failed: %w", lastErr)
}

func (p *Provider) post(ctx context.Context, payload []byte) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.askURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build ask request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ask request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read ask response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &statusError{code: resp.StatusCode}
	}

	return body, nil
}

// answerFrom extracts the display text from a tolerantly parsed body.
// A plain-text body is used as is; a JSON body is mined for its first
// string; if nothing usable is found the whole payload is pretty
// printed rather than failing.
func answerFrom(body []byte) string {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return string(body)
	}

	if text, ok := advisor.ExtractBestString(payload); ok {
		return text
	}

	dump, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return string(body)
	}
	return string(dump)
}
