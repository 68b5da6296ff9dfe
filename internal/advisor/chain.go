package advisor

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Localized hard-failure strings, used only when every provider
// including the local responder fails.
const (
	errTextEN = "Sorry, I am having trouble answering right now. Please try again."
	errTextHI = "क्षमा करें, अभी उत्तर देने में समस्या हो रही है। कृपया पुनः प्रयास करें।"
)

// Chain tries providers in registration order and settles on the first
// answer. The last provider is expected to be the local responder, so a
// chain normally cannot fail; if it somehow does, Resolve returns a
// fixed localized apology instead of an error.
type Chain struct {
	providers []Provider
}

// NewChain creates a resolution chain over the given providers
func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

// Resolve produces an answer for the request. Never returns an empty
// text and never fails.
func (c *Chain) Resolve(ctx context.Context, req Request) *Response {
	start := time.Now()

	for _, p := range c.providers {
		if !p.IsConfigured() {
			continue
		}

		resp, err := p.Answer(ctx, req)
		if err != nil {
			log.Warn().
				Err(err).
				Str("provider", p.Name()).
				Str("chat_id", req.ChatID).
				Msg("advisor provider failed, trying next")
			continue
		}
		if resp == nil || resp.Text == "" {
			continue
		}

		resp.Source = p.Name()
		if resp.LatencyMs == 0 {
			resp.LatencyMs = time.Since(start).Milliseconds()
		}
		return resp
	}

	return &Response{
		Text:      errorText(req.Language),
		Source:    "error",
		LatencyMs: time.Since(start).Milliseconds(),
	}
}

func errorText(language string) string {
	if language == "hi" {
		return errTextHI
	}
	return errTextEN
}
