package advisor

import "context"

// Request carries one user question with its ambient session context
type Request struct {
	Question  string
	Language  string
	ChatID    string
	Timestamp int64
}

// Response contains the resolved answer text
type Response struct {
	Text      string
	Source    string
	LatencyMs int64
}

// Provider resolves a user question into an answer
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// IsConfigured checks if the provider is usable as wired
	IsConfigured() bool

	// Answer resolves the question or returns an error so the next
	// provider in the chain can try
	Answer(ctx context.Context, req Request) (*Response, error)
}
