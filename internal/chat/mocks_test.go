package chat

import (
	"context"
	"sync"

	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/advisor"
	"github.com/stretchr/testify/mock"
)

// MockHistoryService mocks the HistoryService interface
type MockHistoryService struct {
	mock.Mock
}

func (m *MockHistoryService) List(ctx context.Context) ([]SessionSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]SessionSummary), args.Error(1)
}

func (m *MockHistoryService) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// stubResolver answers with a fixed text, optionally blocking until
// released so tests can hold a send in flight.
type stubResolver struct {
	mu      sync.Mutex
	text    string
	gate    chan struct{}
	calls   int
	lastReq advisor.Request
}

func newStubResolver(text string) *stubResolver {
	return &stubResolver{text: text}
}

func (r *stubResolver) Resolve(ctx context.Context, req advisor.Request) *advisor.Response {
	r.mu.Lock()
	r.calls++
	r.lastReq = req
	gate := r.gate
	r.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return &advisor.Response{Text: r.text, Source: "stub"}
}

func (r *stubResolver) block() chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gate = make(chan struct{})
	return r.gate
}

// panicOnceResolver panics on its first call and answers normally after
// that, to exercise gate recovery.
type panicOnceResolver struct {
	mu    sync.Mutex
	fired bool
}

func (r *panicOnceResolver) Resolve(ctx context.Context, req advisor.Request) *advisor.Response {
	r.mu.Lock()
	first := !r.fired
	r.fired = true
	r.mu.Unlock()

	if first {
		panic("provider blew up")
	}
	return &advisor.Response{Text: "recovered", Source: "stub"}
}

func (r *stubResolver) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}
