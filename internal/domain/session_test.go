package domain_test

import (
	"strings"
	"testing"

	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewSessionID(t *testing.T) {
	id := domain.NewSessionID()
	parts := strings.Split(id, "_")

	assert.Len(t, parts, 3)
	assert.Equal(t, "chat", parts[0])
	assert.NotEmpty(t, parts[1])
	assert.NotEmpty(t, parts[2])

	// two ids generated back to back must differ
	assert.NotEqual(t, id, domain.NewSessionID())
}

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name     string
		messages []domain.Message
		expected string
	}{
		{
			"short first user message kept verbatim",
			[]domain.Message{
				{Role: domain.RoleAI, Text: "Welcome!"},
				{Role: domain.RoleUser, Text: "How do I improve soil pH?"},
			},
			"How do I improve soil pH?",
		},
		{
			"long first user message truncated with ellipsis",
			[]domain.Message{
				{Role: domain.RoleUser, Text: "What is the best irrigation schedule for wheat in sandy soil?"},
			},
			"What is the best irrigation sc...",
		},
		{
			"no user messages",
			[]domain.Message{
				{Role: domain.RoleAI, Text: "Welcome!"},
			},
			"New Chat",
		},
		{
			"empty session",
			nil,
			"New Chat",
		},
		{
			"whitespace-only user message skipped",
			[]domain.Message{
				{Role: domain.RoleUser, Text: "   "},
				{Role: domain.RoleUser, Text: "pest control"},
			},
			"pest control",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.DeriveTitle(tt.messages))
		})
	}
}

func TestNewMessage(t *testing.T) {
	msg := domain.NewMessage(domain.RoleUser, "hello")

	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, domain.RoleUser, msg.Role)
	assert.Equal(t, "hello", msg.Text)
	assert.Greater(t, msg.Timestamp, int64(0))
}
