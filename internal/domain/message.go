package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies who produced a message
type Role string

const (
	RoleUser Role = "user"
	RoleAI   Role = "ai"
)

// Message represents one turn in a chat session
type Message struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"` // milliseconds since epoch
}

// NewMessage creates a message with a fresh id and the current timestamp
func NewMessage(role Role, text string) Message {
	return Message{
		ID:        uuid.New().String(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now().UnixMilli(),
	}
}
