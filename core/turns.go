package assistant

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry in the conversation log. Content is mutable only while
// the turn is in flight; once finalised the turn is never updated.
type Turn struct {
	ID        string
	Role      Role
	Content   string
	CreatedAt time.Time
}

// NewTurn creates a finalised turn with a fresh creation-time ordered ID.
func NewTurn(role Role, content string) Turn {
	return Turn{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
}
