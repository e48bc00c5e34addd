// Package transcript defines the durable conversation log contract.
//
// Appends are fire-and-forget from the orchestrator's point of view: a
// persistence failure is logged and the conversation continues with the
// content already rendered.
package transcript

import (
	"context"
	"time"
)

// Scope is the identity context a log belongs to. The zero value is the
// anonymous scope. Clearing one scope never affects another.
type Scope struct {
	UserID string
}

// Anonymous is the scope used when no identity is established.
var Anonymous = Scope{}

// Entry is one persisted turn.
type Entry struct {
	ID        string
	Role      string
	Content   string
	CreatedAt time.Time
}

// Store is the persistence collaborator backing the conversation log.
type Store interface {
	// Append persists one finalised entry.
	Append(ctx context.Context, scope Scope, entry Entry) error
	// Load returns the most recent limit entries ordered oldest first,
	// regardless of the storage engine's native ordering.
	Load(ctx context.Context, scope Scope, limit int) ([]Entry, error)
	// Clear deletes every entry in the given scope.
	Clear(ctx context.Context, scope Scope) error
}
