package events

import "time"

// Kind names an event type. Kinds are dot-namespaced strings, for example
// "assistant_response.segment".
type Kind string

// Event is implemented by every notification the assistant emits.
type Event interface {
	Kind() Kind
	Timestamp() time.Time
}

// Base carries the kind and the emission time shared by every event.
// Concrete events embed it and build it through NewBase.
type Base struct {
	kind    Kind
	emitted time.Time
}

func NewBase(kind Kind) Base {
	return Base{kind: kind, emitted: time.Now()}
}

func (b Base) Kind() Kind { return b.kind }

func (b Base) Timestamp() time.Time { return b.emitted }
