package assistant

import (
	"errors"
	"sync"
)

// ErrSessionActive reports a prompt sent while a response stream is still
// in flight. The caller should retry after the current stream finishes.
var ErrSessionActive = errors.New("a response is already streaming")

// sessionGate admits at most one response stream at a time.
type sessionGate struct {
	mu     sync.Mutex
	active bool
}

func (g *sessionGate) acquire() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.active {
		return ErrSessionActive
	}
	g.active = true
	return nil
}

func (g *sessionGate) release() {
	g.mu.Lock()
	g.active = false
	g.mu.Unlock()
}
