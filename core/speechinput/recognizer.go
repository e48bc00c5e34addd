package speechinput

import (
	"context"
	"errors"
)

var (
	// ErrNoSpeech reports a session that ended without detecting speech.
	// Not user-visible.
	ErrNoSpeech = errors.New("no speech detected")
	// ErrAborted reports a session stopped by the user before a transcript
	// was finalized. Not user-visible.
	ErrAborted = errors.New("listening aborted")
)

// Recognizer is one speech recognition engine. A session runs from Start
// until the engine finalizes a transcript, reports an error, or Stop is
// called; every session ends with exactly one transcript or error callback.
type Recognizer interface {
	Start(ctx context.Context, opts ...RecognitionOption) error
	Stop() error
	SendAudio(audio []byte) error
}
