// Package speechinput wraps a speech recognition engine in the listening
// state machine the assistant drives.
package speechinput

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jayviklabs/jarvis-core/core/audio"
)

// State is the listening lifecycle position.
type State string

const (
	StateIdle       State = "idle"
	StateListening  State = "listening"
	StateFinalizing State = "finalizing"
)

const DefaultLanguage = "hi-IN"

// Controller owns at most one listening session at a time. Toggle starts a
// session when idle and stops the active one otherwise; it never stacks a
// second session on top of the first.
type Controller struct {
	mu    sync.Mutex
	state State

	recognizer Recognizer
	language   string
	encoding   audio.EncodingInfo

	// capabilityNotified makes the capability-missing notice one-time.
	capabilityNotified bool

	onTranscript   func(transcript string)
	onStateChanged func(state State)
	onNotice       func(title, description string)
}

type ControllerOption func(*Controller)

// WithInitialLanguage sets the recognition language for subsequent sessions.
func WithInitialLanguage(language string) ControllerOption {
	return func(c *Controller) {
		if language != "" {
			c.language = language
		}
	}
}

func WithEncoding(encodingInfo audio.EncodingInfo) ControllerOption {
	return func(c *Controller) {
		if !encodingInfo.IsZero() {
			c.encoding = encodingInfo
		}
	}
}

// WithTranscriptCallback sets the finalized-utterance receiver. Each session
// produces at most one call.
func WithTranscriptCallback(callback func(transcript string)) ControllerOption {
	return func(c *Controller) {
		if callback != nil {
			c.onTranscript = callback
		}
	}
}

func WithStateCallback(callback func(state State)) ControllerOption {
	return func(c *Controller) {
		if callback != nil {
			c.onStateChanged = callback
		}
	}
}

// WithNoticeCallback sets the receiver for user-visible, non-fatal notices.
func WithNoticeCallback(callback func(title, description string)) ControllerOption {
	return func(c *Controller) {
		if callback != nil {
			c.onNotice = callback
		}
	}
}

// NewController wraps the given recognizer. A nil recognizer marks the
// capability as absent: Toggle becomes a no-op that produces a one-time
// notice.
func NewController(recognizer Recognizer, opts ...ControllerOption) *Controller {
	controller := &Controller{
		state:      StateIdle,
		recognizer: recognizer,
		language:   DefaultLanguage,
		encoding:   audio.DefaultEncodingInfo(),

		onTranscript:   func(string) {},
		onStateChanged: func(State) {},
		onNotice:       func(string, string) {},
	}
	for _, opt := range opts {
		opt(controller)
	}

	return controller
}

// State reports the current lifecycle position.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// IsListening reports whether a session is active.
func (c *Controller) IsListening() bool {
	return c.State() == StateListening
}

// SetLanguage changes the target recognition language. It takes effect on
// the next listening session; an active session is left untouched.
func (c *Controller) SetLanguage(language string) {
	if language == "" {
		return
	}

	c.mu.Lock()
	c.language = language
	c.mu.Unlock()

	c.onNotice("Language Changed", fmt.Sprintf("Voice recognition set to %s", language))
}

// Language returns the language the next session will use.
func (c *Controller) Language() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.language
}

// Toggle starts a listening session when idle and stops the active session
// otherwise.
func (c *Controller) Toggle(ctx context.Context) error {
	if c.recognizer == nil {
		c.notifyCapabilityMissing()
		return nil
	}

	c.mu.Lock()
	if c.state == StateListening {
		c.state = StateIdle
		c.mu.Unlock()

		c.onStateChanged(StateIdle)
		if err := c.recognizer.Stop(); err != nil {
			return fmt.Errorf("failed to stop listening: %w", err)
		}
		return nil
	}

	if c.state == StateFinalizing {
		// A transcript is being handed off; the session is already over.
		c.mu.Unlock()
		return nil
	}

	language := c.language
	encoding := c.encoding
	c.state = StateListening
	c.mu.Unlock()

	c.onStateChanged(StateListening)
	if err := c.recognizer.Start(ctx,
		WithLanguage(language),
		WithEncodingInfo(encoding),
		WithTranscriptionCallback(c.handleTranscript),
		WithErrorCallback(c.handleError),
	); err != nil {
		c.mu.Lock()
		c.state = StateIdle
		c.mu.Unlock()
		c.onStateChanged(StateIdle)
		return fmt.Errorf("failed to start listening: %w", err)
	}

	return nil
}

// SendAudio forwards captured audio to the engine while a session is active.
func (c *Controller) SendAudio(chunk []byte) error {
	if c.recognizer == nil || !c.IsListening() {
		return nil
	}

	return c.recognizer.SendAudio(chunk)
}

func (c *Controller) handleTranscript(transcript string) {
	c.mu.Lock()
	if c.state != StateListening {
		c.mu.Unlock()
		return
	}
	c.state = StateFinalizing
	c.mu.Unlock()

	c.onTranscript(transcript)

	c.mu.Lock()
	c.state = StateIdle
	c.mu.Unlock()
	c.onStateChanged(StateIdle)
}

func (c *Controller) handleError(err error) {
	c.mu.Lock()
	wasListening := c.state == StateListening
	c.state = StateIdle
	c.mu.Unlock()

	if wasListening {
		c.onStateChanged(StateIdle)
	}

	if errors.Is(err, ErrNoSpeech) || errors.Is(err, ErrAborted) {
		return
	}

	c.onNotice("Voice Recognition Error", "Please try again")
}

func (c *Controller) notifyCapabilityMissing() {
	c.mu.Lock()
	alreadyNotified := c.capabilityNotified
	c.capabilityNotified = true
	c.mu.Unlock()

	if !alreadyNotified {
		c.onNotice("Voice Recognition Not Supported", "This runtime doesn't support voice recognition")
	}
}
