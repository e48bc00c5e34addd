// Package speechoutput speaks assistant responses aloud, picking a voice
// that matches the script of the text.
package speechoutput

import (
	"context"
	"errors"
	"sync"

	"github.com/jayviklabs/jarvis-core/core/audio"
)

// LanguageHindi is selected when the text contains Devanagari script.
const LanguageHindi = "hi-IN"

// ErrNotSupported reports that no synthesis engine is available.
var ErrNotSupported = errors.New("speech synthesis not supported")

// Controller drives at most one utterance at a time. Every Speak that
// starts emits a started signal followed by exactly one ended signal,
// which carries the error when synthesis failed.
type Controller struct {
	mu         sync.Mutex
	speaking   bool
	cancel     context.CancelFunc
	done       chan struct{}
	generation int

	synthesizer Synthesizer
	encoding    audio.EncodingInfo

	capabilityNotified bool

	onStarted func()
	onEnded   func(err error)
	onAudio   func(audio []byte)
	onNotice  func(title, description string)
}

type ControllerOption func(*Controller)

func WithStartedCallback(callback func()) ControllerOption {
	return func(c *Controller) {
		if callback != nil {
			c.onStarted = callback
		}
	}
}

// WithEndedCallback sets the terminal-signal receiver. A nil error means
// the utterance completed or was superseded; anything else is a synthesis
// failure.
func WithEndedCallback(callback func(err error)) ControllerOption {
	return func(c *Controller) {
		if callback != nil {
			c.onEnded = callback
		}
	}
}

func WithSpeechAudioCallback(callback func(audio []byte)) ControllerOption {
	return func(c *Controller) {
		if callback != nil {
			c.onAudio = callback
		}
	}
}

func WithNoticeCallback(callback func(title, description string)) ControllerOption {
	return func(c *Controller) {
		if callback != nil {
			c.onNotice = callback
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

// NewController wraps the given synthesizer. A nil synthesizer marks the
// capability as absent: Speak emits the terminal signal immediately,
// without a started signal, and produces a one-time notice.
func NewController(synthesizer Synthesizer, opts ...ControllerOption) *Controller {
	controller := &Controller{
		synthesizer: synthesizer,
		encoding:    audio.DefaultEncodingInfo(),

		onStarted: func() {},
		onEnded:   func(error) {},
		onAudio:   func([]byte) {},
		onNotice:  func(string, string) {},
	}
	for _, opt := range opts {
		opt(controller)
	}

	return controller
}

// IsSpeaking reports whether an utterance is in flight.
func (c *Controller) IsSpeaking() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.speaking
}

// Speak voices the given text. Text containing Devanagari script is spoken
// with the Hindi voice, everything else with the engine default. An
// utterance already in flight is cancelled first; its ended signal fires
// before the new started signal.
func (c *Controller) Speak(ctx context.Context, text string) {
	if c.synthesizer == nil {
		c.notifyCapabilityMissing()
		c.onEnded(ErrNotSupported)
		return
	}

	c.mu.Lock()
	// A previous job holds the slot until its goroutine closes done, which
	// happens strictly after its ended signal has fired.
	for c.done != nil {
		cancel, done := c.cancel, c.done
		c.mu.Unlock()
		if cancel != nil {
			cancel()
		}
		<-done
		c.mu.Lock()
		if c.done == done {
			c.done = nil
		}
	}

	speechCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.speaking = true
	c.cancel = cancel
	c.done = done
	c.generation++
	generation := c.generation
	c.mu.Unlock()

	language := ""
	if containsDevanagari(text) {
		language = LanguageHindi
	}

	c.onStarted()
	go func() {
		err := c.synthesizer.Synthesize(speechCtx, text,
			WithLanguage(language),
			WithEncodingInfo(c.encoding),
			WithAudioCallback(c.onAudio),
		)
		c.finish(generation, cancel, err)
		close(done)
	}()
}

// Stop cancels the active utterance, if any. The cancelled utterance still
// emits its ended signal, with a nil error.
func (c *Controller) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (c *Controller) finish(generation int, cancel context.CancelFunc, err error) {
	c.mu.Lock()
	if c.generation == generation {
		c.speaking = false
		c.cancel = nil
	}
	c.mu.Unlock()

	cancel()

	if errors.Is(err, context.Canceled) {
		err = nil
	}
	c.onEnded(err)
}

func (c *Controller) notifyCapabilityMissing() {
	c.mu.Lock()
	alreadyNotified := c.capabilityNotified
	c.capabilityNotified = true
	c.mu.Unlock()

	if !alreadyNotified {
		c.onNotice("Speech Not Supported", "This runtime doesn't support speech synthesis")
	}
}

// containsDevanagari reports whether any rune falls in the Devanagari
// block, U+0900 through U+097F.
func containsDevanagari(text string) bool {
	for _, r := range text {
		if r >= 0x0900 && r <= 0x097F {
			return true
		}
	}
	return false
}
