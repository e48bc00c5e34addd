package speechoutput

import (
	"context"

	"github.com/jayviklabs/jarvis-core/core/audio"
)

// SynthesisOptions configure one spoken utterance.
type SynthesisOptions struct {
	// AudioCallback is called with encoded audio as the engine produces it.
	AudioCallback func(audio []byte)

	// Language is a BCP 47 tag the engine uses to pick a voice. Empty
	// selects the engine default.
	Language string

	EncodingInfo audio.EncodingInfo
}

type SynthesisOption func(*SynthesisOptions)

func WithAudioCallback(callback func(audio []byte)) SynthesisOption {
	return func(o *SynthesisOptions) {
		o.AudioCallback = callback
	}
}

func WithLanguage(language string) SynthesisOption {
	return func(o *SynthesisOptions) {
		o.Language = language
	}
}

func WithEncodingInfo(encodingInfo audio.EncodingInfo) SynthesisOption {
	return func(o *SynthesisOptions) {
		if !encodingInfo.IsZero() {
			o.EncodingInfo = encodingInfo
		}
	}
}

// Synthesizer turns text into speech audio. Synthesize blocks until the
// utterance has been fully produced, the context is cancelled, or the
// engine fails.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, opts ...SynthesisOption) error
}
