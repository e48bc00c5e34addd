package speechinput

import "github.com/jayviklabs/jarvis-core/core/audio"

// RecognitionOptions configure one listening session.
type RecognitionOptions struct {
	// TranscriptCallback is called with the finalized transcript, at most
	// once per session.
	TranscriptCallback func(transcript string)
	// ErrorCallback is called when the session ends without a transcript.
	// ErrNoSpeech and ErrAborted identify the silent cases.
	ErrorCallback func(err error)

	Language     string
	EncodingInfo audio.EncodingInfo
}

type RecognitionOption func(*RecognitionOptions)

func WithTranscriptionCallback(callback func(transcript string)) RecognitionOption {
	return func(o *RecognitionOptions) {
		o.TranscriptCallback = callback
	}
}

func WithErrorCallback(callback func(err error)) RecognitionOption {
	return func(o *RecognitionOptions) {
		o.ErrorCallback = callback
	}
}

func WithLanguage(language string) RecognitionOption {
	return func(o *RecognitionOptions) {
		o.Language = language
	}
}

func WithEncodingInfo(encodingInfo audio.EncodingInfo) RecognitionOption {
	return func(o *RecognitionOptions) {
		o.EncodingInfo = encodingInfo
	}
}
