package assistant

import (
	"github.com/jayviklabs/jarvis-core/core/commands"
	"github.com/jayviklabs/jarvis-core/core/completions"
	"github.com/jayviklabs/jarvis-core/core/speechinput"
	"github.com/jayviklabs/jarvis-core/core/speechoutput"
	"github.com/jayviklabs/jarvis-core/core/transcript"
)

type assistantCallbacks struct {
	onResponseSegment       func(segment, snapshot string)
	onResponseEnd           func(content string)
	onResponseError         func(err error)
	onTranscription         func(transcript string)
	onListeningStateChanged func(listening bool)
	onSpeakingStateChanged  func(speaking bool)
	onSpeechAudio           func(audio []byte)
	onCommandResult         func(content string)
	onNotice                func(title, description string)
}

type AssistantOption func(*Assistant)

// WithCompletionsClient sets the streaming completion backend. Without one
// the assistant can only run commands and manage the transcript.
func WithCompletionsClient(client *completions.Client) AssistantOption {
	return func(a *Assistant) {
		if client != nil {
			a.completions = client
		}
	}
}

// WithTranscriptStore replaces the default in-memory conversation log.
func WithTranscriptStore(store transcript.Store) AssistantOption {
	return func(a *Assistant) {
		if store != nil {
			a.store = store
		}
	}
}

// WithScope pins the transcript scope. Defaults to the anonymous scope.
func WithScope(scope transcript.Scope) AssistantOption {
	return func(a *Assistant) { a.scope = scope }
}

// WithInstructions replaces the default persona.
func WithInstructions(instructions string) AssistantOption {
	return func(a *Assistant) {
		if instructions != "" {
			a.instructions = instructions
		}
	}
}

func WithCommandDispatcher(dispatcher *commands.Dispatcher) AssistantOption {
	return func(a *Assistant) {
		if dispatcher != nil {
			a.dispatcher = dispatcher
		}
	}
}

// WithRecognizer enables voice input. Without one the listening toggle
// reports the capability as absent.
func WithRecognizer(recognizer speechinput.Recognizer) AssistantOption {
	return func(a *Assistant) { a.recognizer = recognizer }
}

// WithSynthesizer enables spoken output. Without one responses stay
// text-only and the speech capability is reported as absent.
func WithSynthesizer(synthesizer speechoutput.Synthesizer) AssistantOption {
	return func(a *Assistant) { a.synthesizer = synthesizer }
}

// WithHistoryLimit bounds how many persisted turns Load restores.
func WithHistoryLimit(limit int) AssistantOption {
	return func(a *Assistant) {
		if limit > 0 {
			a.historyLimit = limit
		}
	}
}

// WithResponseCallback receives each streamed segment with the snapshot it
// produced.
func WithResponseCallback(callback func(segment, snapshot string)) AssistantOption {
	return func(a *Assistant) { a.callbacks.onResponseSegment = callback }
}

// WithResponseEndCallback receives the assembled response once the stream
// finishes.
func WithResponseEndCallback(callback func(content string)) AssistantOption {
	return func(a *Assistant) { a.callbacks.onResponseEnd = callback }
}

// WithResponseErrorCallback receives stream failures, including those on
// the voice path where Send has no caller to return the error to.
func WithResponseErrorCallback(callback func(err error)) AssistantOption {
	return func(a *Assistant) { a.callbacks.onResponseError = callback }
}

// WithTranscriptionCallback receives the finalized transcript of each
// listening session.
func WithTranscriptionCallback(callback func(transcript string)) AssistantOption {
	return func(a *Assistant) { a.callbacks.onTranscription = callback }
}

func WithListeningStateCallback(callback func(listening bool)) AssistantOption {
	return func(a *Assistant) { a.callbacks.onListeningStateChanged = callback }
}

func WithSpeakingStateCallback(callback func(speaking bool)) AssistantOption {
	return func(a *Assistant) { a.callbacks.onSpeakingStateChanged = callback }
}

// WithSpeechAudioCallback receives encoded speech audio for playback.
func WithSpeechAudioCallback(callback func(audio []byte)) AssistantOption {
	return func(a *Assistant) { a.callbacks.onSpeechAudio = callback }
}

func WithCommandResultCallback(callback func(content string)) AssistantOption {
	return func(a *Assistant) { a.callbacks.onCommandResult = callback }
}

// WithNoticeCallback receives user-visible, non-fatal notifications.
func WithNoticeCallback(callback func(title, description string)) AssistantOption {
	return func(a *Assistant) { a.callbacks.onNotice = callback }
}
