package events

const (
	// KindAssistantSpeechStarted identifies the start of spoken output.
	KindAssistantSpeechStarted Kind = "assistant_speech.started"
	// KindAssistantSpeechEnded identifies the end of spoken output, whether
	// it completed or failed.
	KindAssistantSpeechEnded Kind = "assistant_speech.ended"
)

// AssistantSpeechStarted marks the start of a speech output job.
type AssistantSpeechStarted struct{ Base }

// NewAssistantSpeechStarted creates an assistant speech started event.
func NewAssistantSpeechStarted() AssistantSpeechStarted {
	return AssistantSpeechStarted{Base: NewBase(KindAssistantSpeechStarted)}
}

// AssistantSpeechEnded marks the terminal signal of a speech output job.
// Exactly one is emitted for every AssistantSpeechStarted.
type AssistantSpeechEnded struct {
	Base
	Err error
}

// NewAssistantSpeechEnded creates an assistant speech ended event.
func NewAssistantSpeechEnded(err error) AssistantSpeechEnded {
	return AssistantSpeechEnded{Base: NewBase(KindAssistantSpeechEnded), Err: err}
}
