package assistant

import "github.com/jayviklabs/jarvis-core/core/events"

type eventEmitter func(events.Event)

func newCallbackEventEmitter(callbacks assistantCallbacks) eventEmitter {
	return func(event events.Event) {
		switch typedEvent := event.(type) {
		case events.AssistantResponseSegment:
			if callbacks.onResponseSegment != nil {
				callbacks.onResponseSegment(typedEvent.Segment, typedEvent.Snapshot)
			}
		case events.AssistantResponseFinal:
			if callbacks.onResponseEnd != nil {
				callbacks.onResponseEnd(typedEvent.Content)
			}
		case events.AssistantResponseError:
			if callbacks.onResponseError != nil {
				callbacks.onResponseError(typedEvent.Err)
			}
		case events.UserListeningStarted:
			if callbacks.onListeningStateChanged != nil {
				callbacks.onListeningStateChanged(true)
			}
		case events.UserListeningStopped:
			if callbacks.onListeningStateChanged != nil {
				callbacks.onListeningStateChanged(false)
			}
		case events.UserTranscriptFinal:
			if callbacks.onTranscription != nil {
				callbacks.onTranscription(typedEvent.Transcript)
			}
		case events.AssistantSpeechStarted:
			if callbacks.onSpeakingStateChanged != nil {
				callbacks.onSpeakingStateChanged(true)
			}
		case events.AssistantSpeechEnded:
			if callbacks.onSpeakingStateChanged != nil {
				callbacks.onSpeakingStateChanged(false)
			}
		case events.CommandResult:
			if callbacks.onCommandResult != nil {
				callbacks.onCommandResult(typedEvent.Content)
			}
		case events.Notice:
			if callbacks.onNotice != nil {
				callbacks.onNotice(typedEvent.Title, typedEvent.Description)
			}
		}
	}
}
