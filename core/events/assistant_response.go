package events

const (
	// KindAssistantResponseSegment identifies streamed assistant response text.
	KindAssistantResponseSegment Kind = "assistant_response.segment"
	// KindAssistantResponseFinal identifies assistant response stream completion.
	KindAssistantResponseFinal Kind = "assistant_response.final"
	// KindAssistantResponseError identifies a response stream that failed.
	KindAssistantResponseError Kind = "assistant_response.error"
)

// AssistantResponseSegment carries one streamed content delta together with
// the full in-flight snapshot it produced.
type AssistantResponseSegment struct {
	Base
	Segment  string
	Snapshot string
}

// NewAssistantResponseSegment creates an assistant response segment event.
func NewAssistantResponseSegment(segment, snapshot string) AssistantResponseSegment {
	return AssistantResponseSegment{Base: NewBase(KindAssistantResponseSegment), Segment: segment, Snapshot: snapshot}
}

// AssistantResponseFinal marks assistant response stream completion. Content
// is empty when the stream produced no deltas.
type AssistantResponseFinal struct {
	Base
	Content string
}

// NewAssistantResponseFinal creates an assistant response final event.
func NewAssistantResponseFinal(content string) AssistantResponseFinal {
	return AssistantResponseFinal{Base: NewBase(KindAssistantResponseFinal), Content: content}
}

// AssistantResponseError reports a stream that failed before completing.
// Segments already emitted stay valid; no final event follows.
type AssistantResponseError struct {
	Base
	Err error
}

// NewAssistantResponseError creates an assistant response error event.
func NewAssistantResponseError(err error) AssistantResponseError {
	return AssistantResponseError{Base: NewBase(KindAssistantResponseError), Err: err}
}
