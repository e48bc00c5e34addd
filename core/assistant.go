// Package assistant orchestrates the conversation loop: prompts stream in
// from text or voice, responses stream back out as events, finished turns
// land in the transcript, and spoken output follows the response.
package assistant

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jayviklabs/jarvis-core/core/commands"
	"github.com/jayviklabs/jarvis-core/core/completions"
	"github.com/jayviklabs/jarvis-core/core/events"
	"github.com/jayviklabs/jarvis-core/core/speechinput"
	"github.com/jayviklabs/jarvis-core/core/speechoutput"
	"github.com/jayviklabs/jarvis-core/core/transcript"
)

const defaultHistoryLimit = 50

// Assistant owns one conversation. It admits one response stream at a
// time; a prompt sent while a stream is in flight fails with
// ErrSessionActive.
type Assistant struct {
	completions  *completions.Client
	store        transcript.Store
	scope        transcript.Scope
	dispatcher   *commands.Dispatcher
	instructions string
	historyLimit int

	recognizer  speechinput.Recognizer
	synthesizer speechoutput.Synthesizer

	speechInput  *speechinput.Controller
	speechOutput *speechoutput.Controller

	callbacks assistantCallbacks
	emit      eventEmitter
	gate      sessionGate

	mu           sync.Mutex
	conversation []Turn
}

func New(opts ...AssistantOption) *Assistant {
	a := &Assistant{
		store:        transcript.NewMemoryStore(),
		scope:        transcript.Anonymous,
		dispatcher:   commands.NewDispatcher(),
		instructions: defaultInstructions,
		historyLimit: defaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.emit = newCallbackEventEmitter(a.callbacks)

	a.speechInput = speechinput.NewController(a.recognizer,
		speechinput.WithTranscriptCallback(a.handleTranscript),
		speechinput.WithStateCallback(func(state speechinput.State) {
			switch state {
			case speechinput.StateListening:
				a.emit(events.NewUserListeningStarted())
			case speechinput.StateIdle:
				a.emit(events.NewUserListeningStopped())
			}
		}),
		speechinput.WithNoticeCallback(func(title, description string) {
			a.emit(events.NewNotice(title, description))
		}),
	)

	a.speechOutput = speechoutput.NewController(a.synthesizer,
		speechoutput.WithStartedCallback(func() {
			a.emit(events.NewAssistantSpeechStarted())
		}),
		speechoutput.WithEndedCallback(func(err error) {
			a.emit(events.NewAssistantSpeechEnded(err))
		}),
		speechoutput.WithSpeechAudioCallback(func(audio []byte) {
			if a.callbacks.onSpeechAudio != nil {
				a.callbacks.onSpeechAudio(audio)
			}
		}),
		speechoutput.WithNoticeCallback(func(title, description string) {
			a.emit(events.NewNotice(title, description))
		}),
	)

	return a
}

// Send streams a response to the given prompt. Segments are emitted as
// they arrive; the assembled turn is persisted, spoken, and returned once
// the stream completes. A stream that produces no content returns nil
// without leaving a turn behind.
//
// When the stream fails mid-flight the segments already emitted stay
// visible, but nothing is persisted and no final event fires.
func (a *Assistant) Send(ctx context.Context, content string) (*Turn, error) {
	if a.completions == nil {
		return nil, fmt.Errorf("no completions client configured")
	}
	if err := a.gate.acquire(); err != nil {
		return nil, err
	}
	defer a.gate.release()

	ctx, span := tracer.Start(ctx, "Send Prompt")
	defer span.End()

	userTurn := NewTurn(RoleUser, content)
	a.remember(userTurn)
	a.persist(ctx, userTurn)

	stream := a.completions.PromptWithStream(a.messages(),
		completions.WithInstructions(a.instructions))

	acc := &accumulator{}
	var streamErr error
	stream.Chunks(ctx)(func(segment string, err error) bool {
		if err != nil {
			streamErr = err
			return false
		}
		a.emit(events.NewAssistantResponseSegment(segment, acc.Append(segment)))
		return true
	})
	if streamErr != nil {
		span.RecordError(streamErr)
		span.SetStatus(codes.Error, "completion stream failed")
		failure := fmt.Errorf("completion stream failed: %w", streamErr)
		a.emit(events.NewAssistantResponseError(failure))
		return nil, failure
	}

	turn := acc.Finalize()
	if turn == nil {
		return nil, nil
	}

	a.remember(*turn)
	a.persist(ctx, *turn)
	a.emit(events.NewAssistantResponseFinal(turn.Content))
	a.speechOutput.Speak(context.WithoutCancel(ctx), turn.Content)

	return turn, nil
}

// RunCommand executes a built-in command and injects its result into the
// conversation as a synthetic assistant turn, bypassing the streaming
// pipeline.
func (a *Assistant) RunCommand(ctx context.Context, kind commands.Kind, input string) (*Turn, error) {
	ctx, span := tracer.Start(ctx, "Run Command")
	defer span.End()

	result, err := a.dispatcher.Execute(ctx, kind, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "command failed")
		a.emit(events.NewNotice("Command Failed", err.Error()))
		return nil, err
	}

	turn := NewTurn(RoleAssistant, result)
	a.remember(turn)
	a.persist(ctx, turn)
	a.emit(events.NewCommandResult(result))

	return &turn, nil
}

// Load restores the most recent persisted turns into the conversation and
// returns them oldest first.
func (a *Assistant) Load(ctx context.Context) ([]Turn, error) {
	entries, err := a.store.Load(ctx, a.scope, a.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}

	turns := make([]Turn, 0, len(entries))
	for _, entry := range entries {
		turns = append(turns, Turn{
			ID:        entry.ID,
			Role:      Role(entry.Role),
			Content:   entry.Content,
			CreatedAt: entry.CreatedAt,
		})
	}

	a.mu.Lock()
	a.conversation = turns
	a.mu.Unlock()

	return turns, nil
}

// ClearHistory deletes the persisted transcript for this scope and resets
// the in-memory conversation.
func (a *Assistant) ClearHistory(ctx context.Context) error {
	if err := a.store.Clear(ctx, a.scope); err != nil {
		return fmt.Errorf("failed to clear transcript: %w", err)
	}

	a.mu.Lock()
	a.conversation = nil
	a.mu.Unlock()

	return nil
}

// Conversation returns a point-in-time snapshot of the conversation.
func (a *Assistant) Conversation() []Turn {
	a.mu.Lock()
	defer a.mu.Unlock()

	return append([]Turn{}, a.conversation...)
}

// ToggleListening starts a listening session when idle and stops the
// active one otherwise.
func (a *Assistant) ToggleListening(ctx context.Context) error {
	return a.speechInput.Toggle(ctx)
}

// SendAudio forwards captured microphone audio to the active listening
// session.
func (a *Assistant) SendAudio(audio []byte) error {
	return a.speechInput.SendAudio(audio)
}

func (a *Assistant) IsListening() bool { return a.speechInput.IsListening() }
func (a *Assistant) IsSpeaking() bool  { return a.speechOutput.IsSpeaking() }

// StopSpeaking cancels the active utterance, if any.
func (a *Assistant) StopSpeaking() { a.speechOutput.Stop() }

// SetLanguage changes the voice recognition language for the next
// listening session.
func (a *Assistant) SetLanguage(language string) { a.speechInput.SetLanguage(language) }

func (a *Assistant) Close() {
	a.speechOutput.Stop()
}

// handleTranscript routes a finalized voice transcript into the regular
// prompt pipeline.
func (a *Assistant) handleTranscript(transcript string) {
	a.emit(events.NewUserTranscriptFinal(transcript))

	go func() {
		if _, err := a.Send(context.Background(), transcript); err != nil {
			logger.Warn("Failed to respond to transcript", "error", err)
		}
	}()
}

func (a *Assistant) remember(turn Turn) {
	a.mu.Lock()
	a.conversation = append(a.conversation, turn)
	a.mu.Unlock()
}

// persist is fire-and-forget: a storage failure is logged and the
// conversation continues with the content already rendered.
func (a *Assistant) persist(ctx context.Context, turn Turn) {
	if err := a.store.Append(ctx, a.scope, transcript.Entry{
		ID:        turn.ID,
		Role:      string(turn.Role),
		Content:   turn.Content,
		CreatedAt: turn.CreatedAt,
	}); err != nil {
		trace.SpanFromContext(ctx).RecordError(fmt.Errorf("failed to persist turn: %w", err))
		logger.WarnContext(ctx, "Failed to persist turn", "error", err)
	}
}

func (a *Assistant) messages() []completions.Message {
	a.mu.Lock()
	defer a.mu.Unlock()

	messages := make([]completions.Message, 0, len(a.conversation))
	for _, turn := range a.conversation {
		messages = append(messages, completions.Message{
			Role:    string(turn.Role),
			Content: turn.Content,
		})
	}
	return messages
}
