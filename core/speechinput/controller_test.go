package speechinput

import (
	"context"
	"errors"
	"testing"
)

type recognizerStub struct {
	options  RecognitionOptions
	started  int
	stopped  int
	startErr error
}

func (stub *recognizerStub) Start(_ context.Context, opts ...RecognitionOption) error {
	options := RecognitionOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	stub.options = options
	stub.started++
	return stub.startErr
}

func (stub *recognizerStub) Stop() error {
	stub.stopped++
	return nil
}

func (stub *recognizerStub) SendAudio([]byte) error { return nil }

func TestToggleStartsAndStopsASingleSession(t *testing.T) {
	recognizer := &recognizerStub{}
	states := []State{}
	controller := NewController(recognizer, WithStateCallback(func(state State) {
		states = append(states, state)
	}))

	if err := controller.Toggle(context.Background()); err != nil {
		t.Fatalf("expected first toggle to start listening, got %v", err)
	}
	if !controller.IsListening() {
		t.Fatalf("expected controller to be listening")
	}

	// Toggling again must stop the active session, never stack a second one.
	if err := controller.Toggle(context.Background()); err != nil {
		t.Fatalf("expected second toggle to stop listening, got %v", err)
	}
	if controller.State() != StateIdle {
		t.Fatalf("expected controller to be idle, got %v", controller.State())
	}
	if recognizer.started != 1 || recognizer.stopped != 1 {
		t.Fatalf("expected one start and one stop, got %d and %d", recognizer.started, recognizer.stopped)
	}
	if len(states) != 2 || states[0] != StateListening || states[1] != StateIdle {
		t.Fatalf("expected states [listening idle], got %v", states)
	}
}

func TestTranscriptIsEmittedExactlyOnceAndReturnsToIdle(t *testing.T) {
	recognizer := &recognizerStub{}
	transcripts := []string{}
	controller := NewController(recognizer, WithTranscriptCallback(func(transcript string) {
		transcripts = append(transcripts, transcript)
	}))

	if err := controller.Toggle(context.Background()); err != nil {
		t.Fatalf("expected toggle to start listening, got %v", err)
	}

	recognizer.options.TranscriptCallback("hello jarvis")
	// A duplicate engine callback must not produce a second emission.
	recognizer.options.TranscriptCallback("hello jarvis")

	if len(transcripts) != 1 || transcripts[0] != "hello jarvis" {
		t.Fatalf("expected exactly one transcript, got %v", transcripts)
	}
	if controller.State() != StateIdle {
		t.Fatalf("expected controller to be idle, got %v", controller.State())
	}
}

func TestSilentErrorsProduceNoNotice(t *testing.T) {
	for _, silent := range []error{ErrNoSpeech, ErrAborted} {
		recognizer := &recognizerStub{}
		notices := []string{}
		controller := NewController(recognizer, WithNoticeCallback(func(title, _ string) {
			notices = append(notices, title)
		}))

		controller.Toggle(context.Background())
		recognizer.options.ErrorCallback(silent)

		if len(notices) != 0 {
			t.Fatalf("expected no notice for %v, got %v", silent, notices)
		}
		if controller.State() != StateIdle {
			t.Fatalf("expected controller to be idle after %v, got %v", silent, controller.State())
		}
	}
}

func TestOtherErrorsProduceAVisibleNotice(t *testing.T) {
	recognizer := &recognizerStub{}
	notices := []string{}
	controller := NewController(recognizer, WithNoticeCallback(func(title, _ string) {
		notices = append(notices, title)
	}))

	controller.Toggle(context.Background())
	recognizer.options.ErrorCallback(errors.New("network down"))

	if len(notices) != 1 || notices[0] != "Voice Recognition Error" {
		t.Fatalf("expected a single recognition error notice, got %v", notices)
	}
	if controller.State() != StateIdle {
		t.Fatalf("expected controller to be idle, got %v", controller.State())
	}
}

func TestAbsentRecognizerNotifiesOnce(t *testing.T) {
	notices := []string{}
	controller := NewController(nil, WithNoticeCallback(func(title, _ string) {
		notices = append(notices, title)
	}))

	controller.Toggle(context.Background())
	controller.Toggle(context.Background())

	if len(notices) != 1 || notices[0] != "Voice Recognition Not Supported" {
		t.Fatalf("expected a one-time capability notice, got %v", notices)
	}
	if controller.State() != StateIdle {
		t.Fatalf("expected controller to stay idle, got %v", controller.State())
	}
}

func TestSetLanguageTakesEffectOnNextSession(t *testing.T) {
	recognizer := &recognizerStub{}
	controller := NewController(recognizer)

	controller.SetLanguage("mr-IN")
	controller.Toggle(context.Background())

	if recognizer.options.Language != "mr-IN" {
		t.Fatalf("expected session language mr-IN, got %q", recognizer.options.Language)
	}

	// Changing the language mid-session must not disturb the active session.
	controller.SetLanguage("ta-IN")
	if !controller.IsListening() {
		t.Fatalf("expected session to stay active across a language change")
	}
	if recognizer.options.Language != "mr-IN" {
		t.Fatalf("expected active session language unchanged, got %q", recognizer.options.Language)
	}
}
