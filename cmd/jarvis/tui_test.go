package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	assistant "github.com/jayviklabs/jarvis-core/core"
	"github.com/jayviklabs/jarvis-core/core/completions"
	"github.com/jayviklabs/jarvis-core/core/speechinput"
)

type recognizerStub struct {
	mu    sync.Mutex
	audio [][]byte
}

func (stub *recognizerStub) Start(context.Context, ...speechinput.RecognitionOption) error {
	return nil
}

func (stub *recognizerStub) Stop() error { return nil }

func (stub *recognizerStub) SendAudio(audio []byte) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	stub.audio = append(stub.audio, audio)
	return nil
}

func newTestModel(t *testing.T, a *assistant.Assistant) model {
	t.Helper()
	m := newModel(context.Background(), a, nil)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(model)
}

func TestCaptureForwarderFeedsTheActiveListeningSession(t *testing.T) {
	recognizer := &recognizerStub{}
	a := assistant.New(assistant.WithRecognizer(recognizer))
	forward := captureForwarder(a)

	// Audio arriving outside a session is dropped, not fatal.
	forward([]byte{1})

	if err := a.ToggleListening(context.Background()); err != nil {
		t.Fatalf("expected listening to start, got %v", err)
	}
	forward([]byte{2, 3})

	recognizer.mu.Lock()
	defer recognizer.mu.Unlock()
	if len(recognizer.audio) != 1 || len(recognizer.audio[0]) != 2 {
		t.Fatalf("expected only in-session audio to reach the recognizer, got %v", recognizer.audio)
	}
}

func TestEmptyStreamReenablesInput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	a := assistant.New(assistant.WithCompletionsClient(completions.NewClient(completions.Config{BaseURL: server.URL})))
	m := newTestModel(t, a)

	m.input.SetValue("hello")
	cmd := m.submit()
	if cmd == nil {
		t.Fatalf("expected the prompt to produce a command")
	}
	msg := cmd()
	if msg == nil {
		t.Fatalf("expected a terminal message for an empty stream")
	}

	updated, _ := m.Update(msg)
	m = updated.(model)
	if m.streaming {
		t.Fatalf("expected streaming to reset after an empty stream")
	}
	if len(m.lines) != 1 {
		t.Fatalf("expected only the user line to remain, got %d lines", len(m.lines))
	}

	m.input.SetValue("again")
	if cmd := m.submit(); cmd == nil {
		t.Fatalf("expected input to be accepted after the reset")
	}
}

func TestHistoryClearedResetsTheConversationView(t *testing.T) {
	m := newTestModel(t, assistant.New())
	m.lines = []chatLine{
		{role: assistant.RoleUser, content: "hi"},
		{role: assistant.RoleAssistant, content: "hello"},
	}

	msg := m.clearHistoryCmd()()
	if _, ok := msg.(historyClearedMsg); !ok {
		t.Fatalf("expected the clear command to report success, got %T", msg)
	}

	updated, _ := m.Update(msg)
	m = updated.(model)
	if len(m.lines) != 0 {
		t.Fatalf("expected the conversation view to empty, got %d lines", len(m.lines))
	}
}
