package commands

import (
	"context"
	"errors"
	"testing"
)

func TestExecuteRoutesCalculations(t *testing.T) {
	dispatcher := NewDispatcher()

	result, err := dispatcher.Execute(context.Background(), KindCalculate, "2+2*5")
	if err != nil {
		t.Fatalf("expected a calculation result, got %v", err)
	}
	if result != "2+2*5 = 12" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestExecuteRejectsEmptyInput(t *testing.T) {
	dispatcher := NewDispatcher()

	for _, kind := range []Kind{KindCalculate, KindWikipedia} {
		if _, err := dispatcher.Execute(context.Background(), kind, "  "); !errors.Is(err, ErrEmptyInput) {
			t.Fatalf("expected ErrEmptyInput for %s, got %v", kind, err)
		}
	}
}

func TestExecuteRejectsUnknownKinds(t *testing.T) {
	dispatcher := NewDispatcher()

	if _, err := dispatcher.Execute(context.Background(), Kind("translate"), "hello"); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
}
