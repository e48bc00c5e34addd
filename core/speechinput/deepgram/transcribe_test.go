package deepgram

import (
	"fmt"
	"testing"

	api "github.com/deepgram/deepgram-go-sdk/pkg/api/listen/v1/websocket/interfaces"

	"github.com/jayviklabs/jarvis-core/core/speechinput"
)

func resultsMessage(transcript string, isFinal, speechFinal bool) []byte {
	return []byte(fmt.Sprintf(
		`{"type":%q,"is_final":%t,"speech_final":%t,"channel":{"alternatives":[{"transcript":%q}]}}`,
		api.TypeMessageResponse, isFinal, speechFinal, transcript,
	))
}

func TestProcessMessageAccumulatesFinalsAndEmitsOnSpeechFinal(t *testing.T) {
	recognizer := NewRecognizer(Config{APIKey: "test-key"})
	transcripts := []string{}
	options := speechinput.RecognitionOptions{
		TranscriptCallback: func(transcript string) {
			transcripts = append(transcripts, transcript)
		},
	}

	if done := recognizer.processMessage(resultsMessage("hello", true, false), options); done {
		t.Fatalf("expected session to continue after a non-terminal final")
	}
	if done := recognizer.processMessage(resultsMessage("jarvis", true, true), options); !done {
		t.Fatalf("expected session to finish on speech-final")
	}

	if len(transcripts) != 1 || transcripts[0] != "hello jarvis" {
		t.Fatalf("expected accumulated transcript [\"hello jarvis\"], got %v", transcripts)
	}
}

func TestProcessMessageIgnoresInterimResults(t *testing.T) {
	recognizer := NewRecognizer(Config{APIKey: "test-key"})
	transcripts := []string{}
	options := speechinput.RecognitionOptions{
		TranscriptCallback: func(transcript string) {
			transcripts = append(transcripts, transcript)
		},
	}

	recognizer.processMessage(resultsMessage("hel", false, false), options)

	if len(transcripts) != 0 {
		t.Fatalf("expected no transcript from interim results, got %v", transcripts)
	}
	if recognizer.accumulatedTranscript != "" {
		t.Fatalf("expected no accumulation from interim results, got %q", recognizer.accumulatedTranscript)
	}
}

func TestProcessMessageUtteranceEndEmitsAccumulatedTranscript(t *testing.T) {
	recognizer := NewRecognizer(Config{APIKey: "test-key"})
	transcripts := []string{}
	options := speechinput.RecognitionOptions{
		TranscriptCallback: func(transcript string) {
			transcripts = append(transcripts, transcript)
		},
	}

	recognizer.processMessage(resultsMessage("good morning", true, false), options)
	utteranceEnd := []byte(fmt.Sprintf(`{"type":%q}`, api.TypeUtteranceEndResponse))
	if done := recognizer.processMessage(utteranceEnd, options); !done {
		t.Fatalf("expected session to finish on utterance end")
	}

	if len(transcripts) != 1 || transcripts[0] != "good morning" {
		t.Fatalf("expected transcript [\"good morning\"], got %v", transcripts)
	}
}

func TestProcessMessageUtteranceEndWithoutSpeechContinues(t *testing.T) {
	recognizer := NewRecognizer(Config{APIKey: "test-key"})
	options := speechinput.RecognitionOptions{TranscriptCallback: func(string) {
		t.Fatalf("expected no transcript without accumulated speech")
	}}

	utteranceEnd := []byte(fmt.Sprintf(`{"type":%q}`, api.TypeUtteranceEndResponse))
	if done := recognizer.processMessage(utteranceEnd, options); done {
		t.Fatalf("expected session to continue when nothing was accumulated")
	}
}
