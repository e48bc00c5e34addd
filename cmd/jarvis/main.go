// Command jarvis runs the assistant as a terminal chat with optional voice
// input and spoken output.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	assistant "github.com/jayviklabs/jarvis-core/core"
	"github.com/jayviklabs/jarvis-core/core/audio/miniaudio"
	"github.com/jayviklabs/jarvis-core/core/completions"
	"github.com/jayviklabs/jarvis-core/core/speechinput"
	speechindeepgram "github.com/jayviklabs/jarvis-core/core/speechinput/deepgram"
	"github.com/jayviklabs/jarvis-core/core/speechoutput"
	speechoutdeepgram "github.com/jayviklabs/jarvis-core/core/speechoutput/deepgram"
	"github.com/jayviklabs/jarvis-core/core/transcript"
	transcriptpostgres "github.com/jayviklabs/jarvis-core/core/transcript/postgres"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "jarvis:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	var recognizer speechinput.Recognizer
	var synthesizer speechoutput.Synthesizer
	if cfg.deepgramAPIKey != "" {
		recognizer = speechindeepgram.NewRecognizer(speechindeepgram.Config{APIKey: cfg.deepgramAPIKey})

		voices := map[string]string{}
		if cfg.hindiVoice != "" {
			voices[speechoutput.LanguageHindi] = cfg.hindiVoice
		}
		synthesizer = speechoutdeepgram.NewSynthesizer(speechoutdeepgram.Config{
			APIKey:          cfg.deepgramAPIKey,
			VoiceByLanguage: voices,
		})
	}

	audioClient, err := miniaudio.NewClient()
	if err != nil {
		// Voice still works one-directionally without local audio devices,
		// so keep going in text mode.
		log.Println("Audio devices unavailable, running text-only", "error", err)
		audioClient = nil
	} else {
		defer audioClient.Close()
	}

	var program *tea.Program
	send := func(msg tea.Msg) {
		if program != nil {
			program.Send(msg)
		}
	}

	a := assistant.New(
		assistant.WithCompletionsClient(completions.NewClient(completions.Config{
			BaseURL:    cfg.gatewayBaseURL,
			Credential: cfg.gatewayAPIKey,
			Model:      cfg.model,
			Timeout:    cfg.streamTimeout,
		})),
		assistant.WithTranscriptStore(store),
		assistant.WithScope(transcript.Scope{UserID: cfg.userID}),
		assistant.WithRecognizer(recognizer),
		assistant.WithSynthesizer(synthesizer),
		assistant.WithResponseCallback(func(_, snapshot string) {
			send(responseSegmentMsg{snapshot: snapshot})
		}),
		assistant.WithResponseEndCallback(func(content string) {
			send(responseEndMsg{content: content})
		}),
		assistant.WithResponseErrorCallback(func(err error) {
			send(sendFailedMsg{err: err})
		}),
		assistant.WithTranscriptionCallback(func(transcript string) {
			send(transcriptMsg{transcript: transcript})
		}),
		assistant.WithListeningStateCallback(func(listening bool) {
			send(listeningMsg{listening: listening})
		}),
		assistant.WithSpeakingStateCallback(func(speaking bool) {
			send(speakingMsg{speaking: speaking})
		}),
		assistant.WithSpeechAudioCallback(func(audio []byte) {
			if audioClient != nil {
				_ = audioClient.Play(audio)
			}
		}),
		assistant.WithCommandResultCallback(func(content string) {
			send(commandResultMsg{content: content})
		}),
		assistant.WithNoticeCallback(func(title, description string) {
			send(noticeMsg{title: title, description: description})
		}),
	)
	defer a.Close()

	if _, err := a.Load(ctx); err != nil {
		log.Println("Failed to load conversation history", "error", err)
	}

	program = tea.NewProgram(newModel(ctx, a, audioClient), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run terminal interface: %w", err)
	}
	return nil
}

func newStore(ctx context.Context, cfg *config) (transcript.Store, func(), error) {
	if cfg.postgresDSN == "" {
		return transcript.NewMemoryStore(), func() {}, nil
	}

	store, err := transcriptpostgres.NewStore(ctx, cfg.postgresDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open transcript store: %w", err)
	}
	return store, store.Close, nil
}
