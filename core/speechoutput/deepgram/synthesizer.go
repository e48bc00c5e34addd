// Package deepgram implements speech synthesis over the Deepgram speak
// websocket.
package deepgram

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/websocket"

	"github.com/jayviklabs/jarvis-core/core/audio"
	"github.com/jayviklabs/jarvis-core/core/speechoutput"
)

// Config carries the connection material for the speak API. Nothing is
// read from the environment; resolve credentials at the edge.
type Config struct {
	APIKey string
	// Voice overrides the default voice model.
	Voice string
	// VoiceByLanguage maps a BCP 47 tag to the voice model spoken for it.
	// Languages without an entry fall back to Voice.
	VoiceByLanguage map[string]string
}

const defaultVoice = "aura-asteria-en"

// Synthesizer is a speechoutput.Synthesizer that runs one websocket
// session per utterance.
type Synthesizer struct {
	config Config
}

var _ speechoutput.Synthesizer = (*Synthesizer)(nil)

func NewSynthesizer(config Config) *Synthesizer {
	if config.Voice == "" {
		config.Voice = defaultVoice
	}
	return &Synthesizer{config: config}
}

func (s *Synthesizer) voiceFor(language string) string {
	if voice, ok := s.config.VoiceByLanguage[language]; ok && voice != "" {
		return voice
	}
	return s.config.Voice
}

type websocketMessage struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// Synthesize voices the text over a dedicated websocket session and blocks
// until the engine reports the utterance flushed, the context is
// cancelled, or the connection fails.
func (s *Synthesizer) Synthesize(ctx context.Context, text string, opts ...speechoutput.SynthesisOption) error {
	options := &speechoutput.SynthesisOptions{
		AudioCallback: func([]byte) {},
		EncodingInfo:  audio.DefaultEncodingInfo(),
	}
	for _, opt := range opts {
		opt(options)
	}

	conn, err := s.connectWebsocket(options.Language, options.EncodingInfo)
	if err != nil {
		return fmt.Errorf("failed to open websocket: %w", err)
	}
	defer conn.Close()

	// Drop the connection when the caller gives up; the read loop then
	// unblocks with an error and reports ctx.Err.
	watchdogDone := make(chan struct{})
	defer close(watchdogDone)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-watchdogDone:
		}
	}()

	if err := conn.WriteJSON(websocketMessage{Type: "Speak", Text: text}); err != nil {
		return fmt.Errorf("failed to send text to deepgram through websocket: %w", err)
	}
	if err := conn.WriteJSON(websocketMessage{Type: "Flush"}); err != nil {
		return fmt.Errorf("failed to flush deepgram buffer through websocket: %w", err)
	}

	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("failed to read deepgram websocket message: %w", err)
		}

		switch msgType {
		case websocket.BinaryMessage:
			if len(msg) > 0 {
				options.AudioCallback(msg)
			}
		case websocket.TextMessage:
			var parsedMsg struct {
				Type string `json:"type"`
			}
			if err := json.Unmarshal(msg, &parsedMsg); err != nil {
				log.Println("Failed to unmarshal deepgram message", "error", err)
				continue
			}

			if parsedMsg.Type == "Flushed" {
				if err := conn.WriteJSON(websocketMessage{Type: "Close"}); err != nil {
					log.Println("Failed to send close message to deepgram websocket", "error", err)
				}
				return nil
			}
		}
	}
}

func (s *Synthesizer) connectWebsocket(language string, encodingInfo audio.EncodingInfo) (*websocket.Conn, error) {
	if s.config.APIKey == "" {
		return nil, fmt.Errorf("deepgram api key not configured")
	}

	queryParams := url.Values{}
	queryParams.Set("encoding", encodingInfo.Format.Name())
	queryParams.Set("sample_rate", strconv.Itoa(encodingInfo.SampleRate))
	queryParams.Set("model", s.voiceFor(language))
	queryParams.Set("container", "none")

	conn, _, err := websocket.DefaultDialer.Dial(
		(&url.URL{
			Scheme: "wss",
			Host:   "api.deepgram.com", Path: "/v1/speak",
			RawQuery: queryParams.Encode(),
		}).String(),
		http.Header{"Authorization": {"Token " + s.config.APIKey}})
	if err != nil {
		return nil, fmt.Errorf("failed to open socket connection to deepgram: %w", err)
	}

	return conn, nil
}
