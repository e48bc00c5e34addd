package deepgram

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	api "github.com/deepgram/deepgram-go-sdk/pkg/api/listen/v1/websocket/interfaces"
	"github.com/gorilla/websocket"

	"github.com/jayviklabs/jarvis-core/core/speechinput"
)

// Start opens one listening session. The session ends when the engine
// finalizes an utterance, the caller Stops it, or the connection drops;
// exactly one transcript or error callback fires per session.
func (r *Recognizer) Start(ctx context.Context, opts ...speechinput.RecognitionOption) error {
	options := &speechinput.RecognitionOptions{}
	for _, opt := range opts {
		opt(options)
	}
	if options.EncodingInfo.IsZero() {
		return fmt.Errorf("missing encoding info")
	}

	encoding, err := convertEncoding(options.EncodingInfo)
	if err != nil {
		return fmt.Errorf("invalid encoding: %w", err)
	}

	conn, err := r.connectWebsocket(connectionOptions{
		sampleRate: encoding.SampleRate,
		encoding:   encoding.Format,
		language:   options.Language,
	})
	if err != nil {
		return fmt.Errorf("failed to open websocket: %w", err)
	}

	r.connMu.Lock()
	r.conn = conn
	r.connMu.Unlock()
	r.accumulatedTranscript = ""
	r.transcriptEmitted = false
	r.lastAudioTs = time.Now()

	go r.keepAlive(ctx, conn)
	go r.readAndProcessMessages(ctx, conn, *options)

	return nil
}

type connectionOptions struct {
	sampleRate int
	encoding   string
	language   string
}

func (r *Recognizer) connectWebsocket(options connectionOptions) (*websocket.Conn, error) {
	if r.config.APIKey == "" {
		return nil, fmt.Errorf("deepgram api key not configured")
	}

	listenUrl, _ := url.Parse("wss://api.deepgram.com/v1/listen")
	queryParams := listenUrl.Query()
	queryParams.Set("encoding", options.encoding)
	queryParams.Set("sample_rate", strconv.Itoa(options.sampleRate))
	queryParams.Set("channels", "1")
	queryParams.Set("model", r.config.Model)
	if options.language != "" {
		queryParams.Set("language", options.language)
	}
	queryParams.Set("smart_format", "true")
	queryParams.Set("interim_results", "true")
	queryParams.Set("utterance_end_ms", "1000")
	queryParams.Set("endpointing", "300")
	queryParams.Set("vad_events", "true")

	listenUrl.RawQuery = queryParams.Encode()
	conn, _, err := websocket.DefaultDialer.Dial(listenUrl.String(),
		http.Header{"Authorization": {"Token " + r.config.APIKey}})
	if err != nil {
		return nil, fmt.Errorf("failed to open socket connection to deepgram: %w", err)
	}

	return conn, nil
}

// Stop ends the active session without emitting a transcript.
func (r *Recognizer) Stop() error {
	r.connMu.Lock()
	defer r.connMu.Unlock()

	if r.conn == nil {
		return nil
	}

	if err := r.conn.WriteJSON(struct {
		Type string `json:"type"`
	}{Type: string(api.TypeCloseStreamResponse)}); err != nil {
		return fmt.Errorf("failed to close deepgram stream: %w", err)
	}
	return nil
}

func (r *Recognizer) SendAudio(audio []byte) error {
	r.connMu.Lock()
	defer r.connMu.Unlock()

	if r.conn == nil {
		return nil
	}

	r.lastAudioTs = time.Now()
	if err := r.conn.WriteMessage(websocket.BinaryMessage, audio); err != nil {
		return fmt.Errorf("failed to write to deepgram client: %w", err)
	}
	return nil
}

func (r *Recognizer) keepAlive(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.connMu.Lock()
			if r.conn != conn {
				r.connMu.Unlock()
				return
			}
			if time.Since(r.lastAudioTs) > 5*time.Second {
				if err := conn.WriteJSON(struct {
					Type string `json:"type"`
				}{Type: "KeepAlive"}); err != nil {
					log.Println("Failed to write keep-alive to deepgram client", "error", err)
				}
			}
			r.connMu.Unlock()
		}
	}
}

func (r *Recognizer) readAndProcessMessages(_ context.Context, conn *websocket.Conn, options speechinput.RecognitionOptions) {
	defer func() {
		r.connMu.Lock()
		if r.conn == conn {
			r.conn = nil
		}
		r.connMu.Unlock()
		conn.Close()

		if !r.transcriptEmitted && options.ErrorCallback != nil {
			if strings.TrimSpace(r.accumulatedTranscript) == "" {
				options.ErrorCallback(speechinput.ErrNoSpeech)
			} else {
				options.ErrorCallback(speechinput.ErrAborted)
			}
		}
	}()

	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if err.Error() != "websocket: close 1000 (normal)" {
				log.Println("Failed to read deepgram websocket message", "error", err)
			}
			return
		}
		if msgType == websocket.BinaryMessage {
			continue
		}

		if done := r.processMessage(msg, options); done {
			return
		}
	}
}

func (r *Recognizer) processMessage(msg []byte, options speechinput.RecognitionOptions) bool {
	var parsedMsg struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(msg, &parsedMsg); err != nil {
		log.Println("Failed to unmarshal deepgram message", "error", err)
		return false
	}

	switch api.TypeResponse(parsedMsg.Type) {
	case api.TypeMessageResponse:
		var msgResp api.MessageResponse
		if err := json.Unmarshal(msg, &msgResp); err != nil {
			log.Println("Failed to unmarshal deepgram message", err)
			return false
		}
		if !msgResp.IsFinal {
			return false
		}
		if len(msgResp.Channel.Alternatives) > 0 {
			transcript := strings.TrimSpace(msgResp.Channel.Alternatives[0].Transcript)
			if len(transcript) > 0 {
				r.accumulatedTranscript += " " + transcript
			}
		}
		if msgResp.SpeechFinal {
			return r.emitTranscript(options)
		}

	case api.TypeUtteranceEndResponse:
		return r.emitTranscript(options)
	}

	return false
}

// emitTranscript finalizes the session. Returns true when the read loop
// should stop because a transcript was handed off.
func (r *Recognizer) emitTranscript(options speechinput.RecognitionOptions) bool {
	fullTranscript := strings.TrimSpace(r.accumulatedTranscript)
	r.accumulatedTranscript = ""
	if len(fullTranscript) == 0 {
		return false
	}

	r.transcriptEmitted = true
	if options.TranscriptCallback != nil {
		options.TranscriptCallback(fullTranscript)
	}
	return true
}
