// Package deepgram implements speech recognition over the Deepgram live
// transcription websocket.
package deepgram

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jayviklabs/jarvis-core/core/audio"
	"github.com/jayviklabs/jarvis-core/core/speechinput"
)

// Config carries the connection material for the live transcription API.
// Nothing is read from the environment; resolve credentials at the edge.
type Config struct {
	APIKey string
	// Model overrides the default transcription model.
	Model string
}

const defaultModel = "nova-3"

// Recognizer is a speechinput.Recognizer backed by one websocket session at
// a time.
type Recognizer struct {
	config Config

	connMu sync.Mutex
	conn   *websocket.Conn

	lastAudioTs time.Time

	// session state, owned by the read loop of the active session
	accumulatedTranscript string
	transcriptEmitted     bool
}

var _ speechinput.Recognizer = (*Recognizer)(nil)

func NewRecognizer(config Config) *Recognizer {
	if config.Model == "" {
		config.Model = defaultModel
	}
	return &Recognizer{config: config}
}

type encodingInfo struct {
	SampleRate int
	Format     string
}

func convertEncoding(encoding audio.EncodingInfo) (*encodingInfo, error) {
	converted := encodingInfo{Format: encoding.Format.Name()}
	switch encoding.SampleRate {
	case 8000, 16000, 24000, 32000, 48000:
		converted.SampleRate = encoding.SampleRate
	default:
		return nil, fmt.Errorf("unsupported sample rate")
	}

	switch encoding.Format {
	case audio.FormatLinear16:
	case audio.FormatALaw, audio.FormatMulaw:
		if converted.SampleRate != 8000 {
			return nil, fmt.Errorf("unsupported sample rate for %s encoding", encoding.Format.Name())
		}
	default:
		return nil, fmt.Errorf("unsupported encoding")
	}

	return &converted, nil
}
