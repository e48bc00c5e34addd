// Package miniaudio provides microphone capture and speaker playback on
// top of malgo.
package miniaudio

import (
	"context"
	"fmt"

	"github.com/gen2brain/malgo"

	"github.com/jayviklabs/jarvis-core/core/audio"
)

// Client owns the audio context and one capture and one playback device,
// both running at the default encoding.
type Client struct {
	// audioContext is only saved to be able to uninitialize it
	audioContext *malgo.AllocatedContext
	captureClient
	playbackClient
}

func NewClient() (*Client, error) {
	audioCtx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(string) {})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize audio context: %w", err)
	}

	client := Client{audioContext: audioCtx}

	if err := client.captureClient.Init(audioCtx); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to initialize capture client: %w", err)
	}

	if err := client.playbackClient.Init(audioCtx); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to initialize playback client: %w", err)
	}
	if err := client.playbackClient.Start(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to start playback device: %w", err)
	}

	return &client, nil
}

// StartCapture begins feeding microphone audio to onAudio until
// StopCapture is called.
func (c *Client) StartCapture(_ context.Context, onAudio func(audio []byte)) error {
	return c.captureClient.Start(onAudio)
}

func (c *Client) StopCapture() error {
	return c.captureClient.Stop()
}

// Play queues encoded audio for the speakers.
func (c *Client) Play(audio []byte) error {
	return c.playbackClient.SendAudio(audio)
}

// FlushPlayback drops any queued audio that has not reached the speakers.
func (c *Client) FlushPlayback() {
	c.playbackClient.ClearBuffer()
}

func (c *Client) Close() {
	_ = c.captureClient.Uninit()
	_ = c.playbackClient.Uninit()
	_ = c.audioContext.Uninit()
	c.audioContext.Free()
}

func (c *Client) EncodingInfo() audio.EncodingInfo {
	return audio.DefaultEncodingInfo()
}
