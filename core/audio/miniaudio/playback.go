package miniaudio

import (
	"fmt"
	"sync"

	"github.com/gen2brain/malgo"

	"github.com/jayviklabs/jarvis-core/core/audio"
)

type playbackClient struct {
	device *malgo.Device

	queuedAudio []byte

	mu      sync.Mutex
	audioMu sync.Mutex
}

func (c *playbackClient) Init(audioContext *malgo.AllocatedContext) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	encoding := audio.DefaultEncodingInfo()
	sampleRate := uint32(encoding.SampleRate)
	channels := 1
	format := malgo.FormatS16
	bytesPerFrame := malgo.SampleSizeInBytes(format) * channels

	config := malgo.DefaultDeviceConfig(malgo.Playback)
	config.SampleRate = sampleRate
	config.Playback.Format = format
	config.Playback.Channels = uint32(channels)
	config.Alsa.NoMMap = 1
	config.PeriodSizeInFrames = sampleRate / 10 // ~100ms of audio
	config.Periods = 4

	var err error
	if c.device, err = malgo.InitDevice(
		audioContext.Context,
		config,
		malgo.DeviceCallbacks{Data: c.processAudio(bytesPerFrame)},
	); err != nil {
		return fmt.Errorf("failed to initialize playback device: %w", err)
	}

	return nil
}

func (c *playbackClient) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.device == nil {
		return fmt.Errorf("device not initialized")
	}

	if err := c.device.Start(); err != nil {
		return fmt.Errorf("failed to start playback device: %w", err)
	}

	return nil
}

func (c *playbackClient) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.device == nil {
		return fmt.Errorf("device not initialized")
	}

	if err := c.device.Stop(); err != nil {
		return fmt.Errorf("failed to stop playback device: %w", err)
	}

	c.ClearBuffer()
	return nil
}

func (c *playbackClient) SendAudio(audio []byte) error {
	if c.device == nil {
		return fmt.Errorf("device not initialized")
	} else if !c.device.IsStarted() {
		return fmt.Errorf("device not started")
	}

	c.audioMu.Lock()
	defer c.audioMu.Unlock()
	c.queuedAudio = append(c.queuedAudio, audio...)
	return nil
}

func (c *playbackClient) ClearBuffer() {
	c.audioMu.Lock()
	defer c.audioMu.Unlock()
	c.queuedAudio = nil
}

func (c *playbackClient) Uninit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.device == nil {
		return fmt.Errorf("device not initialized")
	}

	c.device.Uninit()
	c.device = nil

	return nil
}

func (c *playbackClient) processAudio(bytesPerFrame int) malgo.DataProc {
	return func(pOutput, _ []byte, frameCount uint32) {
		need := int(frameCount) * bytesPerFrame

		c.audioMu.Lock()
		defer c.audioMu.Unlock()

		if len(c.queuedAudio) == 0 {
			return
		}

		if len(c.queuedAudio) < need {
			copy(pOutput, c.queuedAudio)
			c.queuedAudio = nil
			return
		}

		copy(pOutput, c.queuedAudio[:need])
		c.queuedAudio = c.queuedAudio[need:]
	}
}
