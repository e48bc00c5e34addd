package miniaudio

import (
	"fmt"
	"sync"

	"github.com/gen2brain/malgo"

	"github.com/jayviklabs/jarvis-core/core/audio"
)

type captureClient struct {
	device *malgo.Device

	onAudio func(audio []byte)

	mu sync.Mutex
}

func (c *captureClient) Init(audioContext *malgo.AllocatedContext) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	encoding := audio.DefaultEncodingInfo()
	channels := 1
	format := malgo.FormatS16
	bytesPerFrame := malgo.SampleSizeInBytes(format) * channels

	config := malgo.DefaultDeviceConfig(malgo.Capture)
	config.SampleRate = uint32(encoding.SampleRate)
	config.Capture.Format = format
	config.Capture.Channels = uint32(channels)
	config.Alsa.NoMMap = 1
	config.PerformanceProfile = malgo.LowLatency
	config.PeriodSizeInFrames = 480
	config.Periods = 3

	var err error
	c.device, err = malgo.InitDevice(audioContext.Context, config, malgo.DeviceCallbacks{
		Data: func(_, pInput []byte, frameCount uint32) {
			n := int(frameCount) * bytesPerFrame
			if len(pInput) < n || n == 0 {
				return
			}
			if c.onAudio != nil {
				c.onAudio(pInput[:n])
			}
		},
	})
	if err != nil {
		return fmt.Errorf("failed to initialize capture device: %w", err)
	}

	return nil
}

func (c *captureClient) Start(onAudio func(audio []byte)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.device == nil {
		return fmt.Errorf("device not initialized")
	} else if c.device.IsStarted() {
		return nil
	}

	if err := c.device.Start(); err != nil {
		return fmt.Errorf("failed to start capture device: %w", err)
	}

	c.onAudio = onAudio
	return nil
}

func (c *captureClient) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.device == nil {
		return fmt.Errorf("device not initialized")
	} else if !c.device.IsStarted() {
		return nil
	}

	if err := c.device.Stop(); err != nil {
		return fmt.Errorf("failed to stop capture device: %w", err)
	}

	c.onAudio = nil
	return nil
}

func (c *captureClient) Uninit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.device != nil {
		c.device.Uninit()
		c.device = nil
	}

	c.onAudio = nil
	return nil
}
