package player

import (
	"context"
	"fmt"
	"log"

	"github.com/gordonklaus/portaudio"

	"github.com/bmson/dtmf/internal/wave"
)

// PortAudio plays WAV data through the default PortAudio output device.
type PortAudio struct {
	logger *log.Logger
}

// NewPortAudio creates a PortAudio-backed Player.
func NewPortAudio(logger *log.Logger) *PortAudio {
	return &PortAudio{logger: logger}
}

// Play decodes wavData and streams it to the default output device in
// ~100ms chunks, blocking until the last chunk is written. Cancelling
// ctx stops between chunks.
func (p *PortAudio) Play(ctx context.Context, wavData []byte) error {
	samples, sampleRate, err := wave.DecodeWAV(wavData)
	if err != nil {
		return fmt.Errorf("decode wav: %w", err)
	}
	if len(samples) == 0 {
		return nil
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("portaudio init: %w", err)
	}
	defer portaudio.Terminate()

	framesPerBuffer := sampleRate / 10 // ~100ms chunks
	out := make([]int16, framesPerBuffer)

	stream, err := portaudio.OpenDefaultStream(0, 1, float64(sampleRate), framesPerBuffer, &out)
	if err != nil {
		return fmt.Errorf("open stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("start stream: %w", err)
	}
	defer stream.Stop()

	p.logger.Printf("player: portaudio playback, %d samples at %d Hz", len(samples), sampleRate)

	for off := 0; off < len(samples); off += framesPerBuffer {
		if err := ctx.Err(); err != nil {
			return err
		}
		n := copy(out, samples[off:])
		// Zero-pad the final partial chunk.
		for i := n; i < framesPerBuffer; i++ {
			out[i] = 0
		}
		if err := stream.Write(); err != nil {
			return fmt.Errorf("write stream: %w", err)
		}
	}

	return nil
}
