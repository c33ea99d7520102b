package player

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

// Beep plays WAV data through the beep speaker.
type Beep struct {
	logger   *log.Logger
	initOnce sync.Once
	initErr  error
}

// NewBeep creates a beep-backed Player.
func NewBeep(logger *log.Logger) *Beep {
	return &Beep{logger: logger}
}

func (b *Beep) initSpeaker(format beep.Format) error {
	b.initOnce.Do(func() {
		b.initErr = speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10))
	})
	return b.initErr
}

// Play decodes and plays wavData, blocking until the stream finishes.
// Cancelling ctx clears the speaker and returns the context error.
func (b *Beep) Play(ctx context.Context, wavData []byte) error {
	streamer, format, err := wav.Decode(bytes.NewReader(wavData))
	if err != nil {
		return fmt.Errorf("wav decode: %w", err)
	}
	defer streamer.Close()

	if err := b.initSpeaker(format); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	b.logger.Printf("player: beep playback, %d samples at %d Hz", streamer.Len(), format.SampleRate)

	done := make(chan struct{})
	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		close(done)
	})))

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		speaker.Clear()
		return ctx.Err()
	}
}
