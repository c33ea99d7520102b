package player

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/bmson/dtmf/internal/config"
)

// Player plays an encoded WAV blob through the local audio device.
// Play blocks until playback completes or ctx is cancelled. Failures of
// the underlying audio subsystem are returned as-is; there is no retry.
type Player interface {
	Play(ctx context.Context, wavData []byte) error
}

// New creates a Player based on the playback backend config.
func New(cfg *config.PlaybackConfig, logger *log.Logger) (Player, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	switch cfg.Backend {
	case "", "beep":
		return NewBeep(logger), nil
	case "portaudio":
		return NewPortAudio(logger), nil
	default:
		return nil, fmt.Errorf("unknown playback backend: %s", cfg.Backend)
	}
}
