package dial

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/bmson/dtmf/internal/keypad"
	"github.com/bmson/dtmf/internal/synth"
	"github.com/bmson/dtmf/internal/timeline"
)

// SampleRate is the synthesis rate. Output at other rates is a
// post-processing concern (see wave.ConvertRate).
const SampleRate = 44100

// Encoder serializes a rendered sample buffer into an audio container.
type Encoder interface {
	Encode(samples []float64, sampleRate, channels int) ([]byte, error)
}

// Dialer turns keypad input into encoded DTMF audio.
type Dialer struct {
	renderer synth.Renderer
	encoder  Encoder
	logger   *log.Logger
}

// New creates a Dialer. A nil logger discards debug output.
func New(r synth.Renderer, e Encoder, logger *log.Logger) *Dialer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Dialer{
		renderer: r,
		encoder:  e,
		logger:   logger,
	}
}

// Create synthesizes the DTMF audio for input and returns the encoded
// blob. Input accepts a string or an arbitrarily nested sequence of
// symbols; unsupported symbols are silently dropped during
// normalization. An input with no surviving symbols succeeds and yields
// a minimal, zero-sample container. Any render or encode failure fails
// the whole call; there is no partial result and no retry.
func (d *Dialer) Create(ctx context.Context, input any) ([]byte, error) {
	keys := keypad.Normalize(input)
	events, total := timeline.Build(keys)
	d.logger.Printf("dial: %d keys, %s total", len(keys), total)

	samples, err := d.renderer.Render(ctx, events, SampleRate)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	blob, err := d.encoder.Encode(samples, SampleRate, 1)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return blob, nil
}
