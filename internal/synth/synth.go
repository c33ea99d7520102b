package synth

import (
	"context"
	"math"
	"time"

	"github.com/bmson/dtmf/internal/timeline"
)

const (
	// componentAmplitude scales each of the two sine components so
	// their sum stays within [-1, 1].
	componentAmplitude = 0.45

	// cutoffHz is the low-pass corner. All DTMF energy sits below
	// 1633 Hz; the filter strips synthesis artifacts above this.
	cutoffHz = 8000.0
)

// Renderer synthesizes a mono sample buffer from a tone timeline.
// Implementations must be deterministic: the same events and sample rate
// always produce an identical buffer. Render blocks until the buffer is
// complete or ctx is cancelled.
type Renderer interface {
	Render(ctx context.Context, events []timeline.Event, sampleRate int) ([]float64, error)
}

// Synth renders tone events in software. The zero value is usable.
type Synth struct{}

// New returns a software Renderer.
func New() *Synth {
	return &Synth{}
}

// Render allocates the full buffer up front (total duration is known
// before synthesis begins), sums the two sine components of each event
// over its [start, stop) window, leaves silence elsewhere, then applies
// a low-pass at 8 kHz. A zero-frequency event contributes pure silence.
// An empty timeline yields a zero-length buffer and no error.
func (s *Synth) Render(ctx context.Context, events []timeline.Event, sampleRate int) ([]float64, error) {
	if len(events) == 0 {
		return []float64{}, nil
	}

	total := events[len(events)-1].Stop + timeline.Space
	buf := make([]float64, samplesAt(total, sampleRate))

	for _, ev := range events {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if ev.Low == 0 && ev.High == 0 {
			continue
		}

		start := samplesAt(ev.Start, sampleRate)
		stop := samplesAt(ev.Stop, sampleRate)
		if stop > len(buf) {
			stop = len(buf)
		}
		for i := start; i < stop; i++ {
			t := float64(i) / float64(sampleRate)
			buf[i] = componentAmplitude*math.Sin(2*math.Pi*ev.Low*t) +
				componentAmplitude*math.Sin(2*math.Pi*ev.High*t)
		}
	}

	lowPass(buf, cutoffHz, float64(sampleRate))
	return buf, nil
}

func samplesAt(d time.Duration, sampleRate int) int {
	return int(math.Round(d.Seconds() * float64(sampleRate)))
}

// lowPass runs a single in-place biquad low-pass (RBJ cookbook
// coefficients, Q = 1/√2). The passband is flat well below the corner,
// so the DTMF band (697–1477 Hz) passes at unit gain while energy above
// the corner rolls off.
func lowPass(buf []float64, cutoff, sampleRate float64) {
	if cutoff >= sampleRate/2 {
		return
	}

	w0 := 2 * math.Pi * cutoff / sampleRate
	alpha := math.Sin(w0) / math.Sqrt2
	cosw0 := math.Cos(w0)

	b0 := (1 - cosw0) / 2
	b1 := 1 - cosw0
	b2 := (1 - cosw0) / 2
	a0 := 1 + alpha
	a1 := -2 * cosw0
	a2 := 1 - alpha

	var x1, x2, y1, y2 float64
	for i, x := range buf {
		y := (b0*x + b1*x1 + b2*x2 - a1*y1 - a2*y2) / a0
		x2, x1 = x1, x
		y2, y1 = y1, y
		buf[i] = y
	}
}
