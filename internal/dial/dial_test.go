package dial

import (
	"context"
	"fmt"
	"testing"

	"github.com/bmson/dtmf/internal/synth"
	"github.com/bmson/dtmf/internal/timeline"
	"github.com/bmson/dtmf/internal/wave"
)

func newDialer() *Dialer {
	return New(synth.New(), wave.NewEncoder(), nil)
}

func TestCreateEmptyInput(t *testing.T) {
	blob, err := newDialer().Create(context.Background(), []any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sr, ch, bd, err := wave.ValidateWAVHeader(blob)
	if err != nil {
		t.Fatalf("validate header error: %v", err)
	}
	if sr != SampleRate || ch != 1 || bd != 16 {
		t.Errorf("expected %d/1/16 header, got %d/%d/%d", SampleRate, sr, ch, bd)
	}

	samples, _, err := wave.DecodeWAV(blob)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(samples) != 0 {
		t.Errorf("expected 0 samples, got %d", len(samples))
	}
}

func TestCreateSampleCount(t *testing.T) {
	blob, err := newDialer().Create(context.Background(), "123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	samples, sr, err := wave.DecodeWAV(blob)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if sr != SampleRate {
		t.Errorf("expected sample rate %d, got %d", SampleRate, sr)
	}
	expected := int(3 * 0.16 * SampleRate)
	if len(samples) != expected {
		t.Errorf("expected %d samples, got %d", expected, len(samples))
	}
}

func TestCreateDropsUnsupportedSymbols(t *testing.T) {
	clean, err := newDialer().Create(context.Background(), "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dirty, err := newDialer().Create(context.Background(), "!@1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clean) != len(dirty) {
		t.Errorf("expected identical blobs after sanitization: %d vs %d bytes", len(clean), len(dirty))
	}
}

func TestCreateNestedInput(t *testing.T) {
	blob, err := newDialer().Create(context.Background(), []any{"1", []any{"a"}, '#'})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	samples, _, err := wave.DecodeWAV(blob)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	expected := int(3 * 0.16 * SampleRate)
	if len(samples) != expected {
		t.Errorf("expected %d samples, got %d", expected, len(samples))
	}
}

func TestCreateDeterministic(t *testing.T) {
	d := newDialer()
	a, err := d.Create(context.Background(), "08005551234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := d.Create(context.Background(), "08005551234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("blob lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("byte %d differs", i)
		}
	}
}

type failingRenderer struct{}

func (failingRenderer) Render(ctx context.Context, events []timeline.Event, sampleRate int) ([]float64, error) {
	return nil, fmt.Errorf("audio subsystem exhausted")
}

type failingEncoder struct{}

func (failingEncoder) Encode(samples []float64, sampleRate, channels int) ([]byte, error) {
	return nil, fmt.Errorf("container write failed")
}

func TestCreateRenderFailurePropagates(t *testing.T) {
	d := New(failingRenderer{}, wave.NewEncoder(), nil)
	_, err := d.Create(context.Background(), "1")
	if err == nil {
		t.Error("expected render failure to propagate")
	}
}

func TestCreateEncodeFailurePropagates(t *testing.T) {
	d := New(synth.New(), failingEncoder{}, nil)
	_, err := d.Create(context.Background(), "1")
	if err == nil {
		t.Error("expected encode failure to propagate")
	}
}
