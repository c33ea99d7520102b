package timeline

import (
	"time"

	"github.com/bmson/dtmf/internal/keypad"
)

// DTMF cadence: each key sounds for Mark, followed by Space of silence.
const (
	Mark  = 80 * time.Millisecond
	Space = 80 * time.Millisecond
)

// Event is a single tone scheduled on the timeline. Low and High are the
// component frequencies in Hz; both are zero for the space sentinel,
// which renders as silence. Events are not mutated after Build returns.
type Event struct {
	Key   keypad.Key
	Start time.Duration
	Stop  time.Duration
	Low   float64
	High  float64
}

// Build lays out one Event per key on a running cursor: start at the
// cursor, stop after Mark, then advance past Space. The result is
// strictly time-ordered with no gaps or overlaps, and the total duration
// is len(keys) × (Mark+Space). Build is deterministic and never fails;
// an empty key sequence yields an empty timeline with zero duration.
//
// Keys are expected to come from keypad.Normalize. A key outside the
// DTMF table is a caller bug; it degrades to the silent pair rather
// than failing, keeping the output well-formed.
func Build(keys []keypad.Key) ([]Event, time.Duration) {
	events := make([]Event, 0, len(keys))
	var offset time.Duration
	for _, k := range keys {
		pair, _ := keypad.Tones(k)
		ev := Event{
			Key:   k,
			Start: offset,
			Stop:  offset + Mark,
			Low:   pair.Low,
			High:  pair.High,
		}
		events = append(events, ev)
		offset = ev.Stop + Space
	}
	return events, offset
}
