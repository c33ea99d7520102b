package keypad

import "reflect"

// Key is a single DTMF keypad symbol.
type Key rune

// Pair holds the low-group and high-group frequencies of a key, in Hz.
// The space sentinel carries the zero pair and renders as silence.
type Pair struct {
	Low  float64
	High float64
}

// tones maps the 12 DTMF keys to their frequency pairs per the precise
// tone plan (rows 697/770/852/941 Hz, columns 1209/1336/1477 Hz), plus
// the space sentinel. Never mutated after init.
var tones = map[Key]Pair{
	'1': {697, 1209}, '2': {697, 1336}, '3': {697, 1477},
	'4': {770, 1209}, '5': {770, 1336}, '6': {770, 1477},
	'7': {852, 1209}, '8': {852, 1336}, '9': {852, 1477},
	'*': {941, 1209}, '0': {941, 1336}, '#': {941, 1477},
	' ': {0, 0},
}

// letters maps lowercase letters to their keypad digit per E.161.
// q and z have no assignment and fall through to the DTMF filter.
var letters = map[Key]Key{
	'a': '2', 'b': '2', 'c': '2',
	'd': '3', 'e': '3', 'f': '3',
	'g': '4', 'h': '4', 'i': '4',
	'j': '5', 'k': '5', 'l': '5',
	'm': '6', 'n': '6', 'o': '6',
	'p': '7', 'r': '7', 's': '7',
	't': '8', 'u': '8', 'v': '8',
	'w': '9', 'x': '9', 'y': '9',
}

// Tones returns the frequency pair for k and whether k is a DTMF symbol.
func Tones(k Key) (Pair, bool) {
	p, ok := tones[k]
	return p, ok
}

// Valid reports whether k is a key of the DTMF table.
func Valid(k Key) bool {
	_, ok := tones[k]
	return ok
}

// Normalize flattens input into an ordered sequence of valid DTMF keys.
// It accepts a string (each rune is one symbol), a single Key/rune/byte,
// or arbitrarily nested slices of any of those; nesting is flattened to
// unlimited depth. Letters are lowercased and translated to their
// keypad digit first; anything without a DTMF table entry afterwards is
// silently dropped. The sanitization is lossy on purpose — Normalize
// never fails, and applied to its own output it is a no-op.
func Normalize(input any) []Key {
	out := []Key{}
	flatten(input, &out)
	return out
}

func flatten(v any, out *[]Key) {
	switch x := v.(type) {
	case nil:
	case string:
		for _, r := range x {
			appendKey(Key(r), out)
		}
	case Key:
		appendKey(x, out)
	case rune:
		appendKey(Key(x), out)
	case byte:
		appendKey(Key(x), out)
	case []Key:
		for _, k := range x {
			appendKey(k, out)
		}
	case []string:
		for _, s := range x {
			flatten(s, out)
		}
	case []any:
		for _, e := range x {
			flatten(e, out)
		}
	default:
		// Other slice shapes ([]rune, [][]string, ...) flatten
		// element-wise; non-sequence values are dropped.
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			for i := 0; i < rv.Len(); i++ {
				flatten(rv.Index(i).Interface(), out)
			}
		}
	}
}

func appendKey(k Key, out *[]Key) {
	if k >= 'A' && k <= 'Z' {
		k += 'a' - 'A'
	}
	if digit, ok := letters[k]; ok {
		k = digit
	}
	if _, ok := tones[k]; ok {
		*out = append(*out, k)
	}
}
