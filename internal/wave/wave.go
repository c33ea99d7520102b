package wave

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	resampling "github.com/tphakala/go-audio-resampling"
)

// Encoder serializes rendered float64 sample buffers into WAV blobs,
// applying its gain before quantization. It satisfies dial.Encoder.
type Encoder struct {
	gain float64
}

// NewEncoder returns a WAV Encoder at unit gain.
func NewEncoder() *Encoder {
	return &Encoder{gain: 1}
}

// NewEncoderWithGain returns a WAV Encoder that scales samples by gain,
// clamped to [0, 1], before quantization.
func NewEncoderWithGain(gain float64) *Encoder {
	if gain < 0 {
		gain = 0
	} else if gain > 1 {
		gain = 1
	}
	return &Encoder{gain: gain}
}

// Encode quantizes samples to 16-bit PCM and wraps them in a WAV
// container. Only mono buffers are supported. An empty buffer yields a
// minimal header-only WAV.
func (e *Encoder) Encode(samples []float64, sampleRate, channels int) ([]byte, error) {
	if channels != 1 {
		return nil, fmt.Errorf("unsupported channel count %d: mono only", channels)
	}
	if e.gain != 1 {
		scaled := make([]float64, len(samples))
		for i, s := range samples {
			scaled[i] = s * e.gain
		}
		samples = scaled
	}
	return EncodeWAV(Quantize(samples), sampleRate)
}

// Quantize converts normalized float64 samples to int16 PCM, clamping
// to [-1, 1].
func Quantize(samples []float64) []int16 {
	out := make([]int16, len(samples))
	for i, f := range samples {
		v := f * 32768.0
		if v > 32767 {
			v = 32767
		} else if v < -32768 {
			v = -32768
		}
		out[i] = int16(math.Round(v))
	}
	return out
}

// Resample converts PCM int16 samples from inputRate to outputRate using
// polyphase FIR filtering with Kaiser window (via go-audio-resampling).
func Resample(samples []int16, inputRate, outputRate float64) ([]int16, error) {
	if inputRate == outputRate || len(samples) == 0 {
		return samples, nil
	}

	floats := make([]float64, len(samples))
	for i, s := range samples {
		floats[i] = float64(s) / 32768.0
	}

	resampled, err := resampling.ResampleMono(floats, inputRate, outputRate, resampling.QualityLow)
	if err != nil {
		return nil, fmt.Errorf("resample mono: %w", err)
	}

	return Quantize(resampled), nil
}

// ConvertRate re-renders a mono WAV blob at outputRate. A blob already
// at the requested rate is returned unchanged.
func ConvertRate(wavData []byte, outputRate int) ([]byte, error) {
	samples, inputRate, err := DecodeWAV(wavData)
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	if inputRate == outputRate {
		return wavData, nil
	}

	resampled, err := Resample(samples, float64(inputRate), float64(outputRate))
	if err != nil {
		return nil, err
	}
	return EncodeWAV(resampled, outputRate)
}

// writeSeeker is an in-memory io.WriteSeeker for WAV encoding.
type writeSeeker struct {
	buf []byte
	pos int
}

func (ws *writeSeeker) Write(p []byte) (int, error) {
	end := ws.pos + len(p)
	if end > len(ws.buf) {
		ws.buf = append(ws.buf, make([]byte, end-len(ws.buf))...)
	}
	copy(ws.buf[ws.pos:], p)
	ws.pos = end
	return len(p), nil
}

func (ws *writeSeeker) Seek(offset int64, whence int) (int64, error) {
	var newPos int
	switch whence {
	case 0: // io.SeekStart
		newPos = int(offset)
	case 1: // io.SeekCurrent
		newPos = ws.pos + int(offset)
	case 2: // io.SeekEnd
		newPos = len(ws.buf) + int(offset)
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}
	if newPos < 0 || newPos > len(ws.buf) {
		return 0, fmt.Errorf("seek position %d out of bounds [0, %d]", newPos, len(ws.buf))
	}
	ws.pos = newPos
	return int64(ws.pos), nil
}

// EncodeWAV encodes mono int16 PCM samples to WAV format in memory.
func EncodeWAV(samples []int16, sampleRate int) ([]byte, error) {
	ws := &writeSeeker{}

	intBuf := &audio.IntBuffer{
		Data: make([]int, len(samples)),
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: 1,
		},
		SourceBitDepth: 16,
	}
	for i, s := range samples {
		intBuf.Data[i] = int(s)
	}

	enc := wav.NewEncoder(ws, sampleRate, 16, 1, 1)
	if err := enc.Write(intBuf); err != nil {
		return nil, fmt.Errorf("write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close wav encoder: %w", err)
	}

	return ws.buf, nil
}

// DecodeWAV reads a WAV file from bytes and returns the samples and sample rate.
func DecodeWAV(data []byte) ([]int16, int, error) {
	reader := bytes.NewReader(data)
	dec := wav.NewDecoder(reader)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid WAV file")
	}

	pcmBuf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("decode wav: %w", err)
	}

	samples := make([]int16, len(pcmBuf.Data))
	for i, v := range pcmBuf.Data {
		samples[i] = int16(v)
	}

	return samples, int(dec.SampleRate), nil
}

// ValidateWAVHeader reads minimal WAV header info from data.
func ValidateWAVHeader(data []byte) (sampleRate int, channels int, bitDepth int, err error) {
	if len(data) < 44 {
		return 0, 0, 0, fmt.Errorf("data too short for WAV header")
	}

	r := bytes.NewReader(data)

	// read wraps binary.Read to capture the first error.
	var firstErr error
	read := func(v interface{}) {
		if firstErr != nil {
			return
		}
		firstErr = binary.Read(r, binary.LittleEndian, v)
	}

	var riffID [4]byte
	read(&riffID)
	if firstErr != nil {
		return 0, 0, 0, fmt.Errorf("read RIFF header: %w", firstErr)
	}
	if string(riffID[:]) != "RIFF" {
		return 0, 0, 0, fmt.Errorf("not a RIFF file")
	}

	var fileSize uint32
	read(&fileSize)

	var waveID [4]byte
	read(&waveID)
	if firstErr != nil {
		return 0, 0, 0, fmt.Errorf("read WAVE header: %w", firstErr)
	}
	if string(waveID[:]) != "WAVE" {
		return 0, 0, 0, fmt.Errorf("not a WAVE file")
	}

	var fmtID [4]byte
	read(&fmtID)

	var fmtSize uint32
	read(&fmtSize)

	var audioFormat uint16
	read(&audioFormat)

	var numChannels uint16
	read(&numChannels)

	var sr uint32
	read(&sr)

	var byteRate uint32
	var blockAlign uint16
	read(&byteRate)
	read(&blockAlign)

	var bitsPerSample uint16
	read(&bitsPerSample)

	if firstErr != nil {
		return 0, 0, 0, fmt.Errorf("read WAV format: %w", firstErr)
	}

	return int(sr), int(numChannels), int(bitsPerSample), nil
}
