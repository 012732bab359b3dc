// Package audioconv converts between float32 PCM sample slices and 16-bit
// mono WAV streams.
package audioconv

import (
	"errors"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV encodes pcm (mono float32 samples in [-1, 1]) as a 16-bit PCM WAV
// stream. Samples outside [-1, 1] are clamped.
func WriteWAV(w io.WriteSeeker, pcm []float32, sampleRate int) error {
	if sampleRate <= 0 {
		return errors.New("invalid sample rate")
	}

	enc := wav.NewEncoder(w, sampleRate, 16, 1, 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		Data:           Float32ToInt16(pcm),
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		return err
	}

	return enc.Close()
}

// ReadWAV decodes a mono WAV stream back into float32 samples and reports the
// stream's sample rate.
func ReadWAV(r io.ReadSeeker) ([]float32, int, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, errors.New("invalid wav")
	}

	pb, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}
	if pb == nil || pb.Data == nil {
		return nil, 0, errors.New("empty wav")
	}

	bd := int(dec.BitDepth)
	if bd == 0 {
		bd = 16
	}

	sr := 16000
	if pb.Format != nil && pb.Format.SampleRate > 0 {
		sr = pb.Format.SampleRate
	}

	return intSliceToFloat32(pb.Data, bd), sr, nil
}

// Float32ToInt16 scales samples in [-1, 1] to 16-bit integer range, clamping
// out-of-range input.
func Float32ToInt16(pcm []float32) []int {
	out := make([]int, len(pcm))
	for i, v := range pcm {
		out[i] = int(clamp(float64(v), -1.0, 1.0) * 32767.0)
	}
	return out
}

func intSliceToFloat32(data []int, bitDepth int) []float32 {
	out := make([]float32, len(data))
	scale := 1.0 / float64(int64(1)<<(bitDepth-1))
	for i, v := range data {
		out[i] = float32(clamp(float64(v)*scale, -1.0, 1.0))
	}
	return out
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
