// Package audio captures microphone input through PortAudio.
package audio

import (
	"fmt"
	"os"

	"github.com/gordonklaus/portaudio"

	"goofycam/pkg/audioconv"
)

// SampleRate is the capture rate for all recordings, in Hz.
const SampleRate = 16000

const frameSize = 1024

// Recorder records fixed-length mono clips from the default input device.
// Init must be called once before the first Record and Close once at the end.
type Recorder struct{}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Init() error {
	return portaudio.Initialize()
}

func (r *Recorder) Close() {
	portaudio.Terminate()
}

// Record blocks while capturing seconds of audio, writes the clip to a fresh
// temporary WAV file and returns its path. The caller owns the file.
func (r *Recorder) Record(seconds int) (string, error) {
	if seconds <= 0 {
		return "", fmt.Errorf("duración de grabación inválida: %d", seconds)
	}

	buf := make([]float32, frameSize)
	want := seconds * SampleRate
	out := make([]float32, 0, want+frameSize)

	stream, err := portaudio.OpenDefaultStream(1, 0, float64(SampleRate), len(buf), buf)
	if err != nil {
		return "", fmt.Errorf("no se pudo abrir el micrófono: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return "", fmt.Errorf("no se pudo iniciar la grabación: %w", err)
	}
	defer stream.Stop()

	for len(out) < want {
		if err := stream.Read(); err != nil {
			return "", fmt.Errorf("error leyendo el micrófono: %w", err)
		}
		out = append(out, buf...)
	}
	out = out[:want]

	f, err := os.CreateTemp("", "goofycam-*.wav")
	if err != nil {
		return "", err
	}

	if err := audioconv.WriteWAV(f, out, SampleRate); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("no se pudo escribir el WAV: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}

	return f.Name(), nil
}
