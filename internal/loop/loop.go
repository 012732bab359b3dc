// Package loop runs the capture → record → transcribe → generate → speak
// pipeline until the operator interrupts it.
package loop

import (
	"context"
	log "log/slog"
	"os"
	"time"
)

// The five pipeline steps, as the loop consumes them.
type (
	FrameSource interface {
		Capture() (string, error)
	}
	Recorder interface {
		Record(seconds int) (string, error)
	}
	Transcriber interface {
		Transcribe(ctx context.Context, wavPath string) (string, error)
	}
	Generator interface {
		Generate(ctx context.Context, frameB64, transcript string) (string, error)
	}
	Speaker interface {
		Speak(ctx context.Context, text string) error
	}
)

const (
	defaultRecordSeconds = 4
	failureBackoff       = time.Second
)

// Loop owns the iteration policy: steps run strictly in order, any step error
// is contained to its iteration, and the loop itself only stops when ctx is
// cancelled.
type Loop struct {
	Frames      FrameSource
	Mic         Recorder
	Transcriber Transcriber
	Generator   Generator
	Speaker     Speaker

	// RecordSeconds is the mic clip length; zero means 4 seconds.
	RecordSeconds int

	// Delay is the pause after a successful iteration. A failed iteration
	// is followed by Backoff instead (zero means the fixed 1s).
	Delay   time.Duration
	Backoff time.Duration
}

func (l *Loop) Run(ctx context.Context) {
	backoff := l.Backoff
	if backoff == 0 {
		backoff = failureBackoff
	}

	log.Info("Cámara IA graciosa iniciada. Ctrl+C para salir.")

	for ctx.Err() == nil {
		if err := l.runOnce(ctx); err != nil {
			if ctx.Err() != nil {
				break
			}
			log.Error("Error en el loop", "err", err)
			if !sleep(ctx, backoff) {
				break
			}
			continue
		}
		if !sleep(ctx, l.Delay) {
			break
		}
	}

	log.Info("Saliendo, hasta luego.")
}

func (l *Loop) runOnce(ctx context.Context) error {
	seconds := l.RecordSeconds
	if seconds == 0 {
		seconds = defaultRecordSeconds
	}

	frame, err := l.Frames.Capture()
	if err != nil {
		return err
	}

	log.Info("Grabando audio", "segundos", seconds)

	wavPath, err := l.Mic.Record(seconds)
	if err != nil {
		return err
	}

	transcript, err := l.Transcriber.Transcribe(ctx, wavPath)
	// The clip is spent either way; don't let temp files pile up.
	os.Remove(wavPath)
	if err != nil {
		return err
	}

	log.Info("Transcripción", "texto", orVacio(transcript))

	replyText, err := l.Generator.Generate(ctx, frame, transcript)
	if err != nil {
		return err
	}

	log.Info("Respuesta IA", "texto", replyText)

	return l.Speaker.Speak(ctx, replyText)
}

// sleep pauses for d, reporting false when ctx is cancelled first. This and
// the check at the top of Run are the only points where an interrupt is
// honored; an in-flight step always finishes or errors out on its own.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func orVacio(s string) string {
	if s == "" {
		return "[vacío]"
	}
	return s
}
