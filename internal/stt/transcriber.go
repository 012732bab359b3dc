// Package stt turns recorded audio into text through an OpenAI-compatible
// transcription endpoint.
package stt

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	openai "github.com/openai/openai-go/v3"
)

type Transcriber struct {
	client openai.Client
	model  string
}

func NewTranscriber(client openai.Client, model string) *Transcriber {
	return &Transcriber{client: client, model: model}
}

// Transcribe submits the WAV file at wavPath and returns the transcript with
// surrounding whitespace removed. An empty string means no clear audio.
func (t *Transcriber) Transcribe(ctx context.Context, wavPath string) (string, error) {
	data, err := os.ReadFile(wavPath)
	if err != nil {
		return "", fmt.Errorf("leer audio grabado: %w", err)
	}

	resp, err := t.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		File:  openai.File(bytes.NewReader(data), "mic.wav", "audio/wav"),
		Model: openai.AudioModel(t.model),
	})
	if err != nil {
		return "", fmt.Errorf("transcripción: %w", err)
	}

	return strings.TrimSpace(resp.Text), nil
}
