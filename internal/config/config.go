// Package config resolves the process configuration from the environment.
// Values are read once at startup and never mutated afterwards.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Model identifiers, reached through the OpenAI-compatible surface.
const (
	TranscriptionModel = "gemini-2.0-flash"
	VisionModel        = "gemini-2.0-flash"
)

// AudioSeconds is the fixed microphone clip length per iteration.
const AudioSeconds = 4

// DefaultVoiceID is the ElevenLabs "George" voice.
const DefaultVoiceID = "JBFqnCBsd6RMkjVDRZzb"

const defaultOpenAIBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

type Config struct {
	GeminiAPIKey     string
	ElevenLabsAPIKey string
	VoiceID          string
	LoopDelay        time.Duration
	OpenAIBaseURL    string
}

// Load reads the configuration from environment variables. Both credentials
// are required; everything else has a default.
func Load() (*Config, error) {
	cfg := &Config{
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		ElevenLabsAPIKey: os.Getenv("ELEVENLABS_API_KEY"),
		VoiceID:          DefaultVoiceID,
		LoopDelay:        time.Second,
		OpenAIBaseURL:    defaultOpenAIBaseURL,
	}

	if cfg.GeminiAPIKey == "" {
		return nil, errors.New("falta GEMINI_API_KEY en variables de entorno")
	}
	if cfg.ElevenLabsAPIKey == "" {
		return nil, errors.New("falta ELEVENLABS_API_KEY en variables de entorno")
	}

	if v := os.Getenv("ELEVENLABS_VOICE_ID"); v != "" {
		cfg.VoiceID = v
	}

	if v := os.Getenv("LOOP_DELAY_SECONDS"); v != "" {
		secs, err := strconv.ParseFloat(v, 64)
		if err != nil || secs < 0 {
			return nil, fmt.Errorf("LOOP_DELAY_SECONDS inválido: %q", v)
		}
		cfg.LoopDelay = time.Duration(secs * float64(time.Second))
	}

	if v := os.Getenv("GOOFYCAM_OPENAI_BASE_URL"); v != "" {
		cfg.OpenAIBaseURL = v
	}

	return cfg, nil
}
