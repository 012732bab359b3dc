package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	cli "github.com/spf13/pflag"

	"github.com/lmittmann/tint"
	log "log/slog"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"goofycam/internal/audio"
	"goofycam/internal/camera"
	"goofycam/internal/config"
	"goofycam/internal/loop"
	"goofycam/internal/playback"
	"goofycam/internal/proxy"
	"goofycam/internal/reply"
	"goofycam/internal/stt"
	"goofycam/internal/tts"
)

var logLevelMap = map[string]log.Level{
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

func main() {
	envFile := cli.StringP("env", "e", ".env", "Env file path")
	proxyAddr := cli.StringP("proxy", "p", "", "SOCKS5 proxy address (empty = direct)")
	logLevel := cli.StringP("log", "l", "info", "Log level")
	cli.Parse()

	log.SetDefault(log.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level: logLevelMap[*logLevel],
	})))

	godotenv.Load(*envFile)

	cfg, err := config.Load()
	if err != nil {
		log.Error("Configuración inválida", "err", err)
		os.Exit(1)
	}

	log.Debug("Configuración cargada", "voz", cfg.VoiceID, "delay", cfg.LoopDelay)

	var httpClient *http.Client
	if *proxyAddr != "" {
		httpClient, err = proxy.NewSocksClient(*proxyAddr)
		if err != nil {
			log.Error("No se pudo conectar al proxy", "proxy", *proxyAddr, "err", err)
			os.Exit(1)
		}
		log.Debug("Proxy activo", "proxy", *proxyAddr)
	}

	clientOpts := []option.RequestOption{
		option.WithAPIKey(cfg.GeminiAPIKey),
		option.WithBaseURL(cfg.OpenAIBaseURL),
	}
	if httpClient != nil {
		clientOpts = append(clientOpts, option.WithHTTPClient(httpClient))
	}
	client := openai.NewClient(clientOpts...)

	rec := audio.NewRecorder()
	if err := rec.Init(); err != nil {
		log.Error("No se pudo inicializar el audio", "err", err)
		os.Exit(1)
	}
	defer rec.Close()

	ttsOpts := []tts.Option{}
	if httpClient != nil {
		ttsOpts = append(ttsOpts, tts.WithHTTPClient(httpClient))
	}
	voice, err := tts.New(cfg.ElevenLabsAPIKey, ttsOpts...)
	if err != nil {
		log.Error("No se pudo crear el cliente de voz", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l := &loop.Loop{
		Frames:        camera.NewWebcam(),
		Mic:           rec,
		Transcriber:   stt.NewTranscriber(client, config.TranscriptionModel),
		Generator:     reply.NewGenerator(client, config.VisionModel),
		Speaker:       &elevenSpeaker{tts: voice, voiceID: cfg.VoiceID},
		RecordSeconds: config.AudioSeconds,
		Delay:         cfg.LoopDelay,
	}
	l.Run(ctx)
}

// elevenSpeaker joins synthesis and playback into the loop's Speaker step.
// Playback blocks, so the loop never overlaps two replies.
type elevenSpeaker struct {
	tts     *tts.Client
	voiceID string
}

func (s *elevenSpeaker) Speak(ctx context.Context, text string) error {
	data, err := s.tts.Synthesize(ctx, text, s.voiceID)
	if err != nil {
		return err
	}
	return playback.Play(data)
}
