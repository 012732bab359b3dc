// Package reply asks a multimodal model to describe the current scene.
package reply

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go/v3"
)

const personaPrompt = `Eres una cámara de seguridad IA muy graciosa y exagerada.
Habla SIEMPRE en español.
Sé breve (1-3 frases), divertida y amigable.
Describe qué ves y qué escuchas, pero evita inventar hechos peligrosos.`

// emptyTranscript replaces the quoted transcript when the microphone picked
// up nothing intelligible.
const emptyTranscript = "[sin audio claro]"

// Replies stay short through the token cap, not post-validation.
const (
	temperature     = 0.9
	maxOutputTokens = 100
)

type Generator struct {
	client openai.Client
	model  string
}

func NewGenerator(client openai.Client, model string) *Generator {
	return &Generator{client: client, model: model}
}

// Generate sends the frame and transcript under the fixed persona and returns
// the model's reply, trimmed.
func (g *Generator) Generate(ctx context.Context, frameB64, transcript string) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(personaPrompt),
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(transcriptLine(transcript)),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: "data:image/jpeg;base64," + frameB64,
				}),
			}),
		},
		Model:       openai.ChatModel(g.model),
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(maxOutputTokens),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("respuesta sin opciones")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("respuesta con contenido vacío")
	}

	return content, nil
}

func transcriptLine(transcript string) string {
	if transcript == "" {
		transcript = emptyTranscript
	}
	return fmt.Sprintf(
		"Este es el contexto del micrófono transcrito: '%s'. Describe qué está pasando como una cámara de seguridad cómica.",
		transcript,
	)
}
