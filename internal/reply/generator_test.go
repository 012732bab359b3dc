package reply_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"goofycam/internal/reply"
)

// chatRequest mirrors the parts of the wire request the tests care about.
type chatRequest struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	Messages    []struct {
		Role    string          `json:"role"`
		Content json.RawMessage `json:"content"`
	} `json:"messages"`
}

type contentPart struct {
	Type     string `json:"type"`
	Text     string `json:"text"`
	ImageURL struct {
		URL string `json:"url"`
	} `json:"image_url"`
}

func newGenerator(t *testing.T, captured *chatRequest, replyText string) *reply.Generator {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			if err := json.NewDecoder(r.Body).Decode(captured); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "cmpl-1",
			"object": "chat.completion",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": replyText},
			}},
		})
	}))
	t.Cleanup(srv.Close)

	client := openai.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(srv.URL+"/"),
		option.WithMaxRetries(0),
	)
	return reply.NewGenerator(client, "gemini-2.0-flash")
}

func userParts(t *testing.T, req *chatRequest) []contentPart {
	t.Helper()
	if len(req.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(req.Messages))
	}
	if req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
		t.Fatalf("unexpected roles %q/%q", req.Messages[0].Role, req.Messages[1].Role)
	}
	var parts []contentPart
	if err := json.Unmarshal(req.Messages[1].Content, &parts); err != nil {
		t.Fatalf("decode user content: %v", err)
	}
	return parts
}

func TestGenerateBuildsMultimodalRequest(t *testing.T) {
	var req chatRequest
	gen := newGenerator(t, &req, " ¡Veo a alguien saludando! ")

	got, err := gen.Generate(context.Background(), "ZmFrZWpwZWc=", "hola")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "¡Veo a alguien saludando!" {
		t.Errorf("reply not trimmed: %q", got)
	}

	if req.Temperature != 0.9 {
		t.Errorf("temperature: got %v, want 0.9", req.Temperature)
	}
	if req.MaxTokens != 100 {
		t.Errorf("max_tokens: got %d, want 100", req.MaxTokens)
	}
	if !strings.Contains(string(req.Messages[0].Content), "cámara de seguridad") {
		t.Errorf("system message misses the persona: %s", req.Messages[0].Content)
	}

	parts := userParts(t, &req)
	if len(parts) != 2 {
		t.Fatalf("got %d user parts, want 2", len(parts))
	}
	if !strings.Contains(parts[0].Text, "'hola'") {
		t.Errorf("text part misses quoted transcript: %q", parts[0].Text)
	}
	if parts[1].ImageURL.URL != "data:image/jpeg;base64,ZmFrZWpwZWc=" {
		t.Errorf("unexpected image url %q", parts[1].ImageURL.URL)
	}
}

func TestGenerateSubstitutesPlaceholderForEmptyTranscript(t *testing.T) {
	var req chatRequest
	gen := newGenerator(t, &req, "Silencio total en la sala.")

	if _, err := gen.Generate(context.Background(), "ZmFrZQ==", ""); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	parts := userParts(t, &req)
	if !strings.Contains(parts[0].Text, "'[sin audio claro]'") {
		t.Errorf("text part misses the placeholder: %q", parts[0].Text)
	}
	if strings.Contains(parts[0].Text, "''") {
		t.Errorf("empty transcript leaked into the prompt: %q", parts[0].Text)
	}
}

func TestGenerateRejectsEmptyContent(t *testing.T) {
	gen := newGenerator(t, nil, "   ")

	if _, err := gen.Generate(context.Background(), "ZmFrZQ==", "hola"); err == nil {
		t.Fatal("expected error for blank reply content")
	}
}
