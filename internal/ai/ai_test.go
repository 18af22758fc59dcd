package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"wanderplan/internal/config"
)

func TestCleanJSONString(t *testing.T) {
	cases := map[string]string{
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n{\"a\":1}```":       `{"a":1}`,
		"  {\"a\":1}  ":           `{"a":1}`,
	}
	for in, want := range cases {
		if got := cleanJSONString(in); got != want {
			t.Errorf("cleanJSONString(%q) = %q, want %q", in, got, want)
		}
	}
}

func newTestOpenAI(t *testing.T, content string) (*OpenAIProvider, *string) {
	t.Helper()
	var gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		var req openai.ChatCompletionRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if len(req.Messages) > 0 {
			gotPrompt = req.Messages[0].Content
		}
		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"
	return NewOpenAIProviderWithConfig(cfg, "gpt-test"), &gotPrompt
}

func TestOpenAIGenerate(t *testing.T) {
	p, gotPrompt := newTestOpenAI(t, "```json\n{\"morning\":\"M1\"}\n```")

	text, err := p.Generate(context.Background(), "plan my day")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if text != `{"morning":"M1"}` {
		t.Fatalf("text = %q", text)
	}
	if *gotPrompt != "plan my day" {
		t.Fatalf("prompt sent = %q", *gotPrompt)
	}
}

func TestOpenAIGenerateEmpty(t *testing.T) {
	p, _ := newTestOpenAI(t, "   ")
	if _, err := p.Generate(context.Background(), "x"); !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestNewProviderRejectsUnknown(t *testing.T) {
	if _, err := NewProvider(context.Background(), config.LLMConfig{Provider: "llama"}); err == nil {
		t.Fatal("expected error for unknown provider")
	}
	p, err := NewProvider(context.Background(), config.LLMConfig{Provider: config.ProviderOpenAI, OpenAIKey: "k", OpenAIModel: "m"})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	if _, ok := p.(*OpenAIProvider); !ok {
		t.Fatalf("unexpected provider type %T", p)
	}
}
