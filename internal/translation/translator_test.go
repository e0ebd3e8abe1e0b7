package translation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Provider != "openai" {
		t.Errorf("Expected provider 'openai', got '%s'", cfg.Provider)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("Expected model 'gpt-4o-mini', got '%s'", cfg.OpenAIModel)
	}
	if cfg.BreakerFailures != 3 {
		t.Errorf("Expected 3 breaker failures, got %d", cfg.BreakerFailures)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Expected 30s timeout, got %v", cfg.Timeout)
	}
}

func TestNewTranslator_NoAPIKey(t *testing.T) {
	for _, provider := range []string{"openai", "gemini"} {
		t.Run(provider, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Provider = provider

			_, err := NewTranslator(context.Background(), cfg)
			if !errors.Is(err, ErrAPIKeyMissing) {
				t.Errorf("Expected ErrAPIKeyMissing, got %v", err)
			}
		})
	}
}

func TestNewTranslator_UnknownProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "marian"

	_, err := NewTranslator(context.Background(), cfg)
	if err == nil || !strings.Contains(err.Error(), "unknown translation provider") {
		t.Errorf("Expected unknown provider error, got %v", err)
	}
}

func TestNewTranslator_OpenAI(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OpenAIKey = "test-api-key"

	tr, err := NewTranslator(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewTranslator() error = %v", err)
	}
	if _, ok := tr.(*BreakerTranslator); !ok {
		t.Errorf("Expected *BreakerTranslator, got %T", tr)
	}
	if tr.Name() != "openai:gpt-4o-mini" {
		t.Errorf("Expected name 'openai:gpt-4o-mini', got '%s'", tr.Name())
	}
	if err := tr.IsAvailable(); err != nil {
		t.Errorf("IsAvailable() error = %v", err)
	}
}

func newChatServer(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-api-key" {
			t.Errorf("Unexpected Authorization header %q", got)
		}

		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 0,
			"model":   req["model"],
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"message":       map[string]string{"role": "assistant", "content": content},
					"finish_reason": "stop",
				},
			},
		})
	}))
}

func TestOpenAITranslator_Translate(t *testing.T) {
	server := newChatServer(t, "  \"Let's meet at the office tomorrow.\"\n", http.StatusOK)
	defer server.Close()

	cfg := DefaultConfig()
	cfg.OpenAIKey = "test-api-key"
	cfg.OpenAIBaseURL = server.URL + "/v1"

	tr, err := NewOpenAITranslator(cfg)
	if err != nil {
		t.Fatalf("NewOpenAITranslator() error = %v", err)
	}

	got, err := tr.Translate(context.Background(), "明日会社でお会いしましょう。")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if got != "Let's meet at the office tomorrow." {
		t.Errorf("Translate() = %q", got)
	}
}

func TestOpenAITranslator_EmptyResponse(t *testing.T) {
	server := newChatServer(t, "   ", http.StatusOK)
	defer server.Close()

	cfg := DefaultConfig()
	cfg.OpenAIKey = "test-api-key"
	cfg.OpenAIBaseURL = server.URL + "/v1"

	tr, _ := NewOpenAITranslator(cfg)
	if _, err := tr.Translate(context.Background(), "明日"); err == nil {
		t.Error("Expected error for empty translation")
	}
}

func TestOpenAITranslator_ServerError(t *testing.T) {
	server := newChatServer(t, "", http.StatusInternalServerError)
	defer server.Close()

	cfg := DefaultConfig()
	cfg.OpenAIKey = "test-api-key"
	cfg.OpenAIBaseURL = server.URL + "/v1"

	tr, _ := NewOpenAITranslator(cfg)
	_, err := tr.Translate(context.Background(), "明日")
	if err == nil || !strings.Contains(err.Error(), "OpenAI API error") {
		t.Errorf("Expected OpenAI API error, got %v", err)
	}
}

func TestOpenAITranslator_Integration(t *testing.T) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	cfg := DefaultConfig()
	cfg.OpenAIKey = apiKey
	tr, err := NewOpenAITranslator(cfg)
	if err != nil {
		t.Fatalf("NewOpenAITranslator() error = %v", err)
	}

	translation, err := tr.Translate(context.Background(), "私は学生です。")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if !strings.Contains(strings.ToLower(translation), "student") {
		t.Errorf("Expected translation to mention 'student', got %q", translation)
	}
}

func TestGeminiTranslator_Integration(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: GEMINI_API_KEY not set")
	}

	cfg := DefaultConfig()
	cfg.GeminiKey = apiKey
	tr, err := NewGeminiTranslator(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewGeminiTranslator() error = %v", err)
	}

	translation, err := tr.Translate(context.Background(), "今日はいい天気ですね。")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if translation == "" {
		t.Error("Got empty translation")
	}
	t.Logf("Translation: %s", translation)
}
