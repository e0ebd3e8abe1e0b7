package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrAPIKeyMissing is returned when the selected backend has no API key.
var ErrAPIKeyMissing = errors.New("API key not found")

// Translator translates a Japanese sentence to English.
type Translator interface {
	// Translate returns the English translation of sentence
	Translate(ctx context.Context, sentence string) (string, error)

	// Name returns the backend name
	Name() string

	// IsAvailable checks if the backend is properly configured
	IsAvailable() error
}

// Config holds translation settings
type Config struct {
	Provider string // "openai" or "gemini"
	Timeout  time.Duration

	OpenAIKey   string
	OpenAIModel string
	// OpenAIBaseURL overrides the API endpoint (proxies, tests)
	OpenAIBaseURL string

	GeminiKey   string
	GeminiModel string

	// BreakerFailures is the number of consecutive failures that opens the breaker
	BreakerFailures uint32
	// BreakerCooldown is how long the breaker stays open
	BreakerCooldown time.Duration
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Provider:        "openai",
		Timeout:         30 * time.Second,
		OpenAIModel:     "gpt-4o-mini",
		GeminiModel:     "gemini-2.0-flash",
		BreakerFailures: 3,
		BreakerCooldown: 30 * time.Second,
	}
}

// NewTranslator creates the configured backend wrapped in a circuit breaker.
func NewTranslator(ctx context.Context, config *Config) (Translator, error) {
	if config == nil {
		config = DefaultConfig()
	}

	var backend Translator
	var err error

	switch config.Provider {
	case "openai", "":
		backend, err = NewOpenAITranslator(config)
	case "gemini":
		backend, err = NewGeminiTranslator(ctx, config)
	default:
		return nil, fmt.Errorf("unknown translation provider: %s", config.Provider)
	}
	if err != nil {
		return nil, err
	}

	return NewBreakerTranslator(backend, config.BreakerFailures, config.BreakerCooldown), nil
}

func buildPrompt(sentence string) string {
	return fmt.Sprintf("Translate the following Japanese sentence into natural English. Respond with only the English translation, nothing else.\n\n%s", sentence)
}

func cleanTranslation(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\"“”")
	return strings.TrimSpace(s)
}
