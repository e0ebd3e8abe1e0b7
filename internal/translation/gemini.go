package translation

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiTranslator translates with a Gemini model
type GeminiTranslator struct {
	apiKey string
	model  string
	config *Config
	client *genai.Client
}

// NewGeminiTranslator creates a new Gemini backed translator
func NewGeminiTranslator(ctx context.Context, config *Config) (*GeminiTranslator, error) {
	if config.GeminiKey == "" {
		return nil, fmt.Errorf("Gemini %w", ErrAPIKeyMissing)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := config.GeminiModel
	if model == "" {
		model = DefaultConfig().GeminiModel
	}

	return &GeminiTranslator{
		apiKey: config.GeminiKey,
		model:  model,
		config: config,
		client: client,
	}, nil
}

// Translate translates a Japanese sentence to English
func (t *GeminiTranslator) Translate(ctx context.Context, sentence string) (string, error) {
	if t.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.config.Timeout)
		defer cancel()
	}

	resp, err := t.client.Models.GenerateContent(ctx, t.model, genai.Text(buildPrompt(sentence)), &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.3),
	})
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	translation := cleanTranslation(resp.Text())
	if translation == "" {
		return "", fmt.Errorf("no translation returned")
	}
	return translation, nil
}

// Name returns the backend name
func (t *GeminiTranslator) Name() string {
	return "gemini:" + t.model
}

// IsAvailable checks the backend configuration
func (t *GeminiTranslator) IsAvailable() error {
	if t.apiKey == "" {
		return fmt.Errorf("Gemini %w", ErrAPIKeyMissing)
	}
	return nil
}
