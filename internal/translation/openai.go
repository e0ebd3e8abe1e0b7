package translation

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAITranslator translates with an OpenAI chat model
type OpenAITranslator struct {
	apiKey string
	model  string
	config *Config
	client *openai.Client
}

// NewOpenAITranslator creates a new OpenAI backed translator
func NewOpenAITranslator(config *Config) (*OpenAITranslator, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI %w", ErrAPIKeyMissing)
	}

	clientConfig := openai.DefaultConfig(config.OpenAIKey)
	if config.OpenAIBaseURL != "" {
		clientConfig.BaseURL = config.OpenAIBaseURL
	}

	model := config.OpenAIModel
	if model == "" {
		model = openai.GPT4oMini
	}

	return &OpenAITranslator{
		apiKey: config.OpenAIKey,
		model:  model,
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
	}, nil
}

// Translate translates a Japanese sentence to English
func (t *OpenAITranslator) Translate(ctx context.Context, sentence string) (string, error) {
	if t.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.config.Timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a professional Japanese to English translator helping language learners.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(sentence),
			},
		},
		MaxTokens:   300,
		Temperature: 0.3,
	}

	resp, err := t.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no translation returned")
	}

	translation := cleanTranslation(resp.Choices[0].Message.Content)
	if translation == "" {
		return "", fmt.Errorf("empty translation returned")
	}
	return translation, nil
}

// Name returns the backend name
func (t *OpenAITranslator) Name() string {
	return "openai:" + t.model
}

// IsAvailable checks the backend configuration
func (t *OpenAITranslator) IsAvailable() error {
	if t.apiKey == "" {
		return fmt.Errorf("OpenAI %w", ErrAPIKeyMissing)
	}
	return nil
}
