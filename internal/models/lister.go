package models

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// Lister handles listing the models usable for translation
type Lister struct {
	openaiKey string
	geminiKey string
	client    *openai.Client
	out       io.Writer
}

// NewLister creates a new model lister. Either key may be empty; the
// matching provider is skipped.
func NewLister(openaiKey, geminiKey string) *Lister {
	return newLister(openaiKey, geminiKey, openai.DefaultConfig(openaiKey))
}

func newLister(openaiKey, geminiKey string, config openai.ClientConfig) *Lister {
	return &Lister{
		openaiKey: openaiKey,
		geminiKey: geminiKey,
		client:    openai.NewClientWithConfig(config),
		out:       os.Stdout,
	}
}

// ListAvailableModels prints the chat models of every configured provider
func (l *Lister) ListAvailableModels(ctx context.Context) error {
	if l.openaiKey == "" && l.geminiKey == "" {
		return fmt.Errorf("no API key found. Set OPENAI_API_KEY or GEMINI_API_KEY, or configure them in .kanjideck.yaml")
	}

	if l.openaiKey != "" {
		chatModels, err := l.openAIChatModels(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(l.out, "OpenAI Chat Models (use with --openai-model):")
		printModels(l.out, chatModels)
	}

	if l.geminiKey != "" {
		geminiModels, err := l.geminiModels(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(l.out, "\nGemini Models (use with --translator gemini --gemini-model):")
		printModels(l.out, geminiModels)
	}

	return nil
}

func (l *Lister) openAIChatModels(ctx context.Context) ([]string, error) {
	models, err := l.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list OpenAI models: %w", err)
	}

	chatModels := []string{}
	for _, model := range models.Models {
		if isChatModel(model.ID) {
			chatModels = append(chatModels, model.ID)
		}
	}
	sort.Strings(chatModels)

	return chatModels, nil
}

func (l *Lister) geminiModels(ctx context.Context) ([]string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  l.geminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	names := []string{}
	for model, err := range client.Models.All(ctx) {
		if err != nil {
			return nil, fmt.Errorf("failed to list Gemini models: %w", err)
		}
		if !supportsGenerateContent(model.SupportedActions) {
			continue
		}
		names = append(names, strings.TrimPrefix(model.Name, "models/"))
	}
	sort.Strings(names)

	return names, nil
}

// isChatModel keeps text chat models and drops audio, image, embedding and
// moderation variants
func isChatModel(id string) bool {
	if !strings.Contains(id, "gpt") && !strings.HasPrefix(id, "o") {
		return false
	}
	for _, skip := range []string{"tts", "audio", "realtime", "transcribe", "image", "search", "embedding", "moderation"} {
		if strings.Contains(id, skip) {
			return false
		}
	}
	return true
}

func supportsGenerateContent(actions []string) bool {
	for _, a := range actions {
		if a == "generateContent" {
			return true
		}
	}
	return false
}

func printModels(w io.Writer, models []string) {
	if len(models) == 0 {
		fmt.Fprintln(w, "  No models found")
		return
	}
	for _, model := range models {
		fmt.Fprintf(w, "  %s\n", model)
	}
}
