package testutil

import (
	"context"
	"fmt"

	"codeberg.org/snonux/kanjideck/internal/extract"
)

// MockAnalyzer returns canned tokens per sentence
type MockAnalyzer struct {
	Tokens map[string][]extract.Token
	Errors map[string]error
	Calls  []string
}

// Analyze mocks morphological analysis
func (m *MockAnalyzer) Analyze(ctx context.Context, sentence string) ([]extract.Token, error) {
	m.Calls = append(m.Calls, sentence)

	if err, ok := m.Errors[sentence]; ok {
		return nil, err
	}

	return m.Tokens[sentence], nil
}

// MockTranslator mocks translation service
type MockTranslator struct {
	Translations map[string]string
	Errors       map[string]error
	Calls        []string
	// Unavailable is returned from IsAvailable when set
	Unavailable error
}

// Translate mocks translating text
func (m *MockTranslator) Translate(ctx context.Context, sentence string) (string, error) {
	m.Calls = append(m.Calls, sentence)

	if err, ok := m.Errors[sentence]; ok {
		return "", err
	}

	if translation, ok := m.Translations[sentence]; ok {
		return translation, nil
	}

	// Default mock translation
	return fmt.Sprintf("mock translation of %s", sentence), nil
}

// Name returns the mock backend name
func (m *MockTranslator) Name() string {
	return "mock"
}

// IsAvailable reports the configured availability
func (m *MockTranslator) IsAvailable() error {
	return m.Unavailable
}

// MockRecognizer mocks OCR
type MockRecognizer struct {
	Fragments map[string][]string
	Errors    map[string]error
	Calls     []string
}

// Recognize mocks text recognition for imagePath
func (m *MockRecognizer) Recognize(ctx context.Context, imagePath string) ([]string, error) {
	m.Calls = append(m.Calls, imagePath)

	if err, ok := m.Errors[imagePath]; ok {
		return nil, err
	}

	if fragments, ok := m.Fragments[imagePath]; ok {
		return fragments, nil
	}

	return nil, fmt.Errorf("no such image: %s", imagePath)
}

// Tok builds a token for MockAnalyzer tables
func Tok(surface, lemma string, pos extract.POS) extract.Token {
	return extract.Token{Surface: surface, Lemma: lemma, POS: pos}
}

// MeetingTokens is the analysis of 明日会社でお会いしましょう。
func MeetingTokens() []extract.Token {
	return []extract.Token{
		Tok("明日", "明日", extract.Noun),
		Tok("会社", "会社", extract.Noun),
		Tok("で", "で", extract.Adposition),
		Tok("お会い", "会う", extract.Verb),
		Tok("しましょう", "する", extract.Auxiliary),
		Tok("。", "。", extract.Punctuation),
	}
}
