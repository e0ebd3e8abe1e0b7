package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptySentence is returned for blank input.
var ErrEmptySentence = errors.New("sentence is empty")

// Extractor pulls study words out of sentences using an Analyzer.
type Extractor struct {
	analyzer Analyzer
}

// NewExtractor creates an extractor backed by analyzer.
func NewExtractor(analyzer Analyzer) *Extractor {
	return &Extractor{analyzer: analyzer}
}

// Extract returns the lemmas of all tokens that have an accepted part of
// speech and a Kanji in their surface form. An empty set is a valid result.
func (e *Extractor) Extract(ctx context.Context, sentence string) (*WordSet, error) {
	if strings.TrimSpace(sentence) == "" {
		return nil, ErrEmptySentence
	}

	tokens, err := e.analyzer.Analyze(ctx, sentence)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze sentence: %w", err)
	}

	return SelectWords(tokens), nil
}

// SelectWords applies the part-of-speech and Kanji filters to tokens.
func SelectWords(tokens []Token) *WordSet {
	words := NewWordSet()
	for _, tok := range tokens {
		if !tok.POS.Accepted() || !ContainsKanji(tok.Surface) {
			continue
		}
		lemma := tok.Lemma
		if lemma == "" {
			lemma = tok.Surface
		}
		words.Add(lemma)
	}
	return words
}
