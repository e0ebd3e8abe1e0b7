package morph

import (
	"context"
	"fmt"
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"codeberg.org/snonux/kanjideck/internal/extract"
)

// IPA feature columns
const (
	featPOS = iota
	featSubPOS1
	featSubPOS2
	featSubPOS3
	featConjType
	featConjForm
	featBaseForm
	featReading
)

// Analyzer tokenizes Japanese text with kagome.
type Analyzer struct {
	t *tokenizer.Tokenizer
}

// NewAnalyzer loads the IPA dictionary and builds a tokenizer.
func NewAnalyzer() (*Analyzer, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("failed to load IPA dictionary: %w", err)
	}
	return &Analyzer{t: t}, nil
}

// Analyze breaks sentence into tokens with lemmas, readings and coarse tags.
func (a *Analyzer) Analyze(ctx context.Context, sentence string) ([]extract.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var result []extract.Token
	for _, tok := range a.t.Tokenize(sentence) {
		if tok.Class == tokenizer.DUMMY {
			continue
		}
		if strings.TrimSpace(tok.Surface) == "" {
			continue
		}

		features := tok.Features()
		result = append(result, extract.Token{
			Surface: tok.Surface,
			Lemma:   feature(features, featBaseForm, tok.Surface),
			POS:     MapPOS(features),
			Reading: feature(features, featReading, ""),
		})
	}

	return result, nil
}

func feature(features []string, i int, fallback string) string {
	if len(features) > i && features[i] != "*" && features[i] != "" {
		return features[i]
	}
	return fallback
}

// MapPOS converts IPA part-of-speech features to a coarse tag.
func MapPOS(features []string) extract.POS {
	main := feature(features, featPOS, "")
	sub := feature(features, featSubPOS1, "")

	switch main {
	case "名詞":
		switch sub {
		case "固有名詞":
			return extract.ProperNoun
		case "代名詞":
			return extract.Pronoun
		case "数":
			return extract.Numeral
		case "形容動詞語幹":
			return extract.Adjective
		}
		return extract.Noun
	case "動詞":
		if sub == "非自立" {
			return extract.Auxiliary
		}
		return extract.Verb
	case "形容詞":
		return extract.Adjective
	case "副詞":
		return extract.Adverb
	case "助詞":
		switch sub {
		case "接続助詞":
			return extract.Subordinator
		case "終助詞", "副助詞", "副助詞／並立助詞／終助詞":
			return extract.Particle
		}
		return extract.Adposition
	case "助動詞":
		return extract.Auxiliary
	case "連体詞":
		return extract.Determiner
	case "接続詞":
		return extract.Conjunction
	case "感動詞":
		return extract.Interjection
	case "記号":
		if sub == "一般" {
			return extract.Symbol
		}
		return extract.Punctuation
	}
	return extract.Other
}
