package extract

import "context"

// POS is a coarse part-of-speech tag.
type POS string

const (
	Noun         POS = "NOUN"
	ProperNoun   POS = "PROPN"
	Verb         POS = "VERB"
	Adjective    POS = "ADJ"
	Adposition   POS = "ADP"
	Auxiliary    POS = "AUX"
	Adverb       POS = "ADV"
	Pronoun      POS = "PRON"
	Numeral      POS = "NUM"
	Punctuation  POS = "PUNCT"
	Symbol       POS = "SYM"
	Particle     POS = "PART"
	Conjunction  POS = "CCONJ"
	Subordinator POS = "SCONJ"
	Determiner   POS = "DET"
	Interjection POS = "INTJ"
	Other        POS = "X"
)

// Accepted reports whether tokens with this tag can become flashcards.
func (p POS) Accepted() bool {
	switch p {
	case Noun, ProperNoun, Verb, Adjective:
		return true
	}
	return false
}

// Token is one analyzed unit of a sentence.
type Token struct {
	Surface string // text as it appears in the sentence, e.g. "会い"
	Lemma   string // dictionary form, e.g. "会う"
	POS     POS
	Reading string // katakana reading when the analyzer provides one
}

// Analyzer tokenizes, tags and lemmatizes a sentence. The returned tokens
// cover the sentence in order.
type Analyzer interface {
	Analyze(ctx context.Context, sentence string) ([]Token, error)
}
