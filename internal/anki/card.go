package anki

import "strings"

const (
	// FrontHeader and BackHeader name the two deck columns
	FrontHeader = "Front"
	BackHeader  = "Back"

	// BackSeparator sits between the example sentence and its translation
	BackSeparator = "<br>"

	highlightOpen  = "<b>"
	highlightClose = "</b>"
)

// Row is one flashcard: the word on the front, the example on the back.
type Row struct {
	Front string
	Back  string
}

// NewRow builds the flashcard for lemma as found in sentence.
func NewRow(lemma, sentence, translation string) Row {
	return Row{
		Front: lemma,
		Back:  ComposeBack(sentence, lemma, translation),
	}
}

// Highlight wraps the first literal occurrence of lemma in sentence with
// <b></b>. When the lemma is not in the sentence verbatim (an inflected
// verb, say) the sentence is returned unchanged.
func Highlight(sentence, lemma string) string {
	if lemma == "" || !strings.Contains(sentence, lemma) {
		return sentence
	}
	return strings.Replace(sentence, lemma, highlightOpen+lemma+highlightClose, 1)
}

// ComposeBack returns the back field: highlighted sentence, <br>, translation.
func ComposeBack(sentence, lemma, translation string) string {
	return Highlight(sentence, lemma) + BackSeparator + translation
}
