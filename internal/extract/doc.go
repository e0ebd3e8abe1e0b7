// Package extract finds the words of a Japanese sentence worth turning into
// flashcards: content words (nouns, proper nouns, verbs, adjectives) whose
// surface form contains at least one Kanji, reported in dictionary form.
package extract
