// Package anki stores flashcards for Anki import. The deck is an
// append-only CSV file with a Front,Back header; it can also be exported as
// an .apkg package.
package anki
