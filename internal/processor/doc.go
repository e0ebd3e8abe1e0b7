// Package processor contains the sentence pipeline. A Processor owns the
// morphological analyzer, translator, optional OCR recognizer and the deck
// store, and feeds sentences from the interactive prompt, batch files,
// images or web articles through translate, extract and append.
package processor
