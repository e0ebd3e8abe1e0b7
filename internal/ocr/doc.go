// Package ocr turns images of Japanese text into sentences. The Tesseract
// engine lives in the tesseract subpackage so callers of Recognizer build
// without cgo.
package ocr
