// Package tesseract implements ocr.Recognizer with a local Tesseract
// installation through gosseract. It needs cgo and libtesseract.
package tesseract
