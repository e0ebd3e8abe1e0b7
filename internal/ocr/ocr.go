package ocr

import (
	"context"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Recognizer extracts text fragments from an image file, in reading order.
type Recognizer interface {
	Recognize(ctx context.Context, imagePath string) ([]string, error)
}

// JoinFragments joins recognized fragments with single spaces.
func JoinFragments(fragments []string) string {
	return strings.Join(fragments, " ")
}

// CleanFragments NFKC-normalizes fragments and drops blank ones. NFKC folds
// half-width katakana and full-width ASCII, which Tesseract emits freely.
func CleanFragments(fragments []string) []string {
	out := make([]string, 0, len(fragments))
	for _, f := range fragments {
		f = strings.TrimSpace(norm.NFKC.String(f))
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
