package tesseract

import (
	"context"
	"fmt"
	"os"
	"strings"

	"codeberg.org/snonux/kanjideck/internal/ocr"
	"github.com/otiai10/gosseract/v2"
)

var _ ocr.Recognizer = (*Recognizer)(nil)

// DefaultLanguages are the Tesseract models used when none are configured
var DefaultLanguages = []string{"jpn"}

// Recognizer recognizes text with a local Tesseract installation
type Recognizer struct {
	languages     []string
	clientFactory func() *gosseract.Client
}

// NewRecognizer constructs a recognizer for the given Tesseract languages
func NewRecognizer(languages ...string) *Recognizer {
	if len(languages) == 0 {
		languages = DefaultLanguages
	}
	return &Recognizer{
		languages:     languages,
		clientFactory: gosseract.NewClient,
	}
}

// Languages returns the configured Tesseract languages
func (r *Recognizer) Languages() []string {
	return r.languages
}

// Recognize returns the text lines found in the image at imagePath
func (r *Recognizer) Recognize(ctx context.Context, imagePath string) ([]string, error) {
	if _, err := os.Stat(imagePath); err != nil {
		return nil, fmt.Errorf("image not readable: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := r.clientFactory()
	defer c.Close()

	if err := c.SetLanguage(r.languages...); err != nil {
		return nil, fmt.Errorf("set languages: %w", err)
	}
	if err := c.SetImage(imagePath); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}

	var fragments []string
	boxes, err := c.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err == nil {
		for _, b := range boxes {
			fragments = append(fragments, b.Word)
		}
	}

	if len(fragments) == 0 {
		text, err := c.Text()
		if err != nil {
			return nil, fmt.Errorf("recognize text: %w", err)
		}
		fragments = strings.Split(text, "\n")
	}

	return ocr.CleanFragments(fragments), nil
}
