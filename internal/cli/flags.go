package cli

import "time"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	DeckFile   string
	ImageFile  string
	BatchFile  string
	ArticleURL string
	ListModels bool
	Archive    bool

	// Export flags
	GenerateAnki bool
	APKGOutput   string
	DeckName     string

	// Translation flags
	Translator  string
	OpenAIModel string
	GeminiModel string
	Timeout     time.Duration

	// OCR flags
	OCRLanguages []string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		DeckFile:     "anki_deck.csv",
		DeckName:     "Japanese Kanji",
		Translator:   "openai",
		OpenAIModel:  "gpt-4o-mini",
		GeminiModel:  "gemini-2.0-flash",
		Timeout:      30 * time.Second,
		OCRLanguages: []string{"jpn"},
	}
}
