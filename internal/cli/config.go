package cli

import (
	"github.com/spf13/viper"

	"codeberg.org/snonux/kanjideck/internal/translation"
)

// TranslationConfig builds the translator settings from viper, falling
// back to flags for keys viper does not know about
func TranslationConfig(flags *Flags) *translation.Config {
	config := translation.DefaultConfig()

	config.Provider = stringSetting("translation.provider", flags.Translator)
	config.OpenAIModel = stringSetting("translation.openai_model", flags.OpenAIModel)
	config.GeminiModel = stringSetting("translation.gemini_model", flags.GeminiModel)
	config.OpenAIKey = GetOpenAIKey()
	config.GeminiKey = GetGeminiKey()
	config.OpenAIBaseURL = viper.GetString("translation.openai_base_url")

	if timeout := viper.GetDuration("translation.timeout"); timeout > 0 {
		config.Timeout = timeout
	} else if flags.Timeout > 0 {
		config.Timeout = flags.Timeout
	}

	if failures := viper.GetUint32("translation.breaker_failures"); failures > 0 {
		config.BreakerFailures = failures
	}
	if cooldown := viper.GetDuration("translation.breaker_cooldown"); cooldown > 0 {
		config.BreakerCooldown = cooldown
	}

	return config
}

// DeckFile returns the configured deck path
func DeckFile(flags *Flags) string {
	return stringSetting("deck.file", flags.DeckFile)
}

// DeckName returns the configured APKG deck name
func DeckName(flags *Flags) string {
	return stringSetting("deck.name", flags.DeckName)
}

// OCRLanguages returns the configured Tesseract languages
func OCRLanguages(flags *Flags) []string {
	if langs := viper.GetStringSlice("ocr.languages"); len(langs) > 0 {
		return langs
	}
	return flags.OCRLanguages
}

func stringSetting(key, fallback string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}
