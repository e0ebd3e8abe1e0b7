package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/kanjideck/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kanjideck [sentence]",
		Short: "Japanese Kanji Anki Card Builder",
		Long: `kanjideck turns Japanese sentences into Anki flashcards.

Every noun, proper noun, verb and adjective written with Kanji becomes a
card: the dictionary form on the front, the sentence with the word
highlighted and its English translation on the back. Cards are appended
to a CSV deck that Anki imports directly.

Examples:
  kanjideck                               # Interactive prompt (default)
  kanjideck 明日会社でお会いしましょう。  # Add cards for one sentence
  kanjideck --image page.png              # Read the sentence from an image
  kanjideck --batch sentences.txt         # Process a file of sentences
  kanjideck --url https://example.jp/news # Process a web article
  kanjideck --anki                        # Also export an .apkg package`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.kanjideck.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.DeckFile, "deck", "d", flags.DeckFile, "CSV deck file cards are appended to")
	cmd.Flags().StringVarP(&flags.ImageFile, "image", "i", "", "Recognize the sentence in an image (OCR)")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Process sentences from file (one per line, optional '= translation')")
	cmd.Flags().StringVar(&flags.ArticleURL, "url", "", "Process the Kanji sentences of a web article")
	cmd.Flags().BoolVar(&flags.GenerateAnki, "anki", false, "Export the deck as an Anki package (.apkg) when done")
	cmd.Flags().StringVar(&flags.APKGOutput, "apkg", "", "Output path for --anki (default: <deck-name>.apkg next to the deck)")
	cmd.Flags().StringVar(&flags.DeckName, "deck-name", flags.DeckName, "Deck name for APKG export")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI chat models for the current API key")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move the deck file into the archive directory and exit")

	// Translation flags
	cmd.Flags().StringVar(&flags.Translator, "translator", flags.Translator, "Translation provider: openai or gemini")
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI chat model used for translation")
	cmd.Flags().StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini model used for translation")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", flags.Timeout, "Timeout for a single translation request")

	// OCR flags
	cmd.Flags().StringSliceVar(&flags.OCRLanguages, "ocr-lang", flags.OCRLanguages, "Tesseract languages for --image (e.g. jpn,jpn_vert)")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("deck.file", cmd.Flags().Lookup("deck"))
	viper.BindPFlag("deck.name", cmd.Flags().Lookup("deck-name"))
	viper.BindPFlag("translation.provider", cmd.Flags().Lookup("translator"))
	viper.BindPFlag("translation.openai_model", cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag("translation.gemini_model", cmd.Flags().Lookup("gemini-model"))
	viper.BindPFlag("translation.timeout", cmd.Flags().Lookup("timeout"))
	viper.BindPFlag("ocr.languages", cmd.Flags().Lookup("ocr-lang"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	// A .env in the working directory may carry the API keys
	if err := godotenv.Load(); err == nil {
		fmt.Fprintln(os.Stderr, "Loaded environment from .env")
	}

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".kanjideck" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".kanjideck")
	}

	// Environment variables
	viper.SetEnvPrefix("KANJIDECK")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("translation.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}

	return viper.GetString("translation.gemini_key")
}
