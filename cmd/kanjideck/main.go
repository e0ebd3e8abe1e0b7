package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/kanjideck/internal/anki"
	"codeberg.org/snonux/kanjideck/internal/archive"
	"codeberg.org/snonux/kanjideck/internal/cli"
	"codeberg.org/snonux/kanjideck/internal/models"
	"codeberg.org/snonux/kanjideck/internal/morph"
	"codeberg.org/snonux/kanjideck/internal/ocr/tesseract"
	"codeberg.org/snonux/kanjideck/internal/processor"
	"codeberg.org/snonux/kanjideck/internal/translation"
)

func main() {
	// Ctrl+C ends the interactive loop at the next prompt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(ctx, args, flags)
	}

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func runCommand(ctx context.Context, args []string, flags *cli.Flags) error {
	deckFile := cli.DeckFile(flags)

	// Handle --archive flag
	if flags.Archive {
		if _, err := archive.ArchiveDeck(deckFile); err != nil {
			return fmt.Errorf("failed to archive deck: %w", err)
		}
		return nil
	}

	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cli.GetOpenAIKey(), cli.GetGeminiKey())
		return lister.ListAvailableModels(ctx)
	}

	proc, err := newProcessor(ctx, flags, deckFile)
	if err != nil {
		return err
	}

	if err := runInput(ctx, proc, args, flags); err != nil {
		return err
	}

	// Generate Anki file if requested
	if flags.GenerateAnki {
		fmt.Printf("\nGenerating Anki package...\n")
		outputPath, err := proc.ExportAPKG(flags.APKGOutput, cli.DeckName(flags))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to generate Anki package: %v\n", err)
		} else {
			fmt.Printf("Anki package created: %s\n", outputPath)
		}
	}

	fmt.Printf("\nDone! Cards saved to: %s\n", deckFile)
	return nil
}

// newProcessor loads the analyzer and translator. Failing to load either
// is fatal: nothing can be processed without them.
func newProcessor(ctx context.Context, flags *cli.Flags, deckFile string) (*processor.Processor, error) {
	fmt.Printf("Loading dictionary...\n")
	analyzer, err := morph.NewAnalyzer()
	if err != nil {
		return nil, fmt.Errorf("morphological analyzer unavailable: %w", err)
	}

	config := cli.TranslationConfig(flags)
	translator, err := translation.NewTranslator(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("translator unavailable: %w", err)
	}
	fmt.Printf("Using translator: %s\n", translator.Name())

	return processor.NewProcessor(processor.Options{
		Analyzer:   analyzer,
		Translator: translation.NewCachedTranslator(translator, nil),
		Recognizer: tesseract.NewRecognizer(cli.OCRLanguages(flags)...),
		Store:      anki.NewStore(deckFile),
	})
}

func runInput(ctx context.Context, proc *processor.Processor, args []string, flags *cli.Flags) error {
	switch {
	case flags.BatchFile != "":
		if err := proc.InitDeck(); err != nil {
			return err
		}
		_, err := proc.ProcessBatch(ctx, flags.BatchFile)
		return err

	case flags.ArticleURL != "":
		if err := proc.InitDeck(); err != nil {
			return err
		}
		_, err := proc.ProcessArticle(ctx, flags.ArticleURL)
		return err

	case flags.ImageFile != "":
		if err := proc.InitDeck(); err != nil {
			return err
		}
		fmt.Printf("\nProcessing image: %s\n", flags.ImageFile)
		_, err := proc.ProcessImage(ctx, flags.ImageFile)
		return err

	case len(args) > 0:
		if err := proc.InitDeck(); err != nil {
			return err
		}
		fmt.Printf("\nProcessing: %s\n", args[0])
		_, err := proc.ProcessSentence(ctx, args[0], "")
		return err

	default:
		// No input provided - interactive prompt
		return proc.RunInteractive(ctx, os.Stdin)
	}
}
