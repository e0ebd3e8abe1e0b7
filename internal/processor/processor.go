package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"codeberg.org/snonux/kanjideck/internal"
	"codeberg.org/snonux/kanjideck/internal/anki"
	"codeberg.org/snonux/kanjideck/internal/article"
	"codeberg.org/snonux/kanjideck/internal/batch"
	"codeberg.org/snonux/kanjideck/internal/extract"
	"codeberg.org/snonux/kanjideck/internal/ocr"
	"codeberg.org/snonux/kanjideck/internal/translation"
)

// ErrNoRecognizer is returned by image operations when OCR is not configured
var ErrNoRecognizer = errors.New("no OCR recognizer configured")

// Options holds the collaborators a Processor owns
type Options struct {
	Analyzer   extract.Analyzer
	Translator translation.Translator
	// Recognizer is optional; image input fails with ErrNoRecognizer without it
	Recognizer ocr.Recognizer
	Store      *anki.Store
	// Fetcher is used for article input; a default one is created when nil
	Fetcher *article.Fetcher

	Out    io.Writer
	ErrOut io.Writer
}

// Result describes what happened to one sentence
type Result struct {
	Sentence    string
	Translation string
	Words       []string
	// Added counts the rows written to the deck
	Added int
}

// Processor handles the main sentence processing logic
type Processor struct {
	extractor  *extract.Extractor
	translator translation.Translator
	recognizer ocr.Recognizer
	store      *anki.Store
	fetcher    *article.Fetcher
	out        io.Writer
	errOut     io.Writer
}

// NewProcessor creates a new sentence processor
func NewProcessor(opts Options) (*Processor, error) {
	if opts.Analyzer == nil {
		return nil, fmt.Errorf("processor requires an analyzer")
	}
	if opts.Translator == nil {
		return nil, fmt.Errorf("processor requires a translator")
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("processor requires a deck store")
	}
	if err := opts.Translator.IsAvailable(); err != nil {
		return nil, fmt.Errorf("translator %s unavailable: %w", opts.Translator.Name(), err)
	}

	p := &Processor{
		extractor:  extract.NewExtractor(opts.Analyzer),
		translator: opts.Translator,
		recognizer: opts.Recognizer,
		store:      opts.Store,
		fetcher:    opts.Fetcher,
		out:        opts.Out,
		errOut:     opts.ErrOut,
	}
	if p.fetcher == nil {
		p.fetcher = article.NewFetcher(30 * time.Second)
	}
	if p.out == nil {
		p.out = os.Stdout
	}
	if p.errOut == nil {
		p.errOut = os.Stderr
	}

	return p, nil
}

// Store returns the deck store
func (p *Processor) Store() *anki.Store {
	return p.store
}

// InitDeck makes sure the deck file exists with its header
func (p *Processor) InitDeck() error {
	created, err := p.store.EnsureInitialized()
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(p.out, "Created new file: %s\n", p.store.Path())
	}
	return nil
}

// ProcessSentence translates sentence (unless translationText is given),
// extracts its Kanji words and appends one card per word.
func (p *Processor) ProcessSentence(ctx context.Context, sentence, translationText string) (*Result, error) {
	sentence = strings.TrimSpace(sentence)
	if sentence == "" {
		return nil, extract.ErrEmptySentence
	}

	result := &Result{Sentence: sentence, Translation: translationText}

	if translationText != "" {
		fmt.Fprintf(p.out, "  Using provided translation: %s\n", translationText)
	} else {
		fmt.Fprintf(p.out, "  Translating...\n")
		translated, err := p.translator.Translate(ctx, sentence)
		if err != nil {
			return result, fmt.Errorf("translation failed: %w", err)
		}
		result.Translation = translated
		fmt.Fprintf(p.out, "  Translation: %s\n", translated)
	}

	fmt.Fprintf(p.out, "  Extracting Kanji words...\n")
	words, err := p.extractor.Extract(ctx, sentence)
	if err != nil {
		return result, err
	}
	result.Words = words.Words()

	if words.Len() == 0 {
		fmt.Fprintf(p.out, "  No meaningful Kanji words found in this sentence.\n")
		return result, nil
	}
	fmt.Fprintf(p.out, "  Found %d words: %s\n", words.Len(), strings.Join(result.Words, ", "))

	for _, word := range result.Words {
		if err := p.store.Append(word, sentence, result.Translation); err != nil {
			return result, fmt.Errorf("failed to save card for %s: %w", word, err)
		}
		result.Added++
	}
	fmt.Fprintf(p.out, "  Successfully added %d card(s) to %s.\n", result.Added, p.store.Path())

	return result, nil
}

// ProcessImage recognizes the text in an image and processes it as one
// sentence
func (p *Processor) ProcessImage(ctx context.Context, imagePath string) (*Result, error) {
	if p.recognizer == nil {
		return nil, ErrNoRecognizer
	}

	fmt.Fprintf(p.out, "  Recognizing text in %s...\n", filepath.Base(imagePath))
	fragments, err := p.recognizer.Recognize(ctx, imagePath)
	if err != nil {
		return nil, fmt.Errorf("text recognition failed: %w", err)
	}

	sentence := ocr.JoinFragments(fragments)
	if strings.TrimSpace(sentence) == "" {
		return nil, fmt.Errorf("no text recognized in %s", imagePath)
	}
	fmt.Fprintf(p.out, "  Recognized: %s\n", sentence)

	return p.ProcessSentence(ctx, sentence, "")
}

// Summary counts the outcome of a multi-sentence run
type Summary struct {
	Total     int
	Processed int
	NoKanji   int
	Errors    int
	Cards     int
}

// ProcessBatch processes every sentence of a batch file. Failing
// sentences are reported and counted; they never abort the run.
func (p *Processor) ProcessBatch(ctx context.Context, batchFile string) (*Summary, error) {
	entries, err := batch.ReadBatchFile(batchFile)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Total: len(entries)}
	for i, entry := range entries {
		if ctx.Err() != nil {
			break
		}
		fmt.Fprintf(p.out, "\nProcessing %d/%d: %s\n", i+1, len(entries), entry.Sentence)
		result, err := p.ProcessSentence(ctx, entry.Sentence, entry.Translation)
		p.record(summary, fmt.Sprintf("line %d '%s'", entry.Line, entry.Sentence), result, err)
	}

	p.printSummary("Batch Processing Summary", summary)
	return summary, ctx.Err()
}

// ProcessArticle fetches a web article and processes each of its Kanji
// sentences
func (p *Processor) ProcessArticle(ctx context.Context, url string) (*Summary, error) {
	fmt.Fprintf(p.out, "Fetching article: %s\n", url)
	art, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if art.Title != "" {
		fmt.Fprintf(p.out, "Title: %s\n", art.Title)
	}

	summary := &Summary{Total: len(art.Sentences)}
	for i, sentence := range art.Sentences {
		if ctx.Err() != nil {
			break
		}
		fmt.Fprintf(p.out, "\nProcessing %d/%d: %s\n", i+1, len(art.Sentences), sentence)
		result, err := p.ProcessSentence(ctx, sentence, "")
		p.record(summary, fmt.Sprintf("'%s'", sentence), result, err)
	}

	p.printSummary("Article Processing Summary", summary)
	return summary, ctx.Err()
}

func (p *Processor) record(summary *Summary, label string, result *Result, err error) {
	if result != nil {
		summary.Cards += result.Added
	}
	switch {
	case err != nil:
		fmt.Fprintf(p.errOut, "Error processing %s: %v\n", label, err)
		summary.Errors++
	case result.Added == 0:
		summary.NoKanji++
	default:
		summary.Processed++
	}
}

func (p *Processor) printSummary(title string, s *Summary) {
	fmt.Fprintf(p.out, "\n=== %s ===\n", title)
	fmt.Fprintf(p.out, "Total sentences: %d\n", s.Total)
	fmt.Fprintf(p.out, "Processed: %d\n", s.Processed)
	fmt.Fprintf(p.out, "Cards added: %d\n", s.Cards)
	if s.NoKanji > 0 {
		fmt.Fprintf(p.out, "Without Kanji words: %d\n", s.NoKanji)
	}
	if s.Errors > 0 {
		fmt.Fprintf(p.out, "Errors: %d\n", s.Errors)
	}
	fmt.Fprintf(p.out, "%s\n", strings.Repeat("=", len(title)+8))
}

// ExportAPKG packages the deck as an Anki .apkg. An empty outputPath
// places "<deck name>.apkg" next to the deck file.
func (p *Processor) ExportAPKG(outputPath, deckName string) (string, error) {
	if outputPath == "" {
		outputPath = filepath.Join(filepath.Dir(p.store.Path()),
			fmt.Sprintf("%s.apkg", internal.SanitizeFilename(deckName)))
	}

	n, err := anki.ExportAPKG(p.store, outputPath, deckName)
	if err != nil {
		return "", fmt.Errorf("failed to export deck: %w", err)
	}
	fmt.Fprintf(p.out, "  Exported %d cards\n", n)

	return outputPath, nil
}
