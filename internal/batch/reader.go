package batch

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"
)

// SentenceEntry represents a sentence with optional translation
type SentenceEntry struct {
	Sentence    string
	Translation string
	// Line is the 1-based line number in the batch file
	Line int
}

// NeedsTranslation reports whether the translator has to be called
func (e SentenceEntry) NeedsTranslation() bool {
	return e.Translation == ""
}

// ReadBatchFile reads sentences from a file and returns SentenceEntry slice
// Supports formats:
// - Sentence only: "明日会社へ行きます。" (will be translated)
// - With translation: "明日会社へ行きます。 = I will go to the office tomorrow."
// - Comments: "# anything"
func ReadBatchFile(filename string) ([]SentenceEntry, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	return parseEntries(content)
}

func parseEntries(content []byte) ([]SentenceEntry, error) {
	content = bytes.TrimPrefix(content, []byte("\ufeff"))

	var entries []SentenceEntry
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry := SentenceEntry{Sentence: line, Line: lineNo}
		if sentence, translation, found := strings.Cut(line, "="); found {
			entry.Sentence = strings.TrimSpace(sentence)
			entry.Translation = strings.TrimSpace(translation)
		}

		// "= translation" has nothing to extract from
		if entry.Sentence == "" {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan batch file: %w", err)
	}

	return entries, nil
}
