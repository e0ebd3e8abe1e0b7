package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ArchiveDeck moves the deck file into an archive directory next to it,
// stamped with the current time. The next run starts a fresh deck.
func ArchiveDeck(deckFile string) (string, error) {
	// Check if deck file exists
	info, err := os.Stat(deckFile)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("deck file does not exist: %s", deckFile)
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat deck file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("deck path is a directory: %s", deckFile)
	}

	// Get parent directory and create archive path
	archiveDir := filepath.Join(filepath.Dir(deckFile), "archive")

	// Create archive directory if it doesn't exist
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	ext := filepath.Ext(deckFile)
	base := strings.TrimSuffix(filepath.Base(deckFile), ext)

	// Generate timestamp
	timestamp := time.Now().Format("20060102-150405")
	archivePath := filepath.Join(archiveDir, fmt.Sprintf("%s-%s%s", base, timestamp, ext))

	// Check if archive already exists (unlikely but possible)
	if _, err := os.Stat(archivePath); err == nil {
		// Add microseconds to make it unique
		timestamp = time.Now().Format("20060102-150405.000000")
		archivePath = filepath.Join(archiveDir, fmt.Sprintf("%s-%s%s", base, timestamp, ext))
	}

	// Rename deck file to archive
	if err := os.Rename(deckFile, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive deck file: %w", err)
	}

	fmt.Printf("Deck archived to: %s\n", archivePath)
	return archivePath, nil
}
