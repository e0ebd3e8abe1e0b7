package anki

import (
	"archive/zip"
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewAPKGGenerator(t *testing.T) {
	gen := NewAPKGGenerator("Test Deck")

	if gen == nil {
		t.Fatal("NewAPKGGenerator returned nil")
	}
	if gen.deckName != "Test Deck" {
		t.Errorf("Expected deck name 'Test Deck', got '%s'", gen.deckName)
	}
	if gen.Len() != 0 {
		t.Errorf("Expected no rows, got %d", gen.Len())
	}
	if gen.modelID == gen.deckID {
		t.Error("Model and deck IDs must differ")
	}
}

func TestFieldChecksum(t *testing.T) {
	if fieldChecksum("会社") != fieldChecksum("<b>会社</b>") {
		t.Error("Checksum should ignore HTML tags")
	}
	if fieldChecksum("会社") == fieldChecksum("明日") {
		t.Error("Different fields should have different checksums")
	}
	if fieldChecksum("会社") <= 0 {
		t.Error("Checksum should be positive")
	}
}

func extractCollection(t *testing.T, apkgPath string) string {
	t.Helper()

	reader, err := zip.OpenReader(apkgPath)
	if err != nil {
		t.Fatalf("Failed to open apkg: %v", err)
	}
	defer reader.Close()

	names := map[string]bool{}
	var dbPath string
	for _, f := range reader.File {
		names[f.Name] = true
		if f.Name != "collection.anki2" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("Failed to open collection: %v", err)
		}
		dbPath = filepath.Join(t.TempDir(), "collection.anki2")
		out, err := os.Create(dbPath)
		if err != nil {
			t.Fatal(err)
		}
		io.Copy(out, rc)
		out.Close()
		rc.Close()
	}

	if !names["media"] {
		t.Error("Package is missing media mapping")
	}
	if dbPath == "" {
		t.Fatal("Package is missing collection.anki2")
	}
	return dbPath
}

func TestExportAPKG(t *testing.T) {
	store := newTestStore(t)
	store.Append("明日", "明日会社でお会いしましょう。", "Let's meet at the office tomorrow.")
	store.Append("会社", "明日会社でお会いしましょう。", "Let's meet at the office tomorrow.")
	store.Append("会う", "明日会社でお会いしましょう。", "Let's meet at the office tomorrow.")

	outputPath := filepath.Join(t.TempDir(), "deck.apkg")
	n, err := ExportAPKG(store, outputPath, "Kanji")
	if err != nil {
		t.Fatalf("ExportAPKG() error = %v", err)
	}
	if n != 3 {
		t.Errorf("Expected 3 notes, got %d", n)
	}

	db, err := sql.Open("sqlite3", extractCollection(t, outputPath))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var notes, cards int
	db.QueryRow("SELECT COUNT(*) FROM notes").Scan(&notes)
	db.QueryRow("SELECT COUNT(*) FROM cards").Scan(&cards)
	if notes != 3 || cards != 3 {
		t.Errorf("Expected 3 notes and 3 cards, got %d and %d", notes, cards)
	}

	var flds, sfld string
	if err := db.QueryRow("SELECT flds, sfld FROM notes WHERE sfld = ?", "会社").Scan(&flds, &sfld); err != nil {
		t.Fatalf("Failed to read note: %v", err)
	}
	parts := strings.Split(flds, "\x1f")
	if len(parts) != 2 {
		t.Fatalf("Expected 2 fields, got %d", len(parts))
	}
	if !strings.HasPrefix(parts[1], "明日<b>会社</b>でお会いしましょう。<br") {
		t.Errorf("Unexpected back field %q", parts[1])
	}

	var csum int64
	var flags int
	if err := db.QueryRow("SELECT csum, flags FROM notes WHERE sfld = ?", "会社").Scan(&csum, &flags); err != nil {
		t.Fatalf("Failed to read note checksum: %v", err)
	}
	if csum != fieldChecksum("会社") || flags != 0 {
		t.Errorf("Unexpected csum %d / flags %d", csum, flags)
	}

	rows, err := db.Query(`SELECT c.due, c.type, c.queue, n.sfld FROM cards c
		JOIN notes n ON n.id = c.nid ORDER BY c.due`)
	if err != nil {
		t.Fatalf("Failed to read cards: %v", err)
	}
	defer rows.Close()

	wantFronts := []string{"明日", "会社", "会う"}
	i := 0
	for rows.Next() {
		var due, typ, queue int
		var front string
		if err := rows.Scan(&due, &typ, &queue, &front); err != nil {
			t.Fatal(err)
		}
		if i < len(wantFronts) && (due != i+1 || front != wantFronts[i] || typ != 0 || queue != 0) {
			t.Errorf("Card %d = due %d type %d queue %d front %q", i, due, typ, queue, front)
		}
		i++
	}
	if i != len(wantFronts) {
		t.Errorf("Expected %d cards joined to notes, got %d", len(wantFronts), i)
	}

	var decks string
	db.QueryRow("SELECT decks FROM col").Scan(&decks)
	if !strings.Contains(decks, `"Kanji"`) {
		t.Errorf("Deck name missing from collection: %s", decks)
	}
}

func TestFieldPolicy(t *testing.T) {
	got := fieldPolicy.Sanitize(`<b>会社</b><script>alert(1)</script><img src="x">`)
	if got != "<b>会社</b>" {
		t.Errorf("Sanitize() = %q", got)
	}
}

func TestExportAPKG_EmptyDeck(t *testing.T) {
	store := newTestStore(t)
	store.EnsureInitialized()

	_, err := ExportAPKG(store, filepath.Join(t.TempDir(), "deck.apkg"), "Kanji")
	if err == nil || !strings.Contains(err.Error(), "no cards") {
		t.Errorf("Expected no cards error, got %v", err)
	}
}
