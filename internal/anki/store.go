package anki

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

const utf8BOM = "\ufeff"

// Store is the append-only CSV deck. The file is opened and closed on every
// call, so there is never a handle held between sentences. Single writer
// only; there is no locking.
type Store struct {
	path string
}

// NewStore creates a store backed by the CSV file at path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the deck file path
func (s *Store) Path() string {
	return s.path
}

// EnsureInitialized creates the deck with its header if the file does not
// exist yet and reports whether it did. An existing file is left alone
// whatever it contains.
func (s *Store) EnsureInitialized() (bool, error) {
	if _, err := os.Stat(s.path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat deck file: %w", err)
	}

	file, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create deck file: %w", err)
	}
	defer file.Close()

	if _, err := io.WriteString(file, utf8BOM); err != nil {
		return false, fmt.Errorf("failed to write byte order mark: %w", err)
	}
	if err := writeRecords(file, []string{FrontHeader, BackHeader}); err != nil {
		return false, fmt.Errorf("failed to write headers: %w", err)
	}

	return true, file.Close()
}

// Append adds the card for lemma to the end of the deck. Identical rows are
// appended again; nothing is ever rewritten.
func (s *Store) Append(lemma, sentence, translation string) error {
	return s.AppendRow(NewRow(lemma, sentence, translation))
}

// AppendRow adds a prepared row to the end of the deck
func (s *Store) AppendRow(row Row) error {
	if _, err := s.EnsureInitialized(); err != nil {
		return err
	}

	file, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open deck file: %w", err)
	}
	defer file.Close()

	if err := writeRecords(file, []string{row.Front, row.Back}); err != nil {
		return fmt.Errorf("failed to write card: %w", err)
	}

	return file.Close()
}

// Rows reads the deck back, skipping the header line
func (s *Store) Rows() ([]Row, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck file: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte(utf8BOM))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse deck file: %w", err)
	}

	var rows []Row
	for i, record := range records {
		if i == 0 && len(record) >= 2 && record[0] == FrontHeader && record[1] == BackHeader {
			continue
		}
		row := Row{Front: record[0]}
		if len(record) > 1 {
			row.Back = record[1]
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func writeRecords(w io.Writer, records ...[]string) error {
	writer := csv.NewWriter(w)
	writer.UseCRLF = true
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
