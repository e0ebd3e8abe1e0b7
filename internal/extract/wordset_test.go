package extract

import (
	"reflect"
	"testing"
)

func TestWordSet(t *testing.T) {
	s := NewWordSet()

	if !s.Add("会社") {
		t.Error("First Add should report a new word")
	}
	if s.Add("会社") {
		t.Error("Second Add of the same word should report false")
	}
	s.Add("明日")

	if s.Len() != 2 {
		t.Errorf("Expected 2 words, got %d", s.Len())
	}
	if !s.Contains("明日") || s.Contains("会う") {
		t.Error("Contains reported wrong membership")
	}

	want := []string{"会社", "明日"}
	if got := s.Words(); !reflect.DeepEqual(got, want) {
		t.Errorf("Words() = %v, want %v", got, want)
	}

	// Returned slice is a copy
	words := s.Words()
	words[0] = "changed"
	if s.Words()[0] != "会社" {
		t.Error("WordSet was modified through returned slice")
	}
}
