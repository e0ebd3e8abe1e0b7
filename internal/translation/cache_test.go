package translation

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestTranslationCache(t *testing.T) {
	cache := NewTranslationCache()

	// Test empty cache
	_, found := cache.Get("私は学生です。")
	if found {
		t.Error("Expected not found in empty cache")
	}

	cache.Add("私は学生です。", "I am a student.")
	cache.Add("猫がいる。", "There is a cat.")

	translation, found := cache.Get("私は学生です。")
	if !found {
		t.Error("Expected to find sentence in cache")
	}
	if translation != "I am a student." {
		t.Errorf("Expected 'I am a student.', got '%s'", translation)
	}

	// Test overwriting
	cache.Add("私は学生です。", "I'm a student.")
	translation, _ = cache.Get("私は学生です。")
	if translation != "I'm a student." {
		t.Errorf("Expected overwritten translation, got '%s'", translation)
	}

	if cache.Len() != 2 {
		t.Errorf("Expected 2 entries, got %d", cache.Len())
	}
}

func TestCachedTranslator(t *testing.T) {
	stub := &stubTranslator{result: "I am a student."}
	cache := NewTranslationCache()
	ct := NewCachedTranslator(NewBreakerTranslator(stub, 3, time.Minute), cache)

	for i := 0; i < 3; i++ {
		got, err := ct.Translate(context.Background(), "私は学生です。")
		if err != nil {
			t.Fatalf("Translate() error = %v", err)
		}
		if got != "I am a student." {
			t.Errorf("Translate() = %q", got)
		}
	}

	if stub.calls != 1 {
		t.Errorf("Expected 1 backend call, got %d", stub.calls)
	}
	if cache.Len() != 1 {
		t.Errorf("Expected 1 cached entry, got %d", cache.Len())
	}
	if ct.Name() != "stub" {
		t.Errorf("Name() = %q, want 'stub'", ct.Name())
	}
}

func TestCachedTranslator_ErrorsAreNotCached(t *testing.T) {
	stub := &stubTranslator{err: errors.New("timeout")}
	cache := NewTranslationCache()
	ct := NewCachedTranslator(stub, cache)

	if _, err := ct.Translate(context.Background(), "明日"); err == nil {
		t.Fatal("Expected error")
	}
	if cache.Len() != 0 {
		t.Error("Failed translations must not be cached")
	}

	stub.err = nil
	stub.result = "tomorrow"
	got, err := ct.Translate(context.Background(), "明日")
	if err != nil || got != "tomorrow" {
		t.Errorf("Translate() = %q, %v", got, err)
	}
}
