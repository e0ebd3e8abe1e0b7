package tesseract

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
)

func TestNewRecognizer_Languages(t *testing.T) {
	tests := []struct {
		name      string
		languages []string
		want      []string
	}{
		{"default", nil, []string{"jpn"}},
		{"custom", []string{"jpn", "jpn_vert"}, []string{"jpn", "jpn_vert"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecognizer(tt.languages...)
			if !reflect.DeepEqual(r.Languages(), tt.want) {
				t.Errorf("Languages() = %v, want %v", r.Languages(), tt.want)
			}
		})
	}
}

func TestRecognize_MissingFile(t *testing.T) {
	r := NewRecognizer()

	_, err := r.Recognize(context.Background(), filepath.Join(t.TempDir(), "missing.png"))
	if err == nil {
		t.Error("Expected error for missing image")
	}
}
