package processor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"codeberg.org/snonux/kanjideck/internal/testutil"
)

var errTest = errors.New("analysis failed")

func TestRunInteractive(t *testing.T) {
	f := newFixture(t)
	f.analyzer.Errors["壊れた文。"] = errTest

	input := strings.Join([]string{
		meeting,
		"",
		"壊れた文。",
		"ありがとうございます。",
		"exit",
		"パンを食べた。",
	}, "\n")

	if err := f.proc.RunInteractive(context.Background(), strings.NewReader(input)); err != nil {
		t.Fatalf("RunInteractive() error = %v", err)
	}

	if rows := f.rows(t); len(rows) != 3 {
		t.Errorf("Expected 3 rows, got %d", len(rows))
	}
	for _, call := range f.analyzer.Calls {
		if call == "パンを食べた。" {
			t.Error("Input after exit was processed")
		}
	}
	if !strings.Contains(f.errOut.String(), "An error occurred") {
		t.Error("Per-sentence error was not reported")
	}
	if !strings.Contains(f.out.String(), "Goodbye") {
		t.Error("Missing goodbye message")
	}
	testutil.AssertFileContains(t, f.store.Path(), "Front,Back")
}

func TestRunInteractive_QuitCommands(t *testing.T) {
	for _, cmd := range []string{"q", "Q", "exit", "quit", "  EXIT  "} {
		t.Run(cmd, func(t *testing.T) {
			f := newFixture(t)

			input := cmd + "\n" + meeting + "\n"
			if err := f.proc.RunInteractive(context.Background(), strings.NewReader(input)); err != nil {
				t.Fatalf("RunInteractive() error = %v", err)
			}
			if len(f.analyzer.Calls) != 0 {
				t.Errorf("Expected no processing after %q", cmd)
			}
		})
	}
}

func TestRunInteractive_EOF(t *testing.T) {
	f := newFixture(t)

	if err := f.proc.RunInteractive(context.Background(), strings.NewReader(meeting)); err != nil {
		t.Fatalf("RunInteractive() error = %v", err)
	}
	if rows := f.rows(t); len(rows) != 3 {
		t.Errorf("Expected 3 rows, got %d", len(rows))
	}
}

func TestRunInteractive_Image(t *testing.T) {
	f := newFixture(t)
	joined := "明日会社で お会いしましょう。"
	f.recognizer.Fragments["scan.png"] = []string{"明日会社で", "お会いしましょう。"}
	f.analyzer.Tokens[joined] = testutil.MeetingTokens()

	input := ":img scan.png\n:img\nscan.png\nq\n"
	if err := f.proc.RunInteractive(context.Background(), strings.NewReader(input)); err != nil {
		t.Fatalf("RunInteractive() error = %v", err)
	}

	if len(f.recognizer.Calls) != 2 {
		t.Errorf("Expected 2 recognitions, got %v", f.recognizer.Calls)
	}
	if rows := f.rows(t); len(rows) != 6 {
		t.Errorf("Expected 6 rows, got %d", len(rows))
	}
	if !strings.Contains(f.out.String(), "Image path: ") {
		t.Error("Missing image path prompt")
	}
}

func TestRunInteractive_Cancelled(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := f.proc.RunInteractive(ctx, strings.NewReader(meeting+"\n")); err != nil {
		t.Fatalf("RunInteractive() error = %v", err)
	}
	if len(f.analyzer.Calls) != 0 {
		t.Error("Cancelled loop should not process input")
	}
	testutil.AssertFileExists(t, f.store.Path())
}

func TestIsQuit(t *testing.T) {
	tests := map[string]bool{
		"q":    true,
		"exit": true,
		"QUIT": true,
		"qq":   false,
		":img": false,
	}

	for input, want := range tests {
		if got := isQuit(input); got != want {
			t.Errorf("isQuit(%q) = %v, want %v", input, got, want)
		}
	}
}
