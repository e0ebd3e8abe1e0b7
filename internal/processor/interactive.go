package processor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

const imageCommand = ":img"

// RunInteractive reads sentences from in until a quit command, EOF or
// cancellation of ctx. Per-sentence failures are printed and the loop
// continues.
func (p *Processor) RunInteractive(ctx context.Context, in io.Reader) error {
	if err := p.InitDeck(); err != nil {
		return err
	}

	fmt.Fprintf(p.out, "--- Kanji Card Builder ---\n")
	fmt.Fprintf(p.out, "Cards will be saved to: %s\n", p.store.Path())
	fmt.Fprintf(p.out, "Enter a Japanese sentence. (Type 'q' or 'exit' to quit")
	if p.recognizer != nil {
		fmt.Fprintf(p.out, ", '%s <path>' to read an image", imageCommand)
	}
	fmt.Fprintf(p.out, ")\n")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := readLines(ctx, in)
	for {
		line, ok := p.prompt(ctx, lines, "\nSentence: ")
		if !ok {
			break
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		if isQuit(input) {
			break
		}

		var err error
		if input == imageCommand || strings.HasPrefix(input, imageCommand+" ") {
			path := strings.TrimSpace(strings.TrimPrefix(input, imageCommand))
			if path == "" {
				if path, ok = p.prompt(ctx, lines, "Image path: "); !ok {
					break
				}
				path = strings.TrimSpace(path)
			}
			_, err = p.ProcessImage(ctx, path)
		} else {
			_, err = p.ProcessSentence(ctx, input, "")
		}

		if err != nil {
			fmt.Fprintf(p.errOut, "\nAn error occurred: %v\n", err)
			fmt.Fprintf(p.errOut, "Please try again.\n")
		}
	}

	fmt.Fprintf(p.out, "\nExiting program. Goodbye!\n")
	return nil
}

// prompt prints label and waits for the next line. It returns false on EOF
// or when ctx is done.
func (p *Processor) prompt(ctx context.Context, lines <-chan string, label string) (string, bool) {
	if ctx.Err() != nil {
		return "", false
	}
	fmt.Fprint(p.out, label)

	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-lines:
		return line, ok
	}
}

// readLines feeds the lines of in to a channel until ctx is done. A
// goroutine blocked on a terminal read stays there until the process exits.
func readLines(ctx context.Context, in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

func isQuit(input string) bool {
	switch strings.ToLower(input) {
	case "q", "exit", "quit":
		return true
	}
	return false
}
