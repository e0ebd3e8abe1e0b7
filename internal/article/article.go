package article

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
	"golang.org/x/text/unicode/norm"

	"codeberg.org/snonux/kanjideck/internal/extract"
)

// MaxBodySize caps the HTML read from a single page
const MaxBodySize = 10 * 1024 * 1024

// Article is the extracted text of a page
type Article struct {
	Title     string
	URL       string
	Sentences []string
}

// Fetcher downloads and extracts articles
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher creates a fetcher with the given request timeout
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: "Mozilla/5.0 (X11; Linux x86_64) kanjideck",
	}
}

// Fetch downloads rawURL and returns its Kanji sentences
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Article, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("invalid article URL %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "ja,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch URL: status code %d", resp.StatusCode)
	}
	if resp.ContentLength > MaxBodySize {
		return nil, fmt.Errorf("content length %d exceeds limit of %d bytes", resp.ContentLength, MaxBodySize)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(body) > MaxBodySize {
		return nil, fmt.Errorf("response body exceeded limit of %d bytes", MaxBodySize)
	}

	return Parse(body, parsedURL)
}

// Parse extracts the article text from an HTML document
func Parse(html []byte, pageURL *url.URL) (*Article, error) {
	parsed, err := readability.FromReader(bytes.NewReader(SanitizeRuby(html)), pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to extract article: %w", err)
	}

	art := &Article{Title: strings.TrimSpace(parsed.Title)}
	if pageURL != nil {
		art.URL = pageURL.String()
	}
	art.Sentences = KanjiSentences(SplitSentences(norm.NFKC.String(parsed.TextContent)))

	return art, nil
}

var (
	reRT = regexp.MustCompile(`(?si)<rt\b[^>]*>.*?</rt>`)
	reRP = regexp.MustCompile(`(?si)<rp\b[^>]*>.*?</rp>`)
)

// SanitizeRuby removes furigana readings so they do not end up inside
// sentences
func SanitizeRuby(html []byte) []byte {
	html = reRT.ReplaceAll(html, nil)
	return reRP.ReplaceAll(html, nil)
}

// SplitSentences splits text on 。！？ and newlines. Delimiters stay with
// their sentence; blank pieces are dropped.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	for _, r := range text {
		if r == '\n' {
			flush()
			continue
		}
		current.WriteRune(r)
		if r == '。' || r == '！' || r == '？' {
			flush()
		}
	}
	flush()

	return sentences
}

// KanjiSentences keeps the sentences that contain at least one Kanji
func KanjiSentences(sentences []string) []string {
	var kept []string
	for _, s := range sentences {
		if extract.ContainsKanji(s) {
			kept = append(kept, s)
		}
	}
	return kept
}
