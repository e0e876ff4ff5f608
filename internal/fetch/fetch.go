// Package fetch downloads job postings and reduces them to plain text.
package fetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ayushk-1801/jobwise/internal/ingestion"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; jobwise/1.0)"

// DefaultMaxBytes caps the size of a downloaded page.
const DefaultMaxBytes = 5 << 20

// Posting is a fetched job posting.
type Posting struct {
	URL         string
	Platform    Platform
	ContentType string
	// Text is the cleaned posting text.
	Text string
}

// Error represents an error during URL fetching.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	MaxBytes  int64
	Client    *http.Client
}

// DefaultOptions returns the defaults used for nil Options.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		MaxBytes:  DefaultMaxBytes,
	}
}

// JobPosting downloads the page at rawURL and extracts the posting text.
// HTML pages are reduced to their main content; plain-text responses are
// cleaned as they are.
func JobPosting(ctx context.Context, rawURL string, opts *Options) (*Posting, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, &Error{URL: rawURL, Message: "invalid URL", Cause: err}
	}

	body, contentType, err := get(ctx, rawURL, opts)
	if err != nil {
		return nil, err
	}

	platform := DetectPlatform(rawURL)
	mediaType, _, _ := mime.ParseMediaType(contentType)

	var text string
	if mediaType == "text/plain" {
		text = ingestion.CleanText(body)
	} else {
		selectors := append(platform.Selectors(), ingestion.JobPostingSelectors()...)
		if text, err = ingestion.ExtractHTMLText(body, selectors); err != nil {
			return nil, &Error{URL: rawURL, Message: "failed to extract text", Cause: err}
		}
	}
	if text == "" {
		return nil, &Error{URL: rawURL, Message: "page has no text", Cause: ingestion.ErrEmptyDocument}
	}

	return &Posting{
		URL:         rawURL,
		Platform:    platform,
		ContentType: contentType,
		Text:        text,
	}, nil
}

func get(ctx context.Context, rawURL string, opts *Options) (string, string, error) {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", "", &Error{URL: rawURL, Message: "failed to create request", Cause: err}
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html, text/plain;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		return "", "", &Error{URL: rawURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", "", &Error{URL: rawURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	content, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return "", "", &Error{URL: rawURL, Message: "failed to read response body", Cause: err}
	}
	if int64(len(content)) > maxBytes {
		return "", "", &Error{URL: rawURL, Message: fmt.Sprintf("page exceeds %d bytes", maxBytes)}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "text/") && !strings.Contains(contentType, "html") {
		return "", "", &Error{URL: rawURL, Message: "unsupported content type " + contentType}
	}
	return string(content), contentType, nil
}
