package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayushk-1801/jobwise/internal/ingestion"
)

func TestJobPosting_HTML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><body>
			<nav>Jobs Home</nav>
			<div class="job-description"><h2>Data Engineer</h2><p>Build pipelines in Go.</p></div>
			<footer>Privacy</footer>
		</body></html>`))
	}))
	defer server.Close()

	posting, err := JobPosting(context.Background(), server.URL+"/jobs/1", nil)
	require.NoError(t, err)

	assert.Equal(t, PlatformUnknown, posting.Platform)
	assert.Contains(t, posting.Text, "Data Engineer")
	assert.Contains(t, posting.Text, "Build pipelines in Go.")
	assert.NotContains(t, posting.Text, "Jobs Home")
	assert.NotContains(t, posting.Text, "Privacy")
}

func TestJobPosting_PlainText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("Go   developer\n\n\n\nRemote"))
	}))
	defer server.Close()

	posting, err := JobPosting(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, "Go developer\n\nRemote", posting.Text)
}

func TestJobPosting_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		opts    *Options
		want    string
	}{
		{
			name: "not found",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			want: "HTTP status 404",
		},
		{
			name: "binary content",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/pdf")
				_, _ = w.Write([]byte("%PDF"))
			},
			want: "unsupported content type",
		},
		{
			name: "too large",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "text/plain")
				_, _ = w.Write([]byte(strings.Repeat("x", 64)))
			},
			opts: &Options{MaxBytes: 16},
			want: "exceeds 16 bytes",
		},
		{
			name: "empty page",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				_, _ = w.Write([]byte("<html><body><script>x()</script></body></html>"))
			},
			want: "page has no text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := JobPosting(context.Background(), server.URL, tt.opts)
			require.Error(t, err)

			var fetchErr *Error
			assert.ErrorAs(t, err, &fetchErr)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestJobPosting_EmptyPageWrapsSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body></body></html>"))
	}))
	defer server.Close()

	_, err := JobPosting(context.Background(), server.URL, nil)
	assert.True(t, errors.Is(err, ingestion.ErrEmptyDocument))
}

func TestJobPosting_InvalidURL(t *testing.T) {
	for _, raw := range []string{"not-a-valid-url", "ftp://example.com/job", "http://"} {
		_, err := JobPosting(context.Background(), raw, nil)
		require.Error(t, err, raw)
		assert.Contains(t, err.Error(), "invalid URL")
	}
}

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url  string
		want Platform
	}{
		{"https://boards.greenhouse.io/acme/jobs/123", PlatformGreenhouse},
		{"https://jobs.lever.co/acme/abc", PlatformLever},
		{"https://acme.wd5.myworkdayjobs.com/en-US/careers/job/1", PlatformWorkday},
		{"https://jobs.ashbyhq.com/acme/1", PlatformAshby},
		{"https://notgreenhouse.io.example.com/job", PlatformUnknown},
		{"https://example.com/careers", PlatformUnknown},
		{"::bad", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectPlatform(tt.url))
		})
	}
}

func TestPlatformSelectors(t *testing.T) {
	assert.NotEmpty(t, PlatformGreenhouse.Selectors())
	assert.Nil(t, PlatformUnknown.Selectors())
}
