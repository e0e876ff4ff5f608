package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postingHTML = `<!DOCTYPE html>
<html><body>
<nav>Jobs Home About</nav>
<header>Acme Careers</header>
<div class="job-description">
<h1>Backend Engineer</h1>
<p>Build   payment APIs in Go.</p>
<ul><li>3+ years Go</li><li>PostgreSQL</li></ul>
<script>track()</script>
</div>
<footer>© Acme</footer>
</body></html>`

func TestExtractHTMLText_JobPosting(t *testing.T) {
	text, err := ExtractHTMLText(postingHTML, JobPostingSelectors())
	require.NoError(t, err)

	assert.Contains(t, text, "Backend Engineer\n")
	assert.Contains(t, text, "Build payment APIs in Go.\n")
	assert.Contains(t, text, "3+ years Go\nPostgreSQL")
	assert.NotContains(t, text, "Jobs Home")
	assert.NotContains(t, text, "track()")
	assert.NotContains(t, text, "© Acme")
}

func TestExtractHTMLText_FallsBackToBody(t *testing.T) {
	text, err := ExtractHTMLText(`<html><body><p>Jane Doe</p><p>Go, SQL</p></body></html>`, ResumeSelectors())
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nGo, SQL", text)
}

func TestLooksLikeHTML(t *testing.T) {
	assert.True(t, LooksLikeHTML("<p>Hello</p>"))
	assert.True(t, LooksLikeHTML("<DIV class='x'>Hello</DIV>"))
	assert.False(t, LooksLikeHTML("Requires 5 years of C++ <and> Python"))
	assert.False(t, LooksLikeHTML("plain text"))
}

func TestJobDescriptionText(t *testing.T) {
	plain := "We need  a Go engineer.\n\n\nRemote."
	assert.Equal(t, plain, JobDescriptionText(plain), "plain text passes through untouched")

	extracted := JobDescriptionText(postingHTML)
	assert.Contains(t, extracted, "Build payment APIs in Go.")
	assert.NotContains(t, extracted, "<p>")
}
