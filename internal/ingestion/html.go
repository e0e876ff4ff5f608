package ingestion

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var htmlTag = regexp.MustCompile(`(?i)<(html|body|div|p|ul|li|br|h[1-6]|section|article|span)[\s>/]`)

// noiseSelector lists page chrome removed before text extraction.
const noiseSelector = "nav, footer, header, script, style, noscript, form, .cookie-banner, .ad, .ads, .sidebar, .apply-button"

// JobPostingSelectors are tried in order to find the body of a job posting.
func JobPostingSelectors() []string {
	return []string{
		".job-description",
		"#job-description",
		"[data-testid='job-description']",
		".posting-content",
		".job-details",
		"main",
		"article",
	}
}

// ResumeSelectors are tried in order to find the body of an HTML résumé.
func ResumeSelectors() []string {
	return []string{
		".resume",
		"#resume",
		"main",
		"article",
	}
}

// ExtractHTMLText returns the visible text of the first element matching one
// of selectors, or of the whole body when none match. Block elements end
// lines so paragraph structure survives.
func ExtractHTMLText(html string, selectors []string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(noiseSelector).Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, li, div, h1, h2, h3, h4, h5, h6, tr, section").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	var content *goquery.Selection
	for _, selector := range selectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			content = selection.First()
			break
		}
	}
	if content == nil {
		content = doc.Find("body")
	}

	return CleanText(content.Text()), nil
}

// LooksLikeHTML reports whether text appears to be HTML markup.
func LooksLikeHTML(text string) bool {
	return htmlTag.MatchString(text)
}

// JobDescriptionText returns plain text for a job description that may have
// been pasted as HTML. Text without markup is returned unchanged.
func JobDescriptionText(text string) string {
	if !LooksLikeHTML(text) {
		return text
	}
	extracted, err := ExtractHTMLText(text, JobPostingSelectors())
	if err != nil || extracted == "" {
		return text
	}
	return extracted
}
