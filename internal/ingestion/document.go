// Package ingestion reads résumé and job-description documents into cleaned
// plain text.
package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Format is a supported document type.
type Format string

// Supported formats.
const (
	FormatPDF      Format = "pdf"
	FormatHTML     Format = "html"
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
)

var extensions = map[string]Format{
	".pdf":  FormatPDF,
	".html": FormatHTML,
	".htm":  FormatHTML,
	".txt":  FormatText,
	".text": FormatText,
	".md":   FormatMarkdown,
}

// Document is the cleaned text of one file.
type Document struct {
	Path   string
	Format Format
	Text   string
	// Hash is the SHA-256 of Text, hex encoded.
	Hash string
}

// DetectFormat maps a file name to its format by extension.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if format, ok := extensions[ext]; ok {
		return format, nil
	}
	return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, ext, strings.Join(SupportedExtensions(), ", "))
}

// SupportedExtensions lists the accepted file extensions.
func SupportedExtensions() []string {
	return []string{".pdf", ".html", ".htm", ".txt", ".text", ".md"}
}

// Read extracts and cleans the text of the document at path.
func Read(path string) (*Document, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	var raw string
	switch format {
	case FormatPDF:
		raw, err = ExtractPDFText(path)
	case FormatHTML:
		var content []byte
		if content, err = readFile(path); err == nil {
			raw, err = ExtractHTMLText(string(content), ResumeSelectors())
		}
	default:
		var content []byte
		if content, err = readFile(path); err == nil {
			if !utf8.Valid(content) {
				err = fmt.Errorf("%w: not valid UTF-8 text", ErrUnreadable)
			}
			raw = string(content)
		}
	}
	if err != nil {
		return nil, err
	}

	text := CleanText(raw)
	if text == "" {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrEmptyDocument)
	}

	sum := sha256.Sum256([]byte(text))
	return &Document{
		Path:   path,
		Format: format,
		Text:   text,
		Hash:   hex.EncodeToString(sum[:]),
	}, nil
}

// ExtractText returns the cleaned text of the document at path.
func ExtractText(path string) (string, error) {
	doc, err := Read(path)
	if err != nil {
		return "", err
	}
	return doc.Text, nil
}

func readFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return content, nil
}
