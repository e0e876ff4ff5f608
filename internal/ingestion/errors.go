package ingestion

import "errors"

var (
	// ErrUnsupportedFormat is returned for files whose type cannot be read.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrEmptyDocument is returned when a document yields no text.
	ErrEmptyDocument = errors.New("document contains no text")
	// ErrUnreadable is returned when a document exists but cannot be decoded.
	ErrUnreadable = errors.New("document could not be read")
)
