package server

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ayushk-1801/jobwise/internal/ingestion"
)

// multipartMemory is the part of a form kept in memory while parsing.
const multipartMemory = 8 << 20

// parseUpload parses a multipart form limited to the configured upload size.
func (s *Server) parseUpload(w http.ResponseWriter, r *http.Request) error {
	limit := s.maxUpload
	if r.ContentLength > limit {
		return &ErrPayloadTooLarge{Limit: limit}
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(min(limit, multipartMemory)); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return &ErrPayloadTooLarge{Limit: limit}
		}
		return &ErrValidation{Field: "form", Message: "expected multipart/form-data: " + err.Error()}
	}
	return nil
}

// saveUpload writes the résumé file to a temporary file in the upload
// directory, keeping the original extension so its format can be detected.
// The caller must call the returned cleanup function.
func (s *Server) saveUpload(r *http.Request, field string) (string, func(), error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", nil, &ErrValidation{Field: field, Message: "file is required"}
	}
	defer file.Close() //nolint:errcheck

	name := filepath.Base(header.Filename)
	if _, err := ingestion.DetectFormat(name); err != nil {
		return "", nil, err
	}

	path, err := writeTemp(s.cfg.UploadDir, strings.ToLower(filepath.Ext(name)), file)
	if err != nil {
		return "", nil, err
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("failed to remove upload", zap.String("path", path), zap.Error(err))
		}
	}
	return path, cleanup, nil
}

func writeTemp(dir, ext string, src multipart.File) (string, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return "", fmt.Errorf("failed to create upload dir: %w", err)
		}
	}

	dst, err := os.CreateTemp(dir, "resume-*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return dst.Name(), nil
}
