package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ayushk-1801/jobwise/internal/logger"
	"github.com/ayushk-1801/jobwise/internal/matching"
	"github.com/ayushk-1801/jobwise/internal/types"
)

// resumeField is the multipart field holding the résumé file.
const resumeField = "resume_file"

// ApplicationForm is the form of POST /submit_application/.
type ApplicationForm struct {
	JobTitle       string `form:"job_title" validate:"required,max=300"`
	JobDescription string `form:"job_description" validate:"required,max=200000"`
	ApplicationID  string `form:"application_id" validate:"max=128"`
	JobID          string `form:"job_id" validate:"max=128"`
	NYears         *int   `form:"n_years" validate:"omitempty,min=0,max=80"`
	// N is accepted for compatibility and ignored.
	N *int `form:"N"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSubmitApplication scores an uploaded résumé against a job.
func (s *Server) handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	if err := s.parseUpload(w, r); err != nil {
		s.handleError(w, r, err)
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	form, err := s.bindApplicationForm(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	path, cleanup, err := s.saveUpload(r, resumeField)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	defer cleanup()

	s.requestLogger(r).Debug("application received",
		zap.String("application_id", form.ApplicationID),
		zap.String("job_id", form.JobID),
		zap.String("job_title", form.JobTitle),
	)

	result, err := s.matcher.ComputeSimilarity(r.Context(), matching.Request{
		ResumePath:     path,
		JobTitle:       form.JobTitle,
		JobDescription: form.JobDescription,
		MinYears:       types.FromPtr(form.NYears),
	})
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleReviewResume reviews an uploaded résumé.
func (s *Server) handleReviewResume(w http.ResponseWriter, r *http.Request) {
	if err := s.parseUpload(w, r); err != nil {
		s.handleError(w, r, err)
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	path, cleanup, err := s.saveUpload(r, resumeField)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	defer cleanup()

	review, err := s.matcher.Review(r.Context(), path)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, review)
}

// bindApplicationForm reads and validates the application form fields.
func (s *Server) bindApplicationForm(r *http.Request) (*ApplicationForm, error) {
	form := &ApplicationForm{
		JobTitle:       strings.TrimSpace(r.FormValue("job_title")),
		JobDescription: strings.TrimSpace(r.FormValue("job_description")),
		ApplicationID:  strings.TrimSpace(r.FormValue("application_id")),
		JobID:          strings.TrimSpace(r.FormValue("job_id")),
	}

	var err error
	if form.NYears, err = optionalInt(r, "n_years"); err != nil {
		return nil, err
	}
	if form.N, err = optionalInt(r, "N"); err != nil {
		return nil, err
	}

	if err := s.validate.Struct(form); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return nil, &ErrValidation{Field: formFieldName(fe.StructField()), Message: "failed " + fe.Tag()}
		}
		return nil, &ErrValidation{Field: "form", Message: err.Error()}
	}
	return form, nil
}

// optionalInt parses an optional integer form field. Blank values are absent.
func optionalInt(r *http.Request, field string) (*int, error) {
	raw := strings.TrimSpace(r.FormValue(field))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &ErrValidation{Field: field, Message: "must be an integer"}
	}
	return &n, nil
}

func formFieldName(structField string) string {
	switch structField {
	case "JobTitle":
		return "job_title"
	case "JobDescription":
		return "job_description"
	case "ApplicationID":
		return "application_id"
	case "JobID":
		return "job_id"
	case "NYears":
		return "n_years"
	default:
		return structField
	}
}

// handleError logs err and writes it with its mapped status.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	log := s.requestLogger(r)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.Int("status", status), zap.Error(err))
	} else {
		log.Info("request rejected", zap.Int("status", status), zap.Error(err))
	}
	s.errorResponse(w, status, publicMessage(status, err))
}

func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	return logger.WithRequestID(s.logger, logger.RequestIDFromContext(r.Context()))
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("error encoding JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
