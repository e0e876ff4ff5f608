// Package matching runs the résumé-to-job pipeline: text extraction, LLM
// extraction, normalization, embedding facets, tenure and score fusion.
package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ayushk-1801/jobwise/internal/embedding"
	"github.com/ayushk-1801/jobwise/internal/extraction"
	"github.com/ayushk-1801/jobwise/internal/fusion"
	"github.com/ayushk-1801/jobwise/internal/ingestion"
	"github.com/ayushk-1801/jobwise/internal/logger"
	"github.com/ayushk-1801/jobwise/internal/normalize"
	"github.com/ayushk-1801/jobwise/internal/tenure"
	"github.com/ayushk-1801/jobwise/internal/types"
)

// ErrInvalidRequest is returned for requests missing required input.
var ErrInvalidRequest = errors.New("invalid match request")

// FacetComparer computes the embedding facet scores.
type FacetComparer interface {
	CompareFacets(ctx context.Context, texts embedding.FacetTexts) embedding.FacetResults
}

// Request is one matching request.
type Request struct {
	ResumePath     string
	JobTitle       string
	JobDescription string
	// MinYears is the required experience supplied by the caller.
	MinYears types.Optional[int]
}

// Match is a fused result with the signals that produced it.
type Match struct {
	RequestID     string
	Result        types.FinalResult
	LLMSimilarity float64
	Diagnostics   fusion.Diagnostics
	Facets        embedding.FacetResults
}

// Service is created once at startup and shared by all requests. It keeps no
// per-request state.
type Service struct {
	extractor            extraction.Extractor
	facets               FacetComparer
	clock                tenure.Clock
	logger               *zap.Logger
	useExtractedMinYears bool
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock used as "today" for open-ended jobs.
func WithClock(clock tenure.Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithExtractedMinYears makes requests without MinYears fall back to the
// minimum years found in the job description.
func WithExtractedMinYears(enabled bool) Option {
	return func(s *Service) {
		s.useExtractedMinYears = enabled
	}
}

// New creates a Service.
func New(extractor extraction.Extractor, facets FacetComparer, opts ...Option) *Service {
	s := &Service{
		extractor: extractor,
		facets:    facets,
		clock:     time.Now,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ComputeSimilarity reads the résumé at req.ResumePath and scores it against
// the job.
func (s *Service) ComputeSimilarity(ctx context.Context, req Request) (*types.FinalResult, error) {
	match, err := s.ComputeMatch(ctx, req)
	if err != nil {
		return nil, err
	}
	return &match.Result, nil
}

// ComputeMatch is ComputeSimilarity with diagnostics.
func (s *Service) ComputeMatch(ctx context.Context, req Request) (*Match, error) {
	if strings.TrimSpace(req.ResumePath) == "" {
		return nil, fmt.Errorf("%w: resume path is required", ErrInvalidRequest)
	}

	resumeText, err := ingestion.ExtractText(req.ResumePath)
	if err != nil {
		return nil, fmt.Errorf("extract resume text: %w", err)
	}
	return s.ComputeMatchText(ctx, resumeText, req)
}

// ComputeSimilarityText scores already extracted résumé text. req.ResumePath
// is ignored.
func (s *Service) ComputeSimilarityText(ctx context.Context, resumeText string, req Request) (*types.FinalResult, error) {
	match, err := s.ComputeMatchText(ctx, resumeText, req)
	if err != nil {
		return nil, err
	}
	return &match.Result, nil
}

// ComputeMatchText is ComputeSimilarityText with diagnostics.
func (s *Service) ComputeMatchText(ctx context.Context, resumeText string, req Request) (*Match, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, fmt.Errorf("%w: resume text is empty", ErrInvalidRequest)
	}
	if strings.TrimSpace(req.JobTitle) == "" {
		return nil, fmt.Errorf("%w: job title is required", ErrInvalidRequest)
	}
	if strings.TrimSpace(req.JobDescription) == "" {
		return nil, fmt.Errorf("%w: job description is required", ErrInvalidRequest)
	}

	requestID := requestIDFrom(ctx)
	log := logger.WithRequestID(s.logger, requestID)
	start := time.Now()

	jobText := ingestion.JobDescriptionText(req.JobDescription)

	judgment, err := s.extractor.JudgeSimilarity(ctx, resumeText, jobText)
	if err != nil {
		return nil, fmt.Errorf("judge similarity: %w", err)
	}
	candidateProfile, err := s.extractor.ExtractCandidate(ctx, req.JobTitle, resumeText)
	if err != nil {
		return nil, fmt.Errorf("extract candidate: %w", err)
	}
	jobProfile, err := s.extractor.ExtractJob(ctx, req.JobTitle, jobText)
	if err != nil {
		return nil, fmt.Errorf("extract job: %w", err)
	}

	candidate, job := normalize.Normalize(candidateProfile, jobProfile)

	required := req.MinYears
	if !required.IsPresent() && s.useExtractedMinYears {
		required = job.MinYears
	}

	facets := s.facets.CompareFacets(ctx, embedding.FacetTexts{
		CandidateSkills:     candidate.SkillsText(),
		JobSkills:           job.SkillsText(),
		CandidateExperience: candidate.ExperienceText(),
		JobExperience:       jobText,
		CandidateEducation:  candidate.EducationText(),
		JobEducation:        job.EducationText(),
	})

	years := tenure.EstimateYears(candidate.Jobs, s.clock())

	out := fusion.Fuse(fusion.Input{
		LLM:           *judgment,
		Facets:        facets,
		TenureYears:   years,
		RequiredYears: required,
		SkillsText:    candidate.SkillsText(),
	})

	log.Info("match computed",
		zap.Float64("similarity", out.Result.Similarity),
		zap.String("mode", string(out.Diagnostics.Mode)),
		zap.Float64("llm_similarity", judgment.Similarity),
		zap.Int("tenure_years", years),
		zap.Bool("required_years", required.IsPresent()),
		zap.Duration("duration", time.Since(start)),
	)

	return &Match{
		RequestID:     requestID,
		Result:        out.Result,
		LLMSimilarity: judgment.Similarity,
		Diagnostics:   out.Diagnostics,
		Facets:        facets,
	}, nil
}

// Review reads the résumé at resumePath and returns the model's review.
func (s *Service) Review(ctx context.Context, resumePath string) (*types.ResumeReview, error) {
	if strings.TrimSpace(resumePath) == "" {
		return nil, fmt.Errorf("%w: resume path is required", ErrInvalidRequest)
	}

	resumeText, err := ingestion.ExtractText(resumePath)
	if err != nil {
		return nil, fmt.Errorf("extract resume text: %w", err)
	}
	return s.ReviewText(ctx, resumeText)
}

// ReviewText reviews already extracted résumé text.
func (s *Service) ReviewText(ctx context.Context, resumeText string) (*types.ResumeReview, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, fmt.Errorf("%w: resume text is empty", ErrInvalidRequest)
	}

	log := logger.WithRequestID(s.logger, requestIDFrom(ctx))
	review, err := s.extractor.ReviewResume(ctx, resumeText)
	if err != nil {
		return nil, fmt.Errorf("review resume: %w", err)
	}
	log.Info("resume reviewed", zap.Int("review_chars", len(review.Review)))
	return review, nil
}

// requestIDFrom reuses the caller's request id when ctx carries one.
func requestIDFrom(ctx context.Context) string {
	if id := logger.RequestIDFromContext(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
