// Package embedding compares candidate and job texts by the cosine similarity
// of their mean-pooled encoder representations.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	// MaxTokens is the token budget each text is truncated to before encoding.
	MaxTokens = 512
	// NeutralScore is reported for unusable comparisons. It is a placeholder,
	// never a signal: callers must check Result.Usable.
	NeutralScore = 0.5
)

// ErrEmptyText is returned when a text has nothing to encode.
var ErrEmptyText = errors.New("empty text")

// Facet names one embedding comparison dimension.
type Facet string

// Facets compared for every match.
const (
	FacetSkills     Facet = "skills"
	FacetExperience Facet = "experience"
	FacetEducation  Facet = "education"
)

// Result is the outcome of one facet comparison.
type Result struct {
	Score  float64 `json:"score" yaml:"score"`
	Usable bool    `json:"usable" yaml:"usable"`
}

// Unusable is the neutral placeholder result.
func Unusable() Result {
	return Result{Score: NeutralScore}
}

// Engine compares texts through a shared Encoder. It holds no per-request state
// and is safe to reuse across requests.
type Engine struct {
	encoder   Encoder
	maxTokens int
	logger    *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMaxTokens overrides the per-text token budget.
func WithMaxTokens(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxTokens = n
		}
	}
}

// NewEngine creates an Engine around encoder.
func NewEngine(encoder Encoder, opts ...Option) *Engine {
	e := &Engine{
		encoder:   encoder,
		maxTokens: MaxTokens,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compare encodes both texts in one batch and returns their cosine similarity.
// Any failure yields Unusable instead of an error.
func (e *Engine) Compare(ctx context.Context, facet Facet, candidateText, jobText string) Result {
	score, err := e.similarity(ctx, candidateText, jobText)
	if err != nil {
		e.logger.Warn("embedding facet unusable",
			zap.String("facet", string(facet)),
			zap.Int("candidate_chars", utf8.RuneCountInString(candidateText)),
			zap.Int("job_chars", utf8.RuneCountInString(jobText)),
			zap.Error(err),
		)
		return Unusable()
	}

	e.logger.Debug("embedding facet compared",
		zap.String("facet", string(facet)),
		zap.Float64("score", score),
	)
	return Result{Score: score, Usable: true}
}

func (e *Engine) similarity(ctx context.Context, candidateText, jobText string) (score float64, err error) {
	if e == nil || e.encoder == nil {
		return 0, errors.New("no encoder configured")
	}
	if strings.TrimSpace(candidateText) == "" {
		return 0, fmt.Errorf("candidate: %w", ErrEmptyText)
	}
	if strings.TrimSpace(jobText) == "" {
		return 0, fmt.Errorf("job: %w", ErrEmptyText)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("encoder panic: %v", r)
		}
	}()

	texts := []string{
		TruncateTokens(candidateText, e.maxTokens),
		TruncateTokens(jobText, e.maxTokens),
	}

	states, err := e.encoder.Encode(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("encode: %w", err)
	}
	if len(states) != len(texts) {
		return 0, fmt.Errorf("encoder returned %d sequences for %d texts", len(states), len(texts))
	}

	candidateVec, err := MeanPool(states[0])
	if err != nil {
		return 0, fmt.Errorf("pool candidate: %w", err)
	}
	jobVec, err := MeanPool(states[1])
	if err != nil {
		return 0, fmt.Errorf("pool job: %w", err)
	}

	return Cosine(candidateVec, jobVec)
}

// TruncateTokens keeps at most max whitespace-separated tokens of text.
// Text within budget is returned unchanged.
func TruncateTokens(text string, max int) string {
	if max <= 0 {
		return text
	}
	fields := strings.Fields(text)
	if len(fields) <= max {
		return text
	}
	return strings.Join(fields[:max], " ")
}

// FacetTexts holds the candidate and job text of every facet.
type FacetTexts struct {
	CandidateSkills, JobSkills         string
	CandidateExperience, JobExperience string
	CandidateEducation, JobEducation   string
}

// FacetResults holds one Result per facet.
type FacetResults struct {
	Skills     Result `json:"skills" yaml:"skills"`
	Experience Result `json:"experience" yaml:"experience"`
	Education  Result `json:"education" yaml:"education"`
}

// AllUsable reports whether every facet produced a usable score.
func (r FacetResults) AllUsable() bool {
	return r.Skills.Usable && r.Experience.Usable && r.Education.Usable
}

// CompareFacets runs the three facet comparisons in order.
func (e *Engine) CompareFacets(ctx context.Context, texts FacetTexts) FacetResults {
	return FacetResults{
		Skills:     e.Compare(ctx, FacetSkills, texts.CandidateSkills, texts.JobSkills),
		Experience: e.Compare(ctx, FacetExperience, texts.CandidateExperience, texts.JobExperience),
		Education:  e.Compare(ctx, FacetEducation, texts.CandidateEducation, texts.JobEducation),
	}
}
