// Package extraction turns résumé and job-description text into typed records
// through the language model: candidate and job profiles, the holistic match
// judgment, and résumé reviews.
package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/ayushk-1801/jobwise/internal/llm"
	"github.com/ayushk-1801/jobwise/internal/schemas"
	"github.com/ayushk-1801/jobwise/internal/types"
)

// Extractor is the structured-extraction service the matcher depends on.
type Extractor interface {
	ExtractCandidate(ctx context.Context, jobTitle, resumeText string) (*types.CandidateProfile, error)
	ExtractJob(ctx context.Context, jobTitle, jobDescription string) (*types.JobProfile, error)
	JudgeSimilarity(ctx context.Context, resumeText, jobDescription string) (*types.HolisticJudgment, error)
	ReviewResume(ctx context.Context, resumeText string) (*types.ResumeReview, error)
}

// LLMExtractor implements Extractor on an llm.Client.
type LLMExtractor struct {
	client llm.Client
	logger *zap.Logger
}

// Option configures an LLMExtractor.
type Option func(*LLMExtractor)

// WithLogger sets the extractor logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *LLMExtractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an extractor backed by client.
func New(client llm.Client, opts ...Option) *LLMExtractor {
	e := &LLMExtractor{client: client, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractCandidate extracts the candidate profile from résumé text.
func (e *LLMExtractor) ExtractCandidate(ctx context.Context, jobTitle, resumeText string) (*types.CandidateProfile, error) {
	prompt := llm.BuildExtractionPrompt(
		candidateSchema(jobTitle),
		llm.PromptInput{Label: "Résumé", Text: resumeText},
	)

	raw, err := e.generate(ctx, prompt, llm.TierStandard, schemas.CandidateProfile)
	if err != nil {
		return nil, err
	}

	var profile types.CandidateProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, &ParseError{Message: "failed to decode candidate profile", Cause: err}
	}

	e.postProcessCandidate(&profile)
	return &profile, nil
}

// ExtractJob extracts the job requirements from the job description.
func (e *LLMExtractor) ExtractJob(ctx context.Context, jobTitle, jobDescription string) (*types.JobProfile, error) {
	prompt := llm.BuildExtractionPrompt(
		jobSchema(jobTitle),
		llm.PromptInput{Label: "Job description", Text: jobDescription},
	)

	raw, err := e.generate(ctx, prompt, llm.TierStandard, schemas.JobProfile)
	if err != nil {
		return nil, err
	}

	var profile types.JobProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, &ParseError{Message: "failed to decode job profile", Cause: err}
	}

	profile.Skills = CleanSkills(profile.Skills)
	return &profile, nil
}

// JudgeSimilarity asks the model for a direct reading of résumé against job.
func (e *LLMExtractor) JudgeSimilarity(ctx context.Context, resumeText, jobDescription string) (*types.HolisticJudgment, error) {
	prompt := llm.BuildExtractionPrompt(
		judgmentSchema(),
		llm.PromptInput{Label: "Résumé", Text: resumeText},
		llm.PromptInput{Label: "Job description", Text: jobDescription},
	)

	raw, err := e.generate(ctx, prompt, llm.TierAdvanced, schemas.HolisticJudgment)
	if err != nil {
		return nil, err
	}

	var judgment types.HolisticJudgment
	if err := decodeLenient(raw, &judgment); err != nil {
		return nil, err
	}
	if math.IsNaN(judgment.Similarity) || math.IsInf(judgment.Similarity, 0) {
		return nil, &ValidationError{Field: "similarity", Message: "must be a finite number"}
	}
	return &judgment, nil
}

// ReviewResume asks the model for a review with concrete optimizations.
func (e *LLMExtractor) ReviewResume(ctx context.Context, resumeText string) (*types.ResumeReview, error) {
	prompt := llm.BuildExtractionPrompt(
		reviewSchema(),
		llm.PromptInput{Label: "Résumé", Text: resumeText},
	)

	raw, err := e.generate(ctx, prompt, llm.TierAdvanced, schemas.ResumeReview)
	if err != nil {
		return nil, err
	}

	var review types.ResumeReview
	if err := decodeLenient(raw, &review); err != nil {
		return nil, err
	}
	if strings.TrimSpace(review.Review) == "" {
		return nil, &ValidationError{Field: "review", Message: "review is empty"}
	}
	return &review, nil
}

// generate runs prompt and returns a schema-valid JSON document.
func (e *LLMExtractor) generate(ctx context.Context, prompt string, tier llm.ModelTier, schema string) (string, error) {
	if e == nil || e.client == nil {
		return "", &APICallError{Message: "no LLM client configured"}
	}

	raw, err := e.client.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		return "", &APICallError{Message: fmt.Sprintf("%s extraction failed", schema), Cause: err}
	}
	raw = llm.CleanJSONBlock(raw)

	if err := schemas.Validate(schema, raw); err != nil {
		var schemaErr *schemas.ValidationError
		if errors.As(err, &schemaErr) {
			e.logger.Warn("extraction response rejected",
				zap.String("schema", schema),
				zap.Int("violations", len(schemaErr.Errors)),
			)
			return "", &ValidationError{Field: schema, Message: "response does not match schema", Cause: err}
		}
		return "", err
	}
	return raw, nil
}

// postProcessCandidate cleans skills and drops malformed email addresses.
func (e *LLMExtractor) postProcessCandidate(profile *types.CandidateProfile) {
	profile.Skills = CleanSkills(profile.Skills)

	if email, ok := profile.Email.Get(); ok {
		email = strings.TrimSpace(email)
		if types.IsValidEmail(email) {
			profile.Email = types.Some(email)
		} else {
			e.logger.Debug("discarding malformed email")
			profile.Email = types.None[string]()
		}
	}
}

// decodeLenient decodes raw into out accepting loosely typed values such as
// numbers sent as strings. List values for string fields are joined by line.
func decodeLenient(raw string, out any) error {
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return &ParseError{Message: "failed to decode response", Cause: err}
	}

	for key, value := range payload {
		if items, ok := value.([]any); ok {
			lines := make([]string, 0, len(items))
			for _, item := range items {
				lines = append(lines, fmt.Sprint(item))
			}
			payload[key] = strings.Join(lines, "\n")
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return &ParseError{Message: "failed to build decoder", Cause: err}
	}
	if err := decoder.Decode(payload); err != nil {
		return &ParseError{Message: "failed to decode response", Cause: err}
	}
	return nil
}
