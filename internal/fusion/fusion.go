// Package fusion combines the LLM holistic judgment with the embedding facet
// scores and the tenure fit into one similarity value.
package fusion

import (
	"github.com/ayushk-1801/jobwise/internal/embedding"
	"github.com/ayushk-1801/jobwise/internal/tenure"
	"github.com/ayushk-1801/jobwise/internal/types"
)

// Weights for jobs without a minimum-years requirement
const (
	skillsWeight     = 0.1
	experienceWeight = 0.6
	educationWeight  = 0.3
)

// Weights for jobs with a minimum-years requirement
const (
	tenureSkillsWeight     = 0.1
	tenureExperienceWeight = 0.5
	tenureEducationWeight  = 0.2
	tenureWeight           = 0.2
)

// Mode reports which fusion path produced the similarity.
type Mode string

const (
	// ModeFull blends the embedding ensemble with the LLM score.
	ModeFull Mode = "full"
	// ModeDegraded reports the LLM score alone.
	ModeDegraded Mode = "degraded"
)

// Weights is the per-signal weight vector. Tenure is zero when the policy has
// no tenure component.
type Weights struct {
	Skills     float64 `json:"skills" yaml:"skills"`
	Experience float64 `json:"experience" yaml:"experience"`
	Education  float64 `json:"education" yaml:"education"`
	Tenure     float64 `json:"tenure" yaml:"tenure"`
}

// WeightsFor selects the weight policy. Any present requirement, zero
// included, selects the tenure policy.
func WeightsFor(required types.Optional[int]) Weights {
	if !required.IsPresent() {
		return Weights{
			Skills:     skillsWeight,
			Experience: experienceWeight,
			Education:  educationWeight,
		}
	}
	return Weights{
		Skills:     tenureSkillsWeight,
		Experience: tenureExperienceWeight,
		Education:  tenureEducationWeight,
		Tenure:     tenureWeight,
	}
}

// Input carries every partial signal of one match.
type Input struct {
	LLM           types.HolisticJudgment
	Facets        embedding.FacetResults
	TenureYears   int
	RequiredYears types.Optional[int]
	SkillsText    string
}

// Diagnostics explains how the similarity was produced.
type Diagnostics struct {
	Mode        Mode    `json:"mode" yaml:"mode"`
	Weights     Weights `json:"weights" yaml:"weights"`
	WeightedSum float64 `json:"weighted_sum" yaml:"weighted_sum"`
	// TenureFit is set only when a non-zero requirement exists.
	TenureFit *float64 `json:"tenure_fit,omitempty" yaml:"tenure_fit,omitempty"`
	// TenureTerm is TenureFit times the tenure weight. In degraded mode it is
	// computed but not part of the similarity.
	TenureTerm float64 `json:"tenure_term" yaml:"tenure_term"`
}

// Output is the fused result plus its diagnostics.
type Output struct {
	Result      types.FinalResult
	Diagnostics Diagnostics
}

// Fuse computes the final similarity.
//
// With all three facets usable, the weighted facet sum (plus the tenure term
// when required years are present and non-zero) is averaged with the LLM
// score. Otherwise the LLM score is reported verbatim. No clamping is applied.
func Fuse(in Input) Output {
	weights := WeightsFor(in.RequiredYears)
	diag := Diagnostics{Weights: weights}

	if fit, ok := tenure.FitScore(in.TenureYears, in.RequiredYears); ok {
		diag.TenureFit = &fit
		diag.TenureTerm = fit * weights.Tenure
	}

	similarity := in.LLM.Similarity
	if in.Facets.AllUsable() {
		weighted := in.Facets.Skills.Score*weights.Skills +
			in.Facets.Experience.Score*weights.Experience +
			in.Facets.Education.Score*weights.Education +
			diag.TenureTerm
		diag.Mode = ModeFull
		diag.WeightedSum = weighted
		similarity = (weighted + in.LLM.Similarity) / 2
	} else {
		diag.Mode = ModeDegraded
		diag.WeightedSum = diag.TenureTerm
	}

	return Output{
		Result: types.FinalResult{
			Similarity:  similarity,
			Reason:      in.LLM.Reason,
			TenureYears: in.TenureYears,
			Skills:      in.SkillsText,
			Projects:    in.LLM.Projects,
		},
		Diagnostics: diag,
	}
}
