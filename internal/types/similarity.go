package types

// HolisticJudgment is the LLM's direct reading of résumé and job description
// together, independent of the embedding facets.
type HolisticJudgment struct {
	Similarity float64 `json:"similarity"`
	Reason     string  `json:"reason"`
	Projects   string  `json:"projects"`
}

// FinalResult is the composite match returned to callers. Field names are the
// public response contract.
type FinalResult struct {
	Similarity  float64 `json:"similarity" yaml:"similarity"`
	Reason      string  `json:"reason" yaml:"reason"`
	TenureYears int     `json:"n_years" yaml:"n_years"`
	Skills      string  `json:"skills" yaml:"skills"`
	Projects    string  `json:"projects" yaml:"projects"`
}

// ResumeReview is a constructive review of a résumé with concrete optimizations.
type ResumeReview struct {
	Review       string `json:"review" yaml:"review"`
	Optimization string `json:"optimization" yaml:"optimization"`
}
