package types

// JobProfile represents a structured job description extracted from raw text.
// MinYears is estimated from the education requirement by the extractor when
// the posting does not state it.
type JobProfile struct {
	Title       Optional[string] `json:"job_title"`
	Description Optional[string] `json:"job_description"`
	Skills      []string         `json:"skills"`
	Experience  Optional[string] `json:"experience"`
	Education   Optional[string] `json:"education"`
	MinYears    Optional[int]    `json:"N_YEARS_MIN"`
}
