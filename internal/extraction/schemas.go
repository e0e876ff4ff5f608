package extraction

import (
	"github.com/ayushk-1801/jobwise/internal/llm"
	"github.com/ayushk-1801/jobwise/internal/prompts"
)

const dateHint = `{"day": int|null, "month": int|null, "year": int|null}`

func candidateSchema(jobTitle string) llm.ExtractionSchema {
	return llm.ExtractionSchema{
		Name: "CandidateProfile",
		Description: prompts.Format(
			prompts.MustGet(prompts.ExtractionFile, prompts.KeyExtractCandidate),
			map[string]string{"JobTitle": jobTitle},
		),
		Fields: []llm.SchemaField{
			{Name: "first_name", Type: `"string"`},
			{Name: "last_name", Type: `"string"`},
			{Name: "country__phone_code", Type: `"string"`, Description: "e.g. +1"},
			{Name: "phone_number", Type: "int", Description: "digits only"},
			{Name: "email", Type: `"string"`},
			{Name: "country", Type: `"string"`},
			{
				Name:        "degrees",
				Type:        `[{"degree_type": "Bachelor's"|"Master's"|"PhD", "major": "string", "university": "string", "graduation_date": ` + dateHint + `}]`,
				Description: "one entry per degree",
			},
			{
				Name:        "jobs",
				Type:        `[{"job_title": "string", "job_description": "string", "started_at": ` + dateHint + `, "ended_at": ` + dateHint + `, "current_job": bool}]`,
				Description: "one entry per position",
			},
			{Name: "skills", Type: `["string"]`},
			{Name: "projects", Type: `[{"project_title": "string", "project_description": "string"}]`},
		},
	}
}

func jobSchema(jobTitle string) llm.ExtractionSchema {
	return llm.ExtractionSchema{
		Name: "JobProfile",
		Description: prompts.Format(
			prompts.MustGet(prompts.ExtractionFile, prompts.KeyExtractJob),
			map[string]string{"JobTitle": jobTitle},
		),
		Fields: []llm.SchemaField{
			{Name: "job_title", Type: `"string"`},
			{Name: "job_description", Type: `"string"`},
			{Name: "skills", Type: `["string"]`},
			{Name: "experience", Type: `"string"`},
			{Name: "education", Type: `"string"`},
			{Name: "N_YEARS_MIN", Type: "int", Description: "null when not stated"},
		},
	}
}

func judgmentSchema() llm.ExtractionSchema {
	return llm.ExtractionSchema{
		Name:        "HolisticJudgment",
		Description: prompts.MustGet(prompts.ExtractionFile, prompts.KeyJudgeSimilarity),
		Fields: []llm.SchemaField{
			{Name: "similarity", Type: "number", Description: "between 0 and 1", Required: true},
			{Name: "reason", Type: `"string"`, Required: true},
			{Name: "projects", Type: `"string"`, Required: true},
		},
	}
}

func reviewSchema() llm.ExtractionSchema {
	return llm.ExtractionSchema{
		Name:        "ResumeReview",
		Description: prompts.MustGet(prompts.ExtractionFile, prompts.KeyReviewResume),
		Fields: []llm.SchemaField{
			{Name: "review", Type: `"string"`, Required: true},
			{Name: "optimization", Type: `"string"`, Required: true},
		},
	}
}
