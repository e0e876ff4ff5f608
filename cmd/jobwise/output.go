package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ayushk-1801/jobwise/internal/embedding"
	"github.com/ayushk-1801/jobwise/internal/fusion"
	"github.com/ayushk-1801/jobwise/internal/matching"
	"github.com/ayushk-1801/jobwise/internal/observability"
	"github.com/ayushk-1801/jobwise/internal/types"
)

// Output formats.
const (
	formatJSON  = "json"
	formatYAML  = "yaml"
	formatTable = "table"
)

func validateFormat(format string) error {
	switch format {
	case formatJSON, formatYAML, formatTable:
		return nil
	default:
		return fmt.Errorf("unknown format %q (want json, yaml or table)", format)
	}
}

// verboseMatch is the match output with its partial signals.
type verboseMatch struct {
	RequestID     string                 `json:"request_id" yaml:"request_id"`
	Result        types.FinalResult      `json:"result" yaml:"result"`
	LLMSimilarity float64                `json:"llm_similarity" yaml:"llm_similarity"`
	Facets        embedding.FacetResults `json:"facets" yaml:"facets"`
	Diagnostics   fusion.Diagnostics     `json:"diagnostics" yaml:"diagnostics"`
}

func writeMatch(w io.Writer, format string, match *matching.Match, verbose bool) error {
	if format == formatTable {
		p := observability.NewPrinter(w)
		p.PrintResult(&match.Result)
		if verbose {
			p.PrintSignals(match.LLMSimilarity, match.Facets, match.Diagnostics)
		}
		return nil
	}

	var v any = match.Result
	if verbose {
		v = verboseMatch{
			RequestID:     match.RequestID,
			Result:        match.Result,
			LLMSimilarity: match.LLMSimilarity,
			Facets:        match.Facets,
			Diagnostics:   match.Diagnostics,
		}
	}
	return encode(w, format, v)
}

func writeReview(w io.Writer, format string, review *types.ResumeReview) error {
	if format == formatTable {
		observability.NewPrinter(w).PrintReview(review)
		return nil
	}
	return encode(w, format, review)
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	}
}
