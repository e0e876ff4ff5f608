package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/ayushk-1801/jobwise/internal/embedding"
	"github.com/ayushk-1801/jobwise/internal/fusion"
	"github.com/ayushk-1801/jobwise/internal/types"
)

func init() {
	color.NoColor = true
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintResult(&types.FinalResult{
		Similarity:  0.63,
		Reason:      "solid fit",
		TenureYears: 4,
		Skills:      "Go , SQL",
		Projects:    "payments api",
	})
	out := buf.String()

	assert.Contains(t, out, "MATCH RESULT")
	assert.Contains(t, out, "0.6300")
	assert.Contains(t, out, "solid fit")
	assert.Contains(t, out, "Go , SQL")
	assert.Contains(t, out, "payments api")
}

func TestPrintResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintResult(nil)
	assert.Empty(t, buf.String())
}

func TestPrintSignals(t *testing.T) {
	fit := 0.5
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSignals(0.7,
		embedding.FacetResults{
			Skills:     embedding.Result{Score: 0.8, Usable: true},
			Experience: embedding.Result{Score: 0.6, Usable: true},
			Education:  embedding.Unusable(),
		},
		fusion.Diagnostics{
			Mode:        fusion.ModeDegraded,
			Weights:     fusion.Weights{Skills: 0.1, Experience: 0.5, Education: 0.2, Tenure: 0.2},
			WeightedSum: 0.1,
			TenureFit:   &fit,
			TenureTerm:  0.1,
		},
	)
	out := buf.String()

	assert.Contains(t, out, "mode: degraded")
	assert.Contains(t, out, "0.8000")
	assert.Contains(t, out, "0.5000")
	assert.Contains(t, strings.ToLower(out), "tenure")
	assert.Contains(t, out, "no")
}

func TestPrintReview(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintReview(&types.ResumeReview{
		Review:       "Clear structure.",
		Optimization: "Quantify impact.\nTrim the summary.",
	})
	out := buf.String()

	assert.Contains(t, out, "REVIEW")
	assert.Contains(t, out, "OPTIMIZATION")
	assert.Contains(t, out, "│ Quantify impact.")
	assert.Contains(t, out, "│ Trim the summary.")
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"aaa bbb", "ccc"}, wrap("aaa bbb ccc", 7))
	assert.Equal(t, []string{"abcd", "ef"}, wrap("abcdef", 4))
	assert.Equal(t, []string{"one", "", "two"}, wrap("one\n\ntwo", 10))
}
