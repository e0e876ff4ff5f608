package embedding

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEncoder maps each text to a fixed vector, or fails.
type stubEncoder struct {
	vectors map[string][]float64
	err     error
	panics  bool
	short   bool
	calls   [][]string
}

func (s *stubEncoder) Encode(_ context.Context, texts []string) ([]TokenStates, error) {
	s.calls = append(s.calls, texts)
	if s.panics {
		panic("model crashed")
	}
	if s.err != nil {
		return nil, s.err
	}
	out := make([]TokenStates, 0, len(texts))
	for _, text := range texts {
		out = append(out, Pooled(s.vectors[text]))
	}
	if s.short {
		return out[:1], nil
	}
	return out, nil
}

func TestEngineCompare_Usable(t *testing.T) {
	enc := &stubEncoder{vectors: map[string][]float64{
		"go , sql": {1, 0},
		"go":       {1, 1},
	}}
	engine := NewEngine(enc)

	got := engine.Compare(context.Background(), FacetSkills, "go , sql", "go")

	require.True(t, got.Usable)
	assert.InDelta(t, 0.70710678, got.Score, 1e-6)
	require.Len(t, enc.calls, 1)
	assert.Equal(t, []string{"go , sql", "go"}, enc.calls[0], "both texts must be encoded in one batch")
}

func TestEngineCompare_EmptyTextIsUnusable(t *testing.T) {
	enc := &stubEncoder{}
	engine := NewEngine(enc)

	got := engine.Compare(context.Background(), FacetSkills, "", "go , sql")

	assert.False(t, got.Usable)
	assert.Equal(t, NeutralScore, got.Score)
	assert.Empty(t, enc.calls, "encoder must not be called for empty text")

	got = engine.Compare(context.Background(), FacetEducation, "BSc", "   ")
	assert.False(t, got.Usable)
}

func TestEngineCompare_FailuresAreUnusable(t *testing.T) {
	tests := []struct {
		name string
		enc  Encoder
	}{
		{name: "encoder error", enc: &stubEncoder{err: errors.New("connection refused")}},
		{name: "encoder panic", enc: &stubEncoder{panics: true}},
		{name: "short batch", enc: &stubEncoder{short: true, vectors: map[string][]float64{"a": {1}, "b": {1}}}},
		{name: "zero vector", enc: &stubEncoder{vectors: map[string][]float64{"a": {0, 0}, "b": {1, 1}}}},
		{name: "missing vector", enc: &stubEncoder{vectors: map[string][]float64{"a": {1, 1}}}},
		{name: "nil encoder", enc: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewEngine(tt.enc).Compare(context.Background(), FacetExperience, "a", "b")
			assert.Equal(t, Unusable(), got)
		})
	}
}

func TestEngineCompare_TruncatesLongText(t *testing.T) {
	long := strings.Repeat("word ", 20)
	enc := &stubEncoder{vectors: map[string][]float64{
		"word word word": {1, 0},
		"short":          {1, 0},
	}}
	engine := NewEngine(enc, WithMaxTokens(3))

	got := engine.Compare(context.Background(), FacetExperience, long, "short")

	require.True(t, got.Usable)
	assert.InDelta(t, 1.0, got.Score, 1e-9)
	assert.Equal(t, "word word word", enc.calls[0][0])
}

func TestTruncateTokens(t *testing.T) {
	assert.Equal(t, "a  b", TruncateTokens("a  b", 2), "text within budget is unchanged")
	assert.Equal(t, "a b", TruncateTokens("a b c d", 2))
	assert.Equal(t, "a b c", TruncateTokens("a b c", 0))
}

func TestEngineCompareFacets(t *testing.T) {
	enc := &stubEncoder{vectors: map[string][]float64{
		"go":        {1, 0},
		"golang":    {1, 0},
		"built api": {0, 1},
		"apis":      {1, 1},
	}}
	engine := NewEngine(enc)

	got := engine.CompareFacets(context.Background(), FacetTexts{
		CandidateSkills:     "go",
		JobSkills:           "golang",
		CandidateExperience: "built api",
		JobExperience:       "apis",
	})

	assert.True(t, got.Skills.Usable)
	assert.InDelta(t, 1.0, got.Skills.Score, 1e-9)
	assert.True(t, got.Experience.Usable)
	assert.False(t, got.Education.Usable, "empty education text")
	assert.False(t, got.AllUsable())
	assert.Len(t, enc.calls, 2)
}
