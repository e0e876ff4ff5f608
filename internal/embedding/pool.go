package embedding

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrEmptySequence is returned when a text produced no token vectors.
	ErrEmptySequence = errors.New("empty token sequence")
	// ErrDimensionMismatch is returned when vectors of different sizes are compared.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	// ErrZeroVector is returned when a vector has no direction to compare.
	ErrZeroVector = errors.New("zero-norm vector")
)

// TokenStates holds the encoder's per-token hidden states for one text.
// Mask marks real tokens; padding positions are false. A nil Mask means every
// position is a real token.
type TokenStates struct {
	Vectors [][]float64
	Mask    []bool
}

// Pooled wraps an already pooled vector as a single-token sequence.
func Pooled(v []float64) TokenStates {
	return TokenStates{Vectors: [][]float64{v}}
}

// MeanPool averages the token vectors over the sequence dimension, skipping
// padding positions.
func MeanPool(states TokenStates) ([]float64, error) {
	if states.Mask != nil && len(states.Mask) != len(states.Vectors) {
		return nil, fmt.Errorf("mask length %d does not match sequence length %d", len(states.Mask), len(states.Vectors))
	}

	var sum []float64
	count := 0
	for i, vec := range states.Vectors {
		if states.Mask != nil && !states.Mask[i] {
			continue
		}
		if sum == nil {
			sum = make([]float64, len(vec))
		} else if len(vec) != len(sum) {
			return nil, fmt.Errorf("token %d: %w", i, ErrDimensionMismatch)
		}
		for j, x := range vec {
			sum[j] += x
		}
		count++
	}

	if count == 0 || len(sum) == 0 {
		return nil, ErrEmptySequence
	}

	for j := range sum {
		sum[j] /= float64(count)
	}
	return sum, nil
}

// Cosine returns the cosine similarity of a and b, in [-1, 1].
func Cosine(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}
	if len(a) == 0 {
		return 0, ErrEmptySequence
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0, ErrZeroVector
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if math.IsNaN(sim) || math.IsInf(sim, 0) {
		return 0, fmt.Errorf("non-finite similarity %v", sim)
	}
	return math.Max(-1, math.Min(1, sim)), nil
}
