package embedding

import (
	"context"
	"math"
)

// Provider maps text to a fixed-dimension, L2-normalized vector. The model
// must be deterministic: identical text always yields the identical vector.
// Callers surface failures instead of substituting zero vectors.
//
// One Provider is constructed at startup and shared across requests
// (read-only after init).
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

// Normalize scales v to unit length in place and returns it. A zero vector
// is returned unchanged.
func Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	norm := math.Sqrt(sum)
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
	return v
}
