package rag

import (
	"math"
	"sort"
)

// Candidate pairs a stored chunk text with its embedding.
type Candidate struct {
	ChunkID string
	Content string
	Vector  []float32
}

// Ranked is a candidate scored against a query vector.
type Ranked struct {
	ChunkID string
	Content string
	Score   float64
}

// Rank returns up to k candidates ordered by descending cosine similarity to
// the query vector. Ties keep input order (earlier-stored chunk wins) so
// results are deterministic. An empty candidate set yields an empty result.
// Pure function, no knowledge of persistence.
func Rank(query []float32, candidates []Candidate, k int) []Ranked {
	if len(candidates) == 0 || k <= 0 {
		return nil
	}

	ranked := make([]Ranked, 0, len(candidates))
	for _, c := range candidates {
		ranked = append(ranked, Ranked{
			ChunkID: c.ChunkID,
			Content: c.Content,
			Score:   CosineSimilarity(query, c.Vector),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if k < len(ranked) {
		ranked = ranked[:k]
	}
	return ranked
}

// CosineSimilarity is dot(a,b) / (|a|·|b|). For unit-normalized vectors this
// reduces to the dot product, but magnitudes are computed anyway so stored
// vectors from before normalization was enforced still rank correctly.
// Zero-magnitude input scores 0.
func CosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
