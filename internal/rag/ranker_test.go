package rag

import (
	"math"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	cases := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 0}, []float32{1, 0}, 1.0},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0.0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1.0},
		{"unnormalized", []float32{2, 0}, []float32{5, 0}, 1.0},
		{"zero vector", []float32{0, 0}, []float32{1, 0}, 0.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CosineSimilarity(tc.a, tc.b)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("similarity = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRank(t *testing.T) {
	query := []float32{1, 0}

	t.Run("empty candidates", func(t *testing.T) {
		if got := Rank(query, nil, 3); len(got) != 0 {
			t.Errorf("expected empty result, got %d entries", len(got))
		}
	})

	t.Run("orders by descending score and caps at k", func(t *testing.T) {
		cands := []Candidate{
			{ChunkID: "a", Content: "a", Vector: []float32{0, 1}},
			{ChunkID: "b", Content: "b", Vector: []float32{1, 0}},
			{ChunkID: "c", Content: "c", Vector: []float32{0.7, 0.7}},
			{ChunkID: "d", Content: "d", Vector: []float32{-1, 0}},
		}

		got := Rank(query, cands, 3)
		if len(got) != 3 {
			t.Fatalf("expected 3 results, got %d", len(got))
		}
		wantOrder := []string{"b", "c", "a"}
		for i, r := range got {
			if r.ChunkID != wantOrder[i] {
				t.Errorf("result %d = %s, want %s", i, r.ChunkID, wantOrder[i])
			}
		}
		for i := 1; i < len(got); i++ {
			if got[i].Score > got[i-1].Score {
				t.Errorf("scores not non-increasing at %d: %v > %v", i, got[i].Score, got[i-1].Score)
			}
		}
	})

	t.Run("k larger than candidate set", func(t *testing.T) {
		cands := []Candidate{{ChunkID: "a", Vector: []float32{1, 0}}}
		if got := Rank(query, cands, 10); len(got) != 1 {
			t.Errorf("expected 1 result, got %d", len(got))
		}
	})

	t.Run("ties keep input order", func(t *testing.T) {
		cands := []Candidate{
			{ChunkID: "first", Vector: []float32{1, 0}},
			{ChunkID: "second", Vector: []float32{1, 0}},
		}
		got := Rank(query, cands, 2)
		if got[0].ChunkID != "first" || got[1].ChunkID != "second" {
			t.Errorf("tie broken unstably: %s, %s", got[0].ChunkID, got[1].ChunkID)
		}
	})
}
