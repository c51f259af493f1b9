package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prepwise/prepwise-backend/internal/utils"
)

func TestNormalize(t *testing.T) {
	t.Run("unit norm", func(t *testing.T) {
		v := Normalize([]float32{3, 4})
		var sum float64
		for _, x := range v {
			sum += float64(x) * float64(x)
		}
		if math.Abs(math.Sqrt(sum)-1) > 1e-6 {
			t.Errorf("norm = %v, want 1", math.Sqrt(sum))
		}
	})

	t.Run("zero vector unchanged", func(t *testing.T) {
		v := Normalize([]float32{0, 0, 0})
		for _, x := range v {
			if x != 0 {
				t.Errorf("zero vector mutated: %v", v)
			}
		}
	})
}

func TestClientEmbed(t *testing.T) {
	vec := make([]float32, 384)
	vec[0] = 3
	vec[1] = 4

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"embedding": vec}},
		})
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	got, err := c.Embed(context.Background(), "some resume text")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(got) != 384 {
		t.Fatalf("dimension = %d, want 384", len(got))
	}

	var sum float64
	for _, x := range got {
		sum += float64(x) * float64(x)
	}
	if math.Abs(math.Sqrt(sum)-1) > 1e-6 {
		t.Errorf("returned vector not unit-normalized: |v| = %v", math.Sqrt(sum))
	}
}

func TestClientEmbedDimensionMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"embedding": []float32{1, 2, 3}}},
		})
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL, Dimension: 384})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if _, err := c.Embed(context.Background(), "text"); err == nil {
		t.Fatal("expected error on dimension mismatch")
	}
}

func TestClientEmbedUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	c.maxRetries = 0

	_, err = c.Embed(context.Background(), "text")
	if !errors.Is(err, utils.ErrEmbeddingUnavailable) {
		t.Errorf("expected ErrEmbeddingUnavailable, got %v", err)
	}
}
