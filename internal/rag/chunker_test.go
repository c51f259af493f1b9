package rag

import (
	"errors"
	"strings"
	"testing"
)

func TestChunkSlidingWindow(t *testing.T) {
	chunks, err := Chunk("abcdefgh", 4, 1)
	if err != nil {
		t.Fatalf("chunking failed: %v", err)
	}

	want := []string{"abcd", "defg", "gh"}
	if len(chunks) != len(want) {
		t.Fatalf("expected %d chunks, got %d (%v)", len(want), len(chunks), chunks)
	}
	for i, c := range chunks {
		if c != want[i] {
			t.Errorf("chunk %d = %q, want %q", i, c, want[i])
		}
	}
}

func TestChunkReconstruction(t *testing.T) {
	text := strings.Repeat("abcdefghij", 250) // 2500 chars, no whitespace
	size, overlap := 1000, 100

	chunks, err := Chunk(text, size, overlap)
	if err != nil {
		t.Fatalf("chunking failed: %v", err)
	}

	// Dropping each chunk's overlapped prefix (except the first) must
	// reconstruct the input exactly.
	var b strings.Builder
	for i, c := range chunks {
		if i == 0 {
			b.WriteString(c)
			continue
		}
		b.WriteString(c[overlap:])
	}
	if b.String() != text {
		t.Errorf("reconstructed text does not match input (got %d chars, want %d)", b.Len(), len(text))
	}
}

func TestChunkEdgeCases(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		chunks, err := Chunk("", 1000, 100)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(chunks) != 0 {
			t.Errorf("expected no chunks, got %d", len(chunks))
		}
	})

	t.Run("overlap equals size", func(t *testing.T) {
		_, err := Chunk("hello", 100, 100)
		if !errors.Is(err, ErrInvalidChunking) {
			t.Errorf("expected ErrInvalidChunking when overlap == size, got %v", err)
		}
	})

	t.Run("overlap exceeds size", func(t *testing.T) {
		if _, err := Chunk("hello", 100, 150); err == nil {
			t.Error("expected error when overlap > size")
		}
	})

	t.Run("zero size", func(t *testing.T) {
		if _, err := Chunk("hello", 0, 0); err == nil {
			t.Error("expected error when size == 0")
		}
	})

	t.Run("final chunk shorter than size", func(t *testing.T) {
		chunks, err := Chunk("abcdefghij", 4, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := chunks[len(chunks)-1]; got != "ij" {
			t.Errorf("final chunk = %q, want %q", got, "ij")
		}
	})

	t.Run("chunks are trimmed", func(t *testing.T) {
		chunks, err := Chunk("ab  cd", 4, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i, c := range chunks {
			if c != strings.TrimSpace(c) {
				t.Errorf("chunk %d not trimmed: %q", i, c)
			}
		}
	})

	t.Run("whitespace tail dropped", func(t *testing.T) {
		chunks, err := Chunk("abcd    ", 4, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(chunks) != 1 || chunks[0] != "abcd" {
			t.Errorf("expected single chunk %q, got %v", "abcd", chunks)
		}
	})
}

func TestCleanText(t *testing.T) {
	in := "John  Doe\t Engineer\n\n\n• Built things\nPage 1\nMore text"
	got := CleanText(in)

	if strings.Contains(got, "  ") {
		t.Errorf("space runs not collapsed: %q", got)
	}
	if strings.Contains(got, "\n\n") {
		t.Errorf("newline runs not collapsed: %q", got)
	}
	if strings.Contains(got, "Page 1") {
		t.Errorf("page marker not removed: %q", got)
	}
	if strings.Contains(got, "•") {
		t.Errorf("bullet glyph not removed: %q", got)
	}
	if CleanText("") != "" {
		t.Error("empty input should stay empty")
	}
}
