package rag

import (
	"errors"
	"strings"

	"github.com/prepwise/prepwise-backend/internal/utils"
)

const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 100
)

// ErrInvalidChunking rejects window parameters that cannot terminate or
// produce empty windows.
var ErrInvalidChunking = errors.New("invalid chunking parameters")

// Chunk splits text into overlapping fixed-size windows. Each window after
// the first starts size-overlap runes after the previous one, so consecutive
// chunks share overlap runes of context. Windows are trimmed; windows that
// trim to nothing (whitespace tails) are dropped. Pure function.
func Chunk(text string, size, overlap int) ([]string, error) {
	const op = "rag.Chunk"

	if size <= 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "chunk size must be > 0", ErrInvalidChunking)
	}
	if overlap < 0 || overlap >= size {
		// overlap >= size never advances the window start
		return nil, utils.E(utils.CodeInvalidArgument, op, "overlap must be >= 0 and < size", ErrInvalidChunking)
	}
	if text == "" {
		return nil, nil
	}

	runes := []rune(text)
	step := size - overlap

	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		if c := strings.TrimSpace(string(runes[start:end])); c != "" {
			chunks = append(chunks, c)
		}
	}
	return chunks, nil
}
