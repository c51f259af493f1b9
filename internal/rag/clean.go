package rag

import (
	"regexp"
	"strings"
)

var (
	spaceRun   = regexp.MustCompile(`[ \t]+`)
	newlineRun = regexp.MustCompile(`\n+`)
	pageMarker = regexp.MustCompile(`(?i)Page\s+\d+`)
)

// CleanText normalizes raw PDF-extracted resume text before chunking:
// collapses space/tab runs, collapses blank lines, strips page markers and
// bullet glyphs that extraction tools leave behind.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	text = spaceRun.ReplaceAllString(text, " ")
	text = newlineRun.ReplaceAllString(text, "\n")
	text = pageMarker.ReplaceAllString(text, "")

	for _, glyph := range []string{"•", "–", "●"} {
		text = strings.ReplaceAll(text, glyph, "")
	}

	return strings.TrimSpace(text)
}
