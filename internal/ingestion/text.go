// Package ingestion reads resume and job description documents into clean text.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	innerSpace  = regexp.MustCompile(`[ \t\f\v]+`)
	blankLines  = regexp.MustCompile(`\n{3,}`)
	bulletGlyph = regexp.MustCompile(`^[•·▪●◦‣]\s*`)
)

// CleanText normalizes line endings and spacing while keeping the line structure
// that section extraction depends on. Markdown headings and bullets are kept,
// other bullet glyphs become "- ", and runs of blank lines collapse to one.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\u00a0", " ")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}
	if bulletGlyph.MatchString(trimmed) {
		trimmed = bulletGlyph.ReplaceAllString(trimmed, "- ")
	}
	return innerSpace.ReplaceAllString(trimmed, " ")
}
