package parsing

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	innerSpaceRe   = regexp.MustCompile(`[ \t\f\v]+`)
	blankLinesRe   = regexp.MustCompile(`\n{3,}`)
	bulletPrefixRe = regexp.MustCompile(`^\s*(?:[-*•·▪◦‣]|\d+[.)])\s+`)
)

// CleanText normalizes resume text while preserving its line structure:
// Unicode NFKC, LF line endings, collapsed inner whitespace, at most one blank line in a row.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = norm.NFKC.String(content)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(innerSpaceRe.ReplaceAllString(line, " "))
	}

	result := strings.Join(lines, "\n")
	result = blankLinesRe.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// stripBullet removes a leading list marker from a line.
func stripBullet(line string) string {
	return strings.TrimSpace(bulletPrefixRe.ReplaceAllString(line, ""))
}

// paragraphs splits cleaned text on blank lines.
func paragraphs(text string) []string {
	parts := strings.Split(text, "\n\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
