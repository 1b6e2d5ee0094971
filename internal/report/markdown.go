package report

import (
	"regexp"
	"strings"
)

var (
	boldMarkup = regexp.MustCompile(`\*\*(.*?)\*\*`)
	whitespace = regexp.MustCompile(`\s+`)
)

// CleanMarkdown strips the markdown the summarization models tend to emit:
// leading "*" bullets, "**bold**" markup, stray asterisks. Repeated
// whitespace collapses to a single space. The function is idempotent.
func CleanMarkdown(text string) string {
	out := strings.TrimSpace(text)

	for strings.HasPrefix(out, "*") {
		out = strings.TrimSpace(strings.TrimPrefix(out, "*"))
	}

	out = boldMarkup.ReplaceAllString(out, "$1")
	out = strings.ReplaceAll(out, "*", "")
	out = whitespace.ReplaceAllString(out, " ")

	return strings.TrimSpace(out)
}

// BulletPoints turns a digest body into cleaned, non-empty lines suitable
// for a numbered list.
func BulletPoints(body string) []string {
	var points []string
	for _, line := range strings.Split(body, "\n") {
		clean := CleanMarkdown(line)
		if clean == "" {
			continue
		}
		points = append(points, clean)
	}
	return points
}
