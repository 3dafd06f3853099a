package sanitize

import (
	"regexp"
	"strings"
)

var (
	// a fence may carry a language tag only when the rest of its line is that tag
	fencePattern      = regexp.MustCompile("```(?:[A-Za-z0-9_+-]*\\n)?")
	blankLinesPattern = regexp.MustCompile(`\n\s*\n`)
)

// CleanMarkdown removes markdown wrapping some backends put around HTML answers:
// code fences, stray backticks, literal ** markers, and blank-line runs.
func CleanMarkdown(text string) string {
	text = fencePattern.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "`", "")
	text = strings.ReplaceAll(text, "**", "")
	text = blankLinesPattern.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

// Finalize prepares text received from the proxy for display in the widget.
func Finalize(text string) HTML {
	return HTML{s: CleanMarkdown(text)}
}
