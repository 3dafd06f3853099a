package sanitize

import (
	"html"
	"regexp"
	"strings"
)

var (
	emailPattern       = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	anchorOpenPattern  = regexp.MustCompile(`(?i)<a\b[^>]*>`)
	anchorClosePattern = regexp.MustCompile(`(?i)</a\s*>`)
	tagPattern         = regexp.MustCompile(`</?[A-Za-z][^<>]*>`)
)

type span struct {
	start, end int
}

func (s span) contains(start, end int) bool {
	return start >= s.start && end <= s.end
}

// LinkifyEmails wraps every email address that is not already part of an anchor
// element (or of any tag's markup) in a mailto link. style, when non-empty, is
// written as the link's inline style attribute.
func LinkifyEmails(text, style string) string {
	matches := emailPattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	protected := append(anchorSpans(text), tagSpans(text)...)

	var b strings.Builder
	b.Grow(len(text) + len(matches)*48)
	last := 0
	for _, m := range matches {
		if insideAny(protected, m[0], m[1]) {
			continue
		}
		b.WriteString(text[last:m[0]])
		writeMailto(&b, text[m[0]:m[1]], style)
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

func writeMailto(b *strings.Builder, address, style string) {
	b.WriteString(`<a href="mailto:`)
	b.WriteString(address)
	b.WriteString(`"`)
	if style != "" {
		b.WriteString(` style="`)
		b.WriteString(html.EscapeString(style))
		b.WriteString(`"`)
	}
	b.WriteString(`>`)
	b.WriteString(address)
	b.WriteString(`</a>`)
}

// anchorSpans pairs each opening anchor tag with the first closing tag after it.
// An opening tag without a closing tag protects nothing.
func anchorSpans(text string) []span {
	opens := anchorOpenPattern.FindAllStringIndex(text, -1)
	if len(opens) == 0 {
		return nil
	}
	closes := anchorClosePattern.FindAllStringIndex(text, -1)

	spans := make([]span, 0, len(opens))
	ci := 0
	for oi := 0; oi < len(opens); oi++ {
		start := opens[oi][0]
		for ci < len(closes) && closes[ci][0] < opens[oi][1] {
			ci++
		}
		if ci == len(closes) {
			break
		}
		end := closes[ci][1]
		spans = append(spans, span{start: start, end: end})
		ci++
		// openings nested before this close belong to the same span
		for oi+1 < len(opens) && opens[oi+1][0] < end {
			oi++
		}
	}
	return spans
}

func tagSpans(text string) []span {
	idx := tagPattern.FindAllStringIndex(text, -1)
	spans := make([]span, 0, len(idx))
	for _, m := range idx {
		spans = append(spans, span{start: m[0], end: m[1]})
	}
	return spans
}

func insideAny(spans []span, start, end int) bool {
	for _, s := range spans {
		if s.contains(start, end) {
			return true
		}
	}
	return false
}
