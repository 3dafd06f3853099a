// Package sanitize turns untrusted assistant text into markup the chat widget may render.
//
// HTML values can only be produced by this package, so every path that ends in rendered
// markup has gone through one of the pipeline stages below.
package sanitize

import (
	"encoding/json"
	"html"
)

// HTML is text that passed the sanitization pipeline and is safe to render as markup.
type HTML struct {
	s string
}

// String returns the underlying markup.
func (h HTML) String() string {
	return h.s
}

// IsZero reports whether h holds no markup.
func (h HTML) IsZero() bool {
	return h.s == ""
}

// MarshalJSON encodes the markup as a plain JSON string.
func (h HTML) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.s)
}

// Escape converts plain user input into inert markup.
func Escape(text string) HTML {
	return HTML{s: html.EscapeString(text)}
}
