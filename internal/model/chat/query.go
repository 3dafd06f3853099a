package chat

import (
	"encoding/json"
	"fmt"
)

// Payload field names understood by the proxy and the widget.
const (
	FieldResponse = "response"
	FieldMessage  = "message"
)

// Query is the body of a chat request, both to the proxy and to the upstream.
type Query struct {
	Query string `json:"query"`
}

// Payload is an upstream answer. Fields are kept raw so anything the proxy does
// not touch is passed back to the caller unchanged.
type Payload map[string]json.RawMessage

// DecodePayload parses an upstream body, which must be a JSON object.
func DecodePayload(data []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("decode payload: not a JSON object")
	}
	return p, nil
}

// Text returns the string value of field, if it holds one.
func (p Payload) Text(field string) (string, bool) {
	raw, ok := p[field]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// SetText replaces field with a JSON string value.
func (p Payload) SetText(field, value string) {
	raw, _ := json.Marshal(value)
	p[field] = raw
}

// ErrorResponse is the body of every non-2xx proxy response.
type ErrorResponse struct {
	Error string `json:"error"`
}
