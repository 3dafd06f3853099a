package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/zhouzirui/clio/backend/internal/model/chat"
	"github.com/zhouzirui/clio/backend/internal/sanitize"
)

var (
	ErrQueryRequired = errors.New("query is required")
	ErrUpstream      = errors.New("upstream request failed")
)

// Answerer produces a raw answer payload for a query.
type Answerer interface {
	Ask(ctx context.Context, query string) (chat.Payload, error)
}

// Service is the stateless query proxy: validate, forward, sanitize.
type Service struct {
	answerer Answerer
	pipeline *sanitize.Pipeline
}

// NewService wires an answerer to the sanitization pipeline.
func NewService(answerer Answerer, pipeline *sanitize.Pipeline) *Service {
	return &Service{
		answerer: answerer,
		pipeline: pipeline,
	}
}

// Ask forwards a query and returns the answer with its response field sanitized.
// All other payload fields are returned untouched.
func (s *Service) Ask(ctx context.Context, query string) (chat.Payload, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrQueryRequired
	}

	payload, err := s.answerer.Ask(ctx, query)
	if err != nil {
		log.Printf("[chat] upstream failure: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	if text, ok := payload.Text(chat.FieldResponse); ok && text != "" {
		payload.SetText(chat.FieldResponse, s.pipeline.Sanitize(text).String())
	}
	return payload, nil
}
