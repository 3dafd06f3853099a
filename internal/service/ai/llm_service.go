package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/zhouzirui/clio/backend/internal/model/chat"
	"github.com/zhouzirui/clio/backend/internal/model/persona"
)

// ErrEmptyAnswer is returned when the model produced no text.
var ErrEmptyAnswer = errors.New("model returned an empty answer")

// Service answers portfolio questions with a chat model, standing in for the
// external question-answering backend.
type Service struct {
	persona persona.Persona
	prompts *PromptManager
	chain   compose.Runnable[map[string]any, *schema.Message]
}

// NewService compiles the prompt -> model chain for the given persona.
func NewService(ctx context.Context, chatModel model.ChatModel, p persona.Persona) (*Service, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("chat model is required")
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{
		persona: p,
		prompts: NewPromptManager(),
		chain:   runnable,
	}, nil
}

// Ask generates an answer and returns it in the upstream payload shape.
func (s *Service) Ask(ctx context.Context, query string) (chat.Payload, error) {
	input := map[string]any{
		"system": s.prompts.BuildSystemPrompt(&s.persona),
		"query":  query,
	}

	response, err := s.chain.Invoke(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to run AI chain: %w", err)
	}
	if response == nil || strings.TrimSpace(response.Content) == "" {
		return nil, ErrEmptyAnswer
	}

	log.Printf("[ai] generated answer for persona=%s, length=%d", s.persona.ID, len(response.Content))

	payload := chat.Payload{}
	payload.SetText(chat.FieldResponse, response.Content)
	return payload, nil
}
