package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/zhouzirui/clio/backend/internal/model/chat"
	"github.com/zhouzirui/clio/backend/internal/model/persona"
)

type fakeChatModel struct {
	reply string
	err   error
	input []*schema.Message
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	f.input = input
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeChatModel) Stream(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	f.input = input
	return schema.StreamReaderFromArray([]*schema.Message{schema.AssistantMessage(f.reply, nil)}), nil
}

func (f *fakeChatModel) BindTools(_ []*schema.ToolInfo) error {
	return nil
}

func clio() persona.Persona {
	return persona.Seed()[0]
}

func TestServiceAskReturnsResponsePayload(t *testing.T) {
	fake := &fakeChatModel{reply: "<p>She builds web apps.</p>"}
	svc, err := NewService(context.Background(), fake, clio())
	if err != nil {
		t.Fatalf("NewService err: %v", err)
	}

	payload, err := svc.Ask(context.Background(), "What does she do?")
	if err != nil {
		t.Fatalf("Ask err: %v", err)
	}
	if got, _ := payload.Text(chat.FieldResponse); got != "<p>She builds web apps.</p>" {
		t.Fatalf("unexpected response %q", got)
	}

	if len(fake.input) != 2 {
		t.Fatalf("expected system + user messages, got %d", len(fake.input))
	}
	if fake.input[0].Role != schema.System || !strings.Contains(fake.input[0].Content, "Clio") {
		t.Fatalf("unexpected system message: %+v", fake.input[0])
	}
	if fake.input[1].Role != schema.User || fake.input[1].Content != "What does she do?" {
		t.Fatalf("unexpected user message: %+v", fake.input[1])
	}
}

func TestServiceAskModelError(t *testing.T) {
	fake := &fakeChatModel{err: errors.New("quota exceeded")}
	svc, err := NewService(context.Background(), fake, clio())
	if err != nil {
		t.Fatalf("NewService err: %v", err)
	}

	if _, err := svc.Ask(context.Background(), "hi"); err == nil {
		t.Fatal("expected error from failing model")
	}
}

func TestServiceAskEmptyAnswer(t *testing.T) {
	svc, err := NewService(context.Background(), &fakeChatModel{reply: "  "}, clio())
	if err != nil {
		t.Fatalf("NewService err: %v", err)
	}

	if _, err := svc.Ask(context.Background(), "hi"); !errors.Is(err, ErrEmptyAnswer) {
		t.Fatalf("expected ErrEmptyAnswer, got %v", err)
	}
}

func TestBuildSystemPromptFallback(t *testing.T) {
	pm := NewPromptManager()
	prompt := pm.BuildSystemPrompt(&persona.Persona{ID: "guest", Name: "Guest", Title: "helper", Tone: "calm"})
	if !strings.Contains(prompt, "You are Guest, helper.") {
		t.Fatalf("unexpected fallback prompt: %s", prompt)
	}
}
