package chat_test

import (
	"context"
	"errors"
	"testing"

	"github.com/zhouzirui/clio/backend/internal/analysis/format"
	"github.com/zhouzirui/clio/backend/internal/model/chat"
	"github.com/zhouzirui/clio/backend/internal/sanitize"
	chatservice "github.com/zhouzirui/clio/backend/internal/service/chat"
)

type fakeAnswerer struct {
	calls   int
	query   string
	payload chat.Payload
	err     error
}

func (f *fakeAnswerer) Ask(_ context.Context, query string) (chat.Payload, error) {
	f.calls++
	f.query = query
	return f.payload, f.err
}

func newService(answerer chatservice.Answerer) *chatservice.Service {
	return chatservice.NewService(answerer, sanitize.NewPipeline(sanitize.Options{Rules: format.DefaultRules()}))
}

func TestServiceAskRequiresQuery(t *testing.T) {
	for _, query := range []string{"", "   ", "\n\t"} {
		answerer := &fakeAnswerer{}
		svc := newService(answerer)

		if _, err := svc.Ask(context.Background(), query); !errors.Is(err, chatservice.ErrQueryRequired) {
			t.Fatalf("query %q: expected ErrQueryRequired, got %v", query, err)
		}
		if answerer.calls != 0 {
			t.Fatalf("query %q: expected no upstream call, got %d", query, answerer.calls)
		}
	}
}

func TestServiceAskSanitizesResponse(t *testing.T) {
	answerer := &fakeAnswerer{payload: chat.Payload{
		"response": []byte(`"Contact me at a@b.com for details"`),
		"sources":  []byte(`["resume"]`),
	}}
	svc := newService(answerer)

	payload, err := svc.Ask(context.Background(), "  how do I reach you?  ")
	if err != nil {
		t.Fatalf("Ask err: %v", err)
	}
	if answerer.query != "how do I reach you?" {
		t.Fatalf("expected trimmed query, got %q", answerer.query)
	}

	got, _ := payload.Text(chat.FieldResponse)
	want := `Contact me at <a href="mailto:a@b.com">a@b.com</a> for details`
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if string(payload["sources"]) != `["resume"]` {
		t.Fatalf("pass-through field changed: %s", payload["sources"])
	}
}

func TestServiceAskLeavesPayloadWithoutResponse(t *testing.T) {
	answerer := &fakeAnswerer{payload: chat.Payload{"message": []byte(`"reach x@y.dev"`)}}
	svc := newService(answerer)

	payload, err := svc.Ask(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Ask err: %v", err)
	}
	if got, _ := payload.Text(chat.FieldMessage); got != "reach x@y.dev" {
		t.Fatalf("message field should be untouched, got %q", got)
	}
	if _, ok := payload[chat.FieldResponse]; ok {
		t.Fatal("response field should not be added")
	}
}

func TestServiceAskWrapsUpstreamFailure(t *testing.T) {
	cause := errors.New("connection refused")
	svc := newService(&fakeAnswerer{err: cause})

	_, err := svc.Ask(context.Background(), "hi")
	if !errors.Is(err, chatservice.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be wrapped, got %v", err)
	}
}
