package contact

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/zhouzirui/clio/backend/internal/model/contact"
)

type recordingMailer struct {
	calls []contact.EmailParams
	err   error
}

func (m *recordingMailer) Send(_ context.Context, params contact.EmailParams) error {
	m.calls = append(m.calls, params)
	return m.err
}

func validForm() contact.Form {
	return contact.Form{
		Name:    "  Ada  ",
		Email:   "ada@example.com",
		Subject: "Hello",
		Message: "Loved the portfolio.",
	}
}

func TestSubmitSendsParams(t *testing.T) {
	mailer := &recordingMailer{}
	svc := NewService(mailer, "owner@example.com")

	if err := svc.Submit(context.Background(), validForm()); err != nil {
		t.Fatalf("Submit err: %v", err)
	}
	if len(mailer.calls) != 1 {
		t.Fatalf("expected 1 send, got %d", len(mailer.calls))
	}
	got := mailer.calls[0]
	if got.FromName != "Ada" || got.ReplyTo != "ada@example.com" || got.ToEmail != "owner@example.com" {
		t.Fatalf("unexpected params %+v", got)
	}
}

func TestSubmitRejectsInvalidForm(t *testing.T) {
	mailer := &recordingMailer{}
	svc := NewService(mailer, "owner@example.com")

	form := validForm()
	form.Email = "not-an-address"
	form.Message = "   "

	err := svc.Submit(context.Background(), form)
	if !errors.Is(err, ErrInvalidForm) {
		t.Fatalf("expected ErrInvalidForm, got %v", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Fields["email"] != "email" || verr.Fields["message"] != "required" {
		t.Fatalf("unexpected fields %v", verr.Fields)
	}
	if len(mailer.calls) != 0 {
		t.Fatal("invalid form must not be sent")
	}
}

func TestSubmitDeliveryFailure(t *testing.T) {
	svc := NewService(&recordingMailer{err: errors.New("boom")}, "owner@example.com")
	if err := svc.Submit(context.Background(), validForm()); !errors.Is(err, ErrDelivery) {
		t.Fatalf("expected ErrDelivery, got %v", err)
	}
}

func TestEmailJSMailerSend(t *testing.T) {
	var body emailJSRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != emailJSSendPath || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	mailer := NewEmailJSMailer(EmailJSConfig{
		BaseURL:    srv.URL + "/",
		ServiceID:  "svc",
		TemplateID: "tpl",
		PublicKey:  "pub",
		PrivateKey: "priv",
		Timeout:    time.Second,
	})

	params := contact.EmailParams{FromName: "Ada", FromEmail: "ada@example.com", ToEmail: "owner@example.com"}
	if err := mailer.Send(context.Background(), params); err != nil {
		t.Fatalf("Send err: %v", err)
	}
	if body.ServiceID != "svc" || body.TemplateID != "tpl" || body.UserID != "pub" || body.AccessToken != "priv" {
		t.Fatalf("unexpected body %+v", body)
	}
	if body.TemplateParams.FromName != "Ada" {
		t.Fatalf("unexpected template params %+v", body.TemplateParams)
	}
}

func TestEmailJSMailerStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "The user ID is invalid", http.StatusBadRequest)
	}))
	defer srv.Close()

	mailer := NewEmailJSMailer(EmailJSConfig{BaseURL: srv.URL, Timeout: time.Second})
	if err := mailer.Send(context.Background(), contact.EmailParams{}); err == nil {
		t.Fatal("expected error for 400 response")
	}
}
