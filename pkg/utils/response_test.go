package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRespondJSONKeepsMarkup(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusOK, map[string]string{"response": `<a href="mailto:a@b.com">a@b.com</a>`})

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
	want := `{"response":"<a href=\"mailto:a@b.com\">a@b.com</a>"}` + "\n"
	if rec.Body.String() != want {
		t.Fatalf("got %q want %q", rec.Body.String(), want)
	}
}

func TestRespondFieldErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondFieldErrors(rec, http.StatusBadRequest, "Invalid contact form", map[string]string{"email": "email"})

	if !strings.Contains(rec.Body.String(), `"fields":{"email":"email"}`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Query string `json:"query"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"query":"hi"}`))
	if err := DecodeJSON(r, &v); err != nil || v.Query != "hi" {
		t.Fatalf("DecodeJSON = %v, %+v", err, v)
	}

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"query":"hi"}{"query":"again"}`))
	if err := DecodeJSON(r, &v); err == nil {
		t.Fatal("expected trailing data error")
	}
}
