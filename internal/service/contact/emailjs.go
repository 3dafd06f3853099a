package contact

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/zhouzirui/clio/backend/internal/model/contact"
)

const emailJSSendPath = "/api/v1.0/email/send"

// EmailJSConfig holds the EmailJS account identifiers.
type EmailJSConfig struct {
	BaseURL    string
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string
	Timeout    time.Duration
}

type emailJSRequest struct {
	ServiceID      string              `json:"service_id"`
	TemplateID     string              `json:"template_id"`
	UserID         string              `json:"user_id"`
	AccessToken    string              `json:"accessToken,omitempty"`
	TemplateParams contact.EmailParams `json:"template_params"`
}

// EmailJSMailer sends contact messages through the EmailJS REST API.
type EmailJSMailer struct {
	http *resty.Client
	cfg  EmailJSConfig
}

// NewEmailJSMailer creates a Mailer backed by EmailJS.
func NewEmailJSMailer(cfg EmailJSConfig) *EmailJSMailer {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	return &EmailJSMailer{http: httpClient, cfg: cfg}
}

// Send posts the template parameters to EmailJS.
func (m *EmailJSMailer) Send(ctx context.Context, params contact.EmailParams) error {
	resp, err := m.http.R().
		SetContext(ctx).
		SetBody(emailJSRequest{
			ServiceID:      m.cfg.ServiceID,
			TemplateID:     m.cfg.TemplateID,
			UserID:         m.cfg.PublicKey,
			AccessToken:    m.cfg.PrivateKey,
			TemplateParams: params,
		}).
		Post(emailJSSendPath)
	if err != nil {
		return fmt.Errorf("emailjs request: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("emailjs responded with status %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
	return nil
}
