package contact

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/zhouzirui/clio/backend/internal/model/contact"
)

var (
	ErrInvalidForm = errors.New("invalid contact form")
	ErrDelivery    = errors.New("contact delivery failed")
)

// ValidationError lists the failing form fields and the rule each one broke.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, rule := range e.Fields {
		parts = append(parts, field+":"+rule)
	}
	sort.Strings(parts)
	return fmt.Sprintf("invalid contact form (%s)", strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidForm
}

// Mailer delivers a rendered contact message.
type Mailer interface {
	Send(ctx context.Context, params contact.EmailParams) error
}

// Service validates contact submissions and hands them to a Mailer.
type Service struct {
	mailer   Mailer
	validate *validator.Validate
	toEmail  string
}

// NewService creates a contact service delivering to toEmail.
func NewService(mailer Mailer, toEmail string) *Service {
	return &Service{
		mailer:   mailer,
		validate: validator.New(),
		toEmail:  toEmail,
	}
}

// Submit validates the form and sends it.
func (s *Service) Submit(ctx context.Context, form contact.Form) error {
	form = normalize(form)

	if err := s.validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[jsonName(fe.Field())] = fe.Tag()
			}
			return &ValidationError{Fields: fields}
		}
		return fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}

	params := contact.EmailParams{
		FromName:  form.Name,
		FromEmail: form.Email,
		Subject:   form.Subject,
		Message:   form.Message,
		ToEmail:   s.toEmail,
		ReplyTo:   form.Email,
	}

	if err := s.mailer.Send(ctx, params); err != nil {
		log.Printf("[contact] delivery failed: %v", err)
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}

	log.Printf("[contact] message delivered from=%s", form.Email)
	return nil
}

func normalize(form contact.Form) contact.Form {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	form.Subject = strings.TrimSpace(form.Subject)
	form.Message = strings.TrimSpace(form.Message)
	return form
}

func jsonName(field string) string {
	return strings.ToLower(field)
}
