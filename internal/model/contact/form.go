package contact

// Form is the contact form submitted from the portfolio page.
type Form struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

// EmailParams are the template parameters handed to the email delivery service.
type EmailParams struct {
	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	ToEmail   string `json:"to_email"`
	ReplyTo   string `json:"reply_to"`
}
