package mailer

// EmailJob is the JSON payload put on the RabbitMQ email queue.
// HTML is optional; Text is the fallback body.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}

// WelcomeEmail builds the signup welcome message.
func WelcomeEmail(to string) EmailJob {
	return EmailJob{
		To:      to,
		Subject: "Welcome to the product catalog",
		Text:    "Your account has been created. You can now log in and browse the catalog.",
	}
}
