package models

// SupportMessage is a contact-support submission from the app.
// Username and email are optional; the message body is required.
type SupportMessage struct {
	ID          int64  `json:"id"`
	Username    string `json:"username,omitempty"`
	Email       string `json:"email,omitempty"`
	Message     string `json:"message"`
	SubmittedAt string `json:"submitted_at"`
}
