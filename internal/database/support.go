package database

import (
	"context"

	"remindme/internal/models"
)

// CreateSupportMessage stores a contact-support submission.
func (db *DB) CreateSupportMessage(ctx context.Context, m *models.SupportMessage) error {
	m.SubmittedAt = nowUTC()
	res, err := db.ExecContext(ctx, `
		INSERT INTO support_messages (username, email, message, submitted_at)
		VALUES (?, ?, ?, ?)`,
		m.Username, m.Email, m.Message, m.SubmittedAt)
	if err != nil {
		return err
	}
	m.ID, err = res.LastInsertId()
	return err
}
