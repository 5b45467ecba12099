package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"remindme/internal/events"
	"remindme/internal/models"
	"remindme/internal/recurrence"
)

// CreateReminder inserts a new pending reminder. Field presence is the
// API layer's problem; the store fills defaults, done=false and a fresh
// UTC created_at, and sets ID and CreatedAt on the passed reminder.
func (db *DB) CreateReminder(ctx context.Context, r *models.Reminder) error {
	r.ApplyDefaults()
	r.Done = false
	r.CreatedAt = nowUTC()

	res, err := db.ExecContext(ctx, `
		INSERT INTO reminders (user, title, time, category, recurring, done, created_at)
		VALUES (?, ?, ?, ?, ?, 0, ?)`,
		r.User, r.Title, r.Time, r.Category, r.Recurring, r.CreatedAt)
	if err != nil {
		return err
	}
	r.ID, err = res.LastInsertId()
	if err != nil {
		return err
	}

	db.publish(events.ReminderCreated, map[string]any{
		"id":   r.ID,
		"user": r.User,
	})
	return nil
}

// ListReminders returns all reminders, or only those owned by user if
// user is non-empty. Defaults are applied for legacy rows with NULL
// category/done/recurring columns.
func (db *DB) ListReminders(ctx context.Context, user string) ([]models.Reminder, error) {
	query := `SELECT id, user, title, time, category, done, created_at, recurring FROM reminders`
	args := []any{}
	if user != "" {
		query += ` WHERE user = ?`
		args = append(args, user)
	}
	query += ` ORDER BY id`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reminders := make([]models.Reminder, 0)
	for rows.Next() {
		var (
			r                   models.Reminder
			category, recurring sql.NullString
			createdAt           sql.NullString
			done                sql.NullBool
		)
		if err := rows.Scan(&r.ID, &r.User, &r.Title, &r.Time,
			&category, &done, &createdAt, &recurring); err != nil {
			return nil, err
		}
		r.Category = category.String
		r.Recurring = recurring.String
		r.CreatedAt = createdAt.String
		r.Done = done.Bool
		r.ApplyDefaults()
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}

// ReminderUpdate carries the full replacement state for a reminder.
// Title and time presence is validated by the API layer; done,
// category and recurring arrive with their defaults already applied.
type ReminderUpdate struct {
	Title     string
	Time      string
	Done      bool
	Category  string
	Recurring string
}

// UpdateReminder applies the update to the reminder with the given id.
// On the done false→true transition of a recurring reminder, the next
// occurrence is computed and inserted as a fresh pending row owned by
// the original user, inside the same transaction: either both rows
// land or neither does.
func (db *DB) UpdateReminder(ctx context.Context, id int64, upd ReminderUpdate) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var (
		oldDone bool
		user    string
	)
	err = tx.QueryRowContext(ctx,
		`SELECT done, user FROM reminders WHERE id = ?`, id).Scan(&oldDone, &user)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrReminderNotFound
	}
	if err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `
		UPDATE reminders SET title = ?, time = ?, done = ?, category = ?, recurring = ?
		WHERE id = ?`,
		upd.Title, upd.Time, upd.Done, upd.Category, upd.Recurring, id); err != nil {
		return err
	}

	completed := upd.Done && !oldDone
	rescheduled := false
	nextTime := ""

	if completed && upd.Recurring != models.RecurringNone {
		nextTime = recurrence.NextOccurrence(upd.Time, upd.Recurring, time.Now())
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO reminders (user, title, time, category, recurring, done, created_at)
			VALUES (?, ?, ?, ?, ?, 0, ?)`,
			user, upd.Title, nextTime, upd.Category, upd.Recurring, nowUTC()); err != nil {
			return err
		}
		rescheduled = true
	}

	if err = tx.Commit(); err != nil {
		return err
	}

	if completed {
		db.publish(events.ReminderCompleted, map[string]any{"id": id, "user": user})
	}
	if rescheduled {
		db.publish(events.ReminderRescheduled, map[string]any{
			"id":      id,
			"user":    user,
			"cadence": upd.Recurring,
			"time":    nextTime,
		})
	}
	return nil
}

// DeleteReminder removes the reminder with the given id.
func (db *DB) DeleteReminder(ctx context.Context, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM reminders WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrReminderNotFound
	}

	db.publish(events.ReminderDeleted, map[string]any{"id": id})
	return nil
}
