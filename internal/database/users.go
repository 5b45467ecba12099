package database

import (
	"context"
	"database/sql"
	"errors"

	"remindme/internal/events"
	"remindme/internal/models"
)

// CreateUser registers a new account with the default preference
// profile. Returns ErrUserExists if the username is taken.
func (db *DB) CreateUser(ctx context.Context, username, password string) error {
	u := models.NewUser(username, password)
	_, err := db.ExecContext(ctx, `
		INSERT INTO users (username, password, dark_mode, email, phone,
			notifications_enabled, daily_reminder, sound_enabled,
			notification_sound, lock_screen_enabled)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Username, u.Password, u.DarkMode, u.Email, u.Phone,
		u.NotificationsEnabled, u.DailyReminder, u.SoundEnabled,
		u.NotificationSound, u.LockScreenEnabled)
	if isUniqueViolation(err) {
		return ErrUserExists
	}
	if err != nil {
		return err
	}

	db.publish(events.UserRegistered, map[string]any{"username": username})
	return nil
}

// VerifyCredentials checks a login attempt. The stored password is an
// opaque string compared verbatim; any mismatch or unknown username is
// ErrInvalidCredentials.
func (db *DB) VerifyCredentials(ctx context.Context, username, password string) error {
	var id int64
	err := db.QueryRowContext(ctx,
		`SELECT id FROM users WHERE username = ? AND password = ?`,
		username, password).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrInvalidCredentials
	}
	return err
}

// GetProfile returns the full preference set for a user, with NULL or
// empty columns surfaced as their documented defaults.
func (db *DB) GetProfile(ctx context.Context, username string) (*models.User, error) {
	row := db.QueryRowContext(ctx, `
		SELECT id, username, dark_mode, email, phone,
		       notifications_enabled, daily_reminder, sound_enabled,
		       notification_sound, lock_screen_enabled
		FROM users WHERE username = ?`, username)

	var (
		u             models.User
		email, phone  sql.NullString
		sound         sql.NullString
		darkMode      sql.NullBool
		notifications sql.NullBool
		daily         sql.NullBool
		soundEnabled  sql.NullBool
		lockScreen    sql.NullBool
	)
	err := row.Scan(&u.ID, &u.Username, &darkMode, &email, &phone,
		&notifications, &daily, &soundEnabled, &sound, &lockScreen)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	u.DarkMode = darkMode.Bool
	u.Email = email.String
	u.Phone = phone.String
	u.NotificationsEnabled = notifications.Bool
	u.DailyReminder = daily.Bool
	u.SoundEnabled = soundEnabled.Bool
	u.LockScreenEnabled = lockScreen.Bool
	u.NotificationSound = sound.String
	if u.NotificationSound == "" {
		u.NotificationSound = "default"
	}
	return &u, nil
}

// UpdateProfile applies a partial profile update and returns the
// username the account ends up with. A rename is applied first and
// cascades to every reminder row owned by the old name inside the same
// transaction; all subsequent field updates target the new name.
func (db *DB) UpdateProfile(ctx context.Context, upd *models.ProfileUpdate) (string, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	username := upd.Username

	var id int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM users WHERE username = ?`, username).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", err
	}

	if upd.WantsRename() {
		newName := *upd.NewUsername
		_, err = tx.ExecContext(ctx,
			`UPDATE users SET username = ? WHERE username = ?`, newName, username)
		if isUniqueViolation(err) {
			return "", ErrUsernameTaken
		}
		if err != nil {
			return "", err
		}
		if _, err = tx.ExecContext(ctx,
			`UPDATE reminders SET user = ? WHERE user = ?`, newName, username); err != nil {
			return "", err
		}
		username = newName
	}

	// An empty password means "leave unchanged", matching the original
	// client which omits the field rather than sending "".
	if upd.Password != nil && *upd.Password != "" {
		if err = setUserField(ctx, tx, username, "password", *upd.Password); err != nil {
			return "", err
		}
	}
	if upd.DarkMode != nil {
		if err = setUserField(ctx, tx, username, "dark_mode", *upd.DarkMode); err != nil {
			return "", err
		}
	}
	if upd.Email != nil {
		if err = setUserField(ctx, tx, username, "email", *upd.Email); err != nil {
			return "", err
		}
	}
	if upd.Phone != nil {
		if err = setUserField(ctx, tx, username, "phone", *upd.Phone); err != nil {
			return "", err
		}
	}
	if upd.NotificationsEnabled != nil {
		if err = setUserField(ctx, tx, username, "notifications_enabled", *upd.NotificationsEnabled); err != nil {
			return "", err
		}
	}
	if upd.DailyReminder != nil {
		if err = setUserField(ctx, tx, username, "daily_reminder", *upd.DailyReminder); err != nil {
			return "", err
		}
	}
	if upd.SoundEnabled != nil {
		if err = setUserField(ctx, tx, username, "sound_enabled", *upd.SoundEnabled); err != nil {
			return "", err
		}
	}
	if upd.NotificationSound != nil {
		if err = setUserField(ctx, tx, username, "notification_sound", *upd.NotificationSound); err != nil {
			return "", err
		}
	}
	if upd.LockScreenEnabled != nil {
		if err = setUserField(ctx, tx, username, "lock_screen_enabled", *upd.LockScreenEnabled); err != nil {
			return "", err
		}
	}

	if err = tx.Commit(); err != nil {
		return "", err
	}
	return username, nil
}

// userColumns whitelists the columns setUserField may touch.
var userColumns = map[string]bool{
	"password":              true,
	"dark_mode":             true,
	"email":                 true,
	"phone":                 true,
	"notifications_enabled": true,
	"daily_reminder":        true,
	"sound_enabled":         true,
	"notification_sound":    true,
	"lock_screen_enabled":   true,
}

func setUserField(ctx context.Context, tx *sql.Tx, username, column string, value any) error {
	if !userColumns[column] {
		return errors.New("unknown user column: " + column)
	}
	_, err := tx.ExecContext(ctx,
		`UPDATE users SET `+column+` = ? WHERE username = ?`, value, username)
	return err
}

// DeleteUser removes the account and every reminder it owns in one
// transaction. The reminder cascade commits even when the user row did
// not exist; ErrUserNotFound is reported in that case regardless.
func (db *DB) DeleteUser(ctx context.Context, username string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	reminders, err := tx.ExecContext(ctx, `DELETE FROM reminders WHERE user = ?`, username)
	if err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE username = ?`, username)
	if err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return err
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ErrUserNotFound
	}

	cascaded, _ := reminders.RowsAffected()
	db.publish(events.UserDeleted, map[string]any{
		"username":          username,
		"reminders_deleted": cascaded,
	})
	return nil
}
