package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"remindme/internal/events"
	"remindme/internal/models"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

// Sentinel errors surfaced to the API layer as client errors.
// Anything else coming out of the store is a storage error.
var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("new username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrReminderNotFound   = errors.New("reminder not found")
)

// createdAtLayout is the UTC ISO-8601 layout used for created_at and
// submitted_at columns. Fixed-width fractional seconds keep the values
// lexicographically ordered.
const createdAtLayout = "2006-01-02T15:04:05.000000Z07:00"

// DB represents the SQLite store.
type DB struct {
	*sql.DB
	path   string
	logger *zerolog.Logger
	bus    *events.Bus
}

// NewDB opens (creating if needed) the SQLite database at path, creates
// the schema and seeds the achievement catalog.
func NewDB(path string, logger *zerolog.Logger) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// WAL mode and a busy timeout so concurrent requests queue instead of failing.
	dsn := path + "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	instance := &DB{
		DB:     db,
		path:   path,
		logger: logger,
	}

	if err := instance.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	if err := instance.seedAchievementCatalog(); err != nil {
		return nil, fmt.Errorf("failed to seed achievement catalog: %w", err)
	}

	logger.Info().Str("path", path).Msg("Database initialized")
	return instance, nil
}

// createTables creates the full schema. The store owns a single
// versioned schema; there is no incremental ALTER patching.
func (db *DB) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			dark_mode INTEGER DEFAULT 1,
			email TEXT DEFAULT '',
			phone TEXT DEFAULT '',
			notifications_enabled INTEGER DEFAULT 0,
			daily_reminder INTEGER DEFAULT 0,
			sound_enabled INTEGER DEFAULT 1,
			notification_sound TEXT DEFAULT 'default',
			lock_screen_enabled INTEGER DEFAULT 0
		)`,

		// Reminders reference users by name without a FOREIGN KEY; the
		// stores cascade renames and deletes transactionally instead.
		`CREATE TABLE IF NOT EXISTS reminders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user TEXT NOT NULL,
			title TEXT NOT NULL,
			time TEXT NOT NULL,
			category TEXT DEFAULT 'All',
			done INTEGER DEFAULT 0,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			recurring TEXT DEFAULT 'None'
		)`,

		`CREATE TABLE IF NOT EXISTS achievements_meta (
			achievement_id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			goal INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS achievements (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL,
			achievement_id INTEGER NOT NULL,
			unlocked INTEGER DEFAULT 0,
			progress INTEGER DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS support_messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT,
			email TEXT,
			message TEXT NOT NULL,
			submitted_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_reminders_user ON reminders(user)`,
		`CREATE INDEX IF NOT EXISTS idx_reminders_done ON reminders(done)`,

		// Uniqueness makes concurrent first-access initialization safe:
		// materialization is insert-if-absent, never check-then-insert.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_achievements_user_meta
			ON achievements(username, achievement_id)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}
	return nil
}

// defaultCatalog is the fixed achievement catalog seeded at startup.
var defaultCatalog = []models.AchievementMeta{
	{ID: 1, Title: "First Task Done", Description: "Complete your first task.", Goal: 1},
	{ID: 2, Title: "On a Roll", Description: "Complete 5 tasks.", Goal: 5},
	{ID: 3, Title: "Task Pro", Description: "Complete 25 tasks.", Goal: 25},
	{ID: 4, Title: "Early Bird", Description: "Add a reminder before 8 AM.", Goal: 1},
	{ID: 5, Title: "Task Master", Description: "Complete 100 tasks.", Goal: 100},
	{ID: 6, Title: "Loyal User", Description: "Open the app on 10 different days.", Goal: 10},
	{ID: 7, Title: "Relentless", Description: "Add 5 reminders in a single day.", Goal: 5},
	{ID: 8, Title: "Full Streak", Description: "Complete tasks 3 days in a row.", Goal: 3},
}

// seedAchievementCatalog inserts the fixed catalog entries if the
// catalog table is empty. Idempotent across restarts.
func (db *DB) seedAchievementCatalog() error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM achievements_meta`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, meta := range defaultCatalog {
		if _, err := tx.Exec(
			`INSERT INTO achievements_meta (achievement_id, title, description, goal) VALUES (?, ?, ?, ?)`,
			meta.ID, meta.Title, meta.Description, meta.Goal,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// SetEventBus attaches a bus the stores publish domain events to.
// Optional; a nil bus means events are dropped.
func (db *DB) SetEventBus(bus *events.Bus) {
	db.bus = bus
}

func (db *DB) publish(eventType string, fields map[string]any) {
	if db.bus != nil {
		db.bus.Publish(eventType, fields)
	}
}

// Path returns the on-disk location of the database file.
func (db *DB) Path() string {
	return db.path
}

func (db *DB) Close() error {
	return db.DB.Close()
}

// nowUTC returns the current UTC instant formatted for created_at columns.
func nowUTC() string {
	return time.Now().UTC().Format(createdAtLayout)
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	var sErr sqlite3.Error
	return errors.As(err, &sErr) && sErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
