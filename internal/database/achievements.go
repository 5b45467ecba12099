package database

import (
	"context"

	"remindme/internal/events"
	"remindme/internal/models"
)

// GetAchievementsForUser returns one view per catalog entry for the
// user. The first access materializes a progress row per catalog entry
// at progress 0; the UNIQUE (username, achievement_id) index makes the
// insert-if-absent safe under concurrent first access.
//
// Progress advancement has no call site anywhere in the system; this
// store is read/initialize only.
func (db *DB) GetAchievementsForUser(ctx context.Context, username string) ([]models.AchievementView, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO achievements (username, achievement_id, progress, unlocked)
		SELECT ?, achievement_id, 0, 0 FROM achievements_meta
		WHERE true
		ON CONFLICT(username, achievement_id) DO NOTHING`, username)
	if err != nil {
		return nil, err
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT m.achievement_id, m.title, m.description, m.goal, a.progress, a.unlocked
		FROM achievements_meta m
		JOIN achievements a ON m.achievement_id = a.achievement_id
		WHERE a.username = ?
		ORDER BY m.achievement_id`, username)
	if err != nil {
		return nil, err
	}

	views := make([]models.AchievementView, 0)
	for rows.Next() {
		var v models.AchievementView
		if err := rows.Scan(&v.ID, &v.Title, &v.Description, &v.Goal, &v.Progress, &v.Unlocked); err != nil {
			rows.Close()
			return nil, err
		}
		v.Percent = models.AchievementPercent(v.Progress, v.Goal)
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	if inserted, _ := res.RowsAffected(); inserted > 0 {
		db.publish(events.AchievementsInitialized, map[string]any{
			"username": username,
			"rows":     inserted,
		})
	}
	return views, nil
}

// GetAchievementCatalog returns the fixed catalog entries.
func (db *DB) GetAchievementCatalog(ctx context.Context) ([]models.AchievementMeta, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT achievement_id, title, description, goal
		FROM achievements_meta ORDER BY achievement_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	catalog := make([]models.AchievementMeta, 0)
	for rows.Next() {
		var m models.AchievementMeta
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.Goal); err != nil {
			return nil, err
		}
		catalog = append(catalog, m)
	}
	return catalog, rows.Err()
}
