package models

// AchievementMeta is one entry of the fixed achievement catalog,
// seeded once at startup and immutable afterwards.
type AchievementMeta struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Goal        int64  `json:"goal"`
}

// AchievementView is a catalog entry joined with one user's progress.
type AchievementView struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Goal        int64  `json:"goal"`
	Progress    int64  `json:"progress"`
	Unlocked    bool   `json:"unlocked"`
	Percent     int    `json:"percent"`
}

// AchievementPercent returns completion as a whole percentage capped
// at 100. Catalog seeding guarantees a positive goal, but a zero or
// negative goal still yields 0 instead of dividing by zero.
func AchievementPercent(progress, goal int64) int {
	if goal <= 0 {
		return 0
	}
	p := progress * 100 / goal
	if p > 100 {
		p = 100
	}
	return int(p)
}
