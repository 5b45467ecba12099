package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUserDefaults(t *testing.T) {
	u := NewUser("alice", "secret")

	assert.True(t, u.DarkMode)
	assert.True(t, u.SoundEnabled)
	assert.Equal(t, "default", u.NotificationSound)
	assert.False(t, u.NotificationsEnabled)
	assert.False(t, u.DailyReminder)
	assert.False(t, u.LockScreenEnabled)
	assert.Empty(t, u.Email)
	assert.Empty(t, u.Phone)
}

func TestProfileUpdateWantsRename(t *testing.T) {
	name := "bob"
	same := "alice"
	empty := ""

	assert.True(t, (&ProfileUpdate{Username: "alice", NewUsername: &name}).WantsRename())
	assert.False(t, (&ProfileUpdate{Username: "alice", NewUsername: &same}).WantsRename())
	assert.False(t, (&ProfileUpdate{Username: "alice", NewUsername: &empty}).WantsRename())
	assert.False(t, (&ProfileUpdate{Username: "alice"}).WantsRename())
}

func TestReminderDefaultsAndRecurring(t *testing.T) {
	r := Reminder{}
	r.ApplyDefaults()
	assert.Equal(t, DefaultCategory, r.Category)
	assert.Equal(t, RecurringNone, r.Recurring)
	assert.False(t, r.IsRecurring())

	r.Recurring = RecurringWeekly
	assert.True(t, r.IsRecurring())
}

func TestAchievementPercent(t *testing.T) {
	assert.Equal(t, 0, AchievementPercent(0, 5))
	assert.Equal(t, 40, AchievementPercent(2, 5))
	assert.Equal(t, 100, AchievementPercent(5, 5))
	assert.Equal(t, 100, AchievementPercent(12, 5)) // capped
	assert.Equal(t, 66, AchievementPercent(2, 3))   // floored
	assert.Equal(t, 0, AchievementPercent(3, 0))    // zero goal guarded
}
