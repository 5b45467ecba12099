package models

// User represents a registered account together with its preference profile.
// The password is stored and compared as an opaque string.
type User struct {
	ID                   int64  `json:"id"`
	Username             string `json:"username"`
	Password             string `json:"-"`
	DarkMode             bool   `json:"dark_mode"`
	Email                string `json:"email"`
	Phone                string `json:"phone"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
	DailyReminder        bool   `json:"daily_reminder"`
	SoundEnabled         bool   `json:"sound_enabled"`
	NotificationSound    string `json:"notification_sound"`
	LockScreenEnabled    bool   `json:"lock_screen_enabled"`
}

// NewUser builds an account with the default preference profile:
// dark mode and sound on, everything else off, "default" notification sound.
func NewUser(username, password string) *User {
	return &User{
		Username:          username,
		Password:          password,
		DarkMode:          true,
		SoundEnabled:      true,
		NotificationSound: "default",
	}
}

// ProfileUpdate carries a partial profile change. Nil fields mean
// "leave unchanged", not "reset"; only non-nil fields are applied.
type ProfileUpdate struct {
	Username             string  `json:"username"`
	NewUsername          *string `json:"new_username,omitempty"`
	Password             *string `json:"password,omitempty"`
	DarkMode             *bool   `json:"dark_mode,omitempty"`
	Email                *string `json:"email,omitempty"`
	Phone                *string `json:"phone,omitempty"`
	NotificationsEnabled *bool   `json:"notifications_enabled,omitempty"`
	DailyReminder        *bool   `json:"daily_reminder,omitempty"`
	SoundEnabled         *bool   `json:"sound_enabled,omitempty"`
	NotificationSound    *string `json:"notification_sound,omitempty"`
	LockScreenEnabled    *bool   `json:"lock_screen_enabled,omitempty"`
}

// WantsRename reports whether the update asks for a username change.
func (u *ProfileUpdate) WantsRename() bool {
	return u.NewUsername != nil && *u.NewUsername != "" && *u.NewUsername != u.Username
}
