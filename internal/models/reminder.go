package models

// Recurrence cadences a reminder can carry. Anything else is treated
// as RecurringNone by the scheduling logic.
const (
	RecurringNone    = "None"
	RecurringDaily   = "Daily"
	RecurringWeekly  = "Weekly"
	RecurringMonthly = "Monthly"
)

// DefaultCategory is applied when a reminder is created without one.
const DefaultCategory = "All"

// Reminder is a single scheduled occurrence. Completing a recurring
// reminder never mutates it forward; a fresh sibling row is inserted
// instead and the completed row stays done.
type Reminder struct {
	ID        int64  `json:"id"`
	User      string `json:"user"`
	Title     string `json:"title"`
	Time      string `json:"time"` // 12-hour wall clock, e.g. "9:00 AM"
	Category  string `json:"category"`
	Done      bool   `json:"done"`
	CreatedAt string `json:"created_at"` // UTC ISO-8601, set at insert
	Recurring string `json:"recurring"`
}

// IsRecurring reports whether completing this reminder should schedule
// a next occurrence.
func (r *Reminder) IsRecurring() bool {
	return r.Recurring != "" && r.Recurring != RecurringNone
}

// ApplyDefaults fills fields that legacy rows may be missing.
func (r *Reminder) ApplyDefaults() {
	if r.Category == "" {
		r.Category = DefaultCategory
	}
	if r.Recurring == "" {
		r.Recurring = RecurringNone
	}
}
