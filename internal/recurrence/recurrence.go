// Package recurrence computes the next occurrence of a recurring
// reminder from its 12-hour wall-clock time and cadence. Dates are
// naive local time; only the hour and minute of the result are kept.
package recurrence

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"remindme/internal/models"
)

var clockRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*(AM|PM)$`)

// ParseClock parses "H:MM AM/PM" (hour 1-12, two-digit minute,
// case-sensitive marker) into 24-hour parts. ok is false for any
// non-matching string; callers treat that as "leave unchanged".
func ParseClock(s string) (hour, minute int, ok bool) {
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	if hour < 1 || hour > 12 || minute > 59 {
		return 0, 0, false
	}
	if m[3] == "PM" && hour != 12 {
		hour += 12
	}
	if m[3] == "AM" && hour == 12 {
		hour = 0
	}
	return hour, minute, true
}

// FormatClock renders 24-hour parts as "H:MM AM/PM". Hours 0 and 12
// both render as "12"; the minute is always two digits.
func FormatClock(hour, minute int) string {
	marker := "AM"
	if hour >= 12 {
		marker = "PM"
	}
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour12, minute, marker)
}

// NextOccurrence returns the wall-clock time string of the next
// occurrence after advancing timeStr by one cadence step from now's
// date. Unparseable times and unknown cadences are returned unchanged.
//
// Monthly advances to the same day in the next calendar month with
// the day clamped to 28, sidestepping variable month lengths. The
// computed date is discarded; only hour:minute survives.
func NextOccurrence(timeStr, cadence string, now time.Time) string {
	hour, minute, ok := ParseClock(timeStr)
	if !ok {
		return timeStr
	}

	base := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())

	var next time.Time
	switch cadence {
	case models.RecurringDaily:
		next = base.AddDate(0, 0, 1)
	case models.RecurringWeekly:
		next = base.AddDate(0, 0, 7)
	case models.RecurringMonthly:
		year, month := base.Year(), base.Month()+1
		if month > time.December {
			month = time.January
			year++
		}
		day := base.Day()
		if day > 28 {
			day = 28
		}
		next = time.Date(year, month, day, hour, minute, 0, 0, base.Location())
	default:
		return timeStr
	}

	return FormatClock(next.Hour(), next.Minute())
}
