package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remindme/internal/events"
	"remindme/internal/models"
)

func TestCreateReminderDefaults(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	r := models.Reminder{User: "alice", Title: "Water plants", Time: "9:00 AM"}
	require.NoError(t, db.CreateReminder(ctx, &r))

	assert.Positive(t, r.ID)
	assert.Equal(t, models.DefaultCategory, r.Category)
	assert.Equal(t, models.RecurringNone, r.Recurring)
	assert.False(t, r.Done)
	assert.NotEmpty(t, r.CreatedAt)

	createdAt, err := time.Parse(createdAtLayout, r.CreatedAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), createdAt, time.Minute)
}

func TestListRemindersFilter(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for _, user := range []string{"alice", "alice", "bob"} {
		require.NoError(t, db.CreateReminder(ctx, &models.Reminder{
			User: user, Title: "Task", Time: "9:00 AM",
		}))
	}

	all, err := db.ListReminders(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	alice, err := db.ListReminders(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, alice, 2)

	nobody, err := db.ListReminders(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, nobody)
}

func TestUpdateReminderNotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.UpdateReminder(context.Background(), 9999, ReminderUpdate{
		Title: "X", Time: "9:00 AM",
		Category: models.DefaultCategory, Recurring: models.RecurringNone,
	})
	assert.ErrorIs(t, err, ErrReminderNotFound)
}

func TestCompleteNonRecurringInsertsNothing(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	r := models.Reminder{User: "alice", Title: "One-off", Time: "9:00 AM"}
	require.NoError(t, db.CreateReminder(ctx, &r))

	require.NoError(t, db.UpdateReminder(ctx, r.ID, ReminderUpdate{
		Title: "One-off", Time: "9:00 AM", Done: true,
		Category: models.DefaultCategory, Recurring: models.RecurringNone,
	}))

	reminders, err := db.ListReminders(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.True(t, reminders[0].Done)
}

func TestCompleteDailyInsertsExactlyOneSibling(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	r := models.Reminder{
		User: "alice", Title: "Stretch", Time: "7:30 AM",
		Recurring: models.RecurringDaily,
	}
	require.NoError(t, db.CreateReminder(ctx, &r))

	require.NoError(t, db.UpdateReminder(ctx, r.ID, ReminderUpdate{
		Title: "Stretch", Time: "7:30 AM", Done: true,
		Category: models.DefaultCategory, Recurring: models.RecurringDaily,
	}))

	reminders, err := db.ListReminders(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, reminders, 2)

	original, next := reminders[0], reminders[1]
	assert.True(t, original.Done)
	assert.False(t, next.Done)
	assert.Equal(t, "7:30 AM", next.Time)
	assert.Equal(t, models.RecurringDaily, next.Recurring)
	assert.GreaterOrEqual(t, next.CreatedAt, original.CreatedAt)

	// Marking the already-done original again must not insert more rows.
	require.NoError(t, db.UpdateReminder(ctx, r.ID, ReminderUpdate{
		Title: "Stretch", Time: "7:30 AM", Done: true,
		Category: models.DefaultCategory, Recurring: models.RecurringDaily,
	}))
	reminders, err = db.ListReminders(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, reminders, 2)
}

func TestCompleteMonthlyPreservesTimeOfDay(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	r := models.Reminder{
		User: "alice", Title: "Pay rent", Time: "9:00 AM",
		Category: "Bills", Recurring: models.RecurringMonthly,
	}
	require.NoError(t, db.CreateReminder(ctx, &r))

	require.NoError(t, db.UpdateReminder(ctx, r.ID, ReminderUpdate{
		Title: "Pay rent", Time: "9:00 AM", Done: true,
		Category: "Bills", Recurring: models.RecurringMonthly,
	}))

	reminders, err := db.ListReminders(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, reminders, 2)

	original, next := reminders[0], reminders[1]
	assert.True(t, original.Done)
	assert.False(t, next.Done)
	assert.Equal(t, "9:00 AM", next.Time)
	assert.Equal(t, "Bills", next.Category)
	assert.Equal(t, models.RecurringMonthly, next.Recurring)

	origAt, err := time.Parse(createdAtLayout, original.CreatedAt)
	require.NoError(t, err)
	nextAt, err := time.Parse(createdAtLayout, next.CreatedAt)
	require.NoError(t, err)
	assert.False(t, nextAt.Before(origAt))
}

func TestDeleteReminder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	r := models.Reminder{User: "alice", Title: "Task", Time: "9:00 AM"}
	require.NoError(t, db.CreateReminder(ctx, &r))

	require.NoError(t, db.DeleteReminder(ctx, r.ID))
	assert.ErrorIs(t, db.DeleteReminder(ctx, r.ID), ErrReminderNotFound)
}

func TestReminderEventsPublished(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	bus := events.NewBus()
	var types []string
	bus.SubscribeAll(func(e events.Event) { types = append(types, e.Type) })
	db.SetEventBus(bus)

	r := models.Reminder{
		User: "alice", Title: "Stretch", Time: "7:30 AM",
		Recurring: models.RecurringDaily,
	}
	require.NoError(t, db.CreateReminder(ctx, &r))
	require.NoError(t, db.UpdateReminder(ctx, r.ID, ReminderUpdate{
		Title: "Stretch", Time: "7:30 AM", Done: true,
		Category: models.DefaultCategory, Recurring: models.RecurringDaily,
	}))

	assert.Equal(t, []string{
		events.ReminderCreated,
		events.ReminderCompleted,
		events.ReminderRescheduled,
	}, types)
}
