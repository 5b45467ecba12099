package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"remindme/internal/database"
	"remindme/internal/metrics"
	"remindme/internal/models"
)

// AddScheduleRequest is the body for POST /add_schedule.
type AddScheduleRequest struct {
	User      string `json:"user"`
	Title     string `json:"title"`
	Time      string `json:"time"`
	Category  string `json:"category"`
	Recurring string `json:"recurring"`
}

// UpdateScheduleRequest is the body for PUT /update_schedule/{id}.
// Title and time are required; pointers distinguish absent from empty.
type UpdateScheduleRequest struct {
	Title     *string  `json:"title"`
	Time      *string  `json:"time"`
	Done      doneFlag `json:"done"`
	Category  string   `json:"category"`
	Recurring string   `json:"recurring"`
}

// doneFlag accepts both JSON booleans and the 0/1 numbers the mobile
// client sends for the done state.
type doneFlag bool

func (d *doneFlag) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*d = doneFlag(b)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*d = n != 0
		return nil
	}
	return fmt.Errorf("invalid done value %s", data)
}

// handleAddSchedule creates a new pending reminder.
// POST /add_schedule
func (s *HTTPServer) handleAddSchedule(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("add_schedule")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}

	var req AddScheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.User == "" || req.Title == "" || req.Time == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	reminder := models.Reminder{
		User:      req.User,
		Title:     req.Title,
		Time:      req.Time,
		Category:  req.Category,
		Recurring: req.Recurring,
	}
	if err := s.db.CreateReminder(r.Context(), &reminder); err != nil {
		s.storageError(w, r, err, "Failed to add reminder")
		return
	}

	writeSuccess(w, map[string]any{
		"message": "Reminder added",
		"id":      reminder.ID,
	})
}

// handleActivities lists reminders, optionally for a single user.
// GET /activities?user=alice
func (s *HTTPServer) handleActivities(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("activities")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use GET")
		return
	}

	reminders, err := s.db.ListReminders(r.Context(), r.URL.Query().Get("user"))
	if err != nil {
		s.storageError(w, r, err, "Failed to list reminders")
		return
	}

	writeSuccess(w, map[string]any{
		"count":     len(reminders),
		"reminders": reminders,
	})
}

// handleUpdateSchedule replaces a reminder's fields. Marking a
// recurring reminder done schedules its next occurrence atomically.
// PUT /update_schedule/{id}
func (s *HTTPServer) handleUpdateSchedule(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("update_schedule")
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use PUT")
		return
	}

	id, ok := pathID(r.URL.Path, "/update_schedule/")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid reminder id")
		return
	}

	var req UpdateScheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Title == nil || req.Time == nil {
		writeError(w, http.StatusBadRequest, "Missing title or time")
		return
	}

	upd := database.ReminderUpdate{
		Title:     *req.Title,
		Time:      *req.Time,
		Done:      bool(req.Done),
		Category:  req.Category,
		Recurring: req.Recurring,
	}
	if upd.Category == "" {
		upd.Category = models.DefaultCategory
	}
	if upd.Recurring == "" {
		upd.Recurring = models.RecurringNone
	}

	err := s.db.UpdateReminder(r.Context(), id, upd)
	if errors.Is(err, database.ErrReminderNotFound) {
		writeError(w, http.StatusNotFound, "Reminder not found")
		return
	}
	if err != nil {
		s.storageError(w, r, err, "Failed to update reminder")
		return
	}

	writeSuccess(w, nil)
}

// handleDeleteSchedule removes a single reminder.
// DELETE /delete_schedule/{id}
func (s *HTTPServer) handleDeleteSchedule(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("delete_schedule")
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use DELETE")
		return
	}

	id, ok := pathID(r.URL.Path, "/delete_schedule/")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid reminder id")
		return
	}

	err := s.db.DeleteReminder(r.Context(), id)
	if errors.Is(err, database.ErrReminderNotFound) {
		writeError(w, http.StatusNotFound, "Reminder not found")
		return
	}
	if err != nil {
		s.storageError(w, r, err, "Failed to delete reminder")
		return
	}

	writeSuccess(w, map[string]any{
		"message": fmt.Sprintf("Reminder %d deleted", id),
	})
}
