package api

import (
	"errors"
	"net/http"
	"strings"

	"remindme/internal/database"
	"remindme/internal/metrics"
	"remindme/internal/models"
)

// CredentialsRequest is the body for POST /signup and POST /login.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleSignup registers a new account.
// POST /signup
func (s *HTTPServer) handleSignup(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("signup")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}

	var req CredentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Missing username or password")
		return
	}

	err := s.db.CreateUser(r.Context(), req.Username, req.Password)
	if errors.Is(err, database.ErrUserExists) {
		writeError(w, http.StatusBadRequest, "User already exists")
		return
	}
	if err != nil {
		s.storageError(w, r, err, "Failed to register user")
		return
	}

	writeSuccess(w, map[string]any{"message": "User registered"})
}

// handleLogin verifies credentials with a verbatim string compare.
// POST /login
func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("login")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}

	var req CredentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	err := s.db.VerifyCredentials(r.Context(), req.Username, req.Password)
	if errors.Is(err, database.ErrInvalidCredentials) {
		metrics.IncLogin("invalid")
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		s.storageError(w, r, err, "Failed to log in")
		return
	}

	metrics.IncLogin("success")
	writeSuccess(w, map[string]any{"message": "Login successful"})
}

// handleUserProfile returns the full preference set.
// GET /user_profile?username=alice
func (s *HTTPServer) handleUserProfile(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("user_profile")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use GET")
		return
	}

	username := r.URL.Query().Get("username")
	profile, err := s.db.GetProfile(r.Context(), username)
	if errors.Is(err, database.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		s.storageError(w, r, err, "Failed to load profile")
		return
	}

	writeSuccess(w, map[string]any{"profile": profile})
}

// handleUpdateProfile applies a partial profile update. Absent fields
// are left unchanged; a rename cascades to the user's reminders.
// PUT /update_profile
func (s *HTTPServer) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("update_profile")
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use PUT")
		return
	}

	var upd models.ProfileUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if upd.Username == "" {
		writeError(w, http.StatusBadRequest, "Username required")
		return
	}

	finalName, err := s.db.UpdateProfile(r.Context(), &upd)
	switch {
	case errors.Is(err, database.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User not found")
		return
	case errors.Is(err, database.ErrUsernameTaken):
		writeError(w, http.StatusBadRequest, "New username already taken")
		return
	case err != nil:
		s.storageError(w, r, err, "Failed to update profile")
		return
	}

	if finalName != upd.Username {
		s.cache.Invalidate(r.Context(),
			achievementsCacheKey(upd.Username), achievementsCacheKey(finalName))
	}

	writeSuccess(w, map[string]any{
		"message":  "Profile updated",
		"username": finalName,
	})
}

// handleDeleteUser removes the account and all its reminders.
// DELETE /delete_user/{username}
func (s *HTTPServer) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("delete_user")
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use DELETE")
		return
	}

	username := strings.TrimPrefix(r.URL.Path, "/delete_user/")
	if username == "" || strings.Contains(username, "/") {
		writeError(w, http.StatusBadRequest, "Missing username")
		return
	}

	err := s.db.DeleteUser(r.Context(), username)
	if errors.Is(err, database.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		s.storageError(w, r, err, "Failed to delete user")
		return
	}

	s.cache.Invalidate(r.Context(), achievementsCacheKey(username))
	writeSuccess(w, map[string]any{"message": "User deleted"})
}
