package api

import (
	"net/http"

	"remindme/internal/metrics"
	"remindme/internal/models"
)

// SupportRequest is the body for POST /support.
type SupportRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Message  string `json:"message"`
}

// handleSupport stores a contact-support submission.
// POST /support
func (s *HTTPServer) handleSupport(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("support")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}

	var req SupportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "Missing message")
		return
	}

	msg := models.SupportMessage{
		Username: req.Username,
		Email:    req.Email,
		Message:  req.Message,
	}
	if err := s.db.CreateSupportMessage(r.Context(), &msg); err != nil {
		s.storageError(w, r, err, "Failed to submit support message")
		return
	}

	writeSuccess(w, map[string]any{
		"message": "Support message received",
		"id":      msg.ID,
	})
}
