package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError emits the client-facing failure envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"status":  "fail",
		"message": message,
	})
}

// writeSuccess emits the success envelope with extra fields merged in.
func writeSuccess(w http.ResponseWriter, fields map[string]any) {
	body := map[string]any{"status": "success"}
	for k, v := range fields {
		body[k] = v
	}
	writeJSON(w, http.StatusOK, body)
}

// storageError hides the cause from the client; it is logged instead.
func (s *HTTPServer) storageError(w http.ResponseWriter, r *http.Request, err error, message string) {
	s.logger.Error().Err(err).
		Str("path", r.URL.Path).
		Str("request_id", w.Header().Get("X-Request-ID")).
		Msg("storage error")
	writeError(w, http.StatusInternalServerError, message)
}

// decodeJSON parses the body. Unknown fields are ignored; the mobile
// client sends more keys than any one handler reads.
func decodeJSON(r *http.Request, dest any) error {
	return json.NewDecoder(r.Body).Decode(dest)
}

func contextWithTimeout(r *http.Request, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), d)
}
