package api

import (
	"fmt"
	"net/http"
	"time"

	"remindme/internal/audit"
	"remindme/internal/metrics"
)

// handleAdminExport streams an xlsx workbook with one sheet per table.
// Requires the configured x-api-key; disabled when no key is set.
// GET /admin/export
func (s *HTTPServer) handleAdminExport(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("admin_export")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use GET")
		return
	}
	if s.apiKey == "" || s.audit == nil {
		writeError(w, http.StatusServiceUnavailable, "admin API disabled")
		return
	}
	if r.Header.Get("x-api-key") != s.apiKey {
		writeError(w, http.StatusUnauthorized, "invalid API key")
		return
	}

	ctx, cancel := contextWithTimeout(r, time.Minute)
	defer cancel()

	filename := audit.GenerateFilename(time.Now())
	w.Header().Set("Content-Type",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", filename))

	if err := s.audit.Export(ctx, w); err != nil {
		// Headers are already out; all we can do is log.
		s.logger.Error().Err(err).Msg("audit export failed")
	}
}
