package api

import (
	"net/http"

	"remindme/internal/metrics"
	"remindme/internal/models"
)

func achievementsCacheKey(username string) string {
	return "achievements:" + username
}

// handleUserAchievements returns the user's achievement views, lazily
// materializing progress rows on first access. Progress never advances
// in this system, so the response is safe to cache for a short TTL.
// GET /user_achievements?username=alice
func (s *HTTPServer) handleUserAchievements(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("user_achievements")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use GET")
		return
	}

	username := r.URL.Query().Get("username")
	if username == "" {
		writeError(w, http.StatusBadRequest, "Missing username")
		return
	}

	var views []models.AchievementView
	if s.cache.GetJSON(r.Context(), achievementsCacheKey(username), &views) {
		writeSuccess(w, map[string]any{"achievements": views})
		return
	}

	views, err := s.db.GetAchievementsForUser(r.Context(), username)
	if err != nil {
		s.storageError(w, r, err, "Failed to load achievements")
		return
	}

	s.cache.SetJSON(r.Context(), achievementsCacheKey(username), views)
	writeSuccess(w, map[string]any{"achievements": views})
}
