// Package api maps the HTTP surface of the RemindMe backend onto the
// stores. Endpoints and response envelopes mirror the mobile client's
// expectations: {"status": "success"|"fail", ...}.
package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"remindme/internal/audit"
	"remindme/internal/cache"
	"remindme/internal/database"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// HTTPServer serves the public app API plus the admin export and the
// health probes.
type HTTPServer struct {
	db      *database.DB
	cache   *cache.Cache
	audit   *audit.Service
	logger  *zerolog.Logger
	apiKey  string
	limiter *rate.Limiter
}

// NewHTTPServer wires the handler set. cache and auditSvc may be nil;
// apiKey may be empty, which disables the admin endpoints.
func NewHTTPServer(db *database.DB, c *cache.Cache, auditSvc *audit.Service, apiKey string, logger *zerolog.Logger) *HTTPServer {
	return &HTTPServer{
		db:     db,
		cache:  c,
		audit:  auditSvc,
		apiKey: apiKey,
		logger: logger,
	}
}

// EnableRateLimit installs a global token-bucket limiter over all
// endpoints. Requests beyond the burst get 429.
func (s *HTTPServer) EnableRateLimit(rps float64, burst int) {
	if rps <= 0 {
		rps = 20
	}
	if burst <= 0 {
		burst = 30
	}
	s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
}

// Handler builds the route table with the middleware chain applied.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleHome)
	mux.HandleFunc("/signup", s.handleSignup)
	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/add_schedule", s.handleAddSchedule)
	mux.HandleFunc("/activities", s.handleActivities)
	mux.HandleFunc("/update_schedule/", s.handleUpdateSchedule)
	mux.HandleFunc("/delete_schedule/", s.handleDeleteSchedule)
	mux.HandleFunc("/user_achievements", s.handleUserAchievements)
	mux.HandleFunc("/user_profile", s.handleUserProfile)
	mux.HandleFunc("/update_profile", s.handleUpdateProfile)
	mux.HandleFunc("/delete_user/", s.handleDeleteUser)
	mux.HandleFunc("/support", s.handleSupport)
	mux.HandleFunc("/admin/export", s.handleAdminExport)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/readyz", s.handleReadyz)

	return s.withRequestID(s.withRateLimit(s.withAccessLog(mux)))
}

func (s *HTTPServer) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Backend is running with SQLite!"))
}

func (s *HTTPServer) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *HTTPServer) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r, time.Second)
	defer cancel()
	if err := s.db.PingContext(ctx); err != nil {
		http.Error(w, "db not ready", http.StatusServiceUnavailable)
		return
	}
	if err := s.cache.Ping(ctx); err != nil {
		http.Error(w, "redis not ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// withRequestID tags every request with an id for log correlation.
func (s *HTTPServer) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r)
	})
}

func (s *HTTPServer) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (s *HTTPServer) withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Str("request_id", w.Header().Get("X-Request-ID")).
			Msg("request")
	})
}

// pathID extracts the trailing integer id from paths like
// /update_schedule/42.
func pathID(path, prefix string) (int64, bool) {
	raw := strings.TrimPrefix(path, prefix)
	if raw == "" || strings.Contains(raw, "/") {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
