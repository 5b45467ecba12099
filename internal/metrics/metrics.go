package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "remindme",
			Name:      "http_requests_total",
			Help:      "Count of HTTP requests by handler.",
		},
		[]string{"handler"},
	)

	userSignups = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "remindme",
			Name:      "user_signups_total",
			Help:      "Count of successful account registrations.",
		},
	)

	logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "remindme",
			Name:      "logins_total",
			Help:      "Count of login attempts by outcome.",
		},
		[]string{"outcome"},
	)

	remindersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "remindme",
			Name:      "reminders_created_total",
			Help:      "Count of reminders created.",
		},
	)

	remindersCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "remindme",
			Name:      "reminders_completed_total",
			Help:      "Count of reminders marked done.",
		},
	)

	remindersRescheduled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "remindme",
			Name:      "reminders_rescheduled_total",
			Help:      "Count of next occurrences inserted for recurring reminders, by cadence.",
		},
		[]string{"cadence"},
	)

	usersDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "remindme",
			Name:      "users_deleted_total",
			Help:      "Count of accounts deleted (with reminder cascade).",
		},
	)

	achievementsInitialized = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "remindme",
			Name:      "achievements_initialized_total",
			Help:      "Count of users whose achievement rows were materialized.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			httpRequests, userSignups, logins,
			remindersCreated, remindersCompleted, remindersRescheduled,
			usersDeleted, achievementsInitialized,
		)
	})
}

func IncHTTP(handler string) {
	httpRequests.WithLabelValues(handler).Inc()
}

func IncUserSignup() {
	userSignups.Inc()
}

func IncLogin(outcome string) {
	logins.WithLabelValues(outcome).Inc()
}

func IncReminderCreated() {
	remindersCreated.Inc()
}

func IncReminderCompleted() {
	remindersCompleted.Inc()
}

func IncReminderRescheduled(cadence string) {
	remindersRescheduled.WithLabelValues(cadence).Inc()
}

func IncUserDeleted() {
	usersDeleted.Inc()
}

func IncAchievementsInitialized() {
	achievementsInitialized.Inc()
}
