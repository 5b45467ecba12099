package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"remindme/internal/api"
	"remindme/internal/audit"
	"remindme/internal/cache"
	"remindme/internal/config"
	"remindme/internal/database"
	"remindme/internal/events"
	"remindme/internal/metrics"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	_ = godotenv.Load()

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Logger()

	cfg, err := config.Load(os.Getenv("REMINDME_CONFIG_PATH"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("open db error")
	}
	defer db.Close()

	metrics.Register()

	bus := events.NewBus()
	subscribeEventHandlers(bus, &logger)
	db.SetEventBus(bus)

	var rdb *redis.Client
	if cfg.Redis.Address != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	responseCache := cache.New(rdb, cfg.CacheTTL())

	auditSvc := audit.NewService(db, audit.NewExcelizeWriter, &logger)

	server := api.NewHTTPServer(db, responseCache, auditSvc, cfg.Server.APIKey, &logger)
	if cfg.RateLimit.Enabled {
		server.EnableRateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backupSvc := database.NewBackupService(db.Path(), cfg.Backup, &logger)
	go backupSvc.Start(ctx)

	if cfg.Monitoring.PrometheusEnabled {
		port := cfg.Monitoring.PrometheusPort
		if port == 0 {
			port = 9090
		}
		go startMetricsServer(ctx, port, &logger)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()

	logger.Info().Str("address", cfg.Server.Address).Msg("RemindMe backend started")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server error")
	}
	logger.Info().Msg("RemindMe backend stopped")
}

// subscribeEventHandlers maps domain events to metrics and logs.
func subscribeEventHandlers(bus *events.Bus, logger *zerolog.Logger) {
	bus.Subscribe(events.UserRegistered, func(events.Event) {
		metrics.IncUserSignup()
	})
	bus.Subscribe(events.UserDeleted, func(events.Event) {
		metrics.IncUserDeleted()
	})
	bus.Subscribe(events.ReminderCreated, func(events.Event) {
		metrics.IncReminderCreated()
	})
	bus.Subscribe(events.ReminderCompleted, func(events.Event) {
		metrics.IncReminderCompleted()
	})
	bus.Subscribe(events.ReminderRescheduled, func(e events.Event) {
		cadence, _ := e.Fields["cadence"].(string)
		metrics.IncReminderRescheduled(cadence)
	})
	bus.Subscribe(events.AchievementsInitialized, func(events.Event) {
		metrics.IncAchievementsInitialized()
	})

	bus.SubscribeAll(func(e events.Event) {
		logger.Debug().Str("event", e.Type).Fields(e.Fields).Msg("domain event")
	})
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
