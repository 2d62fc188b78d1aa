package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"onboard/internal/audit"
	"onboard/internal/dashboard"
	dashboardhandler "onboard/internal/dashboard/handler"
	"onboard/internal/draft"
	apphttp "onboard/internal/http"
	"onboard/internal/jwttoken"
	"onboard/internal/notify"
	onboardinghandler "onboard/internal/onboarding/handler"
	"onboard/internal/onboarding/service"
	"onboard/internal/onboarding/store"
	storememory "onboard/internal/onboarding/store/memory"
	storepostgres "onboard/internal/onboarding/store/postgres"
	"onboard/internal/people"
	peoplehandler "onboard/internal/people/handler"
	"onboard/internal/platform/config"
	"onboard/internal/platform/httpserver"
	"onboard/internal/platform/logger"
	"onboard/internal/platform/metrics"
	"onboard/internal/platform/postgres"
	"onboard/internal/platform/redis"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	// Postgres is optional: an empty URL keeps everything in memory, which
	// is the dev and test default.
	var (
		formStore   store.Store
		peopleStore people.Store
	)
	db, err := postgres.Open(cfg.PostgresURL)
	if err != nil {
		log.Error("postgres connection failed", "error", err)
		os.Exit(1)
	}
	if db != nil {
		if err := storepostgres.Migrate(ctx, db); err != nil {
			log.Error("onboarding migration failed", "error", err)
			os.Exit(1)
		}
		if err := people.Migrate(ctx, db); err != nil {
			log.Error("people migration failed", "error", err)
			os.Exit(1)
		}
		formStore = storepostgres.New(db)
		peopleStore = people.NewPostgres(db)
		defer db.Close()
	} else {
		log.Info("postgres not configured, using in-memory stores")
		formStore = storememory.New()
		peopleStore = people.NewInMemoryStore()
	}

	// Draft cache: redis when configured, in-process otherwise.
	var drafts draft.Cache
	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		drafts = draft.NewRedisCache(redisClient.Client, draft.DefaultTTL)
		defer redisClient.Close()
	} else {
		log.Info("redis not configured, using in-memory draft cache")
		drafts = draft.NewMemoryCache()
	}

	// Notifications: kafka when brokers are configured, log-only otherwise.
	var notifier notify.Notifier
	if len(cfg.KafkaBrokers) > 0 {
		kafkaNotifier, err := notify.NewKafkaNotifier(cfg.KafkaBrokers, cfg.KafkaTopic, log)
		if err != nil {
			log.Error("kafka client failed", "error", err)
			os.Exit(1)
		}
		defer kafkaNotifier.Close()
		notifier = kafkaNotifier
	} else {
		notifier = notify.NewLogNotifier(log)
	}

	auditInbox := make(chan audit.Event, 256)
	auditStore := audit.NewInMemoryStore()
	auditWorker := audit.NewWorker(auditStore, auditInbox)
	go func() {
		if err := auditWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err)
		}
	}()

	onboardingService := service.New(formStore, log,
		service.WithNotifier(notifier),
		service.WithAudit(audit.NewAsyncPublisher(auditStore, auditInbox)),
		service.WithMetrics(m),
		service.WithBaseURL(cfg.BaseURL),
	)
	peopleService := people.NewService(peopleStore)
	dashboardService := dashboard.NewService(formStore, peopleService, log)

	feed := dashboard.NewFeed(formStore, log, cfg.DashboardPollInterval)
	go feed.Run(ctx)

	jwtService := jwttoken.NewService(cfg.JWTSigningKey, "onboard", "onboard-api")

	router := apphttp.NewRouter(
		onboardinghandler.New(onboardingService, drafts, log, m, jwtService),
		peoplehandler.New(peopleService, log, m, jwtService),
		dashboardhandler.New(dashboardService, feed, log, m, jwtService),
	)

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting onboarding server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
