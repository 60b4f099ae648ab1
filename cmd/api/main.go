package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	_ "github.com/screenaware/screenaware/docs"
	"github.com/screenaware/screenaware/internal/adapters/cache"
	"github.com/screenaware/screenaware/internal/adapters/events"
	adapterHTTP "github.com/screenaware/screenaware/internal/adapters/handler/http"
	"github.com/screenaware/screenaware/internal/adapters/observability"
	"github.com/screenaware/screenaware/internal/adapters/repository"
	"github.com/screenaware/screenaware/internal/config"
	"github.com/screenaware/screenaware/internal/core/domain"
	"github.com/screenaware/screenaware/internal/core/services"
	"github.com/screenaware/screenaware/internal/core/workers"
)

func main() {
	startTime := time.Now()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Critical: invalid configuration: %v", err)
	}
	if err := cfg.ValidateServer(); err != nil {
		log.Fatalf("Critical: %v", err)
	}

	log.Println("Connecting to database...")

	db, err := sqlx.Connect("pgx", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Critical: Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	if err := repository.Migrate(migrateCtx, db); err != nil {
		cancelMigrate()
		log.Fatalf("Critical: Failed to apply schema: %v", err)
	}
	cancelMigrate()

	log.Println("Database connected successfully.")

	metrics := observability.NewMetrics()

	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		rdb, err = cache.NewRedisClient(cache.Options{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Printf("[CACHE] Redis unavailable, continuing without cache: %v", err)
			rdb = nil
		} else {
			defer rdb.Close()
			log.Println("Redis connected successfully.")
		}
	}

	userRepo := repository.NewPostgresUserRepository(db)

	var dataRepo domain.DataPointRepository = repository.NewPostgresDataPointRepository(db)
	var revocations domain.RevocationStore = cache.NewMemoryRevocationStore()
	if rdb != nil {
		dataRepo = repository.NewCachedDataPointRepository(dataRepo, rdb, metrics)
		revocations = cache.NewRedisRevocationStore(rdb)
	}

	publisher, closePublisher := newPublisher(cfg, metrics)
	defer closePublisher()

	workerCtx, stopWorker := context.WithCancel(context.Background())
	publishWorker := workers.NewPublishWorker(publisher, 100)
	publishWorker.Start(workerCtx)

	authService := services.NewAuthService(userRepo)
	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL, userRepo, revocations)
	verifier := services.NewFederatedVerifier(cfg.FederatedSecret, cfg.FederatedIssuer, cfg.FederatedProvider)
	analyticsService := services.NewAnalyticsService(dataRepo, publishWorker)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:      adapterHTTP.NewAuthHandler(authService, tokenService, verifier),
		AnalyticsHandler: adapterHTTP.NewAnalyticsHandler(analyticsService),
		ScoringHandler:   adapterHTTP.NewScoringHandler(metrics),
		Tokens:           tokenService,
		Metrics:          metrics,
		DB:               db,
		Redis:            rdb,
		CORSOrigins:      cfg.CORSOrigins,
		RateLimit:        cfg.RateLimit,
		RateWindow:       cfg.RateWindow,
		StartTime:        startTime,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("ScreenAware API running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown error: %v", err)
	}

	stopWorker()
	select {
	case <-publishWorker.Done():
	case <-ctx.Done():
		log.Println("[WORKER] Publish worker did not drain in time")
	}

	log.Println("Server stopped gracefully.")
}

// newPublisher picks Kafka when brokers are configured and a no-op otherwise.
func newPublisher(cfg *config.Config, metrics *observability.Metrics) (domain.EventPublisher, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		log.Println("[EVENTS] No Kafka brokers configured, events disabled")
		return events.NoopPublisher{}, func() {}
	}

	publisher, err := events.NewKafkaPublisher(events.KafkaConfig{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaTopic,
	}, metrics)
	if err != nil {
		log.Printf("[EVENTS] Kafka disabled: %v", err)
		return events.NoopPublisher{}, func() {}
	}

	return publisher, func() {
		if err := publisher.Close(); err != nil {
			log.Printf("[EVENTS] Failed to close Kafka writer: %v", err)
		}
	}
}
