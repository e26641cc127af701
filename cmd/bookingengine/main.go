package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/tutorly/booking-engine/internal/api"
	"github.com/tutorly/booking-engine/internal/clock"
	"github.com/tutorly/booking-engine/internal/config"
	"github.com/tutorly/booking-engine/internal/engine"
	"github.com/tutorly/booking-engine/internal/gatewayport"
	"github.com/tutorly/booking-engine/internal/gatewayport/fake"
	"github.com/tutorly/booking-engine/internal/infra/events"
	"github.com/tutorly/booking-engine/internal/infra/notify"
	bookingRepo "github.com/tutorly/booking-engine/internal/infra/storage/booking"
	recurringRepo "github.com/tutorly/booking-engine/internal/infra/storage/recurring"
	userRepo "github.com/tutorly/booking-engine/internal/infra/storage/user"
	"github.com/tutorly/booking-engine/pkg/dbmetrics"
	"github.com/tutorly/booking-engine/pkg/logger"
	"github.com/tutorly/booking-engine/pkg/metrics"
	"github.com/tutorly/booking-engine/pkg/simpletxmanager"
	"github.com/tutorly/booking-engine/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting booking-engine...")

	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("failed to open database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("failed to ping database: %v", err)
	}
	log.Info("Connected to database %s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("failed to set goose dialect: %v", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatal("failed to run migrations: %v", err)
	}
	log.Info("Migrations applied")

	var (
		bookingRepository   *bookingRepo.Repository
		recurringRepository *recurringRepo.Repository
		userRepository      *userRepo.Repository
		txMgr               engine.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		recurringRepository = recurringRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		recurringRepository = recurringRepo.NewRepository(db)
		userRepository = userRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// The real payment gateway SDK binding lives outside this repository;
	// fake.Gateway stands in here until that binding is supplied.
	var gateway gatewayport.Port = fake.New()

	var eventPublisher engine.Publisher = events.NoopPublisher{}
	if cfg.Events.Enabled {
		publisher, err := events.NewPublisher(cfg.Events.URL, cfg.Events.Exchange)
		if err != nil {
			log.Fatal("failed to connect to rabbitmq: %v", err)
		}
		defer publisher.Close()
		eventPublisher = publisher
		log.Info("Domain event publisher connected to %s", cfg.Events.Exchange)
	}

	if cfg.Notifications.Enabled && cfg.Notifications.BotToken != "" {
		notifier, err := notify.NewTelegram(cfg.Notifications.BotToken)
		if err != nil {
			log.Error("failed to start telegram notifier: %v", err)
		} else if cfg.Events.Enabled {
			worker, err := notify.NewWorker(cfg.Events.URL, cfg.Events.Exchange, "booking-engine.notify", notifier, log)
			if err != nil {
				log.Error("failed to start notification worker: %v", err)
			} else {
				go func() {
					if err := worker.Run(context.Background()); err != nil {
						log.Warn("notification worker stopped: %v", err)
					}
				}()
				defer worker.Close()
				log.Info("Telegram notification worker started")
			}
		}
	}

	eng := engine.New(engine.Dependencies{
		BookingRepo:   bookingRepository,
		RecurringRepo: recurringRepository,
		UserRepo:      userRepository,
		Gateway:       gateway,
		TxManager:     txMgr,
		Clock:         clock.Real{},
		Events:        eventPublisher,
		Logger:        log,
	})

	router := api.NewRouter(eng, userRepository, log, api.Metrics{
		Enabled:     cfg.Metrics.Enabled,
		Collector:   metricsCollector,
		ServiceName: cfg.Metrics.ServiceName,
		Path:        cfg.Metrics.Path,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown: %v", err)
	}

	log.Info("Stopped gracefully")
}
