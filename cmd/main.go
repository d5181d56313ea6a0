package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	mongoOptions "go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	cancelBookingHandler "github.com/JakobMartens/inselbahn/internal/api/handlers/cancel_booking"
	commitBookingHandler "github.com/JakobMartens/inselbahn/internal/api/handlers/commit_booking"
	getAvailabilityHandler "github.com/JakobMartens/inselbahn/internal/api/handlers/get_availability"
	getBookingHandler "github.com/JakobMartens/inselbahn/internal/api/handlers/get_booking"
	getStatisticsHandler "github.com/JakobMartens/inselbahn/internal/api/handlers/get_statistics"
	getTourConfigHandler "github.com/JakobMartens/inselbahn/internal/api/handlers/get_tour_config"
	healthHandler "github.com/JakobMartens/inselbahn/internal/api/handlers/health"
	listBookingsHandler "github.com/JakobMartens/inselbahn/internal/api/handlers/list_bookings"
	listTourConfigsHandler "github.com/JakobMartens/inselbahn/internal/api/handlers/list_tour_configs"
	placeHoldHandler "github.com/JakobMartens/inselbahn/internal/api/handlers/place_hold"
	releaseHoldHandler "github.com/JakobMartens/inselbahn/internal/api/handlers/release_hold"
	"github.com/JakobMartens/inselbahn/internal/api/middleware"
	"github.com/JakobMartens/inselbahn/internal/config"
	"github.com/JakobMartens/inselbahn/internal/domain"
	"github.com/JakobMartens/inselbahn/internal/infra/audit"
	"github.com/JakobMartens/inselbahn/internal/infra/lock/pglock"
	"github.com/JakobMartens/inselbahn/internal/infra/lock/redislock"
	bookingRepo "github.com/JakobMartens/inselbahn/internal/infra/storage/booking"
	holdRepo "github.com/JakobMartens/inselbahn/internal/infra/storage/hold"
	"github.com/JakobMartens/inselbahn/internal/infra/storage/migrations"
	tourRepo "github.com/JakobMartens/inselbahn/internal/infra/storage/tour"
	"github.com/JakobMartens/inselbahn/internal/integrations/mailer"
	bookingsService "github.com/JakobMartens/inselbahn/internal/service/bookings"
	catalogService "github.com/JakobMartens/inselbahn/internal/service/catalog"
	notificationsService "github.com/JakobMartens/inselbahn/internal/service/notifications"
	reaperService "github.com/JakobMartens/inselbahn/internal/service/reaper"
	statisticsService "github.com/JakobMartens/inselbahn/internal/service/statistics"
	cancelBookingUC "github.com/JakobMartens/inselbahn/internal/usecase/cancel_booking"
	commitBookingUC "github.com/JakobMartens/inselbahn/internal/usecase/commit_booking"
	getAvailabilityUC "github.com/JakobMartens/inselbahn/internal/usecase/get_availability"
	placeHoldUC "github.com/JakobMartens/inselbahn/internal/usecase/place_hold"
	releaseHoldUC "github.com/JakobMartens/inselbahn/internal/usecase/release_hold"
	"github.com/JakobMartens/inselbahn/pkg/dbmetrics"
	"github.com/JakobMartens/inselbahn/pkg/logger"
	"github.com/JakobMartens/inselbahn/pkg/metrics"
	"github.com/JakobMartens/inselbahn/pkg/tracing"
	"github.com/JakobMartens/inselbahn/pkg/txmanager"
)

// SlotGuard общий интерфейс блокировки слота (postgres или redis)
type SlotGuard interface {
	Do(ctx context.Context, slot domain.Slot, fn func(ctx context.Context) error) error
}

// AuditRecorder журнал событий (mongo или noop)
type AuditRecorder interface {
	Record(ctx context.Context, action, subject string, data map[string]interface{}) error
}

func main() {
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()
	log = log.With("service", cfg.Metrics.ServiceName)

	log.Info("Starting inselbahn booking engine...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Tours.Location()
	if err != nil {
		log.Fatal("Invalid timezone: %v", err)
	}
	policy, err := cfg.CapacityPolicy()
	if err != nil {
		log.Fatal("Invalid capacity table: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Трейсинг (если включен)
	if cfg.Tracing.Enabled {
		shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing.Endpoint, cfg.Tracing.ServiceName)
		if err != nil {
			log.Fatal("Failed to set up tracing: %v", err)
		}
		defer func() {
			if err := shutdownTracing(context.Background()); err != nil {
				log.Warn("Tracing shutdown: %v", err)
			}
		}()
		log.Info("Tracing enabled, exporting to %s", cfg.Tracing.Endpoint)
	}

	// Инициализируем метрики (если включены). nil *Metrics безопасен
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.ApplyMigrationsOnBoot {
		if err := migrations.Apply(ctx, db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	defer close(stopMetricsCh)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	holdRepository := holdRepo.NewRepository(wrappedDB)
	tourRepository := tourRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	checks := map[string]healthHandler.Check{"postgres": db.PingContext}

	// Блокировка слота
	var slotGuard SlotGuard
	switch cfg.Locking.Backend {
	case "redis":
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		slotGuard = redislock.NewGuard(redisClient, txMgr, redislock.Options{
			TTL:         time.Duration(cfg.Locking.LockTTLMs) * time.Millisecond,
			WaitTimeout: time.Duration(cfg.Locking.WaitTimeoutMs) * time.Millisecond,
			RetryDelay:  time.Duration(cfg.Locking.RetryDelayMs) * time.Millisecond,
		})
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
		log.Info("Slot locking via redis at %s", cfg.Redis.Addr)
	default:
		slotGuard = pglock.NewGuard(wrappedDB, txMgr)
		log.Info("Slot locking via postgres advisory locks")
	}

	// Исходящие письма
	var sender notificationsService.Sender
	if cfg.RabbitMQ.Enabled {
		conn, err := amqp.Dial(cfg.RabbitMQ.URL)
		if err != nil {
			log.Fatal("Failed to connect to rabbitmq: %v", err)
		}
		defer conn.Close()
		client, err := mailer.NewClient(conn, cfg.RabbitMQ.Queue, cfg.RabbitMQ.Sender, log)
		if err != nil {
			log.Fatal("Failed to set up mail queue: %v", err)
		}
		sender = client
		log.Info("Mail queue %s enabled", cfg.RabbitMQ.Queue)
	} else {
		sender = mailer.NewNoop(log)
		log.Info("Mail queue disabled, emails are only logged")
	}

	// Журнал аудита
	var auditRecorder AuditRecorder = audit.Noop{}
	if cfg.Mongo.Enabled {
		mongoClient, err := mongo.Connect(ctx, mongoOptions.Client().ApplyURI(cfg.Mongo.URI))
		if err != nil {
			log.Fatal("Failed to connect to mongo: %v", err)
		}
		defer func() {
			_ = mongoClient.Disconnect(context.Background())
		}()
		coll := mongoClient.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
		auditRecorder = audit.NewMongoRecorder(coll)
		checks["mongo"] = func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) }
		log.Info("Audit log enabled (%s.%s)", cfg.Mongo.Database, cfg.Mongo.Collection)
	}

	// Сервисы
	notifier := notificationsService.NewService(sender, cfg.Tours.WalkInEmail, log)
	reaper := reaperService.NewService(holdRepository, metricsCollector, log)
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	catalogSvc := catalogService.NewService(tourRepository, policy, log)
	statisticsSvc := statisticsService.NewService(bookingRepository, policy, log)

	// Use cases
	window := cfg.Tours.BookingWindow()

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		tourRepository,
		bookingRepository,
		holdRepository,
		reaper,
		policy,
		window,
		location,
		log,
	)

	placeHoldUseCase := placeHoldUC.NewUseCase(
		tourRepository,
		bookingRepository,
		holdRepository,
		reaper,
		slotGuard,
		policy,
		auditRecorder,
		metricsCollector,
		placeHoldUC.Settings{
			Window:   window,
			HoldTTL:  cfg.Tours.HoldTTL(),
			Location: location,
		},
		log,
	)

	releaseHoldUseCase := releaseHoldUC.NewUseCase(holdRepository, auditRecorder, log)

	commitBookingUseCase := commitBookingUC.NewUseCase(
		bookingRepository,
		tourRepository,
		holdRepository,
		slotGuard,
		policy,
		domain.NewCodeGenerator(cfg.Tours.BookingCodePrefix),
		notifier,
		auditRecorder,
		metricsCollector,
		commitBookingUC.Settings{
			Window:            window,
			Location:          location,
			CodeRetryAttempts: cfg.Tours.CodeRetryAttempts,
			WalkInEmail:       cfg.Tours.WalkInEmail,
			WalkInName:        cfg.Tours.WalkInName,
		},
		log,
	)

	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		txMgr,
		notifier,
		auditRecorder,
		metricsCollector,
		location,
		log,
	)

	// Handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	placeHold := placeHoldHandler.NewHandler(placeHoldUseCase, log)
	releaseHold := releaseHoldHandler.NewHandler(releaseHoldUseCase, log)
	commitBooking := commitBookingHandler.NewHandler(commitBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getTourConfig := getTourConfigHandler.NewHandler(catalogSvc, location, log)
	listTourConfigs := listTourConfigsHandler.NewHandler(catalogSvc, location, log)
	getStatistics := getStatisticsHandler.NewHandler(statisticsSvc, log)
	health := healthHandler.NewHandler(checks, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	if cfg.Tracing.Enabled {
		r.Use(middleware.Tracing)
	}
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// STOREFRONT ROUTES
	// ============================================================

	api.HandleFunc("/tours/{tourType}/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/tours/{tourType}/config", getTourConfig.Handle).Methods(http.MethodGet)

	api.HandleFunc("/holds", placeHold.Handle).Methods(http.MethodPost)
	api.HandleFunc("/holds", releaseHold.Handle).Methods(http.MethodDelete)

	// Онлайн-оформление и продажа на месте (skipReservationCheck)
	api.HandleFunc("/bookings", commitBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/cancel", cancelBooking.HandleSelfService).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingCode}", getBooking.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (аутентификация на уровне шлюза)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}", getBooking.HandleAdmin).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.HandleAdmin).Methods(http.MethodPatch)
	admin.HandleFunc("/tours/{tourType}/configs", listTourConfigs.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/statistics", getStatistics.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return reaper.Run(gCtx, cfg.Tours.ReapInterval())
	})

	// Graceful shutdown по сигналу или при падении сервера
	g.Go(func() error {
		<-gCtx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
		)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server forced to shutdown: %v", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("Service stopped with error: %v", err)
		return
	}

	log.Info("Server stopped gracefully")
}
