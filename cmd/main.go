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

	"github.com/gorilla/handlers"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"github.com/m04kA/SMC-TableReservation/internal/api"
	"github.com/m04kA/SMC-TableReservation/internal/api/middleware"
	"github.com/m04kA/SMC-TableReservation/internal/config"
	"github.com/m04kA/SMC-TableReservation/internal/domain"
	"github.com/m04kA/SMC-TableReservation/internal/infra/kvstore"
	preferencesRepo "github.com/m04kA/SMC-TableReservation/internal/infra/storage/preferences"
	reservationRepo "github.com/m04kA/SMC-TableReservation/internal/infra/storage/reservation"
	configService "github.com/m04kA/SMC-TableReservation/internal/service/config"
	"github.com/m04kA/SMC-TableReservation/internal/service/flow"
	preferencesService "github.com/m04kA/SMC-TableReservation/internal/service/preferences"
	reservationsService "github.com/m04kA/SMC-TableReservation/internal/service/reservations"
	"github.com/m04kA/SMC-TableReservation/internal/service/sessions"
	commitBookingUC "github.com/m04kA/SMC-TableReservation/internal/usecase/commit_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-TableReservation/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-TableReservation/pkg/logger"
	"github.com/m04kA/SMC-TableReservation/pkg/metrics"
	"github.com/m04kA/SMC-TableReservation/pkg/txmanager"
)

const defaultConfigPath = "config.toml"

// Store общий интерфейс хранилищ ключ-значение
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Update(ctx context.Context, key string, fn kvstore.UpdateFunc) error
}

func main() {
	// .env опционален: секреты могут прийти из окружения
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
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

	log.Info("Starting SMC-TableReservation...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Booking.Timezone, err)
	}
	timeProvider := &getAvailableSlotsUC.RealTimeProvider{Location: location}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Подключаемся к хранилищу
	store, closeStore, err := openStore(ctx, cfg, metricsCollector, log)
	if err != nil {
		log.Fatal("Failed to open %s storage: %v", cfg.Storage.Driver, err)
	}
	defer closeStore()

	// Инициализируем репозитории
	reservationRepository := reservationRepo.NewRepository(store, namespaced(cfg.Storage.Namespace, domain.ReservationsKey), log)
	preferencesRepository := preferencesRepo.NewRepository(store, namespaced(cfg.Storage.Namespace, domain.DarkModeKey))

	slotsConfig := cfg.Booking.SlotsConfig()

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(reservationRepository, slotsConfig, timeProvider, log)
	commitBookingUseCase := commitBookingUC.NewUseCase(reservationRepository, slotsConfig, timeProvider, metricsCollector, log)

	// Инициализируем сервисы
	configSvc, err := configService.NewService(slotsConfig, timeProvider, log)
	if err != nil {
		log.Fatal("Invalid booking configuration: %v", err)
	}
	reservationsSvc := reservationsService.NewService(reservationRepository, log)
	preferencesSvc := preferencesService.NewService(preferencesRepository, log)

	sessionSvc := sessions.NewService(
		func() *flow.Controller {
			return flow.NewController(getAvailableSlotsUseCase, commitBookingUseCase, timeProvider, metricsCollector, log)
		},
		sessions.Config{TTL: cfg.Sessions.TTL(), MaxSessions: cfg.Sessions.MaxSessions},
		timeProvider,
		metricsCollector,
		log,
	)

	deps := api.Dependencies{
		Config:       configSvc,
		Slots:        getAvailableSlotsUseCase,
		Sessions:     sessionSvc,
		Reservations: reservationsSvc,
		Theme:        preferencesSvc,
		AdminToken:   cfg.Admin.Token,
		Logger:       log,
	}

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, cfg.RateLimit.TrustProxy)
		go limiter.Run(ctx)
		deps.RateLimiter = limiter
		log.Info("Rate limit enabled: rps=%.2f burst=%d trust_proxy=%t", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, cfg.RateLimit.TrustProxy)
	}

	if cfg.Metrics.Enabled {
		deps.HTTPMetrics = metricsCollector
		deps.MetricsHandler = promhttp.Handler()
		deps.MetricsPath = cfg.Metrics.Path
	}

	if cfg.Admin.Token == "" {
		log.Warn("Admin token is not set, /api/v1/reservations is disabled")
	}

	// Настраиваем роутер
	router := api.NewRouter(deps)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", middleware.AdminTokenHeader},
	}).Handler(router)

	handler := handlers.RecoveryHandler(
		handlers.RecoveryLogger(middleware.RecoveryLogger{Logger: log}),
	)(corsHandler)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s (storage=%s)", addr, cfg.Storage.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	<-ctx.Done()

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

// openStore создает хранилище по cfg.Storage.Driver; возвращает функцию закрытия соединений
func openStore(ctx context.Context, cfg *config.Config, metricsCollector *metrics.Metrics, log *logger.Logger) (Store, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		log.Warn("Using in-memory storage: reservations are lost on restart")
		return kvstore.NewMemoryStore(), func() {}, nil

	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
		return kvstore.NewRedisStore(client), func() { _ = client.Close() }, nil

	case config.DriverPostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		// Проверяем соединение
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ping database: %w", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		if metricsCollector != nil {
			if err := metricsCollector.RegisterDBStats(db, cfg.Database.DBName); err != nil {
				log.Warn("Failed to register database metrics: %v", err)
			}
		}

		store := kvstore.NewPostgresStore(db, txmanager.NewTransactionManager(db))
		if err := store.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ensure schema: %w", err)
		}
		return store, func() { _ = db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("%w: unknown storage driver %q", config.ErrInvalidConfig, cfg.Storage.Driver)
	}
}

// namespaced добавляет префикс установки к ключу хранилища
func namespaced(namespace, key string) string {
	if namespace == "" {
		return key
	}
	return namespace + ":" + key
}
