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

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	checkAvailabilityHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/check_availability"
	createBookingHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/delete_booking"
	getBookingHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_booking"
	getFieldBookingsHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_field_bookings"
	getFinancialReportHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_financial_report"
	getSettingsHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_settings"
	getUserBookingsHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_user_bookings"
	markSettledHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/mark_settled"
	transitionBookingHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/transition_booking"
	updateSettingsHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/update_settings"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/config"
	settingsCache "github.com/m04kA/SMC-FieldBookingService/internal/infra/cache/settings"
	bookingRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/booking"
	fieldRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/field"
	settingsRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-FieldBookingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/access"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-FieldBookingService/internal/service/bookings"
	ledgerService "github.com/m04kA/SMC-FieldBookingService/internal/service/ledger"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/notifications"
	settingsService "github.com/m04kA/SMC-FieldBookingService/internal/service/settings"
	checkAvailabilityUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/check_availability"
	createBookingUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/create_booking"
	transitionBookingUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/transition_booking"
	"github.com/m04kA/SMC-FieldBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FieldBookingService/pkg/logger"
	"github.com/m04kA/SMC-FieldBookingService/pkg/metrics"
	"github.com/m04kA/SMC-FieldBookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	configPath := config.PathFromEnv()
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

	log.Info("Starting SMC-FieldBookingService...")
	log.Info("Configuration loaded from %s (timezone=%s)", configPath, cfg.Booking.Location())

	// Метрики (nil, если выключены: все методы nil-safe)
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

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB, txmanager.WithRetries(cfg.Booking.SerializationRetries))

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	fieldRepository := fieldRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)

	// Кеш настроек (опционально)
	var (
		redisClient *redis.Client
		cache       settingsService.SettingsCache
	)
	if cfg.Redis.Enabled {
		redisClient = settingsCache.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn("Redis is unavailable, settings will be read from database: %v", err)
		}
		cache = settingsCache.NewCache(redisClient, cfg.Redis.SettingsTTLDuration())
		log.Info("Settings cache enabled (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.SettingsTTLDuration())
	}

	// Получатели уведомлений: лог всегда, Kafka и webhook по конфигу
	sinks := []notifications.Sink{notifier.NewLogSink(log)}

	var kafkaSink *notifier.KafkaSink
	if cfg.Kafka.Enabled {
		kafkaSink = notifier.NewKafkaSink(notifier.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.NotificationsTopic))
		sinks = append(sinks, kafkaSink)
		log.Info("Kafka notifications enabled (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.NotificationsTopic)
	}
	if cfg.Notifier.WebhookURL != "" {
		sinks = append(sinks, notifier.NewWebhookClient(cfg.Notifier.WebhookURL, cfg.Notifier.WebhookTimeoutDuration(), log))
		log.Info("Webhook notifications enabled (url=%s, timeout=%s)", cfg.Notifier.WebhookURL, cfg.Notifier.WebhookTimeoutDuration())
	}

	dispatcher := notifications.NewDispatcher(cfg.Booking.NotifyTimeoutDuration(), metricsCollector, log, sinks...)

	// Сервисы
	policy := access.NewPolicy()
	checker := availability.NewChecker(bookingRepository, metricsCollector, log)

	settingsSvc := settingsService.NewService(settingsRepository, cache, policy, txMgr, log)
	bookingSvc := bookingsService.NewService(bookingRepository, fieldRepository, policy, txMgr, log)
	ledgerSvc := ledgerService.NewService(bookingRepository, policy, txMgr, metricsCollector, log)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		fieldRepository,
		checker,
		settingsSvc,
		policy,
		dispatcher,
		metricsCollector,
		txMgr,
		log,
		createBookingUC.Options{
			Location:           cfg.Booking.Location(),
			RecurringWeeks:     cfg.Booking.RecurringWeeks,
			MaxSlotsPerRequest: cfg.Booking.MaxSlotsPerRequest,
		},
	)

	transitionBookingUseCase := transitionBookingUC.NewUseCase(
		bookingRepository,
		fieldRepository,
		policy,
		dispatcher,
		metricsCollector,
		txMgr,
		log,
	)

	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		fieldRepository,
		checker,
		settingsSvc,
		cfg.Booking.Location(),
		cfg.Booking.MaxSlotsPerRequest,
		log,
	)

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getFieldBookings := getFieldBookingsHandler.NewHandler(bookingSvc, cfg.Booking.Location(), log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	transitionBooking := transitionBookingHandler.NewHandler(transitionBookingUseCase, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	getFinancialReport := getFinancialReportHandler.NewHandler(ledgerSvc, cfg.Booking.Location(), log)
	markSettled := markSettledHandler.NewHandler(ledgerSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Проверка доступности слотов и предварительная стоимость
	api.HandleFunc("/fields/{fieldId}/availability", checkAvailability.Handle).Methods(http.MethodPost)

	// Занятые интервалы поля
	api.HandleFunc("/fields/{fieldId}/bookings", getFieldBookings.Handle).Methods(http.MethodGet)

	// Глобальные настройки (комиссия, телефон администратора)
	api.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID и X-User-Role headers)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{bookingId}/transitions", transitionBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Расчёты ---
	protected.HandleFunc("/reports/financial", getFinancialReport.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/settlements", markSettled.Handle).Methods(http.MethodPost)

	// --- Администрирование ---
	protected.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся отправки уведомлений, запущенных до остановки
	dispatcher.Wait()

	if kafkaSink != nil {
		if err := kafkaSink.Close(); err != nil {
			log.Error("Failed to close kafka writer: %v", err)
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
