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
	"github.com/redis/go-redis/v9"

	exportBookingsHandler "github.com/m04kA/SMC-SlotReservation/internal/api/handlers/export_bookings"
	getBookingHandler "github.com/m04kA/SMC-SlotReservation/internal/api/handlers/get_booking"
	healthzHandler "github.com/m04kA/SMC-SlotReservation/internal/api/handlers/healthz"
	listOpenSlotsHandler "github.com/m04kA/SMC-SlotReservation/internal/api/handlers/list_open_slots"
	listServiceNamesHandler "github.com/m04kA/SMC-SlotReservation/internal/api/handlers/list_service_names"
	listServicesHandler "github.com/m04kA/SMC-SlotReservation/internal/api/handlers/list_services"
	queryBookingsHandler "github.com/m04kA/SMC-SlotReservation/internal/api/handlers/query_bookings"
	reserveSlotHandler "github.com/m04kA/SMC-SlotReservation/internal/api/handlers/reserve_slot"
	"github.com/m04kA/SMC-SlotReservation/internal/api/middleware"
	"github.com/m04kA/SMC-SlotReservation/internal/config"
	"github.com/m04kA/SMC-SlotReservation/internal/export"
	catalogCache "github.com/m04kA/SMC-SlotReservation/internal/infra/cache/catalog"
	bookingRepo "github.com/m04kA/SMC-SlotReservation/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SlotReservation/internal/infra/storage/schema"
	serviceRepo "github.com/m04kA/SMC-SlotReservation/internal/infra/storage/service"
	timeslotRepo "github.com/m04kA/SMC-SlotReservation/internal/infra/storage/timeslot"
	"github.com/m04kA/SMC-SlotReservation/internal/integrations/events"
	bookingsService "github.com/m04kA/SMC-SlotReservation/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-SlotReservation/internal/service/catalog"
	listOpenSlotsUC "github.com/m04kA/SMC-SlotReservation/internal/usecase/list_open_slots"
	reserveSlotUC "github.com/m04kA/SMC-SlotReservation/internal/usecase/reserve_slot"
	"github.com/m04kA/SMC-SlotReservation/pkg/civiltime"
	"github.com/m04kA/SMC-SlotReservation/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotReservation/pkg/logger"
	"github.com/m04kA/SMC-SlotReservation/pkg/metrics"
	"github.com/m04kA/SMC-SlotReservation/pkg/mq"
	"github.com/m04kA/SMC-SlotReservation/pkg/txmanager"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
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

	log.Info("Starting SMC-SlotReservation...")
	log.Info("Configuration loaded from %s", configPath)

	zone, err := civiltime.Load(cfg.Booking.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.Booking.Timezone, err)
	}

	// Метрики опциональны. Интерфейсы остаются nil, если они выключены.
	var (
		metricsCollector   *metrics.Metrics
		dbRecorder         dbmetrics.Recorder
		reservationMetrics reserveSlotUC.Metrics
		exportMetrics      exportBookingsHandler.Metrics
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbRecorder = metricsCollector
		reservationMetrics = metricsCollector
		exportMetrics = metricsCollector
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

	wrappedDB := dbmetrics.WrapWithDefault(db, dbRecorder, stopMetricsCh)

	if cfg.Database.AutoMigrate {
		if err := schema.Apply(context.Background(), wrappedDB); err != nil {
			log.Fatal("Failed to apply schema: %v", err)
		}
		log.Info("Database schema applied")
	}

	// Кэш каталога в Redis (опционально)
	var cache catalogService.Cache
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Warn("Redis unavailable, catalog cache disabled: %v", err)
		} else {
			cache = catalogCache.NewCache(rdb, cfg.Redis.CatalogTTL(), cfg.Metrics.ServiceName)
			log.Info("Catalog cache enabled (address=%s, ttl=%s)", cfg.Redis.Address, cfg.Redis.CatalogTTL())
		}
	}

	// Публикация событий о бронированиях (опционально)
	var publisher events.Publisher
	if cfg.RabbitMQ.Enabled {
		p, err := mq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Warn("RabbitMQ unavailable, booking events disabled: %v", err)
		} else {
			defer p.Close()
			publisher = p
			log.Info("Booking events enabled (exchange=%s)", cfg.RabbitMQ.Exchange)
		}
	}
	notifier := events.NewNotifier(publisher, log)

	// Инициализируем репозитории
	serviceRepository := serviceRepo.NewRepository(wrappedDB)
	timeslotRepository := timeslotRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(serviceRepository, cache, log)
	bookingSvc := bookingsService.NewService(bookingRepository, txMgr, zone, cfg.Booking.PageSize, log)

	// Инициализируем use cases
	listOpenSlotsUseCase := listOpenSlotsUC.NewUseCase(serviceRepository, timeslotRepository, zone, log)
	reserveSlotUseCase := reserveSlotUC.NewUseCase(
		serviceRepository,
		timeslotRepository,
		bookingRepository,
		txMgr,
		notifier,
		reservationMetrics,
		log,
	).WithMinPhoneDigits(cfg.Booking.MinPhoneDigits)

	// Инициализируем handlers
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	listServiceNames := listServiceNamesHandler.NewHandler(catalogSvc, log)
	listOpenSlots := listOpenSlotsHandler.NewHandler(listOpenSlotsUseCase, zone, log)
	reserveSlot := reserveSlotHandler.NewHandler(reserveSlotUseCase, log)
	queryBookings := queryBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	healthz := healthzHandler.NewHandler(db, log)

	exportCSV, err := exportBookingsHandler.NewHandler(bookingSvc, export.FormatCSV, zone, exportMetrics, log)
	if err != nil {
		log.Fatal("Failed to create CSV export handler: %v", err)
	}
	exportXLSX, err := exportBookingsHandler.NewHandler(bookingSvc, export.FormatXLSX, zone, exportMetrics, log)
	if err != nil {
		log.Fatal("Failed to create XLSX export handler: %v", err)
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", healthz.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Каталог ---
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/names", listServiceNames.Handle).Methods(http.MethodGet)

	// --- Слоты ---
	api.HandleFunc("/services/{serviceId}/open-slots", listOpenSlots.Handle).Methods(http.MethodGet)

	// --- Бронирование ---
	var reserve http.Handler = http.HandlerFunc(reserveSlot.Handle)
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		if err := limiter.TrustProxies(cfg.RateLimit.TrustedProxies); err != nil {
			log.Fatal("Invalid rate_limit.trusted_proxies: %v", err)
		}
		reserve = limiter.Middleware(reserve)
		log.Info("Rate limit on reservations: rps=%.2f, burst=%d, trusted_proxies=%d", cfg.RateLimit.RPS, cfg.RateLimit.Burst, len(cfg.RateLimit.TrustedProxies))
	}
	api.Handle("/reservations", reserve).Methods(http.MethodPost)

	// --- Бронирования (просмотр и выгрузка) ---
	// Выгрузки регистрируются до /bookings/{bookingId}
	api.HandleFunc("/bookings", queryBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/export.csv", exportCSV.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/export.xlsx", exportXLSX.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

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

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

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
