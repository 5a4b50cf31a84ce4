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

	bookBookingHandler "github.com/m04kA/TTA-BookingService/internal/api/handlers/book_booking"
	bookTourPackageHandler "github.com/m04kA/TTA-BookingService/internal/api/handlers/book_tour_package"
	cancelBookingHandler "github.com/m04kA/TTA-BookingService/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/m04kA/TTA-BookingService/internal/api/handlers/check_availability"
	createBookingHandler "github.com/m04kA/TTA-BookingService/internal/api/handlers/create_booking"
	createPaymentOrderHandler "github.com/m04kA/TTA-BookingService/internal/api/handlers/create_payment_order"
	createResourceHandler "github.com/m04kA/TTA-BookingService/internal/api/handlers/create_resource"
	deleteBookingHandler "github.com/m04kA/TTA-BookingService/internal/api/handlers/delete_booking"
	deleteResourceHandler "github.com/m04kA/TTA-BookingService/internal/api/handlers/delete_resource"
	earlyCheckoutHandler "github.com/m04kA/TTA-BookingService/internal/api/handlers/early_checkout"
	getBookingHandler "github.com/m04kA/TTA-BookingService/internal/api/handlers/get_booking"
	getQuoteHandler "github.com/m04kA/TTA-BookingService/internal/api/handlers/get_quote"
	getResourceHandler "github.com/m04kA/TTA-BookingService/internal/api/handlers/get_resource"
	getTourPackageHandler "github.com/m04kA/TTA-BookingService/internal/api/handlers/get_tour_package"
	getUserBookingsHandler "github.com/m04kA/TTA-BookingService/internal/api/handlers/get_user_bookings"
	listResourcesHandler "github.com/m04kA/TTA-BookingService/internal/api/handlers/list_resources"
	listTourPackagesHandler "github.com/m04kA/TTA-BookingService/internal/api/handlers/list_tour_packages"
	refundBookingHandler "github.com/m04kA/TTA-BookingService/internal/api/handlers/refund_booking"
	updateBookingHandler "github.com/m04kA/TTA-BookingService/internal/api/handlers/update_booking"
	updateBookingStatusHandler "github.com/m04kA/TTA-BookingService/internal/api/handlers/update_booking_status"
	updateResourceHandler "github.com/m04kA/TTA-BookingService/internal/api/handlers/update_resource"
	verifyPaymentHandler "github.com/m04kA/TTA-BookingService/internal/api/handlers/verify_payment"
	"github.com/m04kA/TTA-BookingService/internal/api/middleware"
	"github.com/m04kA/TTA-BookingService/internal/config"
	bookingRepo "github.com/m04kA/TTA-BookingService/internal/infra/storage/booking"
	resourceRepo "github.com/m04kA/TTA-BookingService/internal/infra/storage/resource"
	tourRepo "github.com/m04kA/TTA-BookingService/internal/infra/storage/tour"
	notifyServiceClient "github.com/m04kA/TTA-BookingService/internal/integrations/notifyservice"
	bookingsService "github.com/m04kA/TTA-BookingService/internal/service/bookings"
	paymentsService "github.com/m04kA/TTA-BookingService/internal/service/payments"
	resourcesService "github.com/m04kA/TTA-BookingService/internal/service/resources"
	toursService "github.com/m04kA/TTA-BookingService/internal/service/tours"
	bookTourPackageUC "github.com/m04kA/TTA-BookingService/internal/usecase/book_tour_package"
	checkAvailabilityUC "github.com/m04kA/TTA-BookingService/internal/usecase/check_availability"
	createBookingUC "github.com/m04kA/TTA-BookingService/internal/usecase/create_booking"
	getQuoteUC "github.com/m04kA/TTA-BookingService/internal/usecase/get_quote"
	updateBookingUC "github.com/m04kA/TTA-BookingService/internal/usecase/update_booking"
	"github.com/m04kA/TTA-BookingService/pkg/dbmetrics"
	"github.com/m04kA/TTA-BookingService/pkg/logger"
	"github.com/m04kA/TTA-BookingService/pkg/metrics"
	"github.com/m04kA/TTA-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/TTA-BookingService/pkg/txmanager"
)

// TxManager общий контракт для обоих менеджеров транзакций
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting TTA-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
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

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		resourceRepository *resourceRepo.Repository
		tourRepository     *tourRepo.Repository
		txMgr              TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		resourceRepository = resourceRepo.NewRepository(wrappedDB)
		tourRepository = tourRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		resourceRepository = resourceRepo.NewRepository(db)
		tourRepository = tourRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Клиент сервиса уведомлений (best-effort, при выключенном остается nil)
	var bookingsNotify bookingsService.NotifyServiceClient
	var tourNotify bookTourPackageUC.NotifyServiceClient

	if cfg.NotifyService.Enabled {
		notifyClient := notifyServiceClient.NewClient(
			cfg.NotifyService.URL,
			time.Duration(cfg.NotifyService.Timeout)*time.Second,
			log,
		)
		bookingsNotify = notifyClient
		tourNotify = notifyClient
		log.Info("NotifyService client initialized (URL=%s, timeout=%ds)",
			cfg.NotifyService.URL, cfg.NotifyService.Timeout)
	}

	// Бизнес-метрики остаются nil при выключенном сборе
	var (
		availabilityMetrics checkAvailabilityUC.Metrics
		createMetrics       createBookingUC.Metrics
		tourMetrics         bookTourPackageUC.Metrics
		paymentMetrics      paymentsService.Metrics
	)
	if cfg.Metrics.Enabled {
		availabilityMetrics = metricsCollector
		createMetrics = metricsCollector
		tourMetrics = metricsCollector
		paymentMetrics = metricsCollector
	}

	// Инициализируем use cases
	availabilityUseCase := checkAvailabilityUC.NewUseCase(resourceRepository, bookingRepository, availabilityMetrics, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		availabilityUseCase,
		resourceRepository,
		bookingRepository,
		txMgr,
		createMetrics,
		log,
	)
	updateBookingUseCase := updateBookingUC.NewUseCase(
		availabilityUseCase,
		resourceRepository,
		bookingRepository,
		txMgr,
		log,
	)
	getQuoteUseCase := getQuoteUC.NewUseCase(availabilityUseCase, resourceRepository, log)
	bookTourPackageUseCase := bookTourPackageUC.NewUseCase(
		availabilityUseCase,
		tourRepository,
		bookingRepository,
		txMgr,
		tourNotify,
		tourMetrics,
		log,
	)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		availabilityUseCase,
		bookingsNotify,
		txMgr,
		log,
	)
	paymentSvc := paymentsService.NewService(
		bookingRepository,
		availabilityUseCase,
		txMgr,
		paymentMetrics,
		log,
		cfg.Payments.KeyID,
		cfg.Payments.KeySecret,
		cfg.Payments.TestMode,
	)
	resourceSvc := resourcesService.NewService(resourceRepository, log)
	tourSvc := toursService.NewService(tourRepository, log)

	if cfg.Payments.TestMode {
		log.Warn("Payments test mode is ON: signature verification is bypassed")
	}

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(availabilityUseCase, log)
	getQuote := getQuoteHandler.NewHandler(getQuoteUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	bookBooking := bookBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	refundBooking := refundBookingHandler.NewHandler(bookingSvc, log)
	earlyCheckout := earlyCheckoutHandler.NewHandler(bookingSvc, log)
	createPaymentOrder := createPaymentOrderHandler.NewHandler(paymentSvc, log)
	verifyPayment := verifyPaymentHandler.NewHandler(paymentSvc, log)
	listResources := listResourcesHandler.NewHandler(resourceSvc, log)
	getResource := getResourceHandler.NewHandler(resourceSvc, log)
	createResource := createResourceHandler.NewHandler(resourceSvc, log)
	updateResource := updateResourceHandler.NewHandler(resourceSvc, log)
	deleteResource := deleteResourceHandler.NewHandler(resourceSvc, log)
	listTourPackages := listTourPackagesHandler.NewHandler(tourSvc, log)
	getTourPackage := getTourPackageHandler.NewHandler(tourSvc, log)
	bookTourPackage := bookTourPackageHandler.NewHandler(bookTourPackageUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Rate limiting на весь трафик (если включен)
	if cfg.RateLimit.Enabled {
		rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log)
		r.Use(rateLimiter.Middleware)
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// HTTP metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Проверка доступности набора ресурсов на период
	api.HandleFunc("/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// Расчет стоимости без создания бронирования
	api.HandleFunc("/quote", getQuote.Handle).Methods(http.MethodGet)

	// Каталог ресурсов
	api.HandleFunc("/resources", listResources.Handle).Methods(http.MethodGet)
	api.HandleFunc("/resources/{type}/{resourceId}", getResource.Handle).Methods(http.MethodGet)

	// Каталог туров
	api.HandleFunc("/tour-packages", listTourPackages.Handle).Methods(http.MethodGet)
	api.HandleFunc("/tour-packages/{tourId}", getTourPackage.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{bookingId}/book", bookBooking.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}/early-checkout", earlyCheckout.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Оплата ---
	protected.HandleFunc("/bookings/{bookingId}/payment-order", createPaymentOrder.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/payment-verify", verifyPayment.Handle).Methods(http.MethodPost)

	// --- Туры ---
	protected.HandleFunc("/tour-packages/{tourId}/book", bookTourPackage.Handle).Methods(http.MethodPost)

	// --- Администрирование ---
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/refund", refundBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/resources", createResource.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/resources/{type}/{resourceId}", updateResource.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/resources/{type}/{resourceId}", deleteResource.Handle).Methods(http.MethodDelete)

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
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
