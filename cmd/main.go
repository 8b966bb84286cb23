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

	advanceDeliveryHandler "github.com/m04kA/BBQ-RentalService/internal/api/handlers/advance_delivery"
	affiliateClickHandler "github.com/m04kA/BBQ-RentalService/internal/api/handlers/affiliate_click"
	assignEquipmentHandler "github.com/m04kA/BBQ-RentalService/internal/api/handlers/assign_equipment"
	createAffiliateLinkHandler "github.com/m04kA/BBQ-RentalService/internal/api/handlers/create_affiliate_link"
	createBookingHandler "github.com/m04kA/BBQ-RentalService/internal/api/handlers/create_booking"
	createEquipmentHandler "github.com/m04kA/BBQ-RentalService/internal/api/handlers/create_equipment"
	driverLoginHandler "github.com/m04kA/BBQ-RentalService/internal/api/handlers/driver_login"
	exportBookingsHandler "github.com/m04kA/BBQ-RentalService/internal/api/handlers/export_bookings"
	getAdminBookingsHandler "github.com/m04kA/BBQ-RentalService/internal/api/handlers/get_admin_bookings"
	getAffiliateLinksHandler "github.com/m04kA/BBQ-RentalService/internal/api/handlers/get_affiliate_links"
	getAvailableSlotsHandler "github.com/m04kA/BBQ-RentalService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/BBQ-RentalService/internal/api/handlers/get_booking"
	getCatalogHandler "github.com/m04kA/BBQ-RentalService/internal/api/handlers/get_catalog"
	getCommissionsHandler "github.com/m04kA/BBQ-RentalService/internal/api/handlers/get_commissions"
	getDriverBookingsHandler "github.com/m04kA/BBQ-RentalService/internal/api/handlers/get_driver_bookings"
	getEquipmentHandler "github.com/m04kA/BBQ-RentalService/internal/api/handlers/get_equipment"
	getMeHandler "github.com/m04kA/BBQ-RentalService/internal/api/handlers/get_me"
	getUserBookingsHandler "github.com/m04kA/BBQ-RentalService/internal/api/handlers/get_user_bookings"
	getWeatherHandler "github.com/m04kA/BBQ-RentalService/internal/api/handlers/get_weather"
	loginHandler "github.com/m04kA/BBQ-RentalService/internal/api/handlers/login"
	processCommissionHandler "github.com/m04kA/BBQ-RentalService/internal/api/handlers/process_commission"
	registerHandler "github.com/m04kA/BBQ-RentalService/internal/api/handlers/register"
	releaseEquipmentHandler "github.com/m04kA/BBQ-RentalService/internal/api/handlers/release_equipment"
	setAdminHandler "github.com/m04kA/BBQ-RentalService/internal/api/handlers/set_admin"
	updateBookingHandler "github.com/m04kA/BBQ-RentalService/internal/api/handlers/update_booking"
	updateEquipmentStatusHandler "github.com/m04kA/BBQ-RentalService/internal/api/handlers/update_equipment_status"
	"github.com/m04kA/BBQ-RentalService/internal/api/middleware"
	"github.com/m04kA/BBQ-RentalService/internal/config"
	"github.com/m04kA/BBQ-RentalService/internal/domain"
	availabilityCache "github.com/m04kA/BBQ-RentalService/internal/infra/cache/availability"
	catalogData "github.com/m04kA/BBQ-RentalService/internal/infra/catalog"
	"github.com/m04kA/BBQ-RentalService/internal/infra/events"
	affiliateRepo "github.com/m04kA/BBQ-RentalService/internal/infra/storage/affiliate"
	bookingRepo "github.com/m04kA/BBQ-RentalService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/BBQ-RentalService/internal/infra/storage/catalog"
	equipmentRepo "github.com/m04kA/BBQ-RentalService/internal/infra/storage/equipment"
	"github.com/m04kA/BBQ-RentalService/internal/infra/storage/memory"
	userRepo "github.com/m04kA/BBQ-RentalService/internal/infra/storage/user"
	weatherClient "github.com/m04kA/BBQ-RentalService/internal/integrations/weather"
	affiliateService "github.com/m04kA/BBQ-RentalService/internal/service/affiliate"
	bookingsService "github.com/m04kA/BBQ-RentalService/internal/service/bookings"
	catalogService "github.com/m04kA/BBQ-RentalService/internal/service/catalog"
	driverService "github.com/m04kA/BBQ-RentalService/internal/service/driver"
	equipmentService "github.com/m04kA/BBQ-RentalService/internal/service/equipment"
	identityService "github.com/m04kA/BBQ-RentalService/internal/service/identity"
	createBookingUC "github.com/m04kA/BBQ-RentalService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/BBQ-RentalService/internal/usecase/get_available_slots"
	"github.com/m04kA/BBQ-RentalService/pkg/auth"
	"github.com/m04kA/BBQ-RentalService/pkg/dbmetrics"
	"github.com/m04kA/BBQ-RentalService/pkg/logger"
	"github.com/m04kA/BBQ-RentalService/pkg/metrics"
	"github.com/m04kA/BBQ-RentalService/pkg/txmanager"
)

// Наборы методов, которые реализуют и PostgreSQL, и in-memory хранилища
type (
	bookingStore interface {
		createBookingUC.BookingRepository
		bookingsService.BookingRepository
		equipmentService.BookingRepository
		affiliateService.BookingRepository
	}
	userStore interface {
		createBookingUC.UserRepository
		identityService.UserRepository
		affiliateService.UserRepository
	}
	catalogStore interface {
		createBookingUC.CatalogRepository
		catalogService.CatalogRepository
		Seed(ctx context.Context, locations []domain.Location, packages []domain.Package) error
	}
	affiliateStore interface {
		createBookingUC.AffiliateRepository
		affiliateService.AffiliateRepository
	}
	txManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
)

type repositories struct {
	bookings   bookingStore
	users      userStore
	catalog    catalogStore
	equipment  equipmentService.EquipmentRepository
	affiliates affiliateStore
	tx         txManager
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

	log.Info("Starting BBQ-RentalService...")
	log.Info("Configuration loaded from config.toml (storage=%s)", cfg.Storage.Driver)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Параметры бронирования
	slots, err := domain.NewSlotTable(cfg.Booking.TimeSlots)
	if err != nil {
		log.Fatal("Invalid booking.time_slots: %v", err)
	}
	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking.timezone: %v", err)
	}
	cleanupAmount, err := cfg.Booking.CleanupDecimal()
	if err != nil {
		log.Fatal("Invalid booking.cleanup_amount: %v", err)
	}

	// Хранилище
	var repos *repositories
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		repos = newMemoryRepositories()
		log.Info("Using in-memory storage")

	default:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		repos = newPostgresRepositories(wrappedDB)
	}

	// Справочник пляжей и пакетов
	catalog, err := catalogData.Load(cfg.Catalog.File)
	if err != nil {
		log.Fatal("Failed to load catalog: %v", err)
	}
	if err := repos.catalog.Seed(context.Background(), catalog.Locations, catalog.Packages); err != nil {
		log.Fatal("Failed to seed catalog: %v", err)
	}
	log.Info("Catalog seeded (locations=%d, packages=%d)", len(catalog.Locations), len(catalog.Packages))

	// Redis и Kafka необязательны; выключенные зависимости передаются как nil интерфейсы
	availabilityOpts := []getAvailableSlotsUC.Option{getAvailableSlotsUC.WithMetrics(metricsCollector)}

	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn("Redis is not reachable at %s, availability cache will miss: %v", cfg.Redis.Addr, err)
		}
		cache := availabilityCache.NewCache(redisClient, time.Duration(cfg.Redis.AvailabilityTTL)*time.Second)
		availabilityOpts = append(availabilityOpts, getAvailableSlotsUC.WithCache(cache))
		log.Info("Availability cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.AvailabilityTTL)
	}

	var (
		bookingPublisher createBookingUC.Publisher
		updatePublisher  bookingsService.Publisher
	)
	if cfg.Kafka.Enabled {
		writer := events.NewKafkaWriter(cfg.Kafka.Brokers)
		producer := events.NewProducer(writer, cfg.Kafka.AvailabilityTopic, cfg.Kafka.BookingTopic, log)
		defer producer.Close()

		bookingPublisher = producer
		updatePublisher = producer
		availabilityOpts = append(availabilityOpts, getAvailableSlotsUC.WithPublisher(producer))
		log.Info("Kafka events enabled (brokers=%v)", cfg.Kafka.Brokers)
	}

	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTL)*time.Minute)

	weather := weatherClient.NewClient(
		cfg.Weather.URL,
		cfg.Weather.APIKey,
		cfg.Weather.Units,
		time.Duration(cfg.Weather.Timeout)*time.Second,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		repos.bookings,
		slots,
		cfg.Booking.MaxUnits,
		location,
		log,
		availabilityOpts...,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		repos.bookings,
		repos.users,
		repos.catalog,
		repos.affiliates,
		repos.tx,
		getAvailableSlotsUseCase,
		bookingPublisher,
		metricsCollector,
		createBookingUC.Settings{
			Slots:            slots,
			MaxUnits:         cfg.Booking.MaxUnits,
			Location:         location,
			AllowOverbooking: cfg.Booking.AllowOverbooking,
			CleanupAmount:    cleanupAmount,
		},
		log,
	)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		repos.bookings,
		repos.equipment,
		repos.tx,
		getAvailableSlotsUseCase,
		updatePublisher,
		bookingsService.Settings{
			Slots:            slots,
			MaxUnits:         cfg.Booking.MaxUnits,
			Location:         location,
			AllowOverbooking: cfg.Booking.AllowOverbooking,
		},
		log,
	)
	equipmentSvc := equipmentService.NewService(
		repos.equipment,
		repos.bookings,
		repos.tx,
		getAvailableSlotsUseCase,
		metricsCollector,
		log,
	)
	driverSvc := driverService.NewService(repos.bookings, bookingSvc, issuer, cfg.Auth.DriverCodes, log)
	identitySvc := identityService.NewService(repos.users, repos.tx, issuer, cfg.Auth.BcryptCost, log)
	affiliateSvc := affiliateService.NewService(
		repos.affiliates,
		repos.users,
		repos.bookings,
		repos.tx,
		metricsCollector,
		log,
	)
	catalogSvc := catalogService.NewService(repos.catalog, log)

	// Инициализируем handlers
	getCatalog := getCatalogHandler.NewHandler(catalogSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getWeather := getWeatherHandler.NewHandler(weather, log)
	affiliateClick := affiliateClickHandler.NewHandler(affiliateSvc, log)
	register := registerHandler.NewHandler(identitySvc, log)
	login := loginHandler.NewHandler(identitySvc, log)
	driverLogin := driverLoginHandler.NewHandler(driverSvc, log)

	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getMe := getMeHandler.NewHandler(identitySvc, log)

	getDriverBookings := getDriverBookingsHandler.NewHandler(driverSvc, log)
	advanceDelivery := advanceDeliveryHandler.NewHandler(driverSvc, log)

	getAdminBookings := getAdminBookingsHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, log)
	exportBookings := exportBookingsHandler.NewHandler(bookingSvc, log)
	setAdmin := setAdminHandler.NewHandler(identitySvc, log)
	createEquipment := createEquipmentHandler.NewHandler(equipmentSvc, log)
	getEquipment := getEquipmentHandler.NewHandler(equipmentSvc, log)
	assignEquipment := assignEquipmentHandler.NewHandler(equipmentSvc, log)
	releaseEquipment := releaseEquipmentHandler.NewHandler(equipmentSvc, log)
	updateEquipmentStatus := updateEquipmentStatusHandler.NewHandler(equipmentSvc, log)
	createAffiliateLink := createAffiliateLinkHandler.NewHandler(affiliateSvc, log)
	getAffiliateLinks := getAffiliateLinksHandler.NewHandler(affiliateSvc, log)
	getCommissions := getCommissionsHandler.NewHandler(affiliateSvc, log)
	processCommission := processCommissionHandler.NewHandler(affiliateSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без сессии)
	// ============================================================

	api.HandleFunc("/locations", getCatalog.Locations).Methods(http.MethodGet)
	api.HandleFunc("/packages", getCatalog.Packages).Methods(http.MethodGet)
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/weather", getWeather.Handle).Methods(http.MethodGet)
	api.HandleFunc("/affiliate/{customUrl}", affiliateClick.Handle).Methods(http.MethodGet)
	api.HandleFunc("/register", register.Handle).Methods(http.MethodPost)
	api.HandleFunc("/login", login.Handle).Methods(http.MethodPost)
	api.HandleFunc("/driver/login", driverLogin.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (сессия администратора)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth(issuer), middleware.RequireAdmin)

	// --- Бронирования ---
	admin.HandleFunc("/bookings", getAdminBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/export", exportBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}", updateBooking.Handle).Methods(http.MethodPatch)

	// --- Пользователи ---
	admin.HandleFunc("/users/{userId:[0-9]+}", setAdmin.Handle).Methods(http.MethodPatch)

	// --- Оборудование ---
	admin.HandleFunc("/bbq-equipment", getEquipment.List).Methods(http.MethodGet)
	admin.HandleFunc("/bbq-equipment", createEquipment.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/bbq-equipment/available", getEquipment.Available).Methods(http.MethodGet)
	admin.HandleFunc("/bbq-equipment/{equipmentId:[0-9]+}", getEquipment.Get).Methods(http.MethodGet)
	admin.HandleFunc("/bbq-equipment/{equipmentId:[0-9]+}", updateEquipmentStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bbq-equipment/{equipmentId:[0-9]+}/assign", assignEquipment.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/bbq-equipment/{equipmentId:[0-9]+}/release", releaseEquipment.Handle).Methods(http.MethodPost)

	// --- Реферальная программа ---
	admin.HandleFunc("/affiliate-links", getAffiliateLinks.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/affiliate-links", createAffiliateLink.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/commissions", getCommissions.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/commissions/{commissionId:[0-9]+}/process", processCommission.Handle).Methods(http.MethodPost)

	// ============================================================
	// DRIVER ROUTES (списки - любая сессия, смена доставки - водитель или администратор)
	// ============================================================

	driverRoutes := api.PathPrefix("/driver").Subrouter()
	driverRoutes.Use(middleware.Auth(issuer))

	driverRoutes.HandleFunc("/deliveries", getDriverBookings.Deliveries).Methods(http.MethodGet)
	driverRoutes.HandleFunc("/pickups", getDriverBookings.Pickups).Methods(http.MethodGet)
	driverRoutes.Handle("/bookings/{bookingId:[0-9]+}/delivery",
		middleware.RequireDriverOrAdmin(http.HandlerFunc(advanceDelivery.Handle))).Methods(http.MethodPatch)

	// ============================================================
	// USER ROUTES (сессия пользователя)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(issuer), middleware.RequireUser)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId:[0-9]+}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Профиль ---
	protected.HandleFunc("/user", getMe.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/user/balance", getMe.Balance).Methods(http.MethodGet)
	protected.HandleFunc("/user/bookings", getUserBookings.HandleCurrent).Methods(http.MethodGet)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

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

func newPostgresRepositories(db *dbmetrics.DB) *repositories {
	return &repositories{
		bookings:   bookingRepo.NewRepository(db),
		users:      userRepo.NewRepository(db),
		catalog:    catalogRepo.NewRepository(db),
		equipment:  equipmentRepo.NewRepository(db),
		affiliates: affiliateRepo.NewRepository(db),
		tx:         txmanager.NewTransactionManager(db),
	}
}

func newMemoryRepositories() *repositories {
	store := memory.NewStore()
	return &repositories{
		bookings:   store.Bookings(),
		users:      store.Users(),
		catalog:    store.Catalog(),
		equipment:  store.Equipment(),
		affiliates: store.Affiliates(),
		tx:         memory.NewTxManager(store),
	}
}
