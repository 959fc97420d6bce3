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

	bookReservationHandler "github.com/m04kA/SMC-ChairReservation/internal/api/handlers/book_reservation"
	cancelReservationHandler "github.com/m04kA/SMC-ChairReservation/internal/api/handlers/cancel_reservation"
	getWeekHandler "github.com/m04kA/SMC-ChairReservation/internal/api/handlers/get_week"
	listLocationsHandler "github.com/m04kA/SMC-ChairReservation/internal/api/handlers/list_locations"
	subscribeWeekHandler "github.com/m04kA/SMC-ChairReservation/internal/api/handlers/subscribe_week"
	"github.com/m04kA/SMC-ChairReservation/internal/api/middleware"
	"github.com/m04kA/SMC-ChairReservation/internal/config"
	"github.com/m04kA/SMC-ChairReservation/internal/infra/fanout"
	blockRepo "github.com/m04kA/SMC-ChairReservation/internal/infra/storage/block"
	locationRepo "github.com/m04kA/SMC-ChairReservation/internal/infra/storage/location"
	reservationRepo "github.com/m04kA/SMC-ChairReservation/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ChairReservation/internal/service/blocks"
	"github.com/m04kA/SMC-ChairReservation/internal/service/cancelpolicy"
	"github.com/m04kA/SMC-ChairReservation/internal/service/eligibility"
	locationsService "github.com/m04kA/SMC-ChairReservation/internal/service/locations"
	"github.com/m04kA/SMC-ChairReservation/internal/service/slotrules"
	"github.com/m04kA/SMC-ChairReservation/internal/service/window"
	bookReservationUC "github.com/m04kA/SMC-ChairReservation/internal/usecase/book_reservation"
	cancelReservationUC "github.com/m04kA/SMC-ChairReservation/internal/usecase/cancel_reservation"
	getWeekSnapshotUC "github.com/m04kA/SMC-ChairReservation/internal/usecase/get_week_snapshot"
	"github.com/m04kA/SMC-ChairReservation/migrations"
	"github.com/m04kA/SMC-ChairReservation/pkg/dbmetrics"
	"github.com/m04kA/SMC-ChairReservation/pkg/logger"
	"github.com/m04kA/SMC-ChairReservation/pkg/metrics"
	"github.com/m04kA/SMC-ChairReservation/pkg/types"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
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

	log.Info("Starting SMC-ChairReservation...")
	log.Info("Configuration loaded from %s", configPath)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Метрики (если включены). nil-коллектор безопасен для вызовов
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

	if cfg.Database.ApplyMigrations {
		if err := migrations.Apply(ctx, db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	// Репозитории (с метриками или без)
	var executor dbmetrics.DBExecutor = db
	if cfg.Metrics.Enabled {
		executor = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	}
	reservationRepository := reservationRepo.NewRepository(executor)
	locationRepository := locationRepo.NewRepository(executor)
	blockRepository := blockRepo.NewRepository(executor)

	// Правила бронирования
	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("Failed to load timezone: %v", err)
	}
	clock := window.NewSystemClock(loc)

	windowSettings, err := buildWindowSettings(cfg, loc)
	if err != nil {
		log.Fatal("Invalid booking window settings: %v", err)
	}
	windowCalculator, err := window.NewCalculator(windowSettings)
	if err != nil {
		log.Fatal("Invalid booking window settings: %v", err)
	}

	slotRuleSet, err := buildSlotRules(cfg)
	if err != nil {
		log.Fatal("Invalid slot rules: %v", err)
	}

	blockEvaluator := blocks.NewEvaluator(blockRepository, log)
	eligibilityGate := eligibility.NewGate(reservationRepository, cfg.Eligibility.MinGapDays, log)
	cancelPolicy := cancelpolicy.NewPolicy(time.Duration(cfg.Cancellation.LeadTimeMinutes)*time.Minute, loc)
	log.Info("Booking rules: timezone=%s, opening=%s %s/%s, close=+%dd %s, slots=%d, min_gap=%dd, cancel_lead=%dm",
		cfg.BookingWindow.Timezone, cfg.BookingWindow.OpeningWeekday, cfg.BookingWindow.EarlyOpen,
		cfg.BookingWindow.GeneralOpen, *cfg.BookingWindow.CloseDayOffset, cfg.BookingWindow.CloseTime,
		len(slotRuleSet.EnumerateDailySlots()), cfg.Eligibility.MinGapDays, cfg.Cancellation.LeadTimeMinutes)

	// Fanout: локальный хаб, при включенном Redis события идут через pub/sub во все инстансы
	hub := fanout.NewHub(cfg.Fanout.SubscriberBuffer, metricsCollector, log)
	var publisher fanout.Publisher = hub
	if cfg.Redis.Enabled {
		redisClient := fanout.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer redisClient.Close()

		bridge := fanout.NewRedisBridge(redisClient, hub, metricsCollector, log)
		if err := bridge.Ping(ctx); err != nil {
			log.Fatal("Failed to connect to redis at %s: %v", cfg.Redis.Addr, err)
		}
		go bridge.Serve(ctx)
		publisher = bridge
		log.Info("Redis fanout bridge enabled (addr=%s)", cfg.Redis.Addr)
	}

	// Сервисы и use cases
	locationsSvc := locationsService.NewService(locationRepository, windowCalculator, clock, log)

	bookReservationUseCase := bookReservationUC.NewUseCase(
		reservationRepository,
		locationRepository,
		windowCalculator,
		slotRuleSet,
		eligibilityGate,
		blockEvaluator,
		publisher,
		clock,
		metricsCollector,
		log,
	)
	cancelReservationUseCase := cancelReservationUC.NewUseCase(
		reservationRepository,
		windowCalculator,
		cancelPolicy,
		publisher,
		clock,
		metricsCollector,
		log,
	)
	getWeekSnapshotUseCase := getWeekSnapshotUC.NewUseCase(
		reservationRepository,
		locationRepository,
		windowCalculator,
		slotRuleSet,
		blockEvaluator,
		clock,
		log,
	)

	// Handlers
	listLocations := listLocationsHandler.NewHandler(locationsSvc, log)
	getWeek := getWeekHandler.NewHandler(getWeekSnapshotUseCase, log)
	subscribeWeek := subscribeWeekHandler.NewHandler(hub, time.Duration(cfg.Fanout.HeartbeatSeconds)*time.Second, log)
	bookReservation := bookReservationHandler.NewHandler(bookReservationUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(cancelReservationUseCase, log)

	// Роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logging(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.HTTPMetrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// ============================================================
	// ROUTES (требуют X-User-ID от шлюза аутентификации)
	// ============================================================

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	api.HandleFunc("/locations", listLocations.Handle).Methods(http.MethodGet)
	api.HandleFunc("/locations/{locationId}/week", getWeek.Handle).Methods(http.MethodGet)
	api.HandleFunc("/locations/{locationId}/weeks/{monday}/events", subscribeWeek.Handle).Methods(http.MethodGet)

	// --- Изменяющие операции, с ограничением частоты на пользователя ---
	mutating := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.Limit, time.Duration(cfg.RateLimit.WindowSeconds)*time.Second, log)
		defer limiter.Stop()
		mutating.Use(limiter.Middleware)
		log.Info("Rate limit enabled: %d requests per %ds", cfg.RateLimit.Limit, cfg.RateLimit.WindowSeconds)
	}

	mutating.HandleFunc("/reservations", bookReservation.Handle).Methods(http.MethodPost)
	mutating.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPost)

	// HTTP сервер. WriteTimeout = 0 держит SSE соединения открытыми
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

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

	// SSE обработчики завершаются по закрытию каналов подписок
	hub.Close()
	stop()

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

func buildWindowSettings(cfg *config.Config, loc *time.Location) (window.Settings, error) {
	bw := cfg.BookingWindow

	weekday, err := config.ParseWeekday(bw.OpeningWeekday)
	if err != nil {
		return window.Settings{}, err
	}
	earlyOpen, err := types.NewTimeStringFromString(bw.EarlyOpen)
	if err != nil {
		return window.Settings{}, fmt.Errorf("early_open: %w", err)
	}
	generalOpen, err := types.NewTimeStringFromString(bw.GeneralOpen)
	if err != nil {
		return window.Settings{}, fmt.Errorf("general_open: %w", err)
	}
	closeTime, err := types.NewTimeStringFromString(bw.CloseTime)
	if err != nil {
		return window.Settings{}, fmt.Errorf("close_time: %w", err)
	}

	return window.Settings{
		Location:       loc,
		OpeningWeekday: weekday,
		EarlyOpen:      earlyOpen,
		GeneralOpen:    generalOpen,
		CloseDayOffset: *bw.CloseDayOffset,
		CloseTime:      closeTime,
	}, nil
}

func buildSlotRules(cfg *config.Config) (*slotrules.RuleSet, error) {
	ranges := make([]slotrules.Range, 0, len(cfg.SlotRules.Ranges))
	for _, r := range cfg.SlotRules.Ranges {
		ranges = append(ranges, slotrules.Range{Start: types.TimeString(r.Start), End: types.TimeString(r.End)})
	}
	return slotrules.NewRuleSet(ranges, cfg.SlotRules.StepMinutes)
}
