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
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	allocateSlotHandler "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/api/handlers/allocate_slot"
	autoCancelHandler "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/api/handlers/auto_cancel_bookings"
	bulkDeleteSlotsHandler "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/api/handlers/bulk_delete_slots"
	categorizeSlotHandler "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/api/handlers/categorize_slot"
	generateSlotsHandler "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/api/handlers/generate_slots"
	getSlotsHandler "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/api/handlers/get_slots"
	recategorizeSlotsHandler "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/api/handlers/recategorize_slots"
	releaseSlotHandler "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/api/handlers/release_slot"
	runMaintenanceHandler "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/api/handlers/run_maintenance"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/api/middleware"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/config"
	availabilityRepo "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/infra/storage/availability"
	bookingRepo "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/infra/storage/booking"
	slotRepo "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/infra/storage/slot"
	catalogClient "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/integrations/catalogservice"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/scheduler"
	categorizerService "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/service/categorizer"
	slotsService "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/service/slots"
	allocateSlotUC "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/usecase/allocate_slot"
	autoCancelUC "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/usecase/auto_cancel_expired"
	generateSlotsUC "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/usecase/generate_slots"
	releaseSlotUC "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/usecase/release_slot"
	runMaintenanceUC "github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/usecase/run_maintenance"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/pkg/logger"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/pkg/metrics"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/pkg/pglock"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/pkg/txmanager"
)

func main() {
	// .env is optional; real deployments inject the variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SewaBazaar slot service...")

	// Collectors are registered unconditionally; cfg.Metrics.Enabled only
	// gates the HTTP endpoint and middleware.
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	if cfg.Metrics.Enabled {
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Database.
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

	// Category band table from config.
	categoryTable, err := cfg.CategoryTable()
	if err != nil {
		log.Fatal("Failed to build category table: %v", err)
	}
	cat := categorizerService.New(categoryTable)
	log.Info("Category table loaded (%d rules)", len(categoryTable.Rules))

	// Integration clients.
	catalog := catalogClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("CatalogService client initialized (url=%s, timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Repositories, transaction manager and the job lock.
	slotRepository := slotRepo.NewRepository(db)
	bookingRepository := bookingRepo.NewRepository(db)
	availabilityRepository := availabilityRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)
	jobLock := pglock.New(db)

	// Use cases.
	generateSlotsUseCase := generateSlotsUC.NewUseCase(
		slotRepository,
		availabilityRepository,
		cat,
		generateSlotsUC.Limits{
			MaxSlotsPerService: cfg.Slots.MaxSlotsPerService,
			BatchSize:          cfg.Slots.BatchSize,
		},
		log,
	)
	allocateSlotUseCase := allocateSlotUC.NewUseCase(slotRepository, bookingRepository, txMgr, log)
	releaseSlotUseCase := releaseSlotUC.NewUseCase(slotRepository, bookingRepository, txMgr, log)
	runMaintenanceUseCase := runMaintenanceUC.NewUseCase(
		slotRepository,
		generateSlotsUseCase,
		catalog,
		jobLock,
		runMaintenanceUC.Params{
			DaysAhead:     cfg.Slots.DaysAhead,
			RetentionDays: cfg.Slots.RetentionDays,
			BatchSize:     cfg.Slots.BatchSize,
			TimeBudget:    cfg.Scheduler.TimeBudget(),
		},
		log,
	)
	autoCancelUseCase := autoCancelUC.NewUseCase(
		bookingRepository,
		slotRepository,
		txMgr,
		jobLock,
		autoCancelUC.Params{GracePeriodDays: cfg.Scheduler.GracePeriodDays},
		log,
	)

	// Services.
	slotsSvc := slotsService.NewService(slotRepository, cat, log)

	// Handlers.
	getSlots := getSlotsHandler.NewHandler(slotsSvc, log)
	generateSlots := generateSlotsHandler.NewHandler(generateSlotsUseCase, log)
	categorizeSlot := categorizeSlotHandler.NewHandler(cat, log)
	allocateSlot := allocateSlotHandler.NewHandler(allocateSlotUseCase, metricsCollector, log)
	releaseSlot := releaseSlotHandler.NewHandler(releaseSlotUseCase, log)
	runMaintenance := runMaintenanceHandler.NewHandler(runMaintenanceUseCase, log)
	autoCancelBookings := autoCancelHandler.NewHandler(autoCancelUseCase, log)
	recategorizeSlots := recategorizeSlotsHandler.NewHandler(slotsSvc, log)
	bulkDeleteSlots := bulkDeleteSlotsHandler.NewHandler(slotsSvc, log)

	// Router.
	r := mux.NewRouter()
	r.Use(middleware.Auth)

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes.
	api.HandleFunc("/services/{serviceId}/slots", getSlots.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/slots/categorize", categorizeSlot.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots/{slotId}", getSlots.HandleByID).Methods(http.MethodGet)

	// Protected routes (handlers require the X-User-ID header).
	api.HandleFunc("/providers/{providerId}/services/{serviceId}/slots:generate",
		generateSlots.Handle).Methods(http.MethodPost)
	api.HandleFunc("/slots/{slotId}/allocate", allocateSlot.Handle).Methods(http.MethodPost)
	api.HandleFunc("/slots/{slotId}/release", releaseSlot.Handle).Methods(http.MethodPost)

	// Admin routes.
	api.HandleFunc("/admin/maintenance:run", runMaintenance.Handle).Methods(http.MethodPost)
	api.HandleFunc("/admin/bookings:auto-cancel", autoCancelBookings.Handle).Methods(http.MethodPost)
	api.HandleFunc("/admin/services/{serviceId}/slots:recategorize",
		recategorizeSlots.Handle).Methods(http.MethodPost)
	api.HandleFunc("/admin/services/{serviceId}/slots", bulkDeleteSlots.Handle).Methods(http.MethodDelete)

	// Scheduler.
	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.New(metricsCollector, log)
		if cfg.Scheduler.MaintenanceEnabled {
			job := scheduler.MaintenanceJob(cfg.Scheduler.MaintenanceSpec, runMaintenanceUseCase, metricsCollector)
			if err := sched.Register(job); err != nil {
				log.Fatal("Failed to register maintenance job: %v", err)
			}
		}
		if cfg.Scheduler.AutoCancelEnabled {
			job := scheduler.AutoCancelJob(cfg.Scheduler.AutoCancelSpec, autoCancelUseCase, metricsCollector)
			if err := sched.Register(job); err != nil {
				log.Fatal("Failed to register auto-cancel job: %v", err)
			}
		}
		sched.Start()
	} else {
		log.Warn("Scheduler disabled; maintenance and auto-cancel run only via admin endpoints")
	}

	// HTTP server with graceful shutdown.
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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if sched != nil {
		sched.Stop()
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
