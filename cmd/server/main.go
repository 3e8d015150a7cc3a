package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weighbridge-backend/internal/auth"
	"weighbridge-backend/internal/cache"
	"weighbridge-backend/internal/config"
	"weighbridge-backend/internal/database"
	"weighbridge-backend/internal/db"
	"weighbridge-backend/internal/handlers"
	"weighbridge-backend/internal/health"
	h "weighbridge-backend/internal/http"
	"weighbridge-backend/internal/middleware"
	"weighbridge-backend/internal/realtime"
	"weighbridge-backend/internal/repositories"
	"weighbridge-backend/internal/services"
	"weighbridge-backend/internal/templates"
	"weighbridge-backend/migrations"
)

// newExportService wires whichever export backends are configured. Missing ones make
// exports answer with the "unavailable" notice instead of failing at startup.
func newExportService(ctx context.Context, cfg *config.Config, registry *templates.Registry) *services.ExportService {
	exports := services.NewExportService(registry, nil, services.PDFAssembler{}, nil)

	if cfg.Raster.URL != "" {
		exports.Raster = services.NewRasterService(cfg.Raster.URL, time.Duration(cfg.Raster.TimeoutSeconds)*time.Second)
		log.Printf("[Export] Rasterizer at %s", cfg.Raster.URL)
	} else {
		log.Println("[Export] RASTER_URL not set, exports disabled")
	}

	if cfg.Archive.Enabled {
		archive, err := services.NewArchiveService(ctx, cfg)
		if err != nil {
			log.Printf("[Export] Archive unavailable: %v", err)
		} else {
			exports.Archive = archive
			log.Printf("[Export] Archiving exports to bucket %s", cfg.Archive.Bucket)
		}
	}
	return exports
}

func main() {
	// Load configuration
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()
	log.Printf("Connected to database: %s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (previews render on every request)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}
	defer cache.Close()

	// Run database migrations from the embedded schema
	log.Println("Running database migrations...")
	migrator := database.NewMigratorWithFS(pool, migrations.FS, ".")
	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	if err := migrator.RunMigrations(migrateCtx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	cancelMigrate()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize health checker
	healthChecker := health.NewHealthChecker(pool)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(pool)
	loginLogRepo := repositories.NewLoginLogRepository(pool)
	entityRepo := repositories.NewEntityRepository(pool)
	ticketRepo := repositories.NewTicketRepository(pool)

	// Initialize services
	registry := templates.NewRegistry()
	userService := services.NewUserService(userRepo, jwtManager)
	ticketService := services.NewTicketService(ticketRepo, entityRepo)
	previewService := services.NewPreviewService(registry)
	exportService := newExportService(ctx, cfg, registry)
	reportService := services.NewReportService(ticketService, exportService)

	// Store change notifications drive the live sessions
	hub := realtime.NewHub()
	go realtime.NewPGListener(pool, hub).Run(ctx)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, loginLogRepo)
	ticketHandler := handlers.NewTicketHandler(ticketService)
	previewHandler := handlers.NewPreviewHandler(previewService, ticketService)
	exportHandler := handlers.NewExportHandler(exportService, reportService, ticketService)
	liveHandler := handlers.NewLiveHandler(hub, ticketService, cfg.Server.CorsAllowedOrigins)
	healthHandler := handlers.NewHealthHandler(healthChecker)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)

	router := h.NewRouter(authHandler, ticketHandler, previewHandler, exportHandler, liveHandler, healthHandler, authMiddleware)
	corsMiddleware := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(corsMiddleware(router))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: handler}

	go func() {
		<-ctx.Done()
		log.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("Server running on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
}
