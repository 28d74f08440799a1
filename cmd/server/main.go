package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vibesense/vibesense/internal/api"
	appconfig "github.com/vibesense/vibesense/internal/config"
	vdb "github.com/vibesense/vibesense/internal/db"
	"github.com/vibesense/vibesense/internal/repository/postgres"
	"github.com/vibesense/vibesense/internal/selection"
	"github.com/vibesense/vibesense/internal/storage"
	"github.com/vibesense/vibesense/pkg/models"
)

func main() {
	// Configure zerolog for structured logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := appconfig.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Connectivity failure at startup is fatal; there is no retry.
	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("Failed to reach database")
	}
	defer db.Close()

	// "server migrate [up|down|version]" runs as a one-shot maintenance
	// command instead of starting the API.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		runMigrateCommand(db, cfg.Database.MigrationsDir, os.Args[2:])
		return
	}

	if err := vdb.MigrateUp(db, cfg.Database.MigrationsDir); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	captureStore, err := storage.NewCaptureStore(storage.S3Config{
		Bucket:    cfg.S3.Bucket,
		Endpoint:  cfg.S3.Endpoint,
		Region:    cfg.S3.Region,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create capture store")
	}

	projectRepo := postgres.NewPostgresProjectRepository(db)
	tagRepo := postgres.NewPostgresTagRepository(db)
	historyRepo := postgres.NewPostgresHistoryRepository(db)
	manager := selection.NewManager()

	// Create Chi router
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(zerologLogger())
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Create Huma API
	humaConfig := huma.DefaultConfig("VibeSense API", "1.0.0")
	humaConfig.DocsPath = "/api/docs"
	humaAPI := humachi.New(router, humaConfig)

	// Register health endpoint
	huma.Register(humaAPI, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns the health status of the service",
	}, func(ctx context.Context, input *struct{}) (*models.HealthResponse, error) {
		resp := &models.HealthResponse{}
		resp.Body.Status = "healthy"
		resp.Body.Version = "1.0.0"
		resp.Body.Time = time.Now()
		return resp, nil
	})

	api.RegisterRoutes(router, humaAPI, projectRepo, tagRepo, historyRepo, captureStore, manager)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Starting VibeSense API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// runMigrateCommand executes a schema maintenance action and exits.
func runMigrateCommand(db *sql.DB, migrationsDir string, args []string) {
	action := "up"
	if len(args) > 0 {
		action = args[0]
	}

	switch action {
	case "up":
		if err := vdb.MigrateUp(db, migrationsDir); err != nil {
			log.Fatal().Err(err).Msg("Migration up failed")
		}
		log.Info().Msg("Migrations applied")
	case "down":
		if err := vdb.MigrateDown(db, migrationsDir); err != nil {
			log.Fatal().Err(err).Msg("Migration down failed")
		}
		log.Info().Msg("Rolled back one migration")
	case "version":
		version, dirty, err := vdb.MigrateVersion(db, migrationsDir)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to read migration version")
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Migration version")
	default:
		log.Fatal().Str("action", action).Msg("Unknown migrate action, expected up, down or version")
	}
}

// zerologLogger returns a Chi middleware that logs HTTP requests using zerolog
func zerologLogger() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				log.Info().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Str("remote_ip", r.RemoteAddr).
					Int("status", ww.Status()).
					Dur("latency", time.Since(start)).
					Str("user_agent", r.UserAgent()).
					Msg("HTTP request")
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
