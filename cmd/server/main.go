package main

import (
	"alcyxob/fitness-tracker/internal/analytics"
	"alcyxob/fitness-tracker/internal/api"
	"alcyxob/fitness-tracker/internal/config"
	"alcyxob/fitness-tracker/internal/logging"
	"alcyxob/fitness-tracker/internal/metrics"
	"alcyxob/fitness-tracker/internal/repository/mongo"
	"alcyxob/fitness-tracker/internal/service"
	"alcyxob/fitness-tracker/internal/storage"
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// @title Fitness Tracker API
// @version 1.0
// @description API for logging workouts and tracking strength progress.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	configPath := flag.String("config", ".", "directory containing config.yaml")
	flag.Parse()

	// --- Configuration ---
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	logging.Setup(logging.Params{
		Level:    cfg.Log.Level,
		FileName: cfg.Log.File,
		Stdout:   cfg.Log.Stdout,
		JSON:     cfg.Log.JSON,
	})
	log.Info("starting fitness tracker server")

	formula, err := cfg.Analytics.Formula()
	if err != nil {
		log.Fatalf("invalid analytics config: %v", err)
	}
	log.WithFields(log.Fields{
		"rep_cutoff": formula.RepCutoff,
		"rounding":   formula.Rounding,
	}).Info("set evaluator configured")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("could not connect to MongoDB: %v", err)
	}
	appDB := dbClient.Database(cfg.Database.Name)
	log.WithField("db", cfg.Database.Name).Info("database connection established")

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := mongo.EnsureIndexes(ctx, appDB); err != nil {
			log.Warnf("index creation: %v", err)
			return
		}
		log.Debug("index creation completed")
	}()

	// --- Initialize Storage ---
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 10*time.Second)
	fileStorage, err := storage.NewS3Storage(storageCtx, cfg.S3)
	storageCancel()
	if err != nil {
		log.Fatalf("failed to initialize S3 storage: %v", err)
	}

	// --- Metrics ---
	var (
		metricsManager *metrics.Manager
		metricsRoute   api.MetricsRoute
	)
	if cfg.Metrics.Enabled {
		promRegistry := metrics.SetupPrometheus()
		metricsManager = metrics.NewManager(cfg.Metrics.Namespace, "server", promRegistry)
		metricsRoute = api.MetricsRoute{
			Path:    cfg.Metrics.Path,
			Handler: promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}),
		}
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	templateRepo := mongo.NewMongoTemplateRepository(appDB)
	sessionRepo := mongo.NewMongoSessionRepository(appDB)
	exportRepo := mongo.NewMongoExportRepository(appDB)

	// --- Initialize Services ---
	services := api.Services{
		Auth:     service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration),
		Exercise: service.NewExerciseService(exerciseRepo, fileStorage, cfg.S3.PresignExpiry),
		Template: service.NewTemplateService(templateRepo),
		Session:  service.NewSessionService(sessionRepo, analytics.NewAggregator(formula), metricsManager),
		Progress: service.NewProgressService(analytics.NewHistory(sessionRepo), metricsManager),
		Export:   service.NewExportService(sessionRepo, exportRepo, fileStorage, cfg.S3.PresignExpiry),
	}

	// --- Initialize Gin Engine ---
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	api.SetupRoutes(router, cfg.JWT.Secret, services, metricsManager, metricsRoute)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Infof("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	// Drain HTTP before closing the pool the handlers use.
	shutdownErr := server.Shutdown(ctxShutdown)
	shutdownErr = multierr.Append(shutdownErr, mongo.DisconnectDB(dbClient))
	for _, err := range multierr.Errors(shutdownErr) {
		log.Errorf("shutdown: %v", err)
	}

	log.Info("server exiting")
}
