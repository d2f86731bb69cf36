package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"consultant-tracker-backend/config"
	_ "consultant-tracker-backend/docs" // Important for Swagger
	v1 "consultant-tracker-backend/internal/delivery/http/v1"
	"consultant-tracker-backend/internal/repository/postgres"
	"consultant-tracker-backend/internal/usecase"
	"consultant-tracker-backend/pkg/ai"
	"consultant-tracker-backend/pkg/database"
	"consultant-tracker-backend/pkg/logger"
	"consultant-tracker-backend/pkg/redis"
	"consultant-tracker-backend/pkg/token"
	"consultant-tracker-backend/pkg/upload"
)

// @title           Consultant Tracker API
// @version         1.0
// @description     Backend for a recruiting pipeline: job postings, consultant profiles and submissions.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting consultant tracker backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional; rate limiting falls back to in-memory)
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
		}
		defer redis.Close()
	}

	// 5. Setup Repositories
	credStore := postgres.NewCredentialStore(dbPool)
	recruiterProfileRepo := postgres.NewRecruiterProfileRepository(dbPool)
	consultantProfileRepo := postgres.NewConsultantProfileRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	submissionRepo := postgres.NewSubmissionRepository(dbPool)

	// 6. Setup Supporting Services
	tokens := token.NewManager(cfg.SecretKey, cfg.TokenTTL())
	uploads := upload.NewStore(cfg.UploadDir, cfg.MaxUploadSize, cfg.AllowedExtensions)
	classifier, err := ai.NewClassifier(ai.Config{
		BaseURL: cfg.AIBaseURL,
		Model:   cfg.AIModel,
		Timeout: cfg.AITimeout(),
	})
	if err != nil {
		logger.Log.Error("Failed to configure AI classifier", "error", err)
		os.Exit(1)
	}

	// 7. Setup UseCases
	authUC := usecase.NewAuthUsecase(credStore, tokens)
	jobUC := usecase.NewJobUsecase(jobRepo, credStore, classifier, uploads)
	recruiterUC := usecase.NewRecruiterUsecase(recruiterProfileRepo)
	consultantUC := usecase.NewConsultantUsecase(consultantProfileRepo, credStore, submissionRepo, uploads)
	submissionUC := usecase.NewSubmissionUsecase(submissionRepo, jobRepo, credStore, consultantProfileRepo, uploads)
	healthUC := usecase.NewHealthUsecase(dbPool)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:       authUC,
		JobUC:        jobUC,
		RecruiterUC:  recruiterUC,
		ConsultantUC: consultantUC,
		SubmissionUC: submissionUC,
		HealthUC:     healthUC,
		Tokens:       tokens,
		Config:       cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
