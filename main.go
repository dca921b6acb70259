package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"interview-coach/internal/config"
	"interview-coach/internal/domain/entities"
	repo "interview-coach/internal/domain/interfaces/repository"
	Iservices "interview-coach/internal/domain/interfaces/services"
	"interview-coach/internal/infra/handlers"
	"interview-coach/internal/infra/logger"
	"interview-coach/internal/infra/prompt"
	"interview-coach/internal/infra/provider"
	"interview-coach/internal/infra/repository"
	"interview-coach/internal/infra/routes"
	"interview-coach/internal/infra/security"
	"interview-coach/internal/infra/services"
	"interview-coach/internal/infra/session"
	"interview-coach/internal/middleware"
	client "interview-coach/internal/pkg"

	"github.com/gorilla/mux"
)

func main() {
	_ = config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.NewLogger(ctx, cfg.LogJSON, cfg.LogLevel)

	var (
		recordRepo repo.Repository[entities.InterviewRecord]
		userRepo   repo.Repository[entities.User]
	)
	switch cfg.StorageBackend {
	case config.StorageMemory:
		log.Warn("Using in-memory storage; completed interviews and accounts are lost on restart")
		recordRepo = repository.NewMemoryRepository[entities.InterviewRecord]()
		userRepo = repository.NewMemoryRepository[entities.User]()
	default:
		mongoClient, err := client.MongoClient(ctx, cfg.MongoURI)
		if err != nil {
			log.Fatal(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		}
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			_ = mongoClient.Disconnect(disconnectCtx)
		}()
		db := mongoClient.Database(cfg.MongoDatabase)
		recordRepo = repository.NewMongoRepository[entities.InterviewRecord](db)
		userRepo = repository.NewMongoRepository[entities.User](db)
	}

	var completionProvider provider.ICompletionProvider
	if cfg.LLM.UseMock {
		log.Warn("USE_MOCK_LLM is set; questions come from the mock provider")
		completionProvider = provider.NewMockProvider()
	} else {
		if cfg.LLM.APIKey == "" {
			log.Warn("OPENAI_API_KEY is not set; interview endpoints will fail until it is configured")
		}
		completionProvider = provider.NewOpenAIProvider(log, cfg.LLM)
	}

	renderer, err := prompt.NewRenderer()
	if err != nil {
		log.Fatal(fmt.Sprintf("Failed to load prompt templates: %v", err))
	}

	registry := session.NewRegistry(nil)
	go registry.RunJanitor(ctx, cfg.SessionTTL, cfg.SessionSweepInterval, log)

	var recordService Iservices.IInterviewRecordService = services.NewInterviewRecordService(recordRepo, log)
	var interviewService Iservices.IInterviewService = services.NewInterviewService(
		log, registry, renderer, completionProvider, recordService, cfg.PersistTimeout,
	)

	userSvc, err := services.NewUserService(userRepo, security.NewBcryptCredential(cfg.BcryptCost), log)
	if err != nil {
		log.Fatal(fmt.Sprintf("Failed to create user service: %v", err))
	}
	if err := userSvc.EnsureIndexes(ctx); err != nil {
		log.Fatal(fmt.Sprintf("Failed to create user indexes: %v", err))
	}
	var userService Iservices.IUserService = userSvc

	authLimiter := middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst, cfg.TrustProxyHeaders)
	go authLimiter.RunEviction(ctx, 5*time.Minute, 10*time.Minute)

	router := mux.NewRouter()
	routes := routes.NewRoutes(
		router,
		handlers.NewInterviewHandlers(log, interviewService, recordService),
		handlers.NewAuthHandlers(log, userService),
		authLimiter.Middleware,
	)
	routes.Init()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           middleware.Stack(router, log, cfg.CORSAllowedOrigin),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info(fmt.Sprintf("Server is running on port %s", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(fmt.Sprintf("Error running HTTP server: %s", err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(fmt.Sprintf("Server forced to shutdown: %v", err))
	} else {
		log.Info("Server stopped gracefully.")
	}
}
