package main

// @title Tourism Microservice API
// @version 1.0.0
// @description Туристический сервис: опубликованные объекты (достопримечательности, жильё, рестораны, сувенирные лавки), поиск, часы работы, сезоны и чат-бот.
// @description
// @description Основные возможности:
// @description - Публичные списки и единый поиск объектов
// @description - Объекты рядом с точкой и открытые сейчас
// @description - Чат-бот по HTTP и socket.io
// @description - Админский CRUD объектов, часов работы и подсказок (JWT)

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3000
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"

	_ "github.com/tourism-microservice/docs"
	"github.com/tourism-microservice/internal/config"
	httpDelivery "github.com/tourism-microservice/internal/delivery/http"
	"github.com/tourism-microservice/internal/delivery/http/handler"
	"github.com/tourism-microservice/internal/delivery/socket"
	"github.com/tourism-microservice/internal/domain/repository"
	"github.com/tourism-microservice/internal/infrastructure/ai"
	"github.com/tourism-microservice/internal/infrastructure/googleplaces"
	"github.com/tourism-microservice/internal/pkg/logger"
	"github.com/tourism-microservice/internal/pkg/utils"
	"github.com/tourism-microservice/internal/repository/cache"
	"github.com/tourism-microservice/internal/repository/postgres"
	redisRepo "github.com/tourism-microservice/internal/repository/redis"
	"github.com/tourism-microservice/internal/usecase"
	"github.com/tourism-microservice/internal/worker"
	"github.com/tourism-microservice/internal/worker/place"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "tourism-api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Tourism Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("socket_addr", cfg.GetSocketAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}
	cancel()
	log.Info("All connections healthy")

	// 6. Initialize repositories
	placeRepo := postgres.NewPlaceRepository(db)
	placeWriter := postgres.NewPlaceWriter(db)
	refRepo := postgres.NewReferenceRepository(db)
	hoursRepo := postgres.NewOperatingHoursRepository(db)
	suggestionRepo := postgres.NewSuggestionRepository(db)
	chatRepo := postgres.NewChatbotRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	// Внешние источники чат-бота необязательны
	var placesSearch repository.PlacesSearchRepository
	if cfg.Google.APIKey != "" {
		placesSearch = googleplaces.NewClient(&cfg.Google, cfg.Chatbot.UpstreamTimeout, log)
	} else {
		log.Warn("GOOGLE_PLACES_API_KEY is empty, external places search disabled")
	}

	var completion repository.CompletionRepository
	if cfg.AI.APIKey != "" {
		completion, err = ai.NewClient(&cfg.AI, log)
		if err != nil {
			log.Fatal("Failed to initialize AI client", zap.Error(err))
		}
	} else {
		log.Warn("AI_API_KEY is empty, AI fallback disabled")
	}

	log.Info("Repositories initialized")

	// 7. Initialize use cases
	clock := utils.NewClock(utils.LoadLocation(cfg.Chatbot.Timezone))
	notifier := usecase.NewStreamNotifier(streamRepo, cfg.Worker.Stream, log)

	placeUC := usecase.NewPlaceUseCase(
		placeRepo,
		refRepo,
		cacheRepo,
		cfg.Upload.AssetBaseURL,
		cfg.Cache.ListingsTTL,
		cfg.Cache.FiltersTTL,
		clock,
		log,
	)
	writerUC := usecase.NewPlaceWriterUseCase(placeWriter, placeRepo, refRepo, notifier, cfg.Upload.AssetBaseURL, log)
	hoursUC := usecase.NewOperatingHoursUseCase(hoursRepo, log)
	suggestionUC := usecase.NewSuggestionUseCase(suggestionRepo, cacheRepo, cfg.Cache.SuggestionsTTL, log)
	chatbotUC := usecase.NewChatbotUseCase(chatRepo, placesSearch, completion, cfg.Chatbot, clock, log)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP handlers
	handlers := httpDelivery.Handlers{
		Place:          handler.NewPlaceHandler(placeUC, log),
		Reference:      handler.NewReferenceHandler(placeUC, suggestionUC, log),
		Chatbot:        handler.NewChatbotHandler(chatbotUC, log),
		AdminPlace:     handler.NewAdminPlaceHandler(placeUC, writerUC, handler.NewUploadStore(cfg.Upload.Dir, cfg.Upload.MaxFiles), log),
		OperatingHours: handler.NewOperatingHoursHandler(hoursUC, log),
		Suggestion:     handler.NewSuggestionHandler(suggestionUC, log),
	}

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP server and socket.io hub
	server := httpDelivery.NewServer(cfg, log, handlers)
	hub := socket.NewHub(chatbotUC, cfg.GetSocketAddr(), cfg.Socket.AllowedOrigins,
		2*cfg.Chatbot.UpstreamTimeout+5*time.Second, log)

	// 10. Broadcast worker: новые объекты в чат
	workerCtx, workerCancel := context.WithCancel(context.Background())
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(place.NewBroadcastWorker(streamRepo, hub, cfg.Worker.Stream, "place-broadcast", log))
	if err := workerManager.Start(workerCtx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// 11. Start servers
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()
	go func() {
		if err := hub.Start(); err != nil {
			log.Fatal("Failed to start socket.io server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 12. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}
	if err := hub.Shutdown(ctx); err != nil {
		log.Error("Socket.io shutdown error", zap.Error(err))
	}

	workerCancel()
	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	// Close PostgreSQL connection
	if err := db.Close(); err != nil {
		log.Error("Failed to close PostgreSQL", zap.Error(err))
	}

	// Close Redis connection
	if err := redisClient.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
