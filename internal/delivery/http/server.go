package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"github.com/tourism-microservice/internal/config"
	"github.com/tourism-microservice/internal/delivery/http/handler"
	"github.com/tourism-microservice/internal/delivery/http/middleware"
	"github.com/tourism-microservice/internal/pkg/errors"
	"github.com/tourism-microservice/internal/pkg/utils"
	"go.uber.org/zap"
)

// Handlers - набор обработчиков, которые монтирует сервер
type Handlers struct {
	Place          *handler.PlaceHandler
	Reference      *handler.ReferenceHandler
	Chatbot        *handler.ChatbotHandler
	AdminPlace     *handler.AdminPlaceHandler
	OperatingHours *handler.OperatingHoursHandler
	Suggestion     *handler.SuggestionHandler
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app      *fiber.App
	config   *config.Config
	logger   *zap.Logger
	handlers Handlers
}

// NewServer - создание нового HTTP сервера
func NewServer(cfg *config.Config, logger *zap.Logger, handlers Handlers) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Tourism Microservice",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    50 * 1024 * 1024,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:      app,
		config:   cfg,
		logger:   logger,
		handlers: handlers,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App - доступ к fiber.App для тестов
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	if s.config.Metrics.Enabled {
		s.app.Use(middleware.Metrics())
	}
	s.app.Use(middleware.CORS(s.config.Socket.AllowedOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Uploaded images
	s.app.Static("/uploads", s.config.Upload.Dir)

	if s.config.Metrics.Enabled {
		s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	h := s.handlers

	// Reference data
	api.Get("/suggestions", h.Reference.Suggestions)
	api.Get("/filters", h.Reference.Filters)
	api.Get("/seasons", h.Reference.Seasons)
	api.Get("/districts", h.Reference.Districts)
	api.Get("/categories", h.Reference.Categories)

	// Places
	api.Get("/search", h.Place.Search)
	api.Get("/places", h.Place.ListPublished)
	api.Get("/places/nearby-by-coordinates", h.Place.NearbyByCoordinates)
	api.Get("/places/currently-open", h.Place.CurrentlyOpen)
	api.Get("/place/nearby/:id", h.Place.Nearby)
	api.Get("/place/:id", h.Place.GetPlace)
	api.Get("/seasons/real-time", h.Place.RealTimeSeason)
	api.Get("/seasons/:id/place", h.Place.BySeason)
	api.Get("/districts/:id/place", h.Place.ByDistrict)
	api.Get("/categories/:id/place", h.Place.ByCategory)
	api.Get("/time/:day_of_week/:opening_time/:closing_time", h.Place.OpenWithin)

	// Places by category, optionally within a district
	api.Get("/tourist-attractions/:district_id?", h.Place.TouristAttractions)
	api.Get("/accommodations/:district_id?", h.Place.Accommodations)
	api.Get("/restaurants/:district_id?", h.Place.Restaurants)
	api.Get("/souvenir-shops/:district_id?", h.Place.SouvenirShops)

	// Chatbot over HTTP
	api.Post("/chatbot", h.Chatbot.Ask)

	// Admin routes
	admin := api.Group("/admin", middleware.JWTAuth(s.config.Auth.JWTSecret))

	admin.Get("/place", h.AdminPlace.List)
	admin.Get("/place/:id", h.AdminPlace.Get)
	admin.Post("/place", h.AdminPlace.Create)
	admin.Put("/place/:id", h.AdminPlace.Update)
	admin.Delete("/place/:id", h.AdminPlace.Delete)
	admin.Get("/check-duplicate-name", h.AdminPlace.CheckDuplicateName)
	admin.Get("/search", h.AdminPlace.Search)

	admin.Get("/time", h.OperatingHours.List)
	admin.Get("/time/:id", h.OperatingHours.Get)
	admin.Post("/time", h.OperatingHours.Create)
	admin.Put("/time/:id", h.OperatingHours.Update)
	admin.Delete("/time/:id", h.OperatingHours.Delete)

	admin.Get("/suggestions", h.Suggestion.List)
	admin.Get("/suggestions/:id", h.Suggestion.Get)
	admin.Post("/suggestions", h.Suggestion.Create)
	admin.Put("/suggestions/:id", h.Suggestion.Update)
	admin.Delete("/suggestions/:id", h.Suggestion.Delete)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки fiber (404 маршрута, 405, лимит тела) в общем формате
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if appErr, ok := errors.As(err); ok {
			return utils.SendError(c, appErr)
		}

		code := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
			return utils.SendError(c, errors.ErrInternalServer)
		}

		return utils.SendError(c, errors.New(httpErrorCode(code), err.Error(), code))
	}
}

func httpErrorCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return errors.CodeNotFound
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	default:
		return "HTTP_ERROR"
	}
}
