// Package server contains the HTTP handlers for the board API.
package server

import (
	"context"
	"strings"
	"time"

	"github.com/Jins0l/ai-board-project/internal/config"
	"github.com/Jins0l/ai-board-project/internal/database"
	"github.com/Jins0l/ai-board-project/internal/middleware"
	"github.com/Jins0l/ai-board-project/internal/models"
	"github.com/Jins0l/ai-board-project/internal/repository"
	"github.com/Jins0l/ai-board-project/internal/sentiment"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	handle         *database.Handle
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	postRepo       repository.PostRepository
	classifier     *sentiment.Client
}

// NewServer creates a server around an injected store handle. The handle may
// still be uninitialized; store-dependent endpoints answer 503 until the
// bootstrap loop connects it.
func NewServer(cfg *config.Config, handle *database.Handle, redisClient *redis.Client) *Server {
	return &Server{
		config:         cfg,
		handle:         handle,
		redis:          redisClient,
		promMiddleware: fiberprometheus.New("ai-board-api"),
		userRepo:       repository.NewUserRepository(handle),
		postRepo:       repository.NewPostRepository(handle),
		classifier:     sentiment.NewClient(cfg.SentimentAPIURL),
	}
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID into the
	// request context for the structured logger
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/", s.Status)

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Auth routes
	auth := app.Group("/auth")
	auth.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)

	// Post routes; listing and detail are public, creation requires auth
	app.Get("/posts", s.GetPosts)
	app.Post("/posts", s.AuthRequired(), s.CreatePost)
	app.Get("/posts/:id", s.GetPost)
}

// Status handles GET / with basic server and dependency status.
func (s *Server) Status(c *fiber.Ctx) error {
	dbStatus := "disconnected"
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()
	if s.handle != nil && s.handle.Ready(ctx) {
		dbStatus = "connected"
	}

	return c.JSON(fiber.Map{
		"message":  "AI Board API",
		"status":   "running",
		"database": dbStatus,
		"time":     time.Now(),
	})
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. The store gates readiness;
// the sentiment service does not, since post creation falls back to the
// neutral label when it is down.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if s.handle == nil || !s.handle.Ready(ctx) {
		dbStatus = "unhealthy"
	}

	sentimentStatus := "healthy"
	if s.classifier == nil || !s.classifier.Healthy(ctx) {
		sentimentStatus = "degraded"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database":  dbStatus,
			"sentiment": sentimentStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware. A missing token yields
// 401; a token that fails verification (malformed, expired, wrong signature)
// yields 403.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization token required"))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			// Validate signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusForbidden, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Invalid token claims"))
		}

		userIDClaim, ok := claims["userId"].(float64)
		if !ok || userIDClaim <= 0 {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Invalid user ID in token"))
		}
		username, _ := claims["username"].(string)

		// Store the authenticated identity for downstream handlers
		c.Locals("userID", uint(userIDClaim))
		c.Locals("username", username)
		// Sync to UserContext for logging
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, uint(userIDClaim))
		c.SetUserContext(ctx)

		return c.Next()
	}
}
