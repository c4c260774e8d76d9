// Command server is the entry point for the AI board backend.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Jins0l/ai-board-project/internal/cache"
	"github.com/Jins0l/ai-board-project/internal/config"
	"github.com/Jins0l/ai-board-project/internal/database"
	"github.com/Jins0l/ai-board-project/internal/models"
	"github.com/Jins0l/ai-board-project/internal/server"

	"github.com/gofiber/fiber/v2"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// The store handle starts uninitialized; the bootstrap loop fills it in.
	// The server comes up immediately and answers 503 on store-dependent
	// endpoints until the store is reachable.
	handle := database.NewHandle()
	bootstrapCtx, cancelBootstrap := context.WithCancel(context.Background())
	go database.ConnectWithRetry(bootstrapCtx, cfg, handle)

	// Redis is optional; without it the auth endpoints run unthrottled.
	cache.InitRedis(cfg.RedisURL)

	srv := server.NewServer(cfg, handle, cache.GetClient())

	app := fiber.New(fiber.Config{
		AppName: "AI Board API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})

	srv.SetupMiddleware(app)
	srv.SetupRoutes(app)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		cancelBootstrap()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
		if err := handle.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
		if rdb := cache.GetClient(); rdb != nil {
			if err := rdb.Close(); err != nil {
				log.Printf("Error closing redis: %v", err)
			}
		}
	}()

	log.Printf("Server starting on port %s...", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
