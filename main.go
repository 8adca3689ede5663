package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pustaka/internal/config"
	"pustaka/internal/handlers"
	"pustaka/internal/httputil"
	"pustaka/internal/middleware"
	"pustaka/internal/models"
	"pustaka/internal/repositories"
	"pustaka/internal/services"
	"pustaka/pkg/events"
)

func main() {
	cfg := config.Load()

	db, err := openDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Book{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	publisher := newPublisher(cfg.Events)
	defer publisher.Close()

	app := newApp(cfg, db, publisher)

	log.Printf("Starting server on %s", cfg.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.Server.Port); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// newApp wires repositories, services and handlers into a Fiber app.
func newApp(cfg *config.Config, db *gorm.DB, publisher events.Publisher) *fiber.App {
	userRepo := repositories.NewGORMUserRepository(db)
	bookRepo := repositories.NewGORMBookRepository(db)

	tokenService := services.NewTokenService(cfg.JWT)
	authService := services.NewAuthService(userRepo, tokenService)
	bookService := services.NewBookService(bookRepo, publisher)

	authHandler := handlers.NewAuthHandler(authService)
	bookHandler := handlers.NewBookHandler(bookService)

	app := fiber.New(fiber.Config{
		ErrorHandler: httputil.ErrorHandler(cfg.IsProduction()),
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	authRequired := middleware.AuthRequired(tokenService, userRepo)
	authHandler.RegisterRoutes(app, authRequired)
	bookHandler.RegisterRoutes(app, authRequired)

	app.Get("/health", func(c *fiber.Ctx) error {
		return httputil.Success(c, fiber.StatusOK, "Server is healthy", fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	app.Use(httputil.NotFoundHandler)

	return app
}

// openDatabase connects to the configured database. The unique-constraint
// translation is enabled so duplicate keys surface as gorm.ErrDuplicatedKey
// on every driver.
func openDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{TranslateError: true}

	switch cfg.Driver {
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.DSN), gormCfg)
	case "postgres":
		return gorm.Open(postgres.Open(cfg.DSN), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// newPublisher connects to the configured broker, or falls back to the
// no-op publisher so the API runs standalone when no broker is available.
func newPublisher(cfg config.EventsConfig) events.Publisher {
	if cfg.URL == "" {
		return events.Noop{}
	}
	client, err := events.NewClient(events.Config{URL: cfg.URL, Queue: cfg.Queue})
	if err != nil {
		log.Printf("Event publishing disabled, broker unreachable: %v", err)
		return events.Noop{}
	}
	return client
}
