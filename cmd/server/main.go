package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"

	"github.com/gameshelf/gameshelf/internal/config"
	"github.com/gameshelf/gameshelf/internal/database"
	"github.com/gameshelf/gameshelf/internal/handlers"
	"github.com/gameshelf/gameshelf/internal/middleware"
	"github.com/gameshelf/gameshelf/internal/session"
	"github.com/gameshelf/gameshelf/internal/types"
	"github.com/gameshelf/gameshelf/internal/views"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Session store, persisted in the same database
	sessions := session.NewStore(cfg, db)

	// Template engine over the embedded views
	engine := html.NewFileSystem(http.FS(views.FS), ".html")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("gameshelf")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Create handlers
	authHandler := &handlers.AuthHandler{DB: db, Sessions: sessions}
	gameHandler := &handlers.VideogameHandler{DB: db}

	// The guard is attached per route; public routes never pass through it.
	guard := middleware.RequireUser(sessions)

	// Public routes
	app.Get("/", authHandler.Home)
	app.Get("/log-in", authHandler.LoginForm)
	app.Post("/log-in", authHandler.Login)
	app.Get("/sign-up", authHandler.SignupForm)
	app.Post("/sign-up", authHandler.Signup)
	app.Get("/log-out", authHandler.Logout)

	// Collection routes, all guarded
	app.Get("/new-videogame", guard, gameHandler.NewForm)
	app.Post("/new-videogame", guard, gameHandler.Create)
	app.Get("/all-videogames", guard, gameHandler.List)
	app.Get("/videogame/:id", guard, gameHandler.Single)
	app.Get("/edit-videogame/:id", guard, gameHandler.EditForm)
	app.Post("/edit-videogame/:id", guard, gameHandler.Edit)
	app.Post("/delete-game/:id", guard, gameHandler.Delete)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return &types.CustomError{
			Code:    fiber.StatusNotFound,
			Message: "Page not found",
			Type:    "router.notfound",
		}
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}
