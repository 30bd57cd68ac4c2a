package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/robsiuuu/jokebook/data"
	"github.com/robsiuuu/jokebook/internal/config"
	"github.com/robsiuuu/jokebook/internal/database"
	"github.com/robsiuuu/jokebook/internal/handlers"
	"github.com/robsiuuu/jokebook/internal/logging"
	"github.com/robsiuuu/jokebook/internal/middleware"
	"github.com/robsiuuu/jokebook/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/robsiuuu/jokebook/docs/api" // Swagger docs
)

// @title Jokebook API
// @version 1.0.0
// @description Joke delivery service backed by a relational database
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/robsiuuu/jokebook

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /
// @schemes http https

// Registered once with the default Prometheus registry
var metrics = fiberprometheus.New("jokebook")

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, restoreLogging, err := logging.Install(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer restoreLogging()

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Unreachable database is fatal at startup
	if err := database.Ping(startupCtx, db); err != nil {
		zlog.Fatal("Database is not reachable", zap.Error(err))
	}

	if cfg.DBInitOnStart {
		if err := database.Initialize(startupCtx, db); err != nil {
			zlog.Fatal("Failed to initialize database", zap.Error(err))
		}
	} else if err := database.AutoMigrate(db.WithContext(startupCtx)); err != nil {
		zlog.Fatal("Failed to run migrations", zap.Error(err))
	}

	app := newApp(cfg, db)

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		zlog.Info("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	zlog.Info("Starting server", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Fatal("Failed to start server", zap.Error(err))
	}

	zlog.Info("Server stopped")
}

// newApp builds the Fiber application with every route and middleware
func newApp(cfg *config.Config, db *gorm.DB) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "jokebook",
		ErrorHandler: handlers.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(middleware.RequestContext(cfg.RequestTimeout))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestID} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(compress.New())

	// Prometheus metrics
	metrics.RegisterAt(app, "/metrics")
	app.Use(metrics.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	systemHandler := &handlers.SystemHandler{Config: cfg, DB: db}
	app.Get("/api/test", systemHandler.Test)
	app.Get("/health", systemHandler.Health)

	// Jokebook API
	handlers.RegisterJokebookRoutes(app.Group("/jokebook"), &handlers.JokeHandler{DB: db})

	// Browser front end
	app.Use("/", filesystem.New(filesystem.Config{
		Root: http.FS(data.Public()),
	}))

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFoundResponse(c, "[404] Resource Not Found")
	})

	return app
}
