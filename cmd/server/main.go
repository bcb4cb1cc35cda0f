package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron"

	config "github.com/jemert1992/socialcontrol/configs"
	"github.com/jemert1992/socialcontrol/internal/api/handlers"
	"github.com/jemert1992/socialcontrol/internal/api/middleware"
	job "github.com/jemert1992/socialcontrol/internal/jobs"
	"github.com/jemert1992/socialcontrol/internal/repository"
	"github.com/jemert1992/socialcontrol/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-API-Key",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	contentRepo := repository.NewContentRepository(db)
	accountRepo := repository.NewSocialAccountRepository(db)

	storage := service.NewMediaStorage(*cfg)
	notifier := service.NewWebhookNotifier(*cfg)
	contentService := service.NewContentService(contentRepo, storage)
	queueService := service.NewQueueService(contentRepo, notifier)
	accountService := service.NewAccountService(*cfg, accountRepo)
	authService := service.NewAuthService(*cfg)

	authMiddleware := middleware.NewAuthMiddleware(*cfg)

	health := handlers.NewHealthHandler(db)
	app.Get("/health", health.Check)

	auth := handlers.NewAuthHandler(*cfg, authService)
	app.Post("/auth/token", auth.IssueToken)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	content := handlers.NewContentHandler(contentService)
	api.Post("/content/upload", content.Upload)
	api.Get("/content", content.List)
	api.Get("/content/:id", content.Get)
	api.Put("/content/:id", content.Update)
	api.Delete("/content/:id", content.Delete)

	queue := handlers.NewQueueHandler(queueService)
	api.Get("/queue", queue.Listing)
	api.Post("/queue/process", queue.Process)
	api.Post("/content/:id/post", queue.SimulatePost)

	accounts := handlers.NewAccountHandler(accountService)
	api.Get("/accounts", accounts.List)
	api.Post("/accounts", accounts.Create)

	// cron jobs
	sweepJob := job.NewQueueSweepJob(queueService)

	c := cron.New()
	c.AddFunc(cfg.QueueSweepInterval, sweepJob.ProcessQueue)
	c.Start()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on http://localhost:%s", cfg.Port)

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
