package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	config "github.com/maheshrc27/realty-crm/configs"
	"github.com/maheshrc27/realty-crm/internal/api"
	"github.com/maheshrc27/realty-crm/internal/api/handlers"
	"github.com/maheshrc27/realty-crm/internal/api/middleware"
	"github.com/maheshrc27/realty-crm/internal/database"
	job "github.com/maheshrc27/realty-crm/internal/jobs"
	"github.com/maheshrc27/realty-crm/internal/payment"
	"github.com/maheshrc27/realty-crm/internal/plans"
	"github.com/maheshrc27/realty-crm/internal/queue"
	"github.com/maheshrc27/realty-crm/internal/repository"
	"github.com/maheshrc27/realty-crm/internal/service"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := database.Open(cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    service.MaxPhotosPerUpload * service.MaxPhotoBytes,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			log.Printf("Error: %v", err)
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Stripe-Signature",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	userRepo := repository.NewUserRepository(db)
	workspaceRepo := repository.NewWorkspaceRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	apiKeyRepo := repository.NewApiKeyRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	photoRepo := repository.NewPropertyPhotoRepository(db)
	contactRepo := repository.NewContactRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	clientRepo := repository.NewClientRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)

	catalog := plans.NewCatalog(cfg.Stripe.PriceIDs)
	gateway := payment.NewStripeGateway(cfg.Stripe)
	scheduler := queue.NewScheduler(client)
	googleProvider := service.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI)

	var storage service.ObjectStorage
	if r2, err := service.NewR2Storage(context.Background(), cfg.R2); err != nil {
		slog.Warn("photo uploads disabled", "error", err)
	} else {
		storage = r2
	}

	activityService := service.NewActivityService(activityRepo)
	profileService := service.NewProfileService(profileRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	emailService := service.NewEmailService(cfg.SendgridAPIKey, cfg.EmailFrom, cfg.FrontendURL)
	authService := service.NewAuthService(*cfg, db, userRepo, workspaceRepo, profileRepo, googleProvider, scheduler)
	userService := service.NewUserService(userRepo, profileRepo)
	apiKeyService := service.NewApiKeyService(apiKeyRepo)
	leadService := service.NewLeadService(leadRepo, propertyRepo, activityService)
	propertyService := service.NewPropertyService(db, propertyRepo, photoRepo, storage, activityService)
	contactService := service.NewContactService(contactRepo, activityService)
	taskService := service.NewTaskService(taskRepo, leadRepo, profileRepo, settingsService, scheduler, activityService)
	clientService := service.NewClientService(clientRepo, activityService)
	teamService := service.NewTeamService(userRepo, workspaceRepo, profileRepo, activityService)
	dashboardService := service.NewDashboardService(leadRepo, propertyRepo, taskRepo, clientRepo, activityService)
	billingService := service.NewBillingService(cfg.FrontendURL, catalog, gateway, userRepo, profileRepo, subscriptionRepo)
	webhookService := service.NewWebhookService(gateway, catalog, profileRepo, subscriptionRepo)

	authMiddleware := middleware.NewAuthMiddleware(*cfg, apiKeyService, profileService)
	dashboardGuard := middleware.NewDashboardGuard(*cfg, profileService)

	api.SetupRoutes(app, *cfg, api.Handlers{
		Auth:       handlers.NewAuthHandler(*cfg, authService, profileService),
		User:       handlers.NewUserHandler(*cfg, userService),
		Profile:    handlers.NewProfileHandler(profileService),
		Settings:   handlers.NewSettingsHandler(settingsService),
		ApiKeys:    handlers.NewApiKeyHandler(apiKeyService),
		Leads:      handlers.NewLeadHandler(leadService),
		Properties: handlers.NewPropertyHandler(propertyService),
		Contacts:   handlers.NewContactHandler(contactService),
		Tasks:      handlers.NewTaskHandler(taskService),
		Clients:    handlers.NewClientHandler(clientService),
		Team:       handlers.NewTeamHandler(teamService),
		Dashboard:  handlers.NewDashboardHandler(dashboardService, activityService),
		Billing:    handlers.NewBillingHandler(billingService),
		Webhook:    handlers.NewWebhookHandler(webhookService),
		Demo:       handlers.NewDemoHandler(catalog),
	}, authMiddleware, dashboardGuard)

	// cron jobs
	c := cron.New()
	sweepJob := job.NewSubscriptionSweepJob(profileRepo)
	if err := sweepJob.Register(c); err != nil {
		log.Fatalf("Could not schedule subscription sweep: %v", err)
	}
	c.Start()
	defer c.Stop()

	//queue
	queueW := queue.NewQueue(userRepo, taskRepo, settingsService, emailService)
	server := asynq.NewServer(redisConn, asynq.Config{
		Concurrency: 10,
	})

	mux := asynq.NewServeMux()
	queueW.Register(mux)

	log.Println("Starting the Asynq server...")
	if err := server.Start(mux); err != nil {
		log.Fatalf("Could not start Asynq server: %v", err)
	}

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on http://localhost:%s", cfg.Port)

	gracefulShutdown(app, server, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, server *asynq.Server, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}
	server.Shutdown()

	closeDB(db)
	log.Println("Server shutdown complete.")
}
