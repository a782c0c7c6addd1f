package main

import (
	"context"
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

	"prepview/interview-engine/internal/config"
	"prepview/interview-engine/internal/handlers"
	"prepview/interview-engine/internal/repositories"
	"prepview/interview-engine/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	docRepo := repositories.NewDocumentRepository(db)
	questionRepo := repositories.NewQuestionRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	reportRepo := repositories.NewReportRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	resumeParser := services.NewResumeParserService()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize Qdrant question index
	questionIndex, err := services.NewQuestionIndexService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := questionIndex.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Qdrant initialized successfully")

	// Initialize Redis report cache; the engine works without it
	reportCache, err := services.NewReportCache(
		cfg.Redis.Addr,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.TTL,
	)
	if err != nil {
		log.Printf("⚠️  Redis unavailable, running without report cache: %v", err)
		reportCache = nil
	} else {
		log.Println("✅ Redis report cache initialized")
		defer reportCache.Close()
	}

	// Initialize question provider and seed the bank on first run
	questionProvider := services.NewQuestionProvider(questionRepo, geminiService, questionIndex)
	if err := questionProvider.SeedBank(cfg.Interview.QuestionBankPath); err != nil {
		log.Fatalf("❌ Failed to seed question bank: %v", err)
	}

	// Initialize scoring collaborator
	feedbackService := services.NewFeedbackService(
		sessionRepo,
		questionRepo,
		reportRepo,
		geminiService,
		reportCache,
		cfg.Worker.RetryMaxAttempts,
	)
	log.Println("✅ Feedback service initialized")

	// Initialize worker
	worker := services.NewWorker(
		reportRepo,
		feedbackService,
		cfg.Worker.Concurrency,
		cfg.Worker.PollInterval,
	)

	// Initialize session manager
	sessionManager := services.NewSessionManager(
		sessionRepo,
		reportRepo,
		worker,
		cfg.Interview.TickInterval,
	)

	// Start background goroutines
	ctx := context.Background()
	worker.Start(ctx)
	sessionManager.Start(ctx)
	log.Println("✅ Worker and session manager started")

	// Initialize Handlers
	uploadHandler := handlers.NewUploadHandler(
		docRepo,
		storageService,
		cfg.Storage.MaxFileSize,
	)
	sessionHandler := handlers.NewSessionHandler(
		sessionManager,
		questionProvider,
		docRepo,
		resumeParser,
		cfg.Interview.DefaultQuestionCount,
	)
	reportHandler := handlers.NewReportHandler(
		reportRepo,
		sessionRepo,
		questionRepo,
		reportCache,
	)
	dashboardHandler := handlers.NewDashboardHandler(
		sessionRepo,
		reportRepo,
		reportCache,
	)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Interview Engine API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/uploads/resume", uploadHandler.HandleUploadResume)
	api.Post("/sessions", sessionHandler.HandleCreateSession)
	api.Post("/sessions/:id/start", sessionHandler.HandleStartSession)
	api.Post("/sessions/:id/responses", sessionHandler.HandleSubmitResponse)
	api.Post("/sessions/:id/skip", sessionHandler.HandleSkipQuestion)
	api.Post("/sessions/:id/recording", sessionHandler.HandleToggleRecording)
	api.Get("/sessions", dashboardHandler.HandleListSessions)
	api.Get("/sessions/:id", sessionHandler.HandleGetSession)
	api.Get("/sessions/:id/report", reportHandler.HandleGetReport)
	api.Get("/dashboard/stats", dashboardHandler.HandleGetStats)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Interview Engine API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/uploads/resume",
				"POST /api/v1/sessions",
				"POST /api/v1/sessions/:id/start",
				"POST /api/v1/sessions/:id/responses",
				"POST /api/v1/sessions/:id/skip",
				"POST /api/v1/sessions/:id/recording",
				"GET /api/v1/sessions",
				"GET /api/v1/sessions/:id",
				"GET /api/v1/sessions/:id/report",
				"GET /api/v1/dashboard/stats",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		sessionManager.Stop()
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
