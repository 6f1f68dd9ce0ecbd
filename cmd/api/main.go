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

	"alfredoptarigan/resume-ats-checker/internal/analysis"
	"alfredoptarigan/resume-ats-checker/internal/config"
	"alfredoptarigan/resume-ats-checker/internal/handlers"
	"alfredoptarigan/resume-ats-checker/internal/nlp"
	"alfredoptarigan/resume-ats-checker/internal/repositories"
	"alfredoptarigan/resume-ats-checker/internal/services"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Println("✅ Config loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	docRepo := repositories.NewDocumentRepository(db)
	comparisonRepo := repositories.NewComparisonRepository(db)
	log.Println("✅ Repositories initialized successfully")

	blobs, err := services.NewBlobStore(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize %s upload storage: %v", cfg.Storage.Backend, err)
	}
	documents := services.NewDocumentService(docRepo, blobs, services.NewTextExtractor())
	log.Printf("✅ Upload storage ready (%s)\n", cfg.Storage.Backend)

	normalizer, err := nlp.NewNormalizer()
	if err != nil {
		log.Fatalf("❌ Failed to load NLP normalizer: %v", err)
	}
	analyzer := analysis.NewAnalyzer(normalizer,
		analysis.WithSectionHeaders(cfg.Analysis.SectionHeaders),
		analysis.WithSkillKeywords(cfg.Analysis.SkillKeywords),
		analysis.WithSuggestOptions(analysis.SuggestOptions{
			MaxPerKeyword: cfg.Analysis.MaxSuggestions,
			Cutoff:        cfg.Analysis.SuggestionCutoff,
		}),
	)

	// Embeddings are optional; without them only lexical matching is served.
	var (
		embedder services.Embedder
		semantic analysis.SemanticSimilarity
		index    services.PostingIndex
	)
	if cfg.Gemini.APIKey != "" {
		geminiService, err := services.NewGeminiService(ctx, cfg.Gemini)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
		}
		embedder = geminiService
		semantic = services.NewSemanticSimilarity(geminiService)

		index, err = services.NewPostingIndex(cfg.Qdrant)
		if err == nil {
			err = index.InitCollection(ctx)
		}
		if err != nil {
			log.Printf("⚠️ Similar postings disabled, Qdrant unavailable: %v\n", err)
			index = nil
		}
	} else {
		log.Println("⚠️ GEMINI_API_KEY not set, semantic similarity disabled")
	}

	matcher := services.NewMatcherService(analyzer, semantic, cfg.Worker.RetryMaxAttempts, cfg.Worker.RetryInitialDelay)

	var notifier services.Notifier = services.NewNoopNotifier()
	if cfg.RabbitMQ.URL != "" {
		notifier, err = services.NewAMQPNotifier(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatalf("❌ Failed to initialize RabbitMQ: %v", err)
		}
	}
	defer notifier.Close()

	comparisons := services.NewComparisonService(comparisonRepo, docRepo, documents, matcher, notifier)
	log.Println("✅ Services initialized successfully")

	worker := services.NewWorker(comparisonRepo, docRepo, comparisons, blobs, services.WorkerOptions{
		Concurrency:     cfg.Worker.Concurrency,
		UploadTTL:       cfg.Storage.UploadTTL,
		CleanupInterval: cfg.Worker.CleanupInterval,
	})
	worker.Start(ctx)

	h := &handlers.Handlers{
		Upload:    handlers.NewUploadHandler(documents, cfg.Storage.MaxFileSize),
		Documents: handlers.NewDocumentHandler(documents),
		Compare:   handlers.NewComparisonHandler(comparisonRepo, docRepo, worker, matcher.SemanticEnabled()),
		Result:    handlers.NewResultHandler(comparisonRepo),
		Analyze:   handlers.NewAnalyzeHandler(matcher),
		Postings:  handlers.NewPostingsHandler(docRepo, documents, embedder, index),
	}
	log.Println("✅ Handlers initialized")

	app := fiber.New(fiber.Config{
		AppName:      "Resume ATS Checker API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) * 2,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	h.Register(app.Group("/api/v1"))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "Resume ATS Checker API",
			"version":   "1.0.0",
			"endpoints": handlers.Endpoints,
		})
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("🛑 Shutting down server...")
		worker.Stop()
		cancel()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
