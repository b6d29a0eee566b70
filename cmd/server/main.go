package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"chatfolio/internal/config"
	"chatfolio/internal/handler"
	"chatfolio/internal/middleware"
	"chatfolio/internal/repository/postgres"
	"chatfolio/internal/service/conversations"
	"chatfolio/internal/service/folders"
	"chatfolio/internal/service/modelinfo"
	"chatfolio/internal/service/ollama"
	"chatfolio/internal/service/tags"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create table names and ensure schema
	tables := postgres.NewTableNames(cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	folderRepo := postgres.NewFolderRepository(repoConfig)
	convRepo := postgres.NewConversationRepository(repoConfig)
	tagRepo := postgres.NewTagRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	// Model metadata registry (embedded YAML)
	registry, err := modelinfo.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load model metadata: %v", err)
	}

	// Create services
	folderService := folders.NewFolderService(folderRepo, convRepo, txManager, logger)
	convService := conversations.NewConversationService(convRepo, folderRepo, tagRepo, logger)
	tagService := tags.NewTagService(tagRepo, convRepo, txManager, logger)
	ollamaClient := ollama.NewClient(cfg.OllamaURL, logger)

	// Create handlers
	folderHandler := handler.NewFolderHandler(folderService, logger)
	convHandler := handler.NewConversationHandler(convService, logger)
	tagHandler := handler.NewTagHandler(tagService, logger)
	modelsHandler := handler.NewModelsHandler(ollamaClient, registry, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Folder routes
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("GET /api/folders", folderHandler.ListFolders)
	mux.HandleFunc("GET /api/folders/tree", folderHandler.GetTree) // Must come before {id} route
	mux.HandleFunc("GET /api/folders/{id}", folderHandler.GetFolder)
	mux.HandleFunc("PATCH /api/folders/{id}", folderHandler.UpdateFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.DeleteFolder)

	// Conversation routes
	mux.HandleFunc("POST /api/conversations", convHandler.CreateConversation)
	mux.HandleFunc("GET /api/conversations", convHandler.ListConversations)
	mux.HandleFunc("GET /api/conversations/{id}", convHandler.GetConversation)
	mux.HandleFunc("PATCH /api/conversations/{id}", convHandler.UpdateConversation)
	mux.HandleFunc("DELETE /api/conversations/{id}", convHandler.DeleteConversation)
	mux.HandleFunc("POST /api/conversations/{id}/share", convHandler.ShareConversation)
	mux.HandleFunc("DELETE /api/conversations/{id}/share", convHandler.UnshareConversation)
	mux.HandleFunc("GET /api/share/{shareId}", convHandler.GetSharedConversation)

	// Tag routes
	mux.HandleFunc("POST /api/tags", tagHandler.CreateTag)
	mux.HandleFunc("GET /api/tags", tagHandler.ListTags)
	mux.HandleFunc("PATCH /api/tags/{id}", tagHandler.UpdateTag)
	mux.HandleFunc("DELETE /api/tags/{id}", tagHandler.DeleteTag)

	// Ollama relay routes
	mux.HandleFunc("GET /api/models", modelsHandler.ListModels)
	mux.HandleFunc("POST /api/generate", modelsHandler.Generate)

	// Build middleware chain (applied in reverse order, they wrap each other)
	var h http.Handler = mux
	h = middleware.RequestLogger(logger)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - outermost so OPTIONS pre-flight requests short-circuit
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 6 * time.Minute, // Generation on local models can take minutes
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
