package main

import (
	"context"
	"log"
	"os"

	chromago "github.com/amikos-tech/chroma-go/pkg/api/v2"
	"github.com/gin-gonic/gin"

	"github.com/docuask/docuask/controller"
	"github.com/docuask/docuask/services"
)

const defaultNamespace = "documentos"

func main() {
	deps := buildDependencies()
	if deps.InitErr != nil {
		// Not fatal: the server still starts and every pipeline call reports
		// the initialization error until the configuration is fixed.
		log.Printf("WARN: Service initialization incomplete: %v", deps.InitErr)
	}

	ragService := services.NewRAGService(deps)
	ragController := controller.NewRAGController(ragService)

	// Watch mode: auto-ingest documents dropped into DOCS_DIR.
	if docsDir := os.Getenv("DOCS_DIR"); docsDir != "" && deps.InitErr == nil {
		indexer := services.NewDirectoryIndexer(ragService)
		go func() {
			ctx := context.Background()
			indexer.ScanDirectory(ctx, docsDir)
			indexer.WatchDirectory(ctx, docsDir)
		}()
	}

	router := gin.Default()

	// The UI may be served from any origin.
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.GET("/health", func(c *gin.Context) {
		status := "healthy"
		if deps.InitErr != nil {
			status = "degraded"
		}
		c.JSON(200, gin.H{
			"status":  status,
			"service": "RAG API",
			"version": "1.0.0",
		})
	})

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/documents", ragController.IngestDocument) // Upload and ingest a document
		apiV1.POST("/ask", ragController.AskQuestion)          // Ask a question
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("RAG backend server starting on http://localhost:%s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("FATAL: Failed to start server: %v", err)
	}
}

// buildDependencies constructs the external clients once, at process start.
// Failures are collected rather than raised so the initialization state stays
// inspectable over HTTP.
func buildDependencies() services.Dependencies {
	var deps services.Dependencies

	apiKey := os.Getenv("OPENAI_API_KEY")

	embedder, err := services.NewOpenAIEmbedder(apiKey)
	if err != nil {
		deps.InitErr = err
	} else {
		deps.Embedder = embedder
	}

	generator, err := services.NewOpenAIGenerator(apiKey)
	if err != nil && deps.InitErr == nil {
		deps.InitErr = err
	} else if err == nil {
		deps.Generator = generator
	}

	namespace := os.Getenv("CHROMA_COLLECTION")
	if namespace == "" {
		namespace = defaultNamespace
	}

	chromaClient, err := chromago.NewHTTPClient()
	if err != nil {
		if deps.InitErr == nil {
			deps.InitErr = err
		}
		return deps
	}

	store, err := services.NewChromaStore(chromaClient, namespace)
	if err != nil {
		if deps.InitErr == nil {
			deps.InitErr = err
		}
		return deps
	}
	deps.Store = store

	log.Println("Successfully connected to OpenAI and Chroma.")
	return deps
}
