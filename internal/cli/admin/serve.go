package admin

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/clearpath-labs/policyrag/internal/api/handlers"
	"github.com/clearpath-labs/policyrag/internal/chunker"
	"github.com/clearpath-labs/policyrag/internal/config"
	"github.com/clearpath-labs/policyrag/internal/database"
	"github.com/clearpath-labs/policyrag/internal/jobs"
	"github.com/clearpath-labs/policyrag/internal/loader"
	"github.com/clearpath-labs/policyrag/internal/openai"
	"github.com/clearpath-labs/policyrag/internal/server"
	"github.com/clearpath-labs/policyrag/internal/service"
	"github.com/clearpath-labs/policyrag/internal/telemetry"
	"github.com/clearpath-labs/policyrag/internal/vectorstore"
	"github.com/clearpath-labs/policyrag/internal/vectorstore/memory"
	"github.com/clearpath-labs/policyrag/internal/vectorstore/pgvector"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the policyrag API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	cmd.Flags().Bool("no-migrate", false, "Skip automatic database migrations on startup")
	cmd.Flags().Bool("no-ingest", false, "Skip ingesting documents on startup")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if !cfg.HasOpenAI() {
		return fmt.Errorf("POLICYRAG_OPENAI_API_KEY is required")
	}

	// Initialize Sentry with tracing if SENTRY_DSN is set
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		environment := os.Getenv("ENVIRONMENT")
		if environment == "" {
			environment = "development"
		}

		sampleRate := 0.1
		if environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              dsn,
			Environment:      environment,
			TracesSampleRate: sampleRate,
			Debug:            cfg.Debug,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	portFlag, _ := cmd.Flags().GetString("port")
	if portFlag != "" && portFlag != "8080" {
		cfg.Port = portFlag
	}

	var store vectorstore.Store
	if cfg.HasDatabase() {
		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			if err := database.Migrate(cfg.DatabaseURL, "migrations"); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}
			log.Println("migrations applied")
		}

		pool, err := database.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()
		log.Println("connected to database")

		store = pgvector.NewStore(pool, cfg.Collection)
	} else {
		log.Println("no database configured, using in-memory vector store")
		store = memory.NewStore()
	}

	embedder := openai.NewClientWithConfig(openai.Config{
		APIKey:              cfg.OpenAIAPIKey,
		EmbeddingModel:      cfg.EmbeddingModel,
		EmbeddingDimensions: cfg.EmbeddingDimensions,
	})

	var source service.DocumentSource
	if cfg.HasS3() {
		s3Source, err := loader.NewS3Source(ctx, loader.S3SourceConfig{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			Bucket:          cfg.S3Bucket,
			Prefix:          cfg.S3Prefix,
			UsePathStyle:    true,
		})
		if err != nil {
			return fmt.Errorf("failed to create S3 document source: %w", err)
		}
		log.Printf("loading documents from s3 bucket '%s'", cfg.S3Bucket)
		source = s3Source
	} else {
		log.Printf("loading documents from directory '%s'", cfg.DocsDir)
		source = loader.NewFSSource(cfg.DocsDir)
	}

	ingestor := service.NewIngestor(source, embedder, store, chunker.New(cfg.ChunkSize, cfg.ChunkOverlap))
	retriever := service.NewRetriever(embedder, store, cfg.DefaultTopK)

	var ingestWorker *jobs.Worker
	noIngest, _ := cmd.Flags().GetBool("no-ingest")
	if !noIngest {
		ingestWorker = jobs.NewWorker(jobs.RunnerFunc(func(ctx context.Context) error {
			_, err := ingestor.Ingest(ctx)
			return err
		}), cfg.ReingestInterval)
		go ingestWorker.Start(ctx)
		log.Println("ingest worker started")
	}

	routerCfg := server.RouterConfig{
		APIKey:        cfg.APIKey,
		SearchHandler: handlers.NewSearchHandler(retriever),
		IngestHandler: handlers.NewIngestHandler(ingestor),
		HealthHandler: handlers.NewHealthHandler(retriever, cfg.Collection, embedder.Model()),
	}

	router := server.NewRouter(routerCfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	if ingestWorker != nil {
		ingestWorker.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}
