package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Papalexios/sota-god-mode/internal/aeo"
	"github.com/Papalexios/sota-god-mode/internal/db"
	"github.com/Papalexios/sota-god-mode/internal/linking"
	"github.com/Papalexios/sota-god-mode/internal/llm"
	"github.com/Papalexios/sota-god-mode/internal/pipeline"
	"github.com/Papalexios/sota-god-mode/internal/scheduler"
	"github.com/Papalexios/sota-god-mode/internal/server"
	"github.com/Papalexios/sota-god-mode/internal/tracker"
)

var (
	servePort        int
	serveConcurrency int
	serveStore       string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for running the content enhancement pipeline.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().IntVar(&serveConcurrency, "concurrency", scheduler.DefaultConcurrency, "Concurrent generation tasks per priority window")
	serveCmd.Flags().StringVar(&serveStore, "store", "", "Path to SQLite metrics store (optional, in-memory when absent)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Get API key from environment
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	// Get access token hash from environment
	tokenHash := os.Getenv("ACCESS_TOKEN_HASH")
	if tokenHash == "" {
		return fmt.Errorf("ACCESS_TOKEN_HASH environment variable is required")
	}

	client, err := llm.NewClient(ctx, nil, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create generative client: %w", err)
	}

	blobs, closeStore, err := openBlobStore(serveStore)
	if err != nil {
		return err
	}
	defer closeStore()

	track := tracker.New(blobs)
	track.Restore(ctx)

	// Database is optional; run history endpoints need it, enhancement does not
	var database *db.DB
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		database, err = db.Connect(ctx, databaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
	}

	pipe := pipeline.New(
		scheduler.New(llm.NewPromptCaller(client, "content.json"), serveConcurrency),
		linking.NewEngine(),
		aeo.NewOptimizer(),
		track,
		database,
	)

	srv, err := server.New(server.Config{
		Port:      servePort,
		TokenHash: tokenHash,
	}, pipe, track, database)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
