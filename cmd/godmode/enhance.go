package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Papalexios/sota-god-mode/internal/aeo"
	"github.com/Papalexios/sota-god-mode/internal/config"
	"github.com/Papalexios/sota-god-mode/internal/corpus"
	"github.com/Papalexios/sota-god-mode/internal/db"
	"github.com/Papalexios/sota-god-mode/internal/linking"
	"github.com/Papalexios/sota-god-mode/internal/llm"
	"github.com/Papalexios/sota-god-mode/internal/pipeline"
	"github.com/Papalexios/sota-god-mode/internal/scheduler"
	"github.com/Papalexios/sota-god-mode/internal/store"
	"github.com/Papalexios/sota-god-mode/internal/tracker"
	"github.com/Papalexios/sota-god-mode/internal/types"
)

var enhanceCmd = &cobra.Command{
	Use:   "enhance",
	Short: "Run the full content enhancement pipeline end-to-end",
	Long: `Orchestrates the entire enhancement process: prioritized generation -> internal linking -> answer engine optimization -> performance tracking.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runEnhance,
}

var (
	enhanceConfigPath  string
	enhanceItems       string
	enhanceCorpus      string
	enhanceOutput      string
	enhanceMaxLinks    int
	enhanceConcurrency int
	enhanceTier        string
	enhanceAPIKey      string
	enhanceStore       string
	enhanceDatabaseURL string
	enhanceVerbose     bool
)

func init() {
	// Config file flag (processed first)
	enhanceCmd.Flags().StringVar(&enhanceConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	enhanceCmd.Flags().StringVarP(&enhanceItems, "items", "i", "", "Path to content items JSON file")
	enhanceCmd.Flags().StringVarP(&enhanceCorpus, "corpus", "c", "", "Path to sitemap corpus JSON file (optional, disables internal linking when absent)")
	enhanceCmd.Flags().StringVarP(&enhanceOutput, "out", "o", "", "Path to output enriched items JSON file (required)")
	enhanceCmd.Flags().IntVar(&enhanceMaxLinks, "max-links", 0, "Maximum internal links injected per item")
	enhanceCmd.Flags().IntVar(&enhanceConcurrency, "concurrency", 0, "Concurrent generation tasks per priority window")
	enhanceCmd.Flags().StringVar(&enhanceTier, "tier", "", "Model tier: lite, standard, or advanced")
	enhanceCmd.Flags().StringVar(&enhanceStore, "store", "", "Path to SQLite metrics store (optional, in-memory when absent)")
	enhanceCmd.Flags().BoolVarP(&enhanceVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	enhanceCmd.Flags().StringVar(&enhanceAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for artifact persistence
	enhanceCmd.Flags().StringVar(&enhanceDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	if err := enhanceCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(enhanceCmd)
}

func runEnhance(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if enhanceConfigPath != "" {
		loadedCfg, err := config.LoadConfig(enhanceConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := loadedCfg.Validate(); err != nil {
			return err
		}

		cfg = *loadedCfg
		if enhanceVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", enhanceConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("items") {
		cfg.Items = enhanceItems
	}
	if cmd.Flags().Changed("corpus") {
		cfg.Corpus = enhanceCorpus
	}
	if cmd.Flags().Changed("max-links") {
		cfg.MaxLinks = enhanceMaxLinks
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = enhanceConcurrency
	}
	if cmd.Flags().Changed("tier") {
		cfg.Tier = enhanceTier
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = enhanceAPIKey
	}
	if cmd.Flags().Changed("store") {
		cfg.Store = enhanceStore
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = enhanceDatabaseURL
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = enhanceVerbose
	}

	// Step 3: Apply defaults for unset values
	defaults := config.Config{
		MaxLinks:    pipeline.DefaultMaxLinks,
		Concurrency: scheduler.DefaultConcurrency,
		Tier:        string(llm.TierStandard),
	}
	cfg = cfg.MergeWithDefaults(defaults)

	// Step 4: Validate required fields
	if cfg.Items == "" {
		return fmt.Errorf("--items must be provided (via flag or config)")
	}

	// Step 5: API Key handling
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	// Step 6: Database URL handling (optional)
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	items, err := loadContentItems(cfg.Items)
	if err != nil {
		return err
	}

	var pages []types.SitemapPage
	if cfg.Corpus != "" {
		pages, err = corpus.Load(cfg.Corpus)
		if err != nil {
			return fmt.Errorf("failed to load corpus: %w", err)
		}
	}

	client, err := llm.NewClient(ctx, nil, cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create generative client: %w", err)
	}
	defer client.Close() //nolint:errcheck

	blobs, closeStore, err := openBlobStore(cfg.Store)
	if err != nil {
		return err
	}
	defer closeStore()

	track := tracker.New(blobs)
	track.Restore(ctx)

	var database *db.DB
	if cfg.DatabaseURL != "" {
		database, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()
	}

	pipe := pipeline.New(
		scheduler.New(llm.NewPromptCaller(client, "content.json"), cfg.Concurrency),
		linking.NewEngine(),
		aeo.NewOptimizer(),
		track,
		database,
	)

	results, err := pipe.Run(ctx, pipeline.RunOptions{
		Items:    items,
		Corpus:   pages,
		MaxLinks: cfg.MaxLinks,
		Tier:     llm.ModelTier(cfg.Tier),
		Verbose:  cfg.Verbose,
	})
	if err != nil {
		return err
	}

	if err := writeJSON(enhanceOutput, results); err != nil {
		return err
	}

	succeeded := 0
	for _, result := range results {
		if result.Success {
			succeeded++
		}
	}
	_, _ = fmt.Fprintf(os.Stdout, "Successfully enhanced %d/%d items to %s\n", succeeded, len(results), enhanceOutput)

	return nil
}

// loadContentItems reads and decodes a content items JSON file.
func loadContentItems(path string) ([]types.ContentItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read items file %s: %w", path, err)
	}

	var items []types.ContentItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal items JSON: %w", err)
	}
	return items, nil
}

// openBlobStore opens the SQLite metrics store at path, or an in-memory
// store when path is empty.
func openBlobStore(path string) (store.BlobStore, func(), error) {
	if path == "" {
		return store.NewMemoryStore(), func() {}, nil
	}

	sqliteStore, err := store.OpenSQLite(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open metrics store: %w", err)
	}
	return sqliteStore, func() { _ = sqliteStore.Close() }, nil
}

// writeJSON marshals v with indentation and writes it to path, creating the
// parent directory when needed.
func writeJSON(path string, v any) error {
	jsonOutput, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output to JSON: %w", err)
	}

	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}

	if err := os.WriteFile(path, jsonOutput, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
