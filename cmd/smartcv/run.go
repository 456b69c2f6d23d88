package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/smartcv/internal/config"
	"github.com/jonathan/smartcv/internal/extract"
	"github.com/jonathan/smartcv/internal/observability"
	"github.com/jonathan/smartcv/internal/pipeline"
	"github.com/jonathan/smartcv/internal/store"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Parse a job posting and save it in one step",
	Long:  "Run both pipeline stages in-process: parse the posting, write the artifact, and upsert the record into the record store.",
	RunE:  runRun,
}

var (
	runTextFile   string
	runOutputFile string
	runAPIKey     string
	runDBURL      string
	runSourceURL  string
	runModels     []string
	runConfigFile string
	runVerbose    bool
)

func init() {
	runCmd.Flags().StringVarP(&runTextFile, "text-file", "t", "", "Path to the raw job posting text file (required)")
	runCmd.Flags().StringVarP(&runOutputFile, "out", "o", "", "Path to the output artifact (default \""+pipeline.DefaultArtifactPath+"\")")
	runCmd.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	runCmd.Flags().StringVar(&runDBURL, "db-url", "", "Record store PostgreSQL URL (overrides DATABASE_URL env var)")
	runCmd.Flags().StringVar(&runSourceURL, "source-url", "", "URL the posting was collected from")
	runCmd.Flags().StringSliceVar(&runModels, "model", nil, "Model fallback chain, in order (repeatable)")
	runCmd.Flags().StringVarP(&runConfigFile, "config", "c", "", "Path to a JSON config file")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print intermediate results for both stages")
	_ = runCmd.MarkFlagRequired("text-file")

	rootCmd.AddCommand(runCmd)
}

func runRun(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(runConfigFile, config.Config{
		APIKey:      runAPIKey,
		DatabaseURL: runDBURL,
		Models:      runModels,
		Artifact:    runOutputFile,
	})
	if err != nil {
		return err
	}
	if cfg.APIKey == "" {
		return &config.MissingConfigurationError{
			Name: "GEMINI_API_KEY",
			Hint: "set the environment variable or use --api-key",
		}
	}
	if cfg.DatabaseURL == "" {
		return &config.MissingConfigurationError{
			Name: "DATABASE_URL",
			Hint: "set the environment variable or use --db-url",
		}
	}

	raw, err := os.ReadFile(runTextFile)
	if err != nil {
		return fmt.Errorf("failed to read text file: %w", err)
	}

	ctx := context.Background()
	verbose := runVerbose || cfg.Verbose

	client, err := extract.NewGeminiClient(ctx, cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create inference client: %w", err)
	}
	defer func() { _ = client.Close() }()

	ex := extract.NewExtractor(client, cfg.Models, time.Duration(cfg.TimeoutSeconds)*time.Second)

	res, err := pipeline.Parse(ctx, ex, string(raw))
	if err != nil {
		if !errors.Is(err, extract.ErrAllModelsFailed) {
			return err
		}
		fmt.Fprintf(os.Stderr, "Warning: %v; saving heuristic fields only\n", err)
	}

	out := artifactPath(cfg, pipeline.DefaultArtifactPath)
	if err := pipeline.SaveArtifact(out, res.Record, res.Markdown); err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	if verbose {
		printer.PrintHeuristics(res.Heuristics)
		printer.PrintJobRecord(res.Profile)
	}
	fmt.Fprintf(os.Stdout, "Parsed job posting (%s input), artifact: %s\n", res.Format, out)

	pg, err := store.ConnectPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to record store: %w", err)
	}
	defer pg.Close()

	if err := pg.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to prepare record store schema: %w", err)
	}

	upserter := store.NewUpserter(pg)
	result, err := upserter.Ingest(ctx, store.Input{
		Record:    res.Profile,
		Raw:       res.Record,
		Text:      res.Markdown,
		SourceURL: runSourceURL,
	})
	if err != nil {
		return fmt.Errorf("failed to save job posting: %w", err)
	}

	if verbose {
		printer.PrintUpsertResult(result)
	}

	switch result.Outcome {
	case store.OutcomeDuplicate:
		fmt.Fprintf(os.Stdout, "Duplicate posting (fingerprint %s); nothing written\n", result.Fingerprint)
	default:
		fmt.Fprintf(os.Stdout, "Successfully saved job posting (job %s)\n", result.JobID)
	}

	return nil
}
