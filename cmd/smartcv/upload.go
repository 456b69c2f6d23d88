package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/smartcv/internal/config"
	"github.com/jonathan/smartcv/internal/observability"
	"github.com/jonathan/smartcv/internal/pipeline"
	"github.com/jonathan/smartcv/internal/store"
	"github.com/jonathan/smartcv/internal/types"
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Save a parsed record artifact into the record store",
	Long:  "Read the artifact produced by the parse stage and upsert it into the linked company, role template and job collections, skipping postings already saved.",
	RunE:  runUpload,
}

var (
	uploadInputFile  string
	uploadDBURL      string
	uploadSourceURL  string
	uploadConfigFile string
	uploadVerbose    bool
)

func init() {
	uploadCmd.Flags().StringVarP(&uploadInputFile, "in", "i", "", "Path to the parse stage artifact (default \""+pipeline.DefaultArtifactPath+"\")")
	uploadCmd.Flags().StringVar(&uploadDBURL, "db-url", "", "Record store PostgreSQL URL (overrides DATABASE_URL env var)")
	uploadCmd.Flags().StringVar(&uploadSourceURL, "source-url", "", "URL the posting was collected from")
	uploadCmd.Flags().StringVarP(&uploadConfigFile, "config", "c", "", "Path to a JSON config file")
	uploadCmd.Flags().BoolVarP(&uploadVerbose, "verbose", "v", false, "Print the upsert outcome and record ids")

	rootCmd.AddCommand(uploadCmd)
}

func runUpload(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(uploadConfigFile, config.Config{
		DatabaseURL: uploadDBURL,
		Artifact:    uploadInputFile,
	})
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return &config.MissingConfigurationError{
			Name: "DATABASE_URL",
			Hint: "set the environment variable or use --db-url",
		}
	}

	in := artifactPath(cfg, pipeline.DefaultArtifactPath)
	record, markdown, err := pipeline.LoadArtifact(in)
	if err != nil {
		return err
	}

	rec, err := types.RecordFromMap(record)
	if err != nil {
		return err
	}

	ctx := context.Background()

	pg, err := store.ConnectPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to record store: %w", err)
	}
	defer pg.Close()

	if err := pg.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to prepare record store schema: %w", err)
	}

	upserter := store.NewUpserter(pg)
	res, err := upserter.Ingest(ctx, store.Input{
		Record:    rec,
		Raw:       record,
		Text:      markdown,
		SourceURL: uploadSourceURL,
	})
	if err != nil {
		return fmt.Errorf("failed to save job posting: %w", err)
	}

	if uploadVerbose || cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintUpsertResult(res)
	}

	switch res.Outcome {
	case store.OutcomeDuplicate:
		fmt.Fprintf(os.Stdout, "Duplicate posting (fingerprint %s); nothing written\n", res.Fingerprint)
	default:
		fmt.Fprintf(os.Stdout, "Successfully saved job posting (job %s)\n", res.JobID)
	}

	return nil
}
