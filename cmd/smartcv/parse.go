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
	"github.com/jonathan/smartcv/internal/schemas"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a job posting into a structured record artifact",
	Long:  "Parse a raw job posting text file into a structured record, merging heuristic and model-extracted fields, and write the result as a JSON artifact for the upload stage.",
	RunE:  runParse,
}

var (
	parseTextFile   string
	parseOutputFile string
	parseAPIKey     string
	parseModels     []string
	parseConfigFile string
	parseVerbose    bool
)

func init() {
	parseCmd.Flags().StringVarP(&parseTextFile, "text-file", "t", "", "Path to the raw job posting text file (required)")
	parseCmd.Flags().StringVarP(&parseOutputFile, "out", "o", "", "Path to the output artifact (default \""+pipeline.DefaultArtifactPath+"\")")
	parseCmd.Flags().StringVar(&parseAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	parseCmd.Flags().StringSliceVar(&parseModels, "model", nil, "Model fallback chain, in order (repeatable)")
	parseCmd.Flags().StringVarP(&parseConfigFile, "config", "c", "", "Path to a JSON config file")
	parseCmd.Flags().BoolVarP(&parseVerbose, "verbose", "v", false, "Print heuristic fields and the extracted record")
	_ = parseCmd.MarkFlagRequired("text-file")

	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(parseConfigFile, config.Config{
		APIKey:   parseAPIKey,
		Models:   parseModels,
		Artifact: parseOutputFile,
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

	raw, err := os.ReadFile(parseTextFile)
	if err != nil {
		return fmt.Errorf("failed to read text file: %w", err)
	}

	ctx := context.Background()

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
		// The record still carries the heuristic fields; save it and let
		// the operator decide whether that is enough.
		fmt.Fprintf(os.Stderr, "Warning: %v; artifact contains heuristic fields only\n", err)
	}

	out := artifactPath(cfg, pipeline.DefaultArtifactPath)
	if err := pipeline.SaveArtifact(out, res.Record, res.Markdown); err != nil {
		return err
	}

	// Validate against schema (if schema file exists). The schema is
	// advisory, so failures are warnings.
	if schemaPath := schemas.ResolveSchemaPath(schemas.RecordSchemaFile); schemaPath != "" {
		if err := schemas.ValidateRecord(schemaPath, res.Record); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: record does not validate against schema: %v\n", err)
		}
	}

	if parseVerbose || cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintHeuristics(res.Heuristics)
		printer.PrintJobRecord(res.Profile)
	}

	fmt.Fprintf(os.Stdout, "Successfully parsed job posting (%s input)\n", res.Format)
	fmt.Fprintf(os.Stdout, "Output: %s\n", out)

	return nil
}
