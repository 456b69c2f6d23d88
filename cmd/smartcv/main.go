// Package main provides the entry point for the SmartCV job posting CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "smartcv",
	Short: "SmartCV job posting parser",
	Long:  "SmartCV parses free-form job postings into structured records and saves them into linked company, role template and job collections.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
