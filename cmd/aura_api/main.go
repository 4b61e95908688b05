// Package main provides the entry point for the AURA matching API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "aura_api",
	Short: "AURA job matching API server",
	Long:  "AURA matches candidate profiles against a job pool, delegating scoring to an AI engine with a deterministic local fallback, via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
