// Package main provides the entry point for the careerdoc HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "careerdoc",
	Short: "Career document builder HTTP API server",
	Long:  "Careerdoc structures work experiences and job postings, then synthesizes length-bounded Korean career reports and cover-letter answers via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
