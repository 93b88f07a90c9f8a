package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/careerdoc/internal/observability"
	"github.com/jonathan/careerdoc/internal/pipeline"
	"github.com/jonathan/careerdoc/internal/types"
)

var previewCharLimit int

var previewCmd = &cobra.Command{
	Use:   "preview <job-posting.txt>",
	Short: "Structure a job posting offline",
	Long: `Run the deterministic structuring pipeline over a job posting text file
and print the extracted requirements, responsibilities and questions.
No database or API key required.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().IntVar(&previewCharLimit, "char-limit", 0, "Also run the QC pass against this character limit")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(_ *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read job posting: %w", err)
	}

	svc := pipeline.NewRuleService()
	printer := observability.NewPrinter(os.Stdout)

	structured := svc.StructureJob(context.Background(), string(raw))
	printer.PrintStructuredJob(structured)

	if previewCharLimit > 0 {
		result := svc.QCDocument(string(raw), types.QCConstraints{CharLimit: &previewCharLimit})
		printer.PrintQCResult(result)
	}

	return nil
}
