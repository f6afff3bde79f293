package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"shopfront.GO/config"
	productService "shopfront.GO/service/product"
)

var (
	importFile     string
	importCategory string
	importBatch    int
	importDryRun   bool
)

var importCmd = &cobra.Command{
	Use:   "products:import",
	Short: "Import product variants from a CSV sheet export",
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(importFile)
		if err != nil {
			fmt.Printf("Failed to open CSV: %v\n", err)
			return
		}
		defer f.Close()

		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}

		res, err := productService.ImportVariants(db, f, productService.ImportOptions{
			Category:  importCategory,
			BatchSize: importBatch,
			DryRun:    importDryRun,
		})
		if err != nil {
			fmt.Printf("Import failed: %v\n", err)
			return
		}

		for _, w := range res.Warnings {
			fmt.Printf("  [warn] %s\n", w)
		}

		mode := "write"
		if importDryRun {
			mode = "dry run"
		}
		fmt.Printf(`
=== Import Report ===
CSV rows:       %d
Imported:       %d
Skipped:        %d
Mode:           %s
Total time:     %s
  - Processing: %s
  - DB upsert:  %s
=====================
`, res.TotalRows, res.Imported, res.Skipped, mode,
			res.TotalTime.Round(time.Millisecond),
			res.ProcessTime.Round(time.Millisecond),
			res.DBTime.Round(time.Millisecond))
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "CSV file path (required)")
	importCmd.MarkFlagRequired("file")
	importCmd.Flags().StringVar(&importCategory, "category", "", "Restrict the run to one category sheet")
	importCmd.Flags().IntVar(&importBatch, "batch-size", 500, "Batch size for DB operations")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Validate and count without writing")
	rootCmd.AddCommand(importCmd)
}
