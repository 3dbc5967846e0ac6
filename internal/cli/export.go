package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dogslife-quiz/internal/app"
	"dogslife-quiz/internal/catalog"
	"dogslife-quiz/internal/config"
	"github.com/spf13/cobra"
)

// NewExportCmd writes the question bank as CSV or as a printable PDF catalog.
func NewExportCmd(configPath *string) *cobra.Command {
	var (
		category string
		format   string
		outDir   string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export questions as CSV or PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			b, err := openQuestionStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer b.Close()
			admin := app.NewAdminService(b.questions, cfg.Quiz.CategoryAliases)

			var name string
			write := admin.ExportCSV
			switch format {
			case "csv":
				name = catalog.ExportFilename("dogs_life_export", category, "csv", time.Now())
			case "pdf":
				name = catalog.ExportFilename("fragenkatalog", category, "pdf", time.Now())
				write = admin.ExportPDF
			default:
				return fmt.Errorf("unknown format %q (expected csv or pdf)", format)
			}

			path := filepath.Join(outDir, name)
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			if err := write(cmd.Context(), f, category); err != nil {
				f.Close()
				_ = os.Remove(path)
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only export this category (default all)")
	cmd.Flags().StringVar(&format, "format", "csv", "csv or pdf")
	cmd.Flags().StringVar(&outDir, "out", ".", "output directory")
	return cmd
}
