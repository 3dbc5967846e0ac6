package cli

import (
	"fmt"
	"log"
	"os"

	"dogslife-quiz/internal/app"
	"dogslife-quiz/internal/config"
	"github.com/spf13/cobra"
)

// NewImportCmd loads questions from a CSV file into the configured store.
func NewImportCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import questions from CSV",
		Args:  cobra.ExactArgs(1),
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

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			report, err := app.NewAdminService(b.questions, cfg.Quiz.CategoryAliases).Import(cmd.Context(), f)
			for _, skipped := range report.Skipped {
				log.Printf("skipped %v", skipped)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d Fragen erfolgreich importiert!\n", report.Imported)
			return nil
		},
	}
}
