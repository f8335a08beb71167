package cli

import (
	"log"

	"github.com/spf13/cobra"

	"quiz-app/internal/app"
)

// NewSeedCmd loads the bundled question set into the store. Categories
// are created on demand; questions already present are skipped, so the
// command can run any number of times.
func NewSeedCmd(configPath, storeFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the bundled categories and questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openStore(cmd, *configPath, *storeFlag)
			if err != nil {
				return err
			}
			defer store.Close()

			catalog := app.NewCatalogService(store)
			added, skipped, err := catalog.ImportQuestions(cmd.Context(), seedQuestions())
			if err != nil {
				return err
			}
			log.Printf("seed complete: %d questions added, %d already present", added, skipped)
			return nil
		},
	}
}
