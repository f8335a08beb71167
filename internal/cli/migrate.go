package cli

import (
	"log"

	"github.com/spf13/cobra"

	"quiz-app/internal/infra/sqlite"
)

// NewMigrateCmd applies the schema bootstrap migrations.
func NewMigrateCmd(configPath, storeFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the store schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath, *storeFlag)
			if err != nil {
				return err
			}
			store, err := sqlite.Open(cfg.Store.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Migrate(cmd.Context()); err != nil {
				return err
			}
			log.Printf("schema ready in %s", cfg.Store.Path)
			return nil
		},
	}
}
