package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"quiz-app/internal/config"
	"quiz-app/internal/infra/sqlite"
)

var (
	configPath string
	storePath  string
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}
	envStore := os.Getenv("QUIZ_STORE")

	cmd := &cobra.Command{
		Use:   "quiz-app",
		Short: "Local quiz datastore: schema bootstrap, content loading and curation",
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.PersistentFlags().StringVar(&storePath, "store", envStore, "path to the store file (overrides config)")
	cmd.AddCommand(NewMigrateCmd(&configPath, &storePath))
	cmd.AddCommand(NewSeedCmd(&configPath, &storePath))
	cmd.AddCommand(NewCategoryCmd(&configPath, &storePath))
	cmd.AddCommand(NewQuestionCmd(&configPath, &storePath))
	cmd.AddCommand(NewStatsCmd(&configPath, &storePath))
	return cmd
}

// loadConfig tolerates a missing config file and falls back to defaults;
// an unreadable or malformed file is still an error.
func loadConfig(configPath, storeFlag string) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return config.Config{}, err
		}
		cfg = config.Default()
	}
	if storeFlag != "" {
		cfg.Store.Path = storeFlag
	}
	return cfg, nil
}

// openStore opens the configured store file and bootstraps the schema
// when the reference tables are missing.
func openStore(cmd *cobra.Command, configPath, storeFlag string) (*sqlite.Store, config.Config, error) {
	cfg, err := loadConfig(configPath, storeFlag)
	if err != nil {
		return nil, config.Config{}, err
	}
	store, err := sqlite.Open(cfg.Store.Path)
	if err != nil {
		return nil, config.Config{}, err
	}
	if err := store.EnsureSchema(cmd.Context()); err != nil {
		store.Close()
		return nil, config.Config{}, err
	}
	return store, cfg, nil
}
