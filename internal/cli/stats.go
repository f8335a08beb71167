package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"quiz-app/internal/app"
)

// NewStatsCmd prints a player's lifetime statistics.
func NewStatsCmd(configPath, storeFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <username>",
		Short: "Show a player's statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openStore(cmd, *configPath, *storeFlag)
			if err != nil {
				return err
			}
			defer store.Close()

			player, err := store.PlayerByUsername(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if player == nil {
				return fmt.Errorf("no player named %q", args[0])
			}

			stats, err := app.NewStatsService(store).Statistics(cmd.Context(), player.ID)
			if err != nil {
				return err
			}
			fmt.Printf("games played:    %d\n", stats.GamesPlayed)
			fmt.Printf("duels won:       %d\n", stats.DuelsWon)
			fmt.Printf("answers given:   %d\n", stats.TotalAnswers)
			fmt.Printf("correct answers: %d\n", stats.CorrectAnswers)
			fmt.Printf("accuracy:        %.1f%%\n", stats.Accuracy)
			return nil
		},
	}
}
