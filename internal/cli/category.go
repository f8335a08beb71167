package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"quiz-app/internal/app"
	"quiz-app/internal/domain"
)

// NewCategoryCmd groups the category curation commands.
func NewCategoryCmd(configPath, storeFlag *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Curate quiz categories",
	}
	cmd.AddCommand(newCategoryListCmd(configPath, storeFlag))
	cmd.AddCommand(newCategoryAddCmd(configPath, storeFlag))
	cmd.AddCommand(newCategoryRemoveCmd(configPath, storeFlag))
	return cmd
}

func newCategoryListCmd(configPath, storeFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openStore(cmd, *configPath, *storeFlag)
			if err != nil {
				return err
			}
			defer store.Close()

			categories, err := app.NewCatalogService(store).Categories(cmd.Context())
			if err != nil {
				return err
			}
			for _, category := range categories {
				fmt.Printf("%d\t%s\n", category.ID, category.Label)
			}
			return nil
		},
	}
}

func newCategoryAddCmd(configPath, storeFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "add <label>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openStore(cmd, *configPath, *storeFlag)
			if err != nil {
				return err
			}
			defer store.Close()

			id, err := app.NewCatalogService(store).AddCategory(cmd.Context(), args[0])
			if errors.Is(err, domain.ErrCategoryExists) {
				return fmt.Errorf("category %q already exists", args[0])
			}
			if err != nil {
				return err
			}
			fmt.Printf("added category %d: %s\n", id, args[0])
			return nil
		},
	}
}

func newCategoryRemoveCmd(configPath, storeFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid category id %q", args[0])
			}
			store, _, err := openStore(cmd, *configPath, *storeFlag)
			if err != nil {
				return err
			}
			defer store.Close()

			err = app.NewCatalogService(store).DeleteCategory(cmd.Context(), id)
			if errors.Is(err, domain.ErrCategoryInUse) {
				return fmt.Errorf("category %d still has questions; delete them first", id)
			}
			return err
		},
	}
}
