package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"quiz-app/internal/app"
	"quiz-app/internal/domain"
)

// NewQuestionCmd groups the question curation commands.
func NewQuestionCmd(configPath, storeFlag *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "question",
		Short: "Curate questions and answers",
	}
	cmd.AddCommand(newQuestionListCmd(configPath, storeFlag))
	cmd.AddCommand(newQuestionAddCmd(configPath, storeFlag))
	cmd.AddCommand(newQuestionRemoveCmd(configPath, storeFlag))
	cmd.AddCommand(newAnswerAddCmd(configPath, storeFlag))
	return cmd
}

func newQuestionListCmd(configPath, storeFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List questions with category and difficulty",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openStore(cmd, *configPath, *storeFlag)
			if err != nil {
				return err
			}
			defer store.Close()

			questions, err := app.NewCatalogService(store).Questions(cmd.Context())
			if err != nil {
				return err
			}
			for _, q := range questions {
				fmt.Printf("%d\t%s\t%s\t%s\n", q.ID, q.Category, q.Difficulty, q.Text)
			}
			return nil
		},
	}
}

func newQuestionAddCmd(configPath, storeFlag *string) *cobra.Command {
	var (
		category   string
		difficulty string
		text       string
		correct    string
		wrong      []string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a question with one correct answer and at least three distractors",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openStore(cmd, *configPath, *storeFlag)
			if err != nil {
				return err
			}
			defer store.Close()

			refs := app.NewReferenceCache(store, time.Minute)
			cat, err := refs.CategoryByLabel(cmd.Context(), category)
			if err != nil {
				return err
			}
			if cat == nil {
				return fmt.Errorf("unknown category %q", category)
			}
			diff, err := refs.DifficultyByLabel(cmd.Context(), difficulty)
			if err != nil {
				return err
			}
			if diff == nil {
				return fmt.Errorf("unknown difficulty %q", difficulty)
			}

			id, err := app.NewCatalogService(store).AddQuestion(cmd.Context(), cat.ID, diff.ID, text, correct, wrong)
			if errors.Is(err, domain.ErrMalformedQuestion) {
				return fmt.Errorf("a question needs one correct answer and at least three wrong ones")
			}
			if err != nil {
				return err
			}
			fmt.Printf("added question %d\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "category label")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "difficulty label")
	cmd.Flags().StringVar(&text, "text", "", "question text")
	cmd.Flags().StringVar(&correct, "correct", "", "the correct answer")
	cmd.Flags().StringArrayVar(&wrong, "wrong", nil, "a wrong answer (repeat at least three times)")
	cmd.MarkFlagRequired("category")
	cmd.MarkFlagRequired("difficulty")
	cmd.MarkFlagRequired("text")
	cmd.MarkFlagRequired("correct")
	return cmd
}

func newQuestionRemoveCmd(configPath, storeFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a question and its answers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid question id %q", args[0])
			}
			store, _, err := openStore(cmd, *configPath, *storeFlag)
			if err != nil {
				return err
			}
			defer store.Close()
			return app.NewCatalogService(store).DeleteQuestion(cmd.Context(), id)
		},
	}
}

func newAnswerAddCmd(configPath, storeFlag *string) *cobra.Command {
	var correct bool
	cmd := &cobra.Command{
		Use:   "add-answer <question-id> <text>",
		Short: "Append an answer option to an existing question",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid question id %q", args[0])
			}
			store, _, err := openStore(cmd, *configPath, *storeFlag)
			if err != nil {
				return err
			}
			defer store.Close()

			answerID, err := app.NewCatalogService(store).AddAnswer(cmd.Context(), id, args[1], correct)
			if err != nil {
				return err
			}
			fmt.Printf("added answer %d\n", answerID)
			return nil
		},
	}
	cmd.Flags().BoolVar(&correct, "correct", false, "mark this answer as the correct one")
	return cmd
}
