package app

import (
	"context"
	"fmt"
	"strings"

	"quiz-app/internal/domain"
)

// CatalogRepository is the curation-side store surface: categories,
// questions and answers, plus the reference data both tools share.
type CatalogRepository interface {
	// AddCategory inserts a category; duplicate labels return domain.ErrCategoryExists.
	AddCategory(ctx context.Context, label string) (int64, error)
	// EnsureCategory inserts the label if missing and returns the id either way.
	EnsureCategory(ctx context.Context, label string) (int64, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	// DeleteCategory fails with domain.ErrCategoryInUse while questions reference it.
	DeleteCategory(ctx context.Context, id int64) error
	Difficulties(ctx context.Context) ([]domain.Difficulty, error)
	// AddQuestion writes the question and all its answers in one transaction.
	AddQuestion(ctx context.Context, question domain.Question) (int64, error)
	AddAnswer(ctx context.Context, answer domain.Answer) (int64, error)
	Questions(ctx context.Context) ([]domain.QuestionSummary, error)
	// DeleteQuestion removes the question; its answers cascade.
	DeleteQuestion(ctx context.Context, id int64) error
	QuestionExists(ctx context.Context, text string, categoryID int64) (bool, error)
}

// CatalogService backs the administrative curation tool and the bulk
// content loader. It enforces the answer-partition invariant at write
// time so the question bank never has to reject curated content.
type CatalogService struct {
	catalog CatalogRepository
}

func NewCatalogService(catalog CatalogRepository) *CatalogService {
	return &CatalogService{catalog: catalog}
}

func (s *CatalogService) AddCategory(ctx context.Context, label string) (int64, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return 0, fmt.Errorf("category label must not be empty")
	}
	return s.catalog.AddCategory(ctx, label)
}

func (s *CatalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.catalog.Categories(ctx)
}

// DeleteCategory removes a category. A category still referenced by
// questions is reported as in use; the delete is aborted, not forced.
func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	return s.catalog.DeleteCategory(ctx, id)
}

func (s *CatalogService) Difficulties(ctx context.Context) ([]domain.Difficulty, error) {
	return s.catalog.Difficulties(ctx)
}

// AddQuestion stores a curated question: one correct answer and at
// least three distractors, otherwise the write is rejected.
func (s *CatalogService) AddQuestion(ctx context.Context, categoryID, difficultyID int64, text, correct string, wrong []string) (int64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, fmt.Errorf("question text must not be empty")
	}
	if strings.TrimSpace(correct) == "" || len(wrong) < distractorCount {
		return 0, domain.ErrMalformedQuestion
	}
	answers := make([]domain.Answer, 0, len(wrong)+1)
	answers = append(answers, domain.Answer{Text: correct, Correct: true})
	for _, w := range wrong {
		answers = append(answers, domain.Answer{Text: w})
	}
	return s.catalog.AddQuestion(ctx, domain.Question{
		Text:         text,
		CategoryID:   categoryID,
		DifficultyID: difficultyID,
		Answers:      answers,
	})
}

// AddAnswer appends one more option to an existing question.
func (s *CatalogService) AddAnswer(ctx context.Context, questionID int64, text string, correct bool) (int64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, fmt.Errorf("answer text must not be empty")
	}
	return s.catalog.AddAnswer(ctx, domain.Answer{QuestionID: questionID, Text: text, Correct: correct})
}

func (s *CatalogService) Questions(ctx context.Context) ([]domain.QuestionSummary, error) {
	return s.catalog.Questions(ctx)
}

func (s *CatalogService) DeleteQuestion(ctx context.Context, id int64) error {
	return s.catalog.DeleteQuestion(ctx, id)
}

// QuestionImport is one entry of the bulk content loader.
type QuestionImport struct {
	Text       string
	Category   string
	Difficulty string
	Answers    []ImportAnswer
}

type ImportAnswer struct {
	Text    string
	Correct bool
}

// ImportQuestions seeds categories (insert-or-ignore by label) and
// inserts question+answer sets. Questions whose text already exists in
// their category are skipped, so reruns are harmless.
func (s *CatalogService) ImportQuestions(ctx context.Context, items []QuestionImport) (added, skipped int, err error) {
	difficulties, err := s.catalog.Difficulties(ctx)
	if err != nil {
		return 0, 0, err
	}
	levels := make(map[string]int64, len(difficulties))
	for _, d := range difficulties {
		levels[d.Label] = d.ID
	}

	for _, item := range items {
		difficultyID, ok := levels[item.Difficulty]
		if !ok {
			return added, skipped, fmt.Errorf("unknown difficulty %q for question %q", item.Difficulty, item.Text)
		}
		categoryID, err := s.catalog.EnsureCategory(ctx, item.Category)
		if err != nil {
			return added, skipped, err
		}
		exists, err := s.catalog.QuestionExists(ctx, item.Text, categoryID)
		if err != nil {
			return added, skipped, err
		}
		if exists {
			skipped++
			continue
		}
		answers := make([]domain.Answer, len(item.Answers))
		for i, a := range item.Answers {
			answers[i] = domain.Answer{Text: a.Text, Correct: a.Correct}
		}
		if _, err := s.catalog.AddQuestion(ctx, domain.Question{
			Text:         item.Text,
			CategoryID:   categoryID,
			DifficultyID: difficultyID,
			Answers:      answers,
		}); err != nil {
			return added, skipped, err
		}
		added++
	}
	return added, skipped, nil
}
