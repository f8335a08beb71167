package app

import (
	"context"
	"math/rand"
	"time"

	"quiz-app/internal/domain"
)

// distractorCount is how many incorrect options accompany the correct one.
const distractorCount = 3

// QuestionRepository picks stored questions at random.
type QuestionRepository interface {
	// RandomQuestion returns one question (with all its answers) matching
	// category and difficulty, chosen uniformly among matches not in
	// excluded. Returns nil without error when no match exists.
	RandomQuestion(ctx context.Context, categoryID, difficultyID int64, excluded []int64) (*domain.Question, error)
}

// QuestionBank draws playable questions and assembles the presented
// answer set: one correct option plus three distractors in random order.
type QuestionBank struct {
	questions QuestionRepository
	rnd       *rand.Rand
}

func NewQuestionBank(questions QuestionRepository) *QuestionBank {
	return NewQuestionBankWithRand(questions, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewQuestionBankWithRand allows deterministic shuffling in tests.
func NewQuestionBankWithRand(questions QuestionRepository, rnd *rand.Rand) *QuestionBank {
	return &QuestionBank{questions: questions, rnd: rnd}
}

// Draw selects a random unplayed question. Questions whose answers do
// not partition into exactly one correct and at least three incorrect
// options are unusable; they are skipped silently and never surface to
// the player. Returns domain.ErrNoQuestionsAvailable when the pool for
// this category and difficulty is exhausted.
func (b *QuestionBank) Draw(ctx context.Context, categoryID, difficultyID int64, excluded []int64) (*domain.QuestionView, error) {
	skip := append([]int64(nil), excluded...)
	for {
		question, err := b.questions.RandomQuestion(ctx, categoryID, difficultyID, skip)
		if err != nil {
			return nil, err
		}
		if question == nil {
			return nil, domain.ErrNoQuestionsAvailable
		}
		view, err := b.assemble(question)
		if err == nil {
			return view, nil
		}
		// Malformed question data: exclude it and redraw.
		skip = append(skip, question.ID)
	}
}

func (b *QuestionBank) assemble(question *domain.Question) (*domain.QuestionView, error) {
	var correct []domain.Answer
	var incorrect []domain.Answer
	for _, answer := range question.Answers {
		if answer.Correct {
			correct = append(correct, answer)
		} else {
			incorrect = append(incorrect, answer)
		}
	}
	if len(correct) != 1 || len(incorrect) < distractorCount {
		return nil, domain.ErrMalformedQuestion
	}

	// Sample three distractors without replacement, then shuffle the
	// combined four so the correct option has no fixed position.
	picks := b.rnd.Perm(len(incorrect))[:distractorCount]
	selected := make([]domain.Answer, 0, distractorCount+1)
	selected = append(selected, correct[0])
	for _, i := range picks {
		selected = append(selected, incorrect[i])
	}
	b.rnd.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})

	options := make([]domain.AnswerOption, len(selected))
	for i, answer := range selected {
		options[i] = domain.AnswerOption{ID: answer.ID, Text: answer.Text}
	}
	return &domain.QuestionView{
		QuestionID:      question.ID,
		Text:            question.Text,
		Options:         options,
		CorrectAnswerID: correct[0].ID,
	}, nil
}
