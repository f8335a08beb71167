package domain

import "time"

// Player is a registered account. The session fields change on every login.
type Player struct {
	ID            int64
	Username      string
	PasswordHash  []byte
	SessionToken  string
	SessionIssued time.Time
}

// Category is static reference data grouping questions.
type Category struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

// Difficulty is static reference data ordered by Level.
type Difficulty struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
	Level int    `json:"level"`
}

// Question owns its answers. A question is only playable with exactly
// one correct answer among at least four total.
type Question struct {
	ID           int64
	Text         string
	CategoryID   int64
	DifficultyID int64
	Answers      []Answer
}

// Answer is one option of a question; answers are deleted with their question.
type Answer struct {
	ID         int64
	Text       string
	Correct    bool
	QuestionID int64
}

// AnswerOption is the correctness-stripped view handed to callers.
type AnswerOption struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

// QuestionView is a drawn question ready for presentation: four options
// in random display order. CorrectAnswerID exists for engine-side
// verification only and must never reach an opposing player's screen.
type QuestionView struct {
	QuestionID      int64          `json:"questionId"`
	Text            string         `json:"text"`
	Options         []AnswerOption `json:"options"`
	CorrectAnswerID int64          `json:"-"`
}

// QuestionSummary is a curation listing row with resolved labels.
type QuestionSummary struct {
	ID         int64  `json:"id"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
	Text       string `json:"text"`
}

// Game is one quiz match of one or two players. EndedAt stays nil while
// the game is in progress and is set exactly once on completion.
type Game struct {
	ID           int64
	DifficultyID int64
	EndedAt      *time.Time
}

// Participation is a player's enrollment and running score in one game.
type Participation struct {
	GameID   int64
	PlayerID int64
	Score    int
}

// AnswerEvent is the immutable record of one response (or timeout) to
// one question in one round. A nil ChosenAnswerID means the round timed out.
type AnswerEvent struct {
	GameID         int64
	PlayerID       int64
	QuestionID     int64
	Round          int
	ChosenAnswerID *int64
	Correct        bool
}

// Standing pairs a participant with their score for ranking displays.
type Standing struct {
	PlayerID int64  `json:"playerId"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// PlayerStats aggregates a player's history across all games.
type PlayerStats struct {
	GamesPlayed    int     `json:"gamesPlayed"`
	DuelsWon       int     `json:"duelsWon"`
	TotalAnswers   int     `json:"totalAnswers"`
	CorrectAnswers int     `json:"correctAnswers"`
	Accuracy       float64 `json:"accuracy"`
}
