package sqlite

import (
	"database/sql"

	"github.com/uptrace/bun"

	"quiz-app/internal/domain"
)

type playerRow struct {
	bun.BaseModel `bun:"table:players,alias:pl"`

	ID            int64          `bun:"id,pk,autoincrement"`
	Username      string         `bun:"username,notnull"`
	PasswordHash  []byte         `bun:"password_hash,notnull"`
	SessionToken  sql.NullString `bun:"session_token"`
	SessionIssued sql.NullTime   `bun:"session_issued"`
}

func (r *playerRow) toDomain() *domain.Player {
	p := &domain.Player{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
	}
	if r.SessionToken.Valid {
		p.SessionToken = r.SessionToken.String
	}
	if r.SessionIssued.Valid {
		p.SessionIssued = r.SessionIssued.Time
	}
	return p
}

type categoryRow struct {
	bun.BaseModel `bun:"table:categories,alias:c"`

	ID    int64  `bun:"id,pk,autoincrement"`
	Label string `bun:"label,notnull"`
}

type difficultyRow struct {
	bun.BaseModel `bun:"table:difficulties,alias:d"`

	ID    int64  `bun:"id,pk,autoincrement"`
	Label string `bun:"label,notnull"`
	Level int    `bun:"level,notnull"`
}

type questionRow struct {
	bun.BaseModel `bun:"table:questions,alias:q"`

	ID           int64  `bun:"id,pk,autoincrement"`
	Text         string `bun:"text,notnull"`
	CategoryID   int64  `bun:"category_id,notnull"`
	DifficultyID int64  `bun:"difficulty_id,notnull"`
}

type answerRow struct {
	bun.BaseModel `bun:"table:answers,alias:a"`

	ID         int64  `bun:"id,pk,autoincrement"`
	Text       string `bun:"text,notnull"`
	Correct    bool   `bun:"correct,notnull"`
	QuestionID int64  `bun:"question_id,notnull"`
}

type gameRow struct {
	bun.BaseModel `bun:"table:games,alias:g"`

	ID           int64        `bun:"id,pk,autoincrement"`
	ConfigID     int64        `bun:"config_id,notnull"`
	DifficultyID int64        `bun:"difficulty_id,notnull"`
	EndedAt      sql.NullTime `bun:"ended_at"`
}

type participationRow struct {
	bun.BaseModel `bun:"table:participations,alias:t"`

	ID       int64 `bun:"id,pk,autoincrement"`
	GameID   int64 `bun:"game_id,notnull"`
	PlayerID int64 `bun:"player_id,notnull"`
	Score    int   `bun:"score,notnull"`
}

type answerEventRow struct {
	bun.BaseModel `bun:"table:answer_events,alias:h"`

	ID             int64         `bun:"id,pk,autoincrement"`
	GameID         int64         `bun:"game_id,notnull"`
	PlayerID       int64         `bun:"player_id,notnull"`
	QuestionID     int64         `bun:"question_id,notnull"`
	Round          int           `bun:"round,notnull"`
	ChosenAnswerID sql.NullInt64 `bun:"chosen_answer_id"`
	Correct        bool          `bun:"correct,notnull"`
}
