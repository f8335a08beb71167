package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/migrate"

	"quiz-app/internal/domain"
	"quiz-app/internal/infra/sqlite/migrations"
)

// Store is the bun-backed implementation of every repository interface
// over a single local SQLite file. Each logical operation commits as one
// transaction; nothing holds a long-lived cursor.
type Store struct {
	db *bun.DB
}

// Open opens (or creates) the store file and applies the pragmas the
// schema relies on, foreign_keys in particular.
func Open(path string) (*Store, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	return &Store{db: db}, nil
}

// NewStore wraps an existing bun handle (tests use in-memory databases).
func NewStore(db *bun.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *bun.DB { return s.db }

func (s *Store) Close() error { return s.db.Close() }

// EnsureSchema bootstraps the schema when the config table is absent.
// A store file without schema and without a working migration set is a
// fatal startup condition and is surfaced as an error.
func (s *Store) EnsureSchema(ctx context.Context) error {
	var n int
	if err := s.db.NewRaw("SELECT COUNT(*) FROM config").Scan(ctx, &n); err == nil {
		return nil
	}
	return s.Migrate(ctx)
}

// Migrate applies the embedded bootstrap migrations.
func (s *Store) Migrate(ctx context.Context) error {
	migrator := migrate.NewMigrator(s.db, migrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// --- app.PlayerRepository ---

func (s *Store) CreatePlayer(ctx context.Context, username string, passwordHash []byte) (int64, error) {
	row := &playerRow{Username: username, PasswordHash: passwordHash}
	if _, err := s.db.NewInsert().Model(row).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrUsernameTaken
		}
		return 0, fmt.Errorf("create player: %w", err)
	}
	return row.ID, nil
}

func (s *Store) PlayerByUsername(ctx context.Context, username string) (*domain.Player, error) {
	row := new(playerRow)
	err := s.db.NewSelect().Model(row).Where("username = ?", username).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load player: %w", err)
	}
	return row.toDomain(), nil
}

func (s *Store) SavePlayerSession(ctx context.Context, playerID int64, token string, issuedAt time.Time) error {
	_, err := s.db.NewUpdate().
		Model((*playerRow)(nil)).
		Set("session_token = ?", token).
		Set("session_issued = ?", issuedAt).
		Where("id = ?", playerID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *Store) Players(ctx context.Context, excludeID int64) ([]domain.Player, error) {
	var rows []playerRow
	q := s.db.NewSelect().Model(&rows).Order("username ASC")
	if excludeID != 0 {
		q = q.Where("id != ?", excludeID)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	players := make([]domain.Player, len(rows))
	for i := range rows {
		players[i] = *rows[i].toDomain()
	}
	return players, nil
}

// --- app.QuestionRepository ---

func (s *Store) RandomQuestion(ctx context.Context, categoryID, difficultyID int64, excluded []int64) (*domain.Question, error) {
	row := new(questionRow)
	q := s.db.NewSelect().Model(row).
		Where("category_id = ?", categoryID).
		Where("difficulty_id = ?", difficultyID)
	if len(excluded) > 0 {
		q = q.Where("id NOT IN (?)", bun.In(excluded))
	}
	err := q.OrderExpr("RANDOM()").Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("draw question: %w", err)
	}

	var answerRows []answerRow
	if err := s.db.NewSelect().Model(&answerRows).Where("question_id = ?", row.ID).Scan(ctx); err != nil {
		return nil, fmt.Errorf("load answers: %w", err)
	}
	question := &domain.Question{
		ID:           row.ID,
		Text:         row.Text,
		CategoryID:   row.CategoryID,
		DifficultyID: row.DifficultyID,
		Answers:      make([]domain.Answer, len(answerRows)),
	}
	for i, a := range answerRows {
		question.Answers[i] = domain.Answer{ID: a.ID, Text: a.Text, Correct: a.Correct, QuestionID: a.QuestionID}
	}
	return question, nil
}

// --- app.GameRepository ---

func (s *Store) CreateGame(ctx context.Context, difficultyID int64, playerIDs []int64) (int64, error) {
	var gameID int64
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		game := &gameRow{ConfigID: 1, DifficultyID: difficultyID}
		if _, err := tx.NewInsert().Model(game).Exec(ctx); err != nil {
			return fmt.Errorf("insert game: %w", err)
		}
		for _, playerID := range playerIDs {
			participation := &participationRow{GameID: game.ID, PlayerID: playerID}
			if _, err := tx.NewInsert().Model(participation).Exec(ctx); err != nil {
				return fmt.Errorf("insert participation: %w", err)
			}
		}
		gameID = game.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return gameID, nil
}

// RecordAnswer writes the history row and the score increment as one
// transaction so score and history can never diverge.
func (s *Store) RecordAnswer(ctx context.Context, event domain.AnswerEvent, points int) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		row := &answerEventRow{
			GameID:     event.GameID,
			PlayerID:   event.PlayerID,
			QuestionID: event.QuestionID,
			Round:      event.Round,
			Correct:    event.Correct,
		}
		if event.ChosenAnswerID != nil {
			row.ChosenAnswerID = sql.NullInt64{Int64: *event.ChosenAnswerID, Valid: true}
		}
		if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
			if isUniqueViolation(err) {
				return domain.ErrAlreadyAnswered
			}
			return fmt.Errorf("insert answer event: %w", err)
		}
		if !event.Correct {
			return nil
		}
		res, err := tx.NewUpdate().
			Model((*participationRow)(nil)).
			Set("score = score + ?", points).
			Where("game_id = ?", event.GameID).
			Where("player_id = ?", event.PlayerID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("update score: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return domain.ErrPlayerNotInGame
		}
		return nil
	})
}

func (s *Store) FinishGame(ctx context.Context, gameID int64, endedAt time.Time) (bool, error) {
	res, err := s.db.NewUpdate().
		Model((*gameRow)(nil)).
		Set("ended_at = ?", endedAt).
		Where("id = ?", gameID).
		Where("ended_at IS NULL").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("finish game: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}
	exists, err := s.db.NewSelect().Model((*gameRow)(nil)).Where("id = ?", gameID).Exists(ctx)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, domain.ErrGameNotFound
	}
	return false, nil
}

func (s *Store) Standings(ctx context.Context, gameID int64) ([]domain.Standing, error) {
	var rows []struct {
		PlayerID int64  `bun:"player_id"`
		Username string `bun:"username"`
		Score    int    `bun:"score"`
	}
	err := s.db.NewSelect().
		ColumnExpr("t.player_id, pl.username, t.score").
		TableExpr("participations AS t").
		Join("JOIN players AS pl ON pl.id = t.player_id").
		Where("t.game_id = ?", gameID).
		OrderExpr("t.score DESC, t.id ASC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("load standings: %w", err)
	}
	standings := make([]domain.Standing, len(rows))
	for i, r := range rows {
		standings[i] = domain.Standing{PlayerID: r.PlayerID, Username: r.Username, Score: r.Score}
	}
	return standings, nil
}

// --- app.StatsRepository ---

func (s *Store) PlayerStatistics(ctx context.Context, playerID int64) (domain.PlayerStats, error) {
	var stats domain.PlayerStats

	err := s.db.NewRaw(
		`SELECT COUNT(DISTINCT game_id) FROM participations WHERE player_id = ?`, playerID,
	).Scan(ctx, &stats.GamesPlayed)
	if err != nil {
		return stats, fmt.Errorf("games played: %w", err)
	}

	// A duel win: the player's score equals the game maximum in a game
	// with more than one participation. Tied top scores count for every
	// tied player.
	err = s.db.NewRaw(
		`SELECT COUNT(*)
		 FROM participations t1
		 WHERE t1.player_id = ?
		   AND t1.score = (SELECT MAX(t2.score) FROM participations t2 WHERE t2.game_id = t1.game_id)
		   AND (SELECT COUNT(*) FROM participations t3 WHERE t3.game_id = t1.game_id) > 1`, playerID,
	).Scan(ctx, &stats.DuelsWon)
	if err != nil {
		return stats, fmt.Errorf("duels won: %w", err)
	}

	err = s.db.NewRaw(
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN correct THEN 1 ELSE 0 END), 0)
		 FROM answer_events WHERE player_id = ?`, playerID,
	).Scan(ctx, &stats.TotalAnswers, &stats.CorrectAnswers)
	if err != nil {
		return stats, fmt.Errorf("answer counts: %w", err)
	}
	return stats, nil
}

// --- app.CatalogRepository / app.ReferenceRepository ---

func (s *Store) AddCategory(ctx context.Context, label string) (int64, error) {
	row := &categoryRow{Label: label}
	if _, err := s.db.NewInsert().Model(row).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrCategoryExists
		}
		return 0, fmt.Errorf("add category: %w", err)
	}
	return row.ID, nil
}

func (s *Store) EnsureCategory(ctx context.Context, label string) (int64, error) {
	row := new(categoryRow)
	err := s.db.NewSelect().Model(row).Where("label = ?", label).Limit(1).Scan(ctx)
	if err == nil {
		return row.ID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("lookup category: %w", err)
	}
	return s.AddCategory(ctx, label)
}

func (s *Store) Categories(ctx context.Context) ([]domain.Category, error) {
	var rows []categoryRow
	if err := s.db.NewSelect().Model(&rows).Order("label ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	categories := make([]domain.Category, len(rows))
	for i, r := range rows {
		categories[i] = domain.Category{ID: r.ID, Label: r.Label}
	}
	return categories, nil
}

func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	_, err := s.db.NewDelete().Model((*categoryRow)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrCategoryInUse
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (s *Store) Difficulties(ctx context.Context) ([]domain.Difficulty, error) {
	var rows []difficultyRow
	if err := s.db.NewSelect().Model(&rows).Order("level ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list difficulties: %w", err)
	}
	difficulties := make([]domain.Difficulty, len(rows))
	for i, r := range rows {
		difficulties[i] = domain.Difficulty{ID: r.ID, Label: r.Label, Level: r.Level}
	}
	return difficulties, nil
}

func (s *Store) AddQuestion(ctx context.Context, question domain.Question) (int64, error) {
	var questionID int64
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		row := &questionRow{
			Text:         question.Text,
			CategoryID:   question.CategoryID,
			DifficultyID: question.DifficultyID,
		}
		if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
			return fmt.Errorf("insert question: %w", err)
		}
		for _, answer := range question.Answers {
			a := &answerRow{Text: answer.Text, Correct: answer.Correct, QuestionID: row.ID}
			if _, err := tx.NewInsert().Model(a).Exec(ctx); err != nil {
				return fmt.Errorf("insert answer: %w", err)
			}
		}
		questionID = row.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return questionID, nil
}

func (s *Store) AddAnswer(ctx context.Context, answer domain.Answer) (int64, error) {
	row := &answerRow{Text: answer.Text, Correct: answer.Correct, QuestionID: answer.QuestionID}
	if _, err := s.db.NewInsert().Model(row).Exec(ctx); err != nil {
		if isForeignKeyViolation(err) {
			return 0, domain.ErrQuestionNotFound
		}
		return 0, fmt.Errorf("add answer: %w", err)
	}
	return row.ID, nil
}

func (s *Store) Questions(ctx context.Context) ([]domain.QuestionSummary, error) {
	var rows []struct {
		ID         int64  `bun:"id"`
		Category   string `bun:"category"`
		Difficulty string `bun:"difficulty"`
		Text       string `bun:"text"`
	}
	err := s.db.NewSelect().
		ColumnExpr("q.id, c.label AS category, d.label AS difficulty, q.text").
		TableExpr("questions AS q").
		Join("JOIN categories AS c ON c.id = q.category_id").
		Join("JOIN difficulties AS d ON d.id = q.difficulty_id").
		OrderExpr("q.id ASC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	summaries := make([]domain.QuestionSummary, len(rows))
	for i, r := range rows {
		summaries[i] = domain.QuestionSummary{ID: r.ID, Category: r.Category, Difficulty: r.Difficulty, Text: r.Text}
	}
	return summaries, nil
}

func (s *Store) DeleteQuestion(ctx context.Context, id int64) error {
	// Answers cascade with the question.
	if _, err := s.db.NewDelete().Model((*questionRow)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	return nil
}

func (s *Store) QuestionExists(ctx context.Context, text string, categoryID int64) (bool, error) {
	exists, err := s.db.NewSelect().
		Model((*questionRow)(nil)).
		Where("text = ?", text).
		Where("category_id = ?", categoryID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("question lookup: %w", err)
	}
	return exists, nil
}
