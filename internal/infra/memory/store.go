package memory

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"quiz-app/internal/domain"
)

// Store is an in-memory implementation of every repository interface in
// internal/app. It mirrors the SQLite store's semantics (including the
// seeded difficulty levels) and is used by tests and demos.
type Store struct {
	mu           sync.RWMutex
	rnd          *rand.Rand
	nextID       int64
	players      map[int64]*domain.Player
	byUsername   map[string]int64
	categories   map[int64]*domain.Category
	difficulties []domain.Difficulty
	questions    map[int64]*domain.Question
	games        map[int64]*gameState
	events       []domain.AnswerEvent
}

type gameState struct {
	game           domain.Game
	participations []*domain.Participation
}

func NewStore() *Store {
	return NewStoreWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewStoreWithRand allows deterministic question draws in tests.
func NewStoreWithRand(rnd *rand.Rand) *Store {
	s := &Store{
		rnd:        rnd,
		players:    make(map[int64]*domain.Player),
		byUsername: make(map[string]int64),
		categories: make(map[int64]*domain.Category),
		questions:  make(map[int64]*domain.Question),
		games:      make(map[int64]*gameState),
	}
	for i, label := range []string{"Leicht", "Mittel", "Schwer"} {
		s.difficulties = append(s.difficulties, domain.Difficulty{
			ID:    s.nextIDLocked(),
			Label: label,
			Level: i + 1,
		})
	}
	return s
}

func (s *Store) nextIDLocked() int64 {
	s.nextID++
	return s.nextID
}

// --- app.PlayerRepository ---

func (s *Store) CreatePlayer(_ context.Context, username string, passwordHash []byte) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byUsername[username]; taken {
		return 0, domain.ErrUsernameTaken
	}
	id := s.nextIDLocked()
	s.players[id] = &domain.Player{ID: id, Username: username, PasswordHash: passwordHash}
	s.byUsername[username] = id
	return id, nil
}

func (s *Store) PlayerByUsername(_ context.Context, username string) (*domain.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byUsername[username]
	if !ok {
		return nil, nil
	}
	player := *s.players[id]
	return &player, nil
}

func (s *Store) SavePlayerSession(_ context.Context, playerID int64, token string, issuedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, ok := s.players[playerID]
	if !ok {
		return domain.ErrInvalidCredentials
	}
	player.SessionToken = token
	player.SessionIssued = issuedAt
	return nil
}

func (s *Store) Players(_ context.Context, excludeID int64) ([]domain.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]domain.Player, 0, len(s.players))
	for id, player := range s.players {
		if id == excludeID {
			continue
		}
		players = append(players, *player)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Username < players[j].Username })
	return players, nil
}

// --- app.QuestionRepository ---

func (s *Store) RandomQuestion(_ context.Context, categoryID, difficultyID int64, excluded []int64) (*domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	skip := make(map[int64]bool, len(excluded))
	for _, id := range excluded {
		skip[id] = true
	}
	var matches []*domain.Question
	for _, question := range s.questions {
		if question.CategoryID == categoryID && question.DifficultyID == difficultyID && !skip[question.ID] {
			matches = append(matches, question)
		}
	}
	if len(matches) == 0 {
		return nil, nil
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	picked := *matches[s.rnd.Intn(len(matches))]
	picked.Answers = append([]domain.Answer(nil), picked.Answers...)
	return &picked, nil
}

// --- app.GameRepository ---

func (s *Store) CreateGame(_ context.Context, difficultyID int64, playerIDs []int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextIDLocked()
	state := &gameState{game: domain.Game{ID: id, DifficultyID: difficultyID}}
	for _, playerID := range playerIDs {
		state.participations = append(state.participations, &domain.Participation{
			GameID:   id,
			PlayerID: playerID,
		})
	}
	s.games[id] = state
	return id, nil
}

func (s *Store) RecordAnswer(_ context.Context, event domain.AnswerEvent, points int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.games[event.GameID]
	if !ok {
		return domain.ErrGameNotFound
	}
	for _, existing := range s.events {
		if existing.GameID == event.GameID && existing.PlayerID == event.PlayerID && existing.Round == event.Round {
			return domain.ErrAlreadyAnswered
		}
	}
	var participation *domain.Participation
	for _, p := range state.participations {
		if p.PlayerID == event.PlayerID {
			participation = p
			break
		}
	}
	if participation == nil {
		return domain.ErrPlayerNotInGame
	}
	s.events = append(s.events, event)
	if event.Correct {
		participation.Score += points
	}
	return nil
}

func (s *Store) FinishGame(_ context.Context, gameID int64, endedAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.games[gameID]
	if !ok {
		return false, domain.ErrGameNotFound
	}
	if state.game.EndedAt != nil {
		return false, nil
	}
	state.game.EndedAt = &endedAt
	return true, nil
}

func (s *Store) Standings(_ context.Context, gameID int64) ([]domain.Standing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.games[gameID]
	if !ok {
		return nil, domain.ErrGameNotFound
	}
	standings := make([]domain.Standing, len(state.participations))
	for i, p := range state.participations {
		var username string
		if player, ok := s.players[p.PlayerID]; ok {
			username = player.Username
		}
		standings[i] = domain.Standing{PlayerID: p.PlayerID, Username: username, Score: p.Score}
	}
	// Stable sort keeps participation insertion order for tied scores.
	sort.SliceStable(standings, func(i, j int) bool { return standings[i].Score > standings[j].Score })
	return standings, nil
}

// EndedAt exposes a game's end timestamp for test assertions.
func (s *Store) EndedAt(gameID int64) *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.games[gameID]
	if !ok {
		return nil
	}
	return state.game.EndedAt
}

// Events returns a copy of the recorded answer history.
func (s *Store) Events() []domain.AnswerEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.AnswerEvent(nil), s.events...)
}

// --- app.StatsRepository ---

func (s *Store) PlayerStatistics(_ context.Context, playerID int64) (domain.PlayerStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var stats domain.PlayerStats
	for _, state := range s.games {
		var mine *domain.Participation
		max := 0
		for _, p := range state.participations {
			if p.Score > max {
				max = p.Score
			}
			if p.PlayerID == playerID {
				mine = p
			}
		}
		if mine == nil {
			continue
		}
		stats.GamesPlayed++
		if len(state.participations) > 1 && mine.Score == max {
			stats.DuelsWon++
		}
	}
	for _, event := range s.events {
		if event.PlayerID != playerID {
			continue
		}
		stats.TotalAnswers++
		if event.Correct {
			stats.CorrectAnswers++
		}
	}
	return stats, nil
}

// --- app.CatalogRepository / app.ReferenceRepository ---

func (s *Store) AddCategory(_ context.Context, label string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, category := range s.categories {
		if category.Label == label {
			return 0, domain.ErrCategoryExists
		}
	}
	id := s.nextIDLocked()
	s.categories[id] = &domain.Category{ID: id, Label: label}
	return id, nil
}

func (s *Store) EnsureCategory(ctx context.Context, label string) (int64, error) {
	s.mu.RLock()
	for _, category := range s.categories {
		if category.Label == label {
			s.mu.RUnlock()
			return category.ID, nil
		}
	}
	s.mu.RUnlock()
	return s.AddCategory(ctx, label)
}

func (s *Store) Categories(_ context.Context) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	categories := make([]domain.Category, 0, len(s.categories))
	for _, category := range s.categories {
		categories = append(categories, *category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Label < categories[j].Label })
	return categories, nil
}

func (s *Store) DeleteCategory(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, question := range s.questions {
		if question.CategoryID == id {
			return domain.ErrCategoryInUse
		}
	}
	delete(s.categories, id)
	return nil
}

func (s *Store) Difficulties(_ context.Context) ([]domain.Difficulty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Difficulty(nil), s.difficulties...), nil
}

func (s *Store) AddQuestion(_ context.Context, question domain.Question) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	question.ID = s.nextIDLocked()
	for i := range question.Answers {
		question.Answers[i].ID = s.nextIDLocked()
		question.Answers[i].QuestionID = question.ID
	}
	stored := question
	s.questions[question.ID] = &stored
	return question.ID, nil
}

func (s *Store) AddAnswer(_ context.Context, answer domain.Answer) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	question, ok := s.questions[answer.QuestionID]
	if !ok {
		return 0, domain.ErrQuestionNotFound
	}
	answer.ID = s.nextIDLocked()
	question.Answers = append(question.Answers, answer)
	return answer.ID, nil
}

func (s *Store) Questions(_ context.Context) ([]domain.QuestionSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summaries := make([]domain.QuestionSummary, 0, len(s.questions))
	for _, question := range s.questions {
		var categoryLabel, difficultyLabel string
		if category, ok := s.categories[question.CategoryID]; ok {
			categoryLabel = category.Label
		}
		for _, d := range s.difficulties {
			if d.ID == question.DifficultyID {
				difficultyLabel = d.Label
			}
		}
		summaries = append(summaries, domain.QuestionSummary{
			ID:         question.ID,
			Category:   categoryLabel,
			Difficulty: difficultyLabel,
			Text:       question.Text,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	return summaries, nil
}

func (s *Store) DeleteQuestion(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.questions, id)
	return nil
}

func (s *Store) QuestionExists(_ context.Context, text string, categoryID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, question := range s.questions {
		if question.Text == text && question.CategoryID == categoryID {
			return true, nil
		}
	}
	return false, nil
}
