package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"quiz-app/internal/domain"
)

// maxPlayers caps a game at a duel; duels share one device and one session.
const maxPlayers = 2

// GameRepository persists games, participations and answer history.
// Every method is one atomic unit: RecordAnswer in particular must write
// the answer event and the score increment in a single transaction.
type GameRepository interface {
	// CreateGame inserts the game row plus one zero-score participation
	// per player and returns the game id.
	CreateGame(ctx context.Context, difficultyID int64, playerIDs []int64) (int64, error)
	// RecordAnswer appends the event and, when it is correct, adds points
	// to the player's participation score.
	RecordAnswer(ctx context.Context, event domain.AnswerEvent, points int) error
	// FinishGame sets the end timestamp if it is still unset and reports
	// whether this call applied it.
	FinishGame(ctx context.Context, gameID int64, endedAt time.Time) (bool, error)
	// Standings returns participations with usernames, ordered by score
	// descending with ties in participation insertion order.
	Standings(ctx context.Context, gameID int64) ([]domain.Standing, error)
}

// GameSettings tunes a game. Zero values fall back to the classic rules:
// five rounds, a 30 tick budget per round, 10 points per correct answer.
type GameSettings struct {
	Rounds       int
	RoundBudget  int
	TickInterval time.Duration
	Points       int
}

func (s *GameSettings) normalize() {
	if s.Rounds <= 0 {
		s.Rounds = 5
	}
	if s.RoundBudget <= 0 {
		s.RoundBudget = 30
	}
	if s.TickInterval <= 0 {
		s.TickInterval = time.Second
	}
	if s.Points <= 0 {
		s.Points = 10
	}
}

// GameService creates game sessions and owns the rules they run under.
type GameService struct {
	games    GameRepository
	bank     *QuestionBank
	sched    Scheduler
	settings GameSettings
	now      func() time.Time
}

func NewGameService(games GameRepository, bank *QuestionBank, sched Scheduler, settings GameSettings) *GameService {
	settings.normalize()
	return &GameService{
		games:    games,
		bank:     bank,
		sched:    sched,
		settings: settings,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateGame starts a new game for one or two players. The participation
// rows are fixed here; players cannot join or leave mid-game.
func (s *GameService) CreateGame(ctx context.Context, playerIDs []int64, categoryID, difficultyID int64) (*GameSession, error) {
	if len(playerIDs) == 0 {
		return nil, domain.ErrNoPlayers
	}
	if len(playerIDs) > maxPlayers {
		return nil, fmt.Errorf("game supports at most %d players", maxPlayers)
	}
	id, err := s.games.CreateGame(ctx, difficultyID, playerIDs)
	if err != nil {
		return nil, err
	}
	return &GameSession{
		svc:          s,
		id:           id,
		players:      append([]int64(nil), playerIDs...),
		categoryID:   categoryID,
		difficultyID: difficultyID,
		state:        stateCreated,
	}, nil
}

type sessionState int

const (
	stateCreated sessionState = iota
	stateInRound
	stateRoundResolved
	stateFinished
)

// GameSession drives one game through its rounds:
// Created -> InRound(n) -> RoundResolved(n) -> InRound(n+1) | Finished.
// It is safe for concurrent use by the presentation layer and the round timer.
type GameSession struct {
	svc          *GameService
	id           int64
	players      []int64
	categoryID   int64
	difficultyID int64

	mu           sync.Mutex
	state        sessionState
	round        int
	current      *domain.QuestionView
	asked        []int64
	answered     map[int64]bool
	timer        *RoundTimer
	ranking      []domain.Standing
	tickObserver func(remaining int)
}

func (s *GameSession) ID() int64 { return s.id }

// Round reports the current round number, starting at 1.
func (s *GameSession) Round() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round
}

// Finished reports whether the session reached its terminal state.
func (s *GameSession) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == stateFinished
}

// SetCountdownObserver registers a callback invoked on every timer tick
// with the remaining budget. Must be set before the round starts.
func (s *GameSession) SetCountdownObserver(fn func(remaining int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickObserver = fn
}

// StartRound draws the next question, arms the round timer and opens the
// round for answers. When the question pool is exhausted the game is
// completed early and domain.ErrNoQuestionsAvailable is returned.
func (s *GameSession) StartRound(ctx context.Context) (*domain.QuestionView, error) {
	s.mu.Lock()
	switch s.state {
	case stateFinished:
		s.mu.Unlock()
		return nil, domain.ErrGameFinished
	case stateInRound:
		s.mu.Unlock()
		return nil, domain.ErrRoundInProgress
	}

	view, err := s.svc.bank.Draw(ctx, s.categoryID, s.difficultyID, s.asked)
	if err != nil {
		if errors.Is(err, domain.ErrNoQuestionsAvailable) {
			if _, ferr := s.finishLocked(ctx); ferr != nil {
				s.mu.Unlock()
				return nil, ferr
			}
		}
		s.mu.Unlock()
		return nil, err
	}

	s.round++
	s.current = view
	s.asked = append(s.asked, view.QuestionID)
	s.answered = make(map[int64]bool, len(s.players))
	s.state = stateInRound

	observer := s.tickObserver
	timer := NewRoundTimer(s.svc.sched, s.svc.settings.TickInterval, s.svc.settings.RoundBudget, observer, s.expireRound)
	s.timer = timer
	s.mu.Unlock()

	timer.Start()
	return view, nil
}

// SubmitAnswer records a player's choice for the current round. A nil
// answer id means the player gave no answer and always counts as
// incorrect. A second submission for the same round is rejected with
// domain.ErrAlreadyAnswered and never scores twice.
func (s *GameSession) SubmitAnswer(ctx context.Context, playerID int64, answerID *int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitLocked(ctx, playerID, answerID)
}

func (s *GameSession) submitLocked(ctx context.Context, playerID int64, answerID *int64) error {
	if s.state == stateFinished {
		return domain.ErrGameFinished
	}
	if s.state != stateInRound {
		return domain.ErrRoundNotActive
	}
	if !s.isPlayer(playerID) {
		return domain.ErrPlayerNotInGame
	}
	if s.answered[playerID] {
		return domain.ErrAlreadyAnswered
	}

	correct := answerID != nil && *answerID == s.current.CorrectAnswerID
	event := domain.AnswerEvent{
		GameID:         s.id,
		PlayerID:       playerID,
		QuestionID:     s.current.QuestionID,
		Round:          s.round,
		ChosenAnswerID: answerID,
		Correct:        correct,
	}
	if err := s.svc.games.RecordAnswer(ctx, event, s.svc.settings.Points); err != nil {
		return err
	}
	s.answered[playerID] = true

	if len(s.answered) == len(s.players) {
		s.resolveRoundLocked()
	}
	return nil
}

// expireRound is the timer expiry path: every player who has not answered
// gets a nil answer submitted on their behalf, then the round resolves.
func (s *GameSession) expireRound() {
	ctx := context.Background()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != stateInRound {
		return
	}
	for _, playerID := range s.players {
		if s.answered[playerID] {
			continue
		}
		if err := s.submitLocked(ctx, playerID, nil); err != nil {
			log.Printf("game %d: timeout submit for player %d: %v", s.id, playerID, err)
		}
	}
	if s.state == stateInRound {
		s.resolveRoundLocked()
	}
}

func (s *GameSession) resolveRoundLocked() {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.state = stateRoundResolved
}

// Advance moves a resolved round forward: to the next round while rounds
// remain, otherwise to completion. done reports that the game finished.
func (s *GameSession) Advance(ctx context.Context) (view *domain.QuestionView, done bool, err error) {
	s.mu.Lock()
	switch s.state {
	case stateFinished:
		s.mu.Unlock()
		return nil, true, nil
	case stateRoundResolved:
	default:
		s.mu.Unlock()
		return nil, false, domain.ErrRoundInProgress
	}

	if s.round >= s.svc.settings.Rounds {
		_, err := s.finishLocked(ctx)
		s.mu.Unlock()
		return nil, true, err
	}
	s.mu.Unlock()

	view, err = s.StartRound(ctx)
	if errors.Is(err, domain.ErrNoQuestionsAvailable) {
		return nil, true, nil
	}
	return view, false, err
}

// Finish completes the game: the end timestamp is written once and the
// final ranking is returned. Calling Finish again is a no-op that
// returns the same ranking.
func (s *GameSession) Finish(ctx context.Context) ([]domain.Standing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finishLocked(ctx)
}

func (s *GameSession) finishLocked(ctx context.Context) ([]domain.Standing, error) {
	if s.timer != nil {
		s.timer.Stop()
	}
	if s.state != stateFinished {
		if _, err := s.svc.games.FinishGame(ctx, s.id, s.svc.now()); err != nil {
			return nil, err
		}
		s.state = stateFinished
	}
	if s.ranking == nil {
		ranking, err := s.svc.games.Standings(ctx, s.id)
		if err != nil {
			return nil, err
		}
		s.ranking = ranking
	}
	return s.ranking, nil
}

// Scores returns the live scoreboard for this game.
func (s *GameSession) Scores(ctx context.Context) ([]domain.Standing, error) {
	return s.svc.games.Standings(ctx, s.id)
}

func (s *GameSession) isPlayer(playerID int64) bool {
	for _, id := range s.players {
		if id == playerID {
			return true
		}
	}
	return false
}
