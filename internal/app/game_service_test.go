package app_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"quiz-app/internal/app"
	"quiz-app/internal/domain"
	"quiz-app/internal/infra/memory"
)

type gameFixture struct {
	store      *memory.Store
	sched      *manualScheduler
	service    *app.GameService
	stats      *app.StatsService
	categoryID int64
	alice      int64
	bob        int64
}

func newGameFixture(t *testing.T, questions int, settings app.GameSettings) *gameFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStoreWithRand(rand.New(rand.NewSource(21)))

	categoryID, err := store.AddCategory(ctx, "Geschichte")
	if err != nil {
		t.Fatalf("seed category: %v", err)
	}
	for i := 0; i < questions; i++ {
		seedQuestion(t, store, categoryID, questionText(i), "richtig", "falsch1", "falsch2", "falsch3")
	}
	alice, err := store.CreatePlayer(ctx, "alice", []byte("x"))
	if err != nil {
		t.Fatalf("create alice: %v", err)
	}
	bob, err := store.CreatePlayer(ctx, "bob", []byte("x"))
	if err != nil {
		t.Fatalf("create bob: %v", err)
	}

	sched := &manualScheduler{}
	bank := app.NewQuestionBankWithRand(store, rand.New(rand.NewSource(5)))
	return &gameFixture{
		store:      store,
		sched:      sched,
		service:    app.NewGameService(store, bank, sched, settings),
		stats:      app.NewStatsService(store),
		categoryID: categoryID,
		alice:      alice,
		bob:        bob,
	}
}

func questionText(i int) string {
	return "Frage Nummer " + string(rune('A'+i))
}

func ptr(v int64) *int64 { return &v }

func wrongOption(t *testing.T, view *domain.QuestionView) int64 {
	t.Helper()
	for _, option := range view.Options {
		if option.ID != view.CorrectAnswerID {
			return option.ID
		}
	}
	t.Fatalf("no wrong option in view %+v", view)
	return 0
}

func TestDuelEndToEnd(t *testing.T) {
	ctx := context.Background()
	fx := newGameFixture(t, 6, app.GameSettings{})

	session, err := fx.service.CreateGame(ctx, []int64{fx.alice, fx.bob}, fx.categoryID, testDifficultyLeicht)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}

	view, err := session.StartRound(ctx)
	if err != nil {
		t.Fatalf("start round: %v", err)
	}
	for round := 1; ; round++ {
		if err := session.SubmitAnswer(ctx, fx.alice, ptr(view.CorrectAnswerID)); err != nil {
			t.Fatalf("round %d: alice submit: %v", round, err)
		}
		if err := session.SubmitAnswer(ctx, fx.bob, ptr(wrongOption(t, view))); err != nil {
			t.Fatalf("round %d: bob submit: %v", round, err)
		}
		next, done, err := session.Advance(ctx)
		if err != nil {
			t.Fatalf("round %d: advance: %v", round, err)
		}
		if done {
			if round != 5 {
				t.Fatalf("expected 5 rounds, finished after %d", round)
			}
			break
		}
		view = next
	}

	ranking, err := session.Finish(ctx)
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if len(ranking) != 2 {
		t.Fatalf("expected 2 ranked players, got %d", len(ranking))
	}
	if ranking[0].Username != "alice" || ranking[0].Score != 50 {
		t.Fatalf("expected alice leading with 50, got %+v", ranking[0])
	}
	if ranking[1].Username != "bob" || ranking[1].Score != 0 {
		t.Fatalf("expected bob with 0, got %+v", ranking[1])
	}

	// Score must equal 10x the correct answer events for each player.
	for _, standing := range ranking {
		correct := 0
		for _, event := range fx.store.Events() {
			if event.GameID == session.ID() && event.PlayerID == standing.PlayerID && event.Correct {
				correct++
			}
		}
		if standing.Score != 10*correct {
			t.Fatalf("player %d: score %d does not match %d correct answers", standing.PlayerID, standing.Score, correct)
		}
	}

	aliceStats, err := fx.stats.Statistics(ctx, fx.alice)
	if err != nil {
		t.Fatalf("alice stats: %v", err)
	}
	if aliceStats.DuelsWon != 1 || aliceStats.GamesPlayed != 1 {
		t.Fatalf("expected alice to have won 1 duel, got %+v", aliceStats)
	}
	if aliceStats.Accuracy != 100 {
		t.Fatalf("expected alice accuracy 100, got %v", aliceStats.Accuracy)
	}
	bobStats, err := fx.stats.Statistics(ctx, fx.bob)
	if err != nil {
		t.Fatalf("bob stats: %v", err)
	}
	if bobStats.DuelsWon != 0 || bobStats.TotalAnswers != 5 || bobStats.CorrectAnswers != 0 {
		t.Fatalf("unexpected bob stats: %+v", bobStats)
	}
}

func TestFinishIsIdempotent(t *testing.T) {
	ctx := context.Background()
	fx := newGameFixture(t, 6, app.GameSettings{Rounds: 1})

	session, err := fx.service.CreateGame(ctx, []int64{fx.alice}, fx.categoryID, testDifficultyLeicht)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	view, err := session.StartRound(ctx)
	if err != nil {
		t.Fatalf("start round: %v", err)
	}
	if err := session.SubmitAnswer(ctx, fx.alice, ptr(view.CorrectAnswerID)); err != nil {
		t.Fatalf("submit: %v", err)
	}

	first, err := session.Finish(ctx)
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	endedAt := fx.store.EndedAt(session.ID())
	if endedAt == nil {
		t.Fatalf("expected end timestamp after finish")
	}

	second, err := session.Finish(ctx)
	if err != nil {
		t.Fatalf("second finish: %v", err)
	}
	if again := fx.store.EndedAt(session.ID()); again == nil || !again.Equal(*endedAt) {
		t.Fatalf("end timestamp changed on second finish")
	}
	if len(first) != len(second) || first[0].Score != second[0].Score {
		t.Fatalf("ranking changed on second finish: %+v vs %+v", first, second)
	}
}

func TestResubmissionDoesNotDoubleScore(t *testing.T) {
	ctx := context.Background()
	fx := newGameFixture(t, 6, app.GameSettings{})

	session, err := fx.service.CreateGame(ctx, []int64{fx.alice, fx.bob}, fx.categoryID, testDifficultyLeicht)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	view, err := session.StartRound(ctx)
	if err != nil {
		t.Fatalf("start round: %v", err)
	}
	if err := session.SubmitAnswer(ctx, fx.alice, ptr(view.CorrectAnswerID)); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := session.SubmitAnswer(ctx, fx.alice, ptr(view.CorrectAnswerID)); !errors.Is(err, domain.ErrAlreadyAnswered) {
		t.Fatalf("expected ErrAlreadyAnswered, got %v", err)
	}

	scores, err := session.Scores(ctx)
	if err != nil {
		t.Fatalf("scores: %v", err)
	}
	if scores[0].Score != 10 {
		t.Fatalf("expected score 10 after resubmission attempt, got %d", scores[0].Score)
	}
}

func TestTimeoutEqualsNilSubmission(t *testing.T) {
	ctx := context.Background()
	fx := newGameFixture(t, 6, app.GameSettings{RoundBudget: 1})

	// Game one: explicit nil submission.
	manual, err := fx.service.CreateGame(ctx, []int64{fx.alice}, fx.categoryID, testDifficultyLeicht)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	if _, err := manual.StartRound(ctx); err != nil {
		t.Fatalf("start round: %v", err)
	}
	if err := manual.SubmitAnswer(ctx, fx.alice, nil); err != nil {
		t.Fatalf("nil submit: %v", err)
	}

	// Game two: the round timer expires.
	timed, err := fx.service.CreateGame(ctx, []int64{fx.alice}, fx.categoryID, testDifficultyLeicht)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	if _, err := timed.StartRound(ctx); err != nil {
		t.Fatalf("start round: %v", err)
	}
	for fx.sched.fire() {
	}

	var manualEvent, timedEvent *domain.AnswerEvent
	events := fx.store.Events()
	for i := range events {
		switch events[i].GameID {
		case manual.ID():
			manualEvent = &events[i]
		case timed.ID():
			timedEvent = &events[i]
		}
	}
	if manualEvent == nil || timedEvent == nil {
		t.Fatalf("expected one event per game")
	}
	if manualEvent.ChosenAnswerID != nil || timedEvent.ChosenAnswerID != nil {
		t.Fatalf("expected nil chosen answers, got %+v and %+v", manualEvent, timedEvent)
	}
	if manualEvent.Correct || timedEvent.Correct {
		t.Fatalf("timeouts must be incorrect")
	}
	if manualEvent.Round != timedEvent.Round || manualEvent.PlayerID != timedEvent.PlayerID {
		t.Fatalf("events differ: %+v vs %+v", manualEvent, timedEvent)
	}
	manualScores, err := manual.Scores(ctx)
	if err != nil {
		t.Fatalf("scores: %v", err)
	}
	timedScores, err := timed.Scores(ctx)
	if err != nil {
		t.Fatalf("scores: %v", err)
	}
	if manualScores[0].Score != 0 || timedScores[0].Score != 0 {
		t.Fatalf("timeouts must not score: %d vs %d", manualScores[0].Score, timedScores[0].Score)
	}
}

func TestExhaustionForcesCompletion(t *testing.T) {
	ctx := context.Background()
	fx := newGameFixture(t, 2, app.GameSettings{})

	session, err := fx.service.CreateGame(ctx, []int64{fx.alice}, fx.categoryID, testDifficultyLeicht)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	view, err := session.StartRound(ctx)
	if err != nil {
		t.Fatalf("start round: %v", err)
	}
	if err := session.SubmitAnswer(ctx, fx.alice, ptr(view.CorrectAnswerID)); err != nil {
		t.Fatalf("round 1 submit: %v", err)
	}
	view, _, err = session.Advance(ctx)
	if err != nil {
		t.Fatalf("advance to round 2: %v", err)
	}
	if err := session.SubmitAnswer(ctx, fx.alice, ptr(view.CorrectAnswerID)); err != nil {
		t.Fatalf("round 2 submit: %v", err)
	}

	// Third round has no question left: the game completes early.
	_, done, err := session.Advance(ctx)
	if err != nil {
		t.Fatalf("advance into exhaustion: %v", err)
	}
	if !done || !session.Finished() {
		t.Fatalf("expected early completion when the pool is exhausted")
	}
	if fx.store.EndedAt(session.ID()) == nil {
		t.Fatalf("expected end timestamp on early completion")
	}
}

func TestCreateGameValidation(t *testing.T) {
	ctx := context.Background()
	fx := newGameFixture(t, 6, app.GameSettings{})

	if _, err := fx.service.CreateGame(ctx, nil, fx.categoryID, testDifficultyLeicht); !errors.Is(err, domain.ErrNoPlayers) {
		t.Fatalf("expected ErrNoPlayers, got %v", err)
	}
	if _, err := fx.service.CreateGame(ctx, []int64{1, 2, 3}, fx.categoryID, testDifficultyLeicht); err == nil {
		t.Fatalf("expected error for three players")
	}
}

func TestSubmitByOutsiderRejected(t *testing.T) {
	ctx := context.Background()
	fx := newGameFixture(t, 6, app.GameSettings{})

	session, err := fx.service.CreateGame(ctx, []int64{fx.alice}, fx.categoryID, testDifficultyLeicht)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	view, err := session.StartRound(ctx)
	if err != nil {
		t.Fatalf("start round: %v", err)
	}
	if err := session.SubmitAnswer(ctx, fx.bob, ptr(view.CorrectAnswerID)); !errors.Is(err, domain.ErrPlayerNotInGame) {
		t.Fatalf("expected ErrPlayerNotInGame, got %v", err)
	}
}
