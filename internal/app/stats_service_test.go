package app_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"quiz-app/internal/app"
	"quiz-app/internal/infra/memory"
)

func TestStatisticsWithoutAnswers(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	playerID, err := store.CreatePlayer(ctx, "neu", []byte("x"))
	if err != nil {
		t.Fatalf("create player: %v", err)
	}

	stats, err := app.NewStatsService(store).Statistics(ctx, playerID)
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if stats.GamesPlayed != 0 || stats.TotalAnswers != 0 || stats.Accuracy != 0 {
		t.Fatalf("expected empty stats, got %+v", stats)
	}
}

func TestTiedDuelCountsForBothPlayers(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStoreWithRand(rand.New(rand.NewSource(3)))
	alice, err := store.CreatePlayer(ctx, "alice", []byte("x"))
	if err != nil {
		t.Fatalf("create alice: %v", err)
	}
	bob, err := store.CreatePlayer(ctx, "bob", []byte("x"))
	if err != nil {
		t.Fatalf("create bob: %v", err)
	}
	gameID, err := store.CreateGame(ctx, testDifficultyLeicht, []int64{alice, bob})
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	if _, err := store.FinishGame(ctx, gameID, time.Now()); err != nil {
		t.Fatalf("finish game: %v", err)
	}

	svc := app.NewStatsService(store)
	for _, playerID := range []int64{alice, bob} {
		stats, err := svc.Statistics(ctx, playerID)
		if err != nil {
			t.Fatalf("statistics: %v", err)
		}
		if stats.DuelsWon != 1 {
			t.Fatalf("player %d: tied duel must count as won, got %+v", playerID, stats)
		}
	}
}

func TestSoloGameIsNotADuelWin(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStoreWithRand(rand.New(rand.NewSource(3)))
	alice, err := store.CreatePlayer(ctx, "alice", []byte("x"))
	if err != nil {
		t.Fatalf("create alice: %v", err)
	}
	gameID, err := store.CreateGame(ctx, testDifficultyLeicht, []int64{alice})
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	if _, err := store.FinishGame(ctx, gameID, time.Now()); err != nil {
		t.Fatalf("finish game: %v", err)
	}

	stats, err := app.NewStatsService(store).Statistics(ctx, alice)
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if stats.GamesPlayed != 1 || stats.DuelsWon != 0 {
		t.Fatalf("solo game must not count as duel win, got %+v", stats)
	}
}
