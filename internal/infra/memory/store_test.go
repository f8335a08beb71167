package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"quiz-app/internal/domain"
	"quiz-app/internal/infra/memory"
)

func TestStoreGameLifecycle(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	alice, err := store.CreatePlayer(ctx, "alice", []byte("hash"))
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	if _, err := store.CreatePlayer(ctx, "alice", []byte("hash")); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	bob, err := store.CreatePlayer(ctx, "bob", []byte("hash"))
	if err != nil {
		t.Fatalf("create player: %v", err)
	}

	gameID, err := store.CreateGame(ctx, 1, []int64{alice, bob})
	if err != nil {
		t.Fatalf("create game: %v", err)
	}

	event := domain.AnswerEvent{GameID: gameID, PlayerID: alice, QuestionID: 1, Round: 1, Correct: true}
	if err := store.RecordAnswer(ctx, event, 10); err != nil {
		t.Fatalf("record answer: %v", err)
	}
	if err := store.RecordAnswer(ctx, event, 10); !errors.Is(err, domain.ErrAlreadyAnswered) {
		t.Fatalf("expected ErrAlreadyAnswered, got %v", err)
	}

	standings, err := store.Standings(ctx, gameID)
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if standings[0].PlayerID != alice || standings[0].Score != 10 {
		t.Fatalf("expected alice leading with 10, got %+v", standings)
	}

	applied, err := store.FinishGame(ctx, gameID, time.Unix(500, 0))
	if err != nil || !applied {
		t.Fatalf("finish game: applied=%v err=%v", applied, err)
	}
	applied, err = store.FinishGame(ctx, gameID, time.Unix(900, 0))
	if err != nil || applied {
		t.Fatalf("second finish must not apply: applied=%v err=%v", applied, err)
	}
	if ended := store.EndedAt(gameID); ended == nil || !ended.Equal(time.Unix(500, 0)) {
		t.Fatalf("unexpected end timestamp: %v", ended)
	}
}

func TestStoreStandingsKeepsTiedOrder(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	first, _ := store.CreatePlayer(ctx, "zuerst", []byte("x"))
	second, _ := store.CreatePlayer(ctx, "danach", []byte("x"))
	gameID, err := store.CreateGame(ctx, 1, []int64{first, second})
	if err != nil {
		t.Fatalf("create game: %v", err)
	}

	standings, err := store.Standings(ctx, gameID)
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if standings[0].PlayerID != first || standings[1].PlayerID != second {
		t.Fatalf("tied standings must keep participation order, got %+v", standings)
	}
}

func TestStoreAddAnswerUnknownQuestion(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	if _, err := store.AddAnswer(ctx, domain.Answer{QuestionID: 999, Text: "verwaist"}); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}
}

func TestStoreSeedsDifficultyLevels(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	difficulties, err := store.Difficulties(ctx)
	if err != nil {
		t.Fatalf("difficulties: %v", err)
	}
	want := []string{"Leicht", "Mittel", "Schwer"}
	if len(difficulties) != len(want) {
		t.Fatalf("expected %d difficulties, got %d", len(want), len(difficulties))
	}
	for i, d := range difficulties {
		if d.Label != want[i] || d.Level != i+1 {
			t.Fatalf("unexpected difficulty %d: %+v", i, d)
		}
	}
}
