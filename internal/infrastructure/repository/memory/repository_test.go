package memory

import (
	"context"
	"testing"
	"time"

	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/challenge"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/ladder"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/match"
)

func TestStandingRepository_UpdatePositionsIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	repo := NewStandingRepository(SeedStandings(time.Now()))

	err := repo.UpdatePositions(ctx, ladder.NameTest, []ladder.PositionChange{
		{PlayerID: "test-ladder-p1", From: 1, To: 2},
		{PlayerID: "missing", From: 9, To: 1},
	})
	if err == nil {
		t.Fatalf("expected error for unknown player")
	}

	item, _, _ := repo.GetByPlayer(ctx, ladder.NameTest, "test-ladder-p1")
	if item.Position != 1 {
		t.Fatalf("expected no partial write, got position %d", item.Position)
	}
}

func TestStandingRepository_DeactivateExcludesFromActive(t *testing.T) {
	ctx := context.Background()
	repo := NewStandingRepository(SeedStandings(time.Now()))

	before, _ := repo.CountActive(ctx, ladder.Name550Plus)
	if err := repo.Deactivate(ctx, ladder.Name550Plus, "550-plus-p2"); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	after, _ := repo.CountActive(ctx, ladder.Name550Plus)
	if after != before-1 {
		t.Fatalf("unexpected active count: before=%d after=%d", before, after)
	}

	items, _ := repo.ListActive(ctx, ladder.Name550Plus)
	for _, item := range items {
		if item.PlayerID == "550-plus-p2" {
			t.Fatalf("deactivated player still listed")
		}
	}
}

func TestMatchRepository_CountAndHistory(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	repo := NewMatchRepository([]match.Match{
		{ID: "m1", LadderName: ladder.NameTest, Type: challenge.TypeSmackDown, ChallengerID: "a", DefenderID: "b", WinnerID: "b", CompletedAt: start.Add(-time.Hour)},
		{ID: "m2", LadderName: ladder.NameTest, Type: challenge.TypeChallenge, ChallengerID: "c", DefenderID: "a", WinnerID: "c", CompletedAt: start},
		{ID: "m3", LadderName: ladder.NameTest, Type: challenge.TypeChallenge, ChallengerID: "c", DefenderID: "b", WinnerID: "b", CompletedAt: start.AddDate(0, 3, 0)},
	})

	count, err := repo.CountCompleted(ctx, ladder.NameTest, start, start.AddDate(0, 3, 0))
	if err != nil || count != 1 {
		t.Fatalf("expected 1 match in [from,to), got %d err=%v", count, err)
	}

	ok, _ := repo.HasSmackDownWinAsDefender(ctx, ladder.NameTest, "b", start.Add(-24*time.Hour), start)
	if !ok {
		t.Fatalf("expected smackdown win as defender")
	}
	ok, _ = repo.HasSmackDownWinAsDefender(ctx, ladder.NameTest, "b", start, start.Add(7*24*time.Hour))
	if ok {
		t.Fatalf("expected window to exclude older smackdown")
	}
	ok, _ = repo.HasSmackDownWinAsDefender(ctx, ladder.NameTest, "b", start.Add(-9*24*time.Hour), start.Add(-2*time.Hour))
	if ok {
		t.Fatalf("expected window to exclude a smackdown completed after until")
	}

	recent, _ := repo.ListRecent(ctx, ladder.NameTest, 2)
	if len(recent) != 2 || recent[0].ID != "m3" || recent[1].ID != "m2" {
		t.Fatalf("unexpected recent order: %+v", recent)
	}

	if err := repo.Create(ctx, match.Match{ID: "m1", LadderName: ladder.NameTest}); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}
