package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/challenge"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/ladder"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/match"
)

type MatchRepository struct {
	mu       sync.RWMutex
	byLadder map[ladder.Name][]match.Match
	ids      map[string]struct{}
}

func NewMatchRepository(items []match.Match) *MatchRepository {
	r := &MatchRepository{
		byLadder: make(map[ladder.Name][]match.Match),
		ids:      make(map[string]struct{}),
	}
	for _, item := range items {
		r.byLadder[item.LadderName] = append(r.byLadder[item.LadderName], item)
		r.ids[item.ID] = struct{}{}
	}
	return r
}

func (r *MatchRepository) Create(_ context.Context, m match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.ids[m.ID]; exists {
		return fmt.Errorf("match already exists: %s", m.ID)
	}
	r.byLadder[m.LadderName] = append(r.byLadder[m.LadderName], m)
	r.ids[m.ID] = struct{}{}
	return nil
}

// ListRecent returns the newest matches first.
func (r *MatchRepository) ListRecent(_ context.Context, ladderName ladder.Name, limit int) ([]match.Match, error) {
	r.mu.RLock()
	out := append([]match.Match(nil), r.byLadder[ladderName]...)
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b match.Match) int {
		return b.CompletedAt.Compare(a.CompletedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MatchRepository) CountCompleted(_ context.Context, ladderName ladder.Name, from, to time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, m := range r.byLadder[ladderName] {
		if !m.CompletedAt.Before(from) && m.CompletedAt.Before(to) {
			count++
		}
	}
	return count, nil
}

func (r *MatchRepository) HasSmackDownWinAsDefender(_ context.Context, ladderName ladder.Name, playerID string, since, until time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.byLadder[ladderName] {
		if m.Type == challenge.TypeSmackDown && m.DefenderID == playerID && m.WinnerID == playerID &&
			!m.CompletedAt.Before(since) && !m.CompletedAt.After(until) {
			return true, nil
		}
	}
	return false, nil
}
