package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/ladder"
)

type StandingRepository struct {
	mu       sync.RWMutex
	byLadder map[ladder.Name]map[string]ladder.Standing
	now      func() time.Time
}

func NewStandingRepository(items []ladder.Standing) *StandingRepository {
	byLadder := make(map[ladder.Name]map[string]ladder.Standing)
	for _, item := range items {
		rows, ok := byLadder[item.LadderName]
		if !ok {
			rows = make(map[string]ladder.Standing)
			byLadder[item.LadderName] = rows
		}
		rows[item.PlayerID] = item
	}

	return &StandingRepository{byLadder: byLadder, now: time.Now}
}

func (r *StandingRepository) ListActive(_ context.Context, ladderName ladder.Name) ([]ladder.Standing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.byLadder[ladderName]
	out := make([]ladder.Standing, 0, len(rows))
	for _, item := range rows {
		if item.Active {
			out = append(out, item)
		}
	}
	ladder.SortStandings(out)
	return out, nil
}

func (r *StandingRepository) GetByPlayer(_ context.Context, ladderName ladder.Name, playerID string) (ladder.Standing, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byLadder[ladderName][playerID]
	return item, ok, nil
}

func (r *StandingRepository) CountActive(_ context.Context, ladderName ladder.Name) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, item := range r.byLadder[ladderName] {
		if item.Active {
			count++
		}
	}
	return count, nil
}

// UpdatePositions validates every change before applying any of them.
func (r *StandingRepository) UpdatePositions(_ context.Context, ladderName ladder.Name, changes []ladder.PositionChange) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.byLadder[ladderName]
	for _, change := range changes {
		if _, ok := rows[change.PlayerID]; !ok {
			return fmt.Errorf("standing not found: ladder=%s player=%s", ladderName, change.PlayerID)
		}
		if change.To < 1 {
			return fmt.Errorf("invalid position %d for player=%s", change.To, change.PlayerID)
		}
	}

	now := r.now().UTC()
	for _, change := range changes {
		item := rows[change.PlayerID]
		item.Position = change.To
		item.UpdatedAt = now
		rows[change.PlayerID] = item
	}
	return nil
}

func (r *StandingRepository) Deactivate(_ context.Context, ladderName ladder.Name, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.byLadder[ladderName][playerID]
	if !ok {
		return fmt.Errorf("standing not found: ladder=%s player=%s", ladderName, playerID)
	}
	item.Active = false
	item.UpdatedAt = r.now().UTC()
	r.byLadder[ladderName][playerID] = item
	return nil
}
