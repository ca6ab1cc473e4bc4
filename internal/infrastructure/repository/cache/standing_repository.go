package cache

import (
	"context"

	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/ladder"
	basecache "github.com/FRBCAPL/FrontRangeHub-sub000/internal/platform/cache"
)

// StandingRepository caches the active roster per ladder. Counts and active
// lookups are answered from the cached roster; writes evict the ladder.
type StandingRepository struct {
	next  ladder.Repository
	cache *basecache.Store[[]ladder.Standing]
}

func NewStandingRepository(next ladder.Repository, cache *basecache.Store[[]ladder.Standing]) *StandingRepository {
	return &StandingRepository{next: next, cache: cache}
}

func activeKey(ladderName ladder.Name) string {
	return "standings:active:" + string(ladderName)
}

func (r *StandingRepository) ListActive(ctx context.Context, ladderName ladder.Name) ([]ladder.Standing, error) {
	items, err := r.cache.GetOrLoad(ctx, activeKey(ladderName), func(ctx context.Context) ([]ladder.Standing, error) {
		items, err := r.next.ListActive(ctx, ladderName)
		if err != nil {
			return nil, err
		}
		return append([]ladder.Standing(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]ladder.Standing(nil), items...), nil
}

func (r *StandingRepository) GetByPlayer(ctx context.Context, ladderName ladder.Name, playerID string) (ladder.Standing, bool, error) {
	items, err := r.ListActive(ctx, ladderName)
	if err != nil {
		return ladder.Standing{}, false, err
	}
	for _, item := range items {
		if item.PlayerID == playerID {
			return item, true, nil
		}
	}
	return r.next.GetByPlayer(ctx, ladderName, playerID)
}

func (r *StandingRepository) CountActive(ctx context.Context, ladderName ladder.Name) (int, error) {
	items, err := r.ListActive(ctx, ladderName)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// LockLadder forwards to the wrapped repository and evicts the ladder so the
// lock holder plans from a fresh roster.
func (r *StandingRepository) LockLadder(ctx context.Context, ladderName ladder.Name) (func(), error) {
	unlock := func() {}
	if locker, ok := r.next.(ladder.Locker); ok {
		var err error
		if unlock, err = locker.LockLadder(ctx, ladderName); err != nil {
			return nil, err
		}
	}
	r.cache.Delete(ctx, activeKey(ladderName))
	return unlock, nil
}

func (r *StandingRepository) UpdatePositions(ctx context.Context, ladderName ladder.Name, changes []ladder.PositionChange) error {
	defer r.cache.Delete(ctx, activeKey(ladderName))
	return r.next.UpdatePositions(ctx, ladderName, changes)
}

func (r *StandingRepository) Deactivate(ctx context.Context, ladderName ladder.Name, playerID string) error {
	defer r.cache.Delete(ctx, activeKey(ladderName))
	return r.next.Deactivate(ctx, ladderName, playerID)
}
