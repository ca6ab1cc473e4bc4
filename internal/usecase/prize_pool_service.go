package usecase

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/ladder"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/prizepool"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/platform/cache"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/platform/logging"
)

const prizePoolCachePrefix = "prizepool:"

// LadderPrizePool pairs a ladder with its funding snapshot.
type LadderPrizePool struct {
	Ladder   ladder.Ladder
	Snapshot prizepool.Snapshot
}

type PrizePoolService struct {
	ladders *LadderService
	matches *MatchService
	cache   *cache.Store[prizepool.Snapshot]
	workers int
	now     func() time.Time
	logger  *logging.Logger
}

// NewPrizePoolService caches snapshots for cacheTTL; a nil store disables
// caching.
func NewPrizePoolService(ladders *LadderService, matches *MatchService, store *cache.Store[prizepool.Snapshot], workers int, logger *logging.Logger) *PrizePoolService {
	if workers < 1 {
		workers = 4
	}
	if logger == nil {
		logger = logging.Default()
	}
	s := &PrizePoolService{
		ladders: ladders,
		matches: matches,
		cache:   store,
		workers: workers,
		now:     time.Now,
		logger:  logger,
	}
	if matches != nil {
		matches.invalidator = s
	}
	return s
}

// Snapshot computes the prize pool of one ladder for the funding period in
// effect at `at` (zero means now).
func (s *PrizePoolService) Snapshot(ctx context.Context, ladderName string, at time.Time) (prizepool.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PrizePoolService.Snapshot", ladderAttr(ladderName))
	defer span.End()

	name, err := parseLadderName(ladderName)
	if err != nil {
		return prizepool.Snapshot{}, err
	}
	if at.IsZero() {
		at = s.now()
	}
	at = at.UTC()

	if s.cache == nil {
		return s.compute(ctx, name, at)
	}

	phase := prizepool.PhaseAt(at)
	periodStart, _ := phase.Period(at)
	key := fmt.Sprintf("%s%s:%d:%s", prizePoolCachePrefix, name, phase.Number, periodStart.Format(time.DateOnly))
	return s.cache.GetOrLoad(ctx, key, func(ctx context.Context) (prizepool.Snapshot, error) {
		return s.compute(ctx, name, at)
	})
}

// SnapshotAll computes every ladder concurrently, returned in ladder order.
func (s *PrizePoolService) SnapshotAll(ctx context.Context, at time.Time) ([]LadderPrizePool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PrizePoolService.SnapshotAll")
	defer span.End()

	if at.IsZero() {
		at = s.now()
	}

	ladders := s.ladders.ListLadders()
	p := pool.NewWithResults[LadderPrizePool]().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(s.workers)
	for _, l := range ladders {
		p.Go(func(ctx context.Context) (LadderPrizePool, error) {
			snap, err := s.Snapshot(ctx, string(l.Name), at)
			if err != nil {
				return LadderPrizePool{}, fmt.Errorf("ladder %s: %w", l.Name, err)
			}
			return LadderPrizePool{Ladder: l, Snapshot: snap}, nil
		})
	}

	out, err := p.Wait()
	if err != nil {
		return nil, err
	}

	order := make(map[ladder.Name]int, len(ladders))
	for i, l := range ladders {
		order[l.Name] = i
	}
	slices.SortFunc(out, func(a, b LadderPrizePool) int {
		return order[a.Ladder.Name] - order[b.Ladder.Name]
	})
	return out, nil
}

// Invalidate drops cached snapshots of one ladder after roster or match
// changes.
func (s *PrizePoolService) Invalidate(ctx context.Context, ladderName string) {
	if s.cache == nil {
		return
	}
	name, err := ladder.ParseName(ladderName)
	if err != nil {
		return
	}
	s.cache.DeletePrefix(ctx, prizePoolCachePrefix+string(name)+":")
}

func (s *PrizePoolService) compute(ctx context.Context, name ladder.Name, at time.Time) (prizepool.Snapshot, error) {
	phase := prizepool.PhaseAt(at)
	periodStart, periodEnd := phase.Period(at)

	players, err := s.ladders.ActivePlayerCount(ctx, string(name))
	if err != nil {
		return prizepool.Snapshot{}, err
	}
	matches, err := s.matches.CompletedMatchCount(ctx, string(name), periodStart, periodEnd)
	if err != nil {
		return prizepool.Snapshot{}, err
	}

	snap := prizepool.Compute(at, players, matches)
	s.logger.DebugContext(ctx, "prize pool computed",
		"ladder", name,
		"phase", snap.Phase,
		"players", players,
		"matches", matches,
		"total", snap.TotalPrizePool.StringFixed(2),
	)
	return snap, nil
}
