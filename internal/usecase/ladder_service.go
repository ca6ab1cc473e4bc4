package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/ladder"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/platform/logging"
)

// PlanFunc computes position changes from the active standings of a ladder
// while its lock is held. Returning an error aborts without writing.
type PlanFunc func(ctx context.Context, active []ladder.Standing) ([]ladder.PositionChange, error)

type LadderService struct {
	standings ladder.Repository
	logger    *logging.Logger

	locksMu sync.Mutex
	locks   map[ladder.Name]*sync.Mutex
}

func NewLadderService(standings ladder.Repository, logger *logging.Logger) *LadderService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LadderService{
		standings: standings,
		logger:    logger,
		locks:     make(map[ladder.Name]*sync.Mutex),
	}
}

func (s *LadderService) ListLadders() []ladder.Ladder {
	return append([]ladder.Ladder(nil), ladder.All...)
}

func (s *LadderService) ListStandings(ctx context.Context, ladderName string) ([]ladder.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LadderService.ListStandings", ladderAttr(ladderName))
	defer span.End()

	name, err := parseLadderName(ladderName)
	if err != nil {
		return nil, err
	}

	items, err := s.standings.ListActive(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}
	ladder.SortStandings(items)
	return items, nil
}

func (s *LadderService) GetStanding(ctx context.Context, ladderName, playerID string) (ladder.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LadderService.GetStanding")
	defer span.End()

	name, err := parseLadderName(ladderName)
	if err != nil {
		return ladder.Standing{}, err
	}
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return ladder.Standing{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	item, exists, err := s.standings.GetByPlayer(ctx, name, playerID)
	if err != nil {
		return ladder.Standing{}, fmt.Errorf("get standing: %w", err)
	}
	if !exists || !item.Active {
		return ladder.Standing{}, fmt.Errorf("%w: player=%s ladder=%s", ErrNotFound, playerID, name)
	}
	return item, nil
}

func (s *LadderService) ActivePlayerCount(ctx context.Context, ladderName string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LadderService.ActivePlayerCount")
	defer span.End()

	name, err := parseLadderName(ladderName)
	if err != nil {
		return 0, err
	}

	count, err := s.standings.CountActive(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("count active standings: %w", err)
	}
	return count, nil
}

// RepairPositions closes gaps and duplicates in a ladder. It returns the
// number of standings moved.
func (s *LadderService) RepairPositions(ctx context.Context, ladderName string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LadderService.RepairPositions", ladderAttr(ladderName))
	defer span.End()

	name, err := parseLadderName(ladderName)
	if err != nil {
		return 0, err
	}

	moved, err := s.Rearrange(ctx, name, func(_ context.Context, active []ladder.Standing) ([]ladder.PositionChange, error) {
		return ladder.RepairPlan(active), nil
	})
	if err != nil {
		return 0, err
	}
	if moved > 0 {
		s.logger.InfoContext(ctx, "ladder positions repaired", "ladder", name, "moved", moved)
	}
	return moved, nil
}

// DeactivatePlayer removes a player from the active ladder and closes the gap.
func (s *LadderService) DeactivatePlayer(ctx context.Context, ladderName, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LadderService.DeactivatePlayer", ladderAttr(ladderName))
	defer span.End()

	name, err := parseLadderName(ladderName)
	if err != nil {
		return err
	}
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	_, err = s.Rearrange(ctx, name, func(ctx context.Context, active []ladder.Standing) ([]ladder.PositionChange, error) {
		remaining := make([]ladder.Standing, 0, len(active))
		found := false
		for _, item := range active {
			if item.PlayerID == playerID {
				found = true
				continue
			}
			remaining = append(remaining, item)
		}
		if !found {
			return nil, fmt.Errorf("%w: player=%s ladder=%s", ErrNotFound, playerID, name)
		}
		if err := s.standings.Deactivate(ctx, name, playerID); err != nil {
			return nil, fmt.Errorf("deactivate standing: %w", err)
		}
		return ladder.RepairPlan(remaining), nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "player deactivated", "ladder", name, "player_id", playerID)
	return nil
}

// Rearrange serializes position writes per ladder: it loads the active
// standings, runs plan and applies the returned changes atomically. When the
// repository is a ladder.Locker the lock also spans other processes.
func (s *LadderService) Rearrange(ctx context.Context, name ladder.Name, plan PlanFunc) (int, error) {
	lock := s.lockFor(name)
	lock.Lock()
	defer lock.Unlock()

	if locker, ok := s.standings.(ladder.Locker); ok {
		unlock, err := locker.LockLadder(ctx, name)
		if err != nil {
			return 0, fmt.Errorf("lock ladder: %w", err)
		}
		defer unlock()
	}

	active, err := s.standings.ListActive(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("list standings: %w", err)
	}

	changes, err := plan(ctx, active)
	if err != nil {
		return 0, err
	}
	if len(changes) == 0 {
		return 0, nil
	}

	if err := s.standings.UpdatePositions(ctx, name, changes); err != nil {
		return 0, fmt.Errorf("update positions: %w", err)
	}
	return len(changes), nil
}

func (s *LadderService) lockFor(name ladder.Name) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	lock, ok := s.locks[name]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[name] = lock
	}
	return lock
}

func parseLadderName(raw string) (ladder.Name, error) {
	name, err := ladder.ParseName(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return name, nil
}
