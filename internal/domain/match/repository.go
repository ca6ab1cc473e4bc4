package match

import (
	"context"
	"time"

	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/ladder"
)

// Repository describes match history persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, m Match) error
	ListRecent(ctx context.Context, ladderName ladder.Name, limit int) ([]Match, error)
	// CountCompleted counts matches completed in [from, to).
	CountCompleted(ctx context.Context, ladderName ladder.Name, from, to time.Time) (int, error)
	// HasSmackDownWinAsDefender reports a SmackDown won by playerID as defender
	// completed in [since, until].
	HasSmackDownWinAsDefender(ctx context.Context, ladderName ladder.Name, playerID string, since, until time.Time) (bool, error)
}
