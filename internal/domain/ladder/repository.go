package ladder

import "context"

// Locker is implemented by repositories shared between processes. LockLadder
// blocks until the caller owns the ladder's position writes; unlock releases it.
type Locker interface {
	LockLadder(ctx context.Context, ladderName Name) (unlock func(), err error)
}

// Repository describes standings persistence needs from use cases.
type Repository interface {
	ListActive(ctx context.Context, ladderName Name) ([]Standing, error)
	GetByPlayer(ctx context.Context, ladderName Name, playerID string) (Standing, bool, error)
	CountActive(ctx context.Context, ladderName Name) (int, error)
	// UpdatePositions applies all changes atomically.
	UpdatePositions(ctx context.Context, ladderName Name, changes []PositionChange) error
	Deactivate(ctx context.Context, ladderName Name, playerID string) error
}
