package postgres

import (
	"context"
	"database/sql/driver"
	"fmt"

	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/ladder"
)

const (
	advisoryLockQuery   = "SELECT pg_advisory_lock(hashtext($1))"
	advisoryUnlockQuery = "SELECT pg_advisory_unlock(hashtext($1))"
)

func advisoryLockKey(ladderName ladder.Name) string {
	return "ladder_standings:" + string(ladderName)
}

// LockLadder takes a session advisory lock on a dedicated connection, so
// every replica sharing the database serializes position writes per ladder.
func (r *StandingRepository) LockLadder(ctx context.Context, ladderName ladder.Name) (func(), error) {
	conn, err := r.db.Connx(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire lock connection: %w", err)
	}
	key := advisoryLockKey(ladderName)
	if _, err := conn.ExecContext(ctx, advisoryLockQuery, key); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("advisory lock ladder=%s: %w", ladderName, err)
	}

	return func() {
		if _, err := conn.ExecContext(context.WithoutCancel(ctx), advisoryUnlockQuery, key); err != nil {
			// a session that may still hold the lock must not go back to the pool
			_ = conn.Raw(func(any) error { return driver.ErrBadConn })
		}
		_ = conn.Close()
	}, nil
}
