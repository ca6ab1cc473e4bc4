package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/ladder"
	qb "github.com/FRBCAPL/FrontRangeHub-sub000/internal/platform/querybuilder"
)

type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

func (r *StandingRepository) ListActive(ctx context.Context, ladderName ladder.Name) ([]ladder.Standing, error) {
	query, args, err := qb.Select(standingColumns...).From(standingsTable).
		Where(qb.Eq("ladder_name", string(ladderName)), qb.Eq("active", true)).
		OrderBy("position", "updated_at", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list standings query: %w", err)
	}

	var rows []standingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}

	out := make([]ladder.Standing, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *StandingRepository) GetByPlayer(ctx context.Context, ladderName ladder.Name, playerID string) (ladder.Standing, bool, error) {
	query, args, err := qb.Select(standingColumns...).From(standingsTable).
		Where(qb.Eq("ladder_name", string(ladderName)), qb.Eq("player_id", playerID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return ladder.Standing{}, false, fmt.Errorf("build get standing query: %w", err)
	}

	var row standingTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ladder.Standing{}, false, nil
		}
		return ladder.Standing{}, false, fmt.Errorf("get standing: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *StandingRepository) CountActive(ctx context.Context, ladderName ladder.Name) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From(standingsTable).
		Where(qb.Eq("ladder_name", string(ladderName)), qb.Eq("active", true)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count standings query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count standings: %w", err)
	}
	return count, nil
}

// UpdatePositions applies every change in one transaction and fails if any
// row is missing.
func (r *StandingRepository) UpdatePositions(ctx context.Context, ladderName ladder.Name, changes []ladder.PositionChange) error {
	if len(changes) == 0 {
		return nil
	}

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, change := range changes {
			query, args, err := qb.Update(standingsTable).
				Set("position", change.To).
				SetExpr("updated_at", "NOW()").
				Where(qb.Eq("ladder_name", string(ladderName)), qb.Eq("player_id", change.PlayerID)).
				ToSQL()
			if err != nil {
				return fmt.Errorf("build update position query: %w", err)
			}
			if err := execOne(ctx, tx, query, args...); err != nil {
				return fmt.Errorf("update position player=%s: %w", change.PlayerID, err)
			}
		}
		return nil
	})
}

func (r *StandingRepository) Deactivate(ctx context.Context, ladderName ladder.Name, playerID string) error {
	query, args, err := qb.Update(standingsTable).
		Set("active", false).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("ladder_name", string(ladderName)), qb.Eq("player_id", playerID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build deactivate standing query: %w", err)
	}
	if err := execOne(ctx, r.db, query, args...); err != nil {
		return fmt.Errorf("deactivate standing player=%s: %w", playerID, err)
	}
	return nil
}
