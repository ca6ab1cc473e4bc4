package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/infrastructure/repository/memory"
	qb "github.com/FRBCAPL/FrontRangeHub-sub000/internal/platform/querybuilder"
)

// BootstrapSeed loads the demo roster into an empty standings table.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM `+standingsTable); err != nil {
		return fmt.Errorf("count standings for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	return withTx(ctx, db, func(tx *sqlx.Tx) error {
		for _, s := range memory.SeedStandings(time.Now()) {
			row := standingTableModel{
				LadderName: string(s.LadderName),
				PlayerID:   s.PlayerID,
				Position:   s.Position,
				Active:     s.Active,
				FirstName:  s.FirstName,
				LastName:   s.LastName,
				FargoRate:  s.FargoRate,
				UpdatedAt:  s.UpdatedAt,
			}
			query, args, err := qb.InsertModel(standingsTable, row, "ON CONFLICT (ladder_name, player_id) DO NOTHING")
			if err != nil {
				return fmt.Errorf("build seed standing query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("seed standing %s: %w", s.PlayerID, err)
			}
		}
		return nil
	})
}
