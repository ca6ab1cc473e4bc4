package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/challenge"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/ladder"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/match"
	qb "github.com/FRBCAPL/FrontRangeHub-sub000/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) error {
	query, args, err := qb.InsertModel(matchesTable, newMatchTableModel(m), "")
	if err != nil {
		return fmt.Errorf("build insert match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("match %s already exists: %w", m.ID, err)
		}
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

func (r *MatchRepository) ListRecent(ctx context.Context, ladderName ladder.Name, limit int) ([]match.Match, error) {
	query, args, err := qb.Select(qb.Columns(matchTableModel{})...).From(matchesTable).
		Where(qb.Eq("ladder_name", string(ladderName))).
		OrderBy("completed_at DESC", "id").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MatchRepository) CountCompleted(ctx context.Context, ladderName ladder.Name, from, to time.Time) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From(matchesTable).
		Where(
			qb.Eq("ladder_name", string(ladderName)),
			qb.Gte("completed_at", from.UTC()),
			qb.Lt("completed_at", to.UTC()),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count matches query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count matches: %w", err)
	}
	return count, nil
}

func (r *MatchRepository) HasSmackDownWinAsDefender(ctx context.Context, ladderName ladder.Name, playerID string, since, until time.Time) (bool, error) {
	query, args, err := qb.Select("1").From(matchesTable).
		Where(
			qb.Eq("ladder_name", string(ladderName)),
			qb.Eq("match_type", string(challenge.TypeSmackDown)),
			qb.Eq("defender_id", playerID),
			qb.Eq("winner_id", playerID),
			qb.Gte("completed_at", since.UTC()),
			qb.Lte("completed_at", until.UTC()),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build smackdown history query: %w", err)
	}

	var found []int
	if err := r.db.SelectContext(ctx, &found, query, args...); err != nil {
		return false, fmt.Errorf("query smackdown history: %w", err)
	}
	return len(found) > 0, nil
}
