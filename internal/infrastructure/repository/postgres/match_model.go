package postgres

import (
	"time"

	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/challenge"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/ladder"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/match"
)

const matchesTable = "ladder_matches"

type matchTableModel struct {
	ID                 string    `db:"id"`
	LadderName         string    `db:"ladder_name"`
	MatchType          string    `db:"match_type"`
	ChallengerID       string    `db:"challenger_id"`
	DefenderID         string    `db:"defender_id"`
	ChallengerPosition int       `db:"challenger_position"`
	DefenderPosition   int       `db:"defender_position"`
	WinnerID           string    `db:"winner_id"`
	Score              string    `db:"score"`
	CompletedAt        time.Time `db:"completed_at"`
	CreatedAt          time.Time `db:"created_at"`
}

func newMatchTableModel(m match.Match) matchTableModel {
	return matchTableModel{
		ID:                 m.ID,
		LadderName:         string(m.LadderName),
		MatchType:          string(m.Type),
		ChallengerID:       m.ChallengerID,
		DefenderID:         m.DefenderID,
		ChallengerPosition: m.ChallengerPosition,
		DefenderPosition:   m.DefenderPosition,
		WinnerID:           m.WinnerID,
		Score:              m.Score,
		CompletedAt:        m.CompletedAt.UTC(),
		CreatedAt:          m.CreatedAt.UTC(),
	}
}

func (m matchTableModel) toDomain() match.Match {
	return match.Match{
		ID:                 m.ID,
		LadderName:         ladder.Name(m.LadderName),
		Type:               challenge.MatchType(m.MatchType),
		ChallengerID:       m.ChallengerID,
		DefenderID:         m.DefenderID,
		ChallengerPosition: m.ChallengerPosition,
		DefenderPosition:   m.DefenderPosition,
		WinnerID:           m.WinnerID,
		Score:              m.Score,
		CompletedAt:        m.CompletedAt.UTC(),
		CreatedAt:          m.CreatedAt.UTC(),
	}
}
