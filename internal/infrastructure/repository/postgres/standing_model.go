package postgres

import (
	"time"

	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/ladder"
)

const standingsTable = "ladder_standings"

type standingTableModel struct {
	LadderName string    `db:"ladder_name"`
	PlayerID   string    `db:"player_id"`
	Position   int       `db:"position"`
	Active     bool      `db:"active"`
	FirstName  string    `db:"first_name"`
	LastName   string    `db:"last_name"`
	FargoRate  int       `db:"fargo_rate"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (m standingTableModel) toDomain() ladder.Standing {
	return ladder.Standing{
		PlayerID:   m.PlayerID,
		LadderName: ladder.Name(m.LadderName),
		Position:   m.Position,
		Active:     m.Active,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		FargoRate:  m.FargoRate,
		UpdatedAt:  m.UpdatedAt.UTC(),
	}
}

var standingColumns = []string{
	"ladder_name", "player_id", "position", "active", "first_name", "last_name", "fargo_rate", "updated_at",
}
