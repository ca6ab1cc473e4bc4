package match

import (
	"fmt"
	"strings"
	"time"

	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/challenge"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/ladder"
)

// Match is a completed ladder match with a recorded score.
type Match struct {
	ID                 string
	LadderName         ladder.Name
	Type               challenge.MatchType
	ChallengerID       string
	DefenderID         string
	ChallengerPosition int
	DefenderPosition   int
	WinnerID           string
	Score              string
	CompletedAt        time.Time
	CreatedAt          time.Time
}

func (m Match) LoserID() string {
	if m.WinnerID == m.ChallengerID {
		return m.DefenderID
	}
	return m.ChallengerID
}

func (m Match) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("match id is required")
	}
	if m.LadderName == "" {
		return fmt.Errorf("ladder name is required")
	}
	if !m.Type.Known() {
		return fmt.Errorf("unknown match type %q", m.Type)
	}
	if m.ChallengerID == "" || m.DefenderID == "" {
		return fmt.Errorf("challenger and defender are required")
	}
	if m.ChallengerID == m.DefenderID {
		return fmt.Errorf("challenger and defender must differ")
	}
	if m.WinnerID != m.ChallengerID && m.WinnerID != m.DefenderID {
		return fmt.Errorf("winner must be the challenger or the defender")
	}
	if strings.TrimSpace(m.Score) == "" {
		return fmt.Errorf("score is required")
	}
	if m.CompletedAt.IsZero() {
		return fmt.Errorf("completed at is required")
	}
	return nil
}
