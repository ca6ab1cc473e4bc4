package httpapi

import (
	"time"

	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/ladder"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/match"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/prizepool"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/usecase"
)

type ladderDTO struct {
	Name      string `json:"name"`
	Label     string `json:"label"`
	MinRating int    `json:"min_rating"`
	MaxRating int    `json:"max_rating,omitempty"`
}

type standingDTO struct {
	PlayerID    string    `json:"player_id"`
	Ladder      string    `json:"ladder"`
	Position    int       `json:"position"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DisplayName string    `json:"display_name"`
	FargoRate   int       `json:"fargo_rate"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type matchDTO struct {
	ID                 string    `json:"id"`
	Ladder             string    `json:"ladder"`
	MatchType          string    `json:"match_type"`
	ChallengerID       string    `json:"challenger_id"`
	DefenderID         string    `json:"defender_id"`
	ChallengerPosition int       `json:"challenger_position"`
	DefenderPosition   int       `json:"defender_position"`
	WinnerID           string    `json:"winner_id"`
	LoserID            string    `json:"loser_id"`
	Score              string    `json:"score"`
	CompletedAt        time.Time `json:"completed_at"`
}

type positionChangeDTO struct {
	PlayerID string `json:"player_id"`
	From     int    `json:"from"`
	To       int    `json:"to"`
}

type validationDTO struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

type eligibilityDTO struct {
	Valid              bool   `json:"valid"`
	Reason             string `json:"reason,omitempty"`
	MatchType          string `json:"match_type"`
	ChallengerPosition int    `json:"challenger_position"`
	DefenderPosition   int    `json:"defender_position"`
	SmackBackEligible  bool   `json:"smackback_eligible"`
}

type recordMatchDTO struct {
	Match   matchDTO            `json:"match"`
	Changes []positionChangeDTO `json:"changes"`
}

type payoutsDTO struct {
	Climber int64 `json:"climber"`
	First   int64 `json:"first"`
	Second  int64 `json:"second"`
	Third   int64 `json:"third"`
	Fourth  int64 `json:"fourth"`
}

// Money fields are decimal strings with two places.
type prizePoolDTO struct {
	Ladder              string     `json:"ladder"`
	Phase               int        `json:"phase"`
	Binding             bool       `json:"binding"`
	PeriodStart         time.Time  `json:"period_start"`
	PeriodEnd           time.Time  `json:"period_end"`
	PeriodMonths        int        `json:"period_months"`
	ActivePlayerCount   int        `json:"active_player_count"`
	CompletedMatchCount int        `json:"completed_match_count"`
	MembershipFee       string     `json:"membership_fee"`
	PlacementSeed       string     `json:"placement_seed"`
	ClimberSeed         string     `json:"climber_seed"`
	ClimberMatchBonus   string     `json:"climber_match_bonus"`
	TotalClimberFund    string     `json:"total_climber_fund"`
	MembershipRevenue   string     `json:"membership_revenue"`
	MatchContributions  string     `json:"match_contributions"`
	TotalPlacementPool  string     `json:"total_placement_pool"`
	TotalPrizePool      string     `json:"total_prize_pool"`
	PlacesToPay         int        `json:"places_to_pay"`
	Payouts             payoutsDTO `json:"payouts"`
}

type validateMatchRequest struct {
	ChallengerPosition int    `json:"challenger_position"`
	DefenderPosition   int    `json:"defender_position"`
	MatchType          string `json:"match_type" validate:"required"`
	SmackBackEligible  bool   `json:"smackback_eligible"`
}

type eligibilityRequest struct {
	ChallengerID string     `json:"challenger_id" validate:"required"`
	DefenderID   string     `json:"defender_id" validate:"required,nefield=ChallengerID"`
	MatchType    string     `json:"match_type" validate:"required"`
	At           *time.Time `json:"at,omitempty"`
}

type recordMatchRequest struct {
	ChallengerID string     `json:"challenger_id" validate:"required"`
	DefenderID   string     `json:"defender_id" validate:"required,nefield=ChallengerID"`
	MatchType    string     `json:"match_type" validate:"required"`
	WinnerID     string     `json:"winner_id" validate:"required"`
	Score        string     `json:"score" validate:"required,max=64"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

func ladderToDTO(l ladder.Ladder) ladderDTO {
	return ladderDTO{
		Name:      string(l.Name),
		Label:     l.Label,
		MinRating: l.MinRating,
		MaxRating: l.MaxRating,
	}
}

func standingToDTO(s ladder.Standing) standingDTO {
	return standingDTO{
		PlayerID:    s.PlayerID,
		Ladder:      string(s.LadderName),
		Position:    s.Position,
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		DisplayName: s.DisplayName(),
		FargoRate:   s.FargoRate,
		UpdatedAt:   s.UpdatedAt,
	}
}

func matchToDTO(m match.Match) matchDTO {
	return matchDTO{
		ID:                 m.ID,
		Ladder:             string(m.LadderName),
		MatchType:          string(m.Type),
		ChallengerID:       m.ChallengerID,
		DefenderID:         m.DefenderID,
		ChallengerPosition: m.ChallengerPosition,
		DefenderPosition:   m.DefenderPosition,
		WinnerID:           m.WinnerID,
		LoserID:            m.LoserID(),
		Score:              m.Score,
		CompletedAt:        m.CompletedAt,
	}
}

func changesToDTO(changes []ladder.PositionChange) []positionChangeDTO {
	out := make([]positionChangeDTO, 0, len(changes))
	for _, c := range changes {
		out = append(out, positionChangeDTO{PlayerID: c.PlayerID, From: c.From, To: c.To})
	}
	return out
}

func eligibilityToDTO(e usecase.Eligibility) eligibilityDTO {
	return eligibilityDTO{
		Valid:              e.Valid,
		Reason:             e.Reason,
		MatchType:          string(e.MatchType),
		ChallengerPosition: e.ChallengerPosition,
		DefenderPosition:   e.DefenderPosition,
		SmackBackEligible:  e.SmackBackEligible,
	}
}

func prizePoolToDTO(name ladder.Name, s prizepool.Snapshot) prizePoolDTO {
	return prizePoolDTO{
		Ladder:              string(name),
		Phase:               s.Phase,
		Binding:             s.Binding,
		PeriodStart:         s.PeriodStart,
		PeriodEnd:           s.PeriodEnd,
		PeriodMonths:        s.PeriodMonths,
		ActivePlayerCount:   s.ActivePlayerCount,
		CompletedMatchCount: s.CompletedMatchCount,
		MembershipFee:       s.MembershipFee.StringFixed(2),
		PlacementSeed:       s.PlacementSeed.StringFixed(2),
		ClimberSeed:         s.ClimberSeed.StringFixed(2),
		ClimberMatchBonus:   s.ClimberMatchBonus.StringFixed(2),
		TotalClimberFund:    s.TotalClimberFund.StringFixed(2),
		MembershipRevenue:   s.MembershipRevenue.StringFixed(2),
		MatchContributions:  s.MatchContributions.StringFixed(2),
		TotalPlacementPool:  s.TotalPlacementPool.StringFixed(2),
		TotalPrizePool:      s.TotalPrizePool.StringFixed(2),
		PlacesToPay:         s.PlacesToPay,
		Payouts: payoutsDTO{
			Climber: s.Payouts.Climber,
			First:   s.Payouts.First,
			Second:  s.Payouts.Second,
			Third:   s.Payouts.Third,
			Fourth:  s.Payouts.Fourth,
		},
	}
}
