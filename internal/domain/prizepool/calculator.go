package prizepool

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	climberBonusPerMatch  = decimal.RequireFromString("0.50")
	placementPerMatch     = decimal.RequireFromString("2.50")
	paidPlacesRatio       = decimal.RequireFromString("0.15")
	minimumPlacesToPay    = int64(2)
	placementPayoutShares = []decimal.Decimal{
		decimal.RequireFromString("0.40"),
		decimal.RequireFromString("0.30"),
		decimal.RequireFromString("0.20"),
		decimal.RequireFromString("0.10"),
	}
)

// Payouts are whole currency units per paid place.
type Payouts struct {
	Climber int64
	First   int64
	Second  int64
	Third   int64
	Fourth  int64
}

// Snapshot is a derived funding view for one ladder at one instant.
type Snapshot struct {
	Phase                  int
	Binding                bool
	MembershipFee          decimal.Decimal
	PlacementSeedPerPlayer decimal.Decimal
	ClimberSeedPerPlayer   decimal.Decimal
	PeriodStart            time.Time
	PeriodEnd              time.Time
	PeriodMonths           int
	ActivePlayerCount      int
	CompletedMatchCount    int

	PlacementSeed      decimal.Decimal
	ClimberSeed        decimal.Decimal
	ClimberMatchBonus  decimal.Decimal
	TotalClimberFund   decimal.Decimal
	MembershipRevenue  decimal.Decimal
	MatchContributions decimal.Decimal
	TotalPlacementPool decimal.Decimal
	TotalPrizePool     decimal.Decimal

	PlacesToPay int
	Payouts     Payouts
}

// Compute derives the prize pool for the phase in effect at now. Negative
// counts are treated as zero.
func Compute(now time.Time, activePlayerCount, completedMatchCount int) Snapshot {
	if activePlayerCount < 0 {
		activePlayerCount = 0
	}
	if completedMatchCount < 0 {
		completedMatchCount = 0
	}

	phase := PhaseAt(now)
	periodStart, periodEnd := phase.Period(now)

	players := decimal.NewFromInt(int64(activePlayerCount))
	matches := decimal.NewFromInt(int64(completedMatchCount))

	placementSeed := players.Mul(phase.PlacementSeedPerPlayer)
	climberSeed := players.Mul(phase.ClimberSeedPerPlayer)
	climberMatchBonus := matches.Mul(climberBonusPerMatch)
	totalClimberFund := climberSeed.Add(climberMatchBonus)
	membershipRevenue := players.Mul(phase.MembershipFee).Mul(decimal.NewFromInt(int64(phase.PeriodMonths)))
	matchContributions := matches.Mul(placementPerMatch)
	totalPlacementPool := placementSeed.Add(membershipRevenue).Add(matchContributions)

	placesToPay := PlacesToPay(activePlayerCount)

	return Snapshot{
		Phase:                  phase.Number,
		Binding:                phase.Binding,
		MembershipFee:          phase.MembershipFee,
		PlacementSeedPerPlayer: phase.PlacementSeedPerPlayer,
		ClimberSeedPerPlayer:   phase.ClimberSeedPerPlayer,
		PeriodStart:            periodStart,
		PeriodEnd:              periodEnd,
		PeriodMonths:           phase.PeriodMonths,
		ActivePlayerCount:      activePlayerCount,
		CompletedMatchCount:    completedMatchCount,
		PlacementSeed:          placementSeed,
		ClimberSeed:            climberSeed,
		ClimberMatchBonus:      climberMatchBonus,
		TotalClimberFund:       totalClimberFund,
		MembershipRevenue:      membershipRevenue,
		MatchContributions:     matchContributions,
		TotalPlacementPool:     totalPlacementPool,
		TotalPrizePool:         totalPlacementPool.Add(totalClimberFund),
		PlacesToPay:            placesToPay,
		Payouts: Payouts{
			Climber: RoundHalfUp(totalClimberFund),
			First:   placementPayout(totalPlacementPool, placesToPay, 1),
			Second:  placementPayout(totalPlacementPool, placesToPay, 2),
			Third:   placementPayout(totalPlacementPool, placesToPay, 3),
			Fourth:  placementPayout(totalPlacementPool, placesToPay, 4),
		},
	}
}

// PlacesToPay is max(2, ceil(players * 0.15)). Only four places carry a payout.
func PlacesToPay(activePlayerCount int) int {
	if activePlayerCount < 0 {
		activePlayerCount = 0
	}
	places := decimal.NewFromInt(int64(activePlayerCount)).Mul(paidPlacesRatio).Ceil().IntPart()
	if places < minimumPlacesToPay {
		places = minimumPlacesToPay
	}
	return int(places)
}

func placementPayout(pool decimal.Decimal, placesToPay, place int) int64 {
	if place > placesToPay || place > len(placementPayoutShares) {
		return 0
	}
	return RoundHalfUp(pool.Mul(placementPayoutShares[place-1]))
}

// RoundHalfUp rounds a non-negative amount to whole units, halves going up.
func RoundHalfUp(v decimal.Decimal) int64 {
	return v.Round(0).IntPart()
}
