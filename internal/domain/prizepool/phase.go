package prizepool

import (
	"time"

	"github.com/shopspring/decimal"
)

// Phase is a funding epoch selected by calendar date.
type Phase struct {
	Number                 int
	StartsAt               time.Time
	MembershipFee          decimal.Decimal
	PlacementSeedPerPlayer decimal.Decimal
	ClimberSeedPerPlayer   decimal.Decimal
	PeriodMonths           int
	// PeriodStart is fixed for the early phases. A zero value means the period
	// follows calendar quarters.
	PeriodStart time.Time
	// Binding is false while payouts are a simulation only.
	Binding bool
}

func utcDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Phases is ordered by StartsAt. Boundaries are business decisions, not derived.
var Phases = []Phase{
	{
		Number:                 1,
		MembershipFee:          decimal.Zero,
		PlacementSeedPerPlayer: decimal.NewFromInt(7),
		ClimberSeedPerPlayer:   decimal.NewFromInt(1),
		PeriodMonths:           2,
		PeriodStart:            utcDate(2025, time.September, 1),
		Binding:                false,
	},
	{
		Number:                 2,
		StartsAt:               utcDate(2025, time.November, 1),
		MembershipFee:          decimal.NewFromInt(5),
		PlacementSeedPerPlayer: decimal.RequireFromString("2.50"),
		ClimberSeedPerPlayer:   decimal.RequireFromString("0.50"),
		PeriodMonths:           2,
		PeriodStart:            utcDate(2025, time.November, 1),
		Binding:                true,
	},
	{
		Number:                 3,
		StartsAt:               utcDate(2026, time.January, 1),
		MembershipFee:          decimal.NewFromInt(10),
		PlacementSeedPerPlayer: decimal.NewFromInt(7),
		ClimberSeedPerPlayer:   decimal.NewFromInt(1),
		PeriodMonths:           3,
		Binding:                true,
	},
}

// PhaseAt returns the phase in effect at now.
func PhaseAt(now time.Time) Phase {
	now = now.UTC()
	selected := Phases[0]
	for _, p := range Phases[1:] {
		if now.Before(p.StartsAt) {
			break
		}
		selected = p
	}
	return selected
}

// Period returns the funding window [start, end) of the phase at now.
func (p Phase) Period(now time.Time) (time.Time, time.Time) {
	start := p.PeriodStart
	if start.IsZero() {
		now = now.UTC()
		quarterMonth := time.Month((int(now.Month())-1)/3*3 + 1)
		start = utcDate(now.Year(), quarterMonth, 1)
	}
	return start, start.AddDate(0, p.PeriodMonths, 0)
}
