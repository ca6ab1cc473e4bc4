package prizepool

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func assertAmount(t *testing.T, field string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("unexpected %s: got=%s want=%s", field, got.String(), want)
	}
}

func TestCompute_PhaseOneExample(t *testing.T) {
	got := Compute(date(2025, time.October, 1), 25, 40)

	if got.Phase != 1 || got.Binding {
		t.Fatalf("expected non-binding phase 1, got phase=%d binding=%t", got.Phase, got.Binding)
	}
	assertAmount(t, "placementSeed", got.PlacementSeed, "175")
	assertAmount(t, "climberSeed", got.ClimberSeed, "25")
	assertAmount(t, "climberMatchBonus", got.ClimberMatchBonus, "20")
	assertAmount(t, "totalClimberFund", got.TotalClimberFund, "45")
	assertAmount(t, "membershipRevenue", got.MembershipRevenue, "0")
	assertAmount(t, "matchContributions", got.MatchContributions, "100")
	assertAmount(t, "totalPlacementPool", got.TotalPlacementPool, "275")
	assertAmount(t, "totalPrizePool", got.TotalPrizePool, "320")

	if got.PlacesToPay != 4 {
		t.Fatalf("unexpected placesToPay: %d", got.PlacesToPay)
	}
	want := Payouts{Climber: 45, First: 110, Second: 83, Third: 55, Fourth: 28}
	if got.Payouts != want {
		t.Fatalf("unexpected payouts: got=%+v want=%+v", got.Payouts, want)
	}
	if !got.PeriodStart.Equal(time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected period start: %s", got.PeriodStart)
	}
	if !got.PeriodEnd.Equal(time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected period end: %s", got.PeriodEnd)
	}
}

func TestCompute_PhaseTwoExample(t *testing.T) {
	got := Compute(date(2025, time.December, 15), 10, 0)

	if got.Phase != 2 || !got.Binding {
		t.Fatalf("expected binding phase 2, got phase=%d binding=%t", got.Phase, got.Binding)
	}
	assertAmount(t, "placementSeed", got.PlacementSeed, "25")
	assertAmount(t, "climberSeed", got.ClimberSeed, "5")
	assertAmount(t, "membershipRevenue", got.MembershipRevenue, "100")
	assertAmount(t, "matchContributions", got.MatchContributions, "0")
	assertAmount(t, "totalPlacementPool", got.TotalPlacementPool, "125")
	assertAmount(t, "totalClimberFund", got.TotalClimberFund, "5")
	assertAmount(t, "totalPrizePool", got.TotalPrizePool, "130")
	if got.PlacesToPay != 2 {
		t.Fatalf("unexpected placesToPay: %d", got.PlacesToPay)
	}
	want := Payouts{Climber: 5, First: 50, Second: 38}
	if got.Payouts != want {
		t.Fatalf("unexpected payouts: got=%+v want=%+v", got.Payouts, want)
	}
}

func TestCompute_EmptyLadder(t *testing.T) {
	for _, now := range []time.Time{date(2025, time.October, 1), date(2025, time.December, 1), date(2026, time.May, 20)} {
		got := Compute(now, 0, 0)
		if !got.TotalPrizePool.IsZero() || !got.TotalPlacementPool.IsZero() || !got.TotalClimberFund.IsZero() {
			t.Fatalf("expected zero pools at %s, got %+v", now, got)
		}
		if got.Payouts != (Payouts{}) {
			t.Fatalf("expected zero payouts at %s, got %+v", now, got.Payouts)
		}
	}
}

func TestCompute_NegativeInputsClamp(t *testing.T) {
	got := Compute(date(2026, time.February, 1), -4, -9)
	if got.ActivePlayerCount != 0 || got.CompletedMatchCount != 0 || !got.TotalPrizePool.IsZero() {
		t.Fatalf("expected negative inputs to clamp to zero, got %+v", got)
	}
}

func TestCompute_Idempotent(t *testing.T) {
	now := date(2026, time.March, 3)
	a := Compute(now, 37, 81)
	b := Compute(now, 37, 81)
	if !a.TotalPrizePool.Equal(b.TotalPrizePool) || a.Payouts != b.Payouts || a.PlacesToPay != b.PlacesToPay {
		t.Fatalf("expected identical snapshots, got %+v and %+v", a, b)
	}
}

func TestCompute_MonotonicInMatches(t *testing.T) {
	for _, now := range []time.Time{date(2025, time.October, 1), date(2025, time.November, 2), date(2026, time.August, 9)} {
		prev := Compute(now, 18, 0)
		for matches := 1; matches <= 60; matches++ {
			next := Compute(now, 18, matches)
			if next.TotalPrizePool.LessThan(prev.TotalPrizePool) {
				t.Fatalf("total prize pool decreased at %s: matches=%d prev=%s next=%s", now, matches, prev.TotalPrizePool, next.TotalPrizePool)
			}
			prev = next
		}
	}
}

func TestCompute_PhaseThreeQuarterlyPeriod(t *testing.T) {
	got := Compute(date(2026, time.May, 20), 20, 10)

	if got.Phase != 3 || got.PeriodMonths != 3 {
		t.Fatalf("expected phase 3 quarterly, got phase=%d months=%d", got.Phase, got.PeriodMonths)
	}
	if !got.PeriodStart.Equal(time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected period start: %s", got.PeriodStart)
	}
	if !got.PeriodEnd.Equal(time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected period end: %s", got.PeriodEnd)
	}
	// 20*7 + 20*10*3 + 10*2.5 = 140 + 600 + 25
	assertAmount(t, "totalPlacementPool", got.TotalPlacementPool, "765")
	// 20*1 + 10*0.5
	assertAmount(t, "totalClimberFund", got.TotalClimberFund, "25")
	if got.PlacesToPay != 3 {
		t.Fatalf("unexpected placesToPay: %d", got.PlacesToPay)
	}
	want := Payouts{Climber: 25, First: 306, Second: 230, Third: 153, Fourth: 0}
	if got.Payouts != want {
		t.Fatalf("unexpected payouts: got=%+v want=%+v", got.Payouts, want)
	}
}

func TestPhaseAt_Boundaries(t *testing.T) {
	tests := []struct {
		now  time.Time
		want int
	}{
		{now: time.Date(2025, time.October, 31, 23, 59, 59, 0, time.UTC), want: 1},
		{now: time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC), want: 2},
		{now: time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC), want: 2},
		{now: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), want: 3},
		{now: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), want: 1},
		{now: time.Date(2031, time.June, 1, 0, 0, 0, 0, time.UTC), want: 3},
	}

	for _, tt := range tests {
		if got := PhaseAt(tt.now).Number; got != tt.want {
			t.Fatalf("PhaseAt(%s): got=%d want=%d", tt.now, got, tt.want)
		}
	}
}

func TestPeriod_QuarterBlocks(t *testing.T) {
	phase := PhaseAt(date(2026, time.January, 1))
	for month := time.January; month <= time.December; month++ {
		start, _ := phase.Period(date(2026, month, 15))
		wantMonth := time.Month((int(month)-1)/3*3 + 1)
		if start.Month() != wantMonth || start.Day() != 1 {
			t.Fatalf("month %s: unexpected period start %s", month, start)
		}
	}
}

func TestPlacesToPay(t *testing.T) {
	tests := map[int]int{0: 2, 1: 2, 13: 2, 14: 3, 20: 3, 25: 4, 27: 5, 40: 6}
	for players, want := range tests {
		if got := PlacesToPay(players); got != want {
			t.Fatalf("PlacesToPay(%d): got=%d want=%d", players, got, want)
		}
	}
}

func TestRoundHalfUp(t *testing.T) {
	tests := map[string]int64{"82.5": 83, "27.5": 28, "27.49": 27, "0.5": 1, "0": 0, "110": 110}
	for raw, want := range tests {
		if got := RoundHalfUp(decimal.RequireFromString(raw)); got != want {
			t.Fatalf("RoundHalfUp(%s): got=%d want=%d", raw, got, want)
		}
	}
}
