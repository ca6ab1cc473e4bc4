package usecase

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/ladder"
)

type sequenceIDGenerator struct {
	next atomic.Int64
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	return fmt.Sprintf("match-%d", g.next.Add(1)), nil
}

var testNow = time.Date(2026, time.February, 10, 18, 0, 0, 0, time.UTC)

// testRoster builds active standings p1..pn on the test ladder.
func testRoster(n int) []ladder.Standing {
	out := make([]ladder.Standing, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, ladder.Standing{
			PlayerID:   fmt.Sprintf("p%d", i),
			LadderName: ladder.NameTest,
			Position:   i,
			Active:     true,
			FirstName:  "Player",
			LastName:   fmt.Sprintf("%d", i),
			UpdatedAt:  testNow.Add(-time.Hour),
		})
	}
	return out
}

func positionsOf(items []ladder.Standing) map[string]int {
	out := make(map[string]int, len(items))
	for _, item := range items {
		out[item.PlayerID] = item.Position
	}
	return out
}
