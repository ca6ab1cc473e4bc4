package ladder

import (
	"cmp"
	"slices"
)

// SortStandings orders standings by position, then by oldest update, then by
// player id so duplicate positions resolve deterministically.
func SortStandings(items []Standing) {
	slices.SortFunc(items, func(a, b Standing) int {
		if c := cmp.Compare(a.Position, b.Position); c != 0 {
			return c
		}
		if c := a.UpdatedAt.Compare(b.UpdatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.PlayerID, b.PlayerID)
	})
}

func activeSorted(items []Standing) []Standing {
	out := make([]Standing, 0, len(items))
	for _, item := range items {
		if item.Active {
			out = append(out, item)
		}
	}
	SortStandings(out)
	return out
}

func renumber(ordered []Standing) []PositionChange {
	var changes []PositionChange
	for i, item := range ordered {
		want := i + 1
		if item.Position != want {
			changes = append(changes, PositionChange{PlayerID: item.PlayerID, From: item.Position, To: want})
		}
	}
	return changes
}

// RepairPlan renumbers active standings into a dense 1..n sequence and returns
// only the standings whose position changes.
func RepairPlan(items []Standing) []PositionChange {
	return renumber(activeSorted(items))
}

// CollisionPlan settles a same-position match: the winner keeps the shared
// spot, the loser drops directly below, and the ladder is renumbered.
func CollisionPlan(items []Standing, winnerID, loserID string) []PositionChange {
	ordered := activeSorted(items)
	winnerIdx, loserIdx := -1, -1
	for i, item := range ordered {
		switch item.PlayerID {
		case winnerID:
			winnerIdx = i
		case loserID:
			loserIdx = i
		}
	}
	if winnerIdx >= 0 && loserIdx >= 0 && loserIdx < winnerIdx {
		winner := ordered[winnerIdx]
		copy(ordered[loserIdx+1:winnerIdx+1], ordered[loserIdx:winnerIdx])
		ordered[loserIdx] = winner
	}
	return renumber(ordered)
}

// ResultPlan moves a lower ranked winner into the loser's position and shifts
// everyone in between down one spot. A winner already ranked above the loser
// keeps the current order.
func ResultPlan(items []Standing, winnerID, loserID string) []PositionChange {
	var winner, loser *Standing
	for i := range items {
		switch items[i].PlayerID {
		case winnerID:
			winner = &items[i]
		case loserID:
			loser = &items[i]
		}
	}
	if winner == nil || loser == nil || winner.Position <= loser.Position {
		return nil
	}

	from, to := loser.Position, winner.Position
	changes := []PositionChange{{PlayerID: winner.PlayerID, From: winner.Position, To: loser.Position}}
	for _, item := range items {
		if !item.Active || item.PlayerID == winner.PlayerID {
			continue
		}
		if item.Position >= from && item.Position < to {
			changes = append(changes, PositionChange{PlayerID: item.PlayerID, From: item.Position, To: item.Position + 1})
		}
	}
	return changes
}
