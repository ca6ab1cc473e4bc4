package memory

import (
	"strconv"
	"time"

	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/ladder"
)

type seedPlayer struct {
	first, last string
	fargo       int
}

var seedRoster = map[ladder.Name][]seedPlayer{
	ladder.Name499Under: {
		{"Mara", "Quinlan", 482}, {"Dev", "Okafor", 471}, {"Lena", "Marsh", 466},
		{"Tomas", "Reyes", 455}, {"Ivy", "Chen", 448}, {"Carl", "Whitfield", 430},
	},
	ladder.Name500To549: {
		{"Rosa", "Delgado", 541}, {"Ben", "Hartley", 533}, {"Sam", "Nakamura", 522},
		{"Pete", "Olsen", 517}, {"Gwen", "Abara", 505},
	},
	ladder.Name550Plus: {
		{"Nico", "Varga", 612}, {"Jules", "Ferris", 598}, {"Ada", "Boateng", 577},
		{"Owen", "Kline", 560},
	},
	ladder.NameTest: {
		{"Test", "One", 500}, {"Test", "Two", 500}, {"Test", "Three", 500},
	},
}

// SeedStandings returns a small roster for local runs with the memory driver.
func SeedStandings(now time.Time) []ladder.Standing {
	var out []ladder.Standing
	for _, l := range ladder.All {
		for i, p := range seedRoster[l.Name] {
			out = append(out, ladder.Standing{
				PlayerID:   string(l.Name) + "-p" + strconv.Itoa(i+1),
				LadderName: l.Name,
				Position:   i + 1,
				Active:     true,
				FirstName:  p.first,
				LastName:   p.last,
				FargoRate:  p.fargo,
				UpdatedAt:  now.UTC(),
			})
		}
	}
	return out
}
