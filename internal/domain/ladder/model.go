package ladder

import (
	"fmt"
	"strings"
	"time"
)

// Name identifies a skill-bracketed ladder.
type Name string

const (
	Name499Under Name = "499-under"
	Name500To549 Name = "500-549"
	Name550Plus  Name = "550-plus"
	NameTest     Name = "test-ladder"
)

// Ladder describes one bracket.
type Ladder struct {
	Name      Name
	Label     string
	MinRating int
	MaxRating int
}

// All lists the ladders in display order.
var All = []Ladder{
	{Name: Name499Under, Label: "499 & Under", MinRating: 0, MaxRating: 499},
	{Name: Name500To549, Label: "500-549", MinRating: 500, MaxRating: 549},
	{Name: Name550Plus, Label: "550+", MinRating: 550, MaxRating: 0},
	{Name: NameTest, Label: "Test Ladder", MinRating: 0, MaxRating: 0},
}

func ParseName(raw string) (Name, error) {
	name := Name(strings.ToLower(strings.TrimSpace(raw)))
	for _, l := range All {
		if l.Name == name {
			return name, nil
		}
	}
	return "", fmt.Errorf("unknown ladder %q", raw)
}

// Standing is one player's slot on one ladder. Position 1 is top.
type Standing struct {
	PlayerID   string
	LadderName Name
	Position   int
	Active     bool
	FirstName  string
	LastName   string
	FargoRate  int
	UpdatedAt  time.Time
}

func (s Standing) DisplayName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

func (s Standing) Validate() error {
	if strings.TrimSpace(s.PlayerID) == "" {
		return fmt.Errorf("player id is required")
	}
	if _, err := ParseName(string(s.LadderName)); err != nil {
		return err
	}
	if s.Position < 1 {
		return fmt.Errorf("position must be positive: %d", s.Position)
	}
	return nil
}

// PositionChange records one standing moved by a repair or a match result.
type PositionChange struct {
	PlayerID string
	From     int
	To       int
}
