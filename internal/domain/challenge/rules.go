package challenge

import (
	"fmt"
	"strings"
	"time"
)

// MatchType names a ladder match category.
type MatchType string

const (
	TypeChallenge  MatchType = "challenge"
	TypeSmackDown  MatchType = "smackdown"
	TypeSmackBack  MatchType = "smackback"
	TypeDefense    MatchType = "defense"
	TypePosition   MatchType = "position"
	TypeExhibition MatchType = "exhibition"
)

// AllTypes lists the supported match types.
var AllTypes = map[MatchType]struct{}{
	TypeChallenge:  {},
	TypeSmackDown:  {},
	TypeSmackBack:  {},
	TypeDefense:    {},
	TypePosition:   {},
	TypeExhibition: {},
}

const (
	// SmackDownReach is how many spots a higher ranked player may reach down.
	SmackDownReach = 5
	// SmackBackWindow is the lookback for a SmackDown win as defender.
	SmackBackWindow = 7 * 24 * time.Hour
)

const (
	ReasonUnknownType       = "unknown match type"
	ReasonSelfChallenge     = "a player cannot challenge themselves"
	ReasonInvalidPosition   = "positions must be positive integers"
	ReasonChallengeUpward   = "for challenge matches the challenger must have a higher position number than the defender"
	ReasonSmackDownDownward = "for smackdown matches the challenger must have a lower position number than the defender"
	ReasonSmackDownReach    = "smackdown defender must be at most 5 spots below the challenger"
	ReasonSmackBackFirst    = "smackback matches can only target the 1st place player"
	ReasonSmackBackEligible = "smackback requires a smackdown win as defender within the last 7 days"
	ReasonDefenseDownward   = "for defense matches the challenger must have a lower position number than the defender"
	ReasonPositionSame      = "position matches require both players to hold the same position"
)

// ParseType normalises a raw match type. Unknown values are returned as-is so
// ValidateMatch can reject them with a reason.
func ParseType(raw string) MatchType {
	return MatchType(strings.ToLower(strings.TrimSpace(raw)))
}

func (t MatchType) Known() bool {
	_, ok := AllTypes[t]
	return ok
}

// Ranked reports whether a completed match of this type can move standings.
func (t MatchType) Ranked() bool {
	switch t {
	case TypeChallenge, TypeSmackDown, TypeSmackBack, TypeDefense:
		return true
	default:
		return false
	}
}

// Context carries facts the validator cannot derive from positions alone.
type Context struct {
	// SmackBackEligible is true when the challenger won a SmackDown as
	// defender within SmackBackWindow.
	SmackBackEligible bool
}

// Result is the outcome of a match validation.
type Result struct {
	Valid  bool
	Reason string
}

func accept() Result {
	return Result{Valid: true}
}

func reject(reason string) Result {
	return Result{Valid: false, Reason: reason}
}

// ValidateMatch decides whether a match between two positions on the same
// ladder is legal for the given type.
func ValidateMatch(challengerPosition, defenderPosition int, matchType MatchType, ctx Context) Result {
	if !matchType.Known() {
		return reject(ReasonUnknownType)
	}
	if matchType == TypeExhibition {
		return accept()
	}
	if challengerPosition < 1 || defenderPosition < 1 {
		return reject(ReasonInvalidPosition)
	}
	if matchType != TypePosition && challengerPosition == defenderPosition {
		return reject(ReasonSelfChallenge)
	}

	switch matchType {
	case TypeChallenge:
		if challengerPosition <= defenderPosition {
			return reject(ReasonChallengeUpward)
		}
	case TypeSmackDown:
		if challengerPosition >= defenderPosition {
			return reject(ReasonSmackDownDownward)
		}
		if defenderPosition-challengerPosition > SmackDownReach {
			return reject(ReasonSmackDownReach)
		}
	case TypeSmackBack:
		if defenderPosition != 1 {
			return reject(ReasonSmackBackFirst)
		}
		if !ctx.SmackBackEligible {
			return reject(ReasonSmackBackEligible)
		}
	case TypeDefense:
		if challengerPosition >= defenderPosition {
			return reject(ReasonDefenseDownward)
		}
	case TypePosition:
		if challengerPosition != defenderPosition {
			return reject(ReasonPositionSame)
		}
	}

	return accept()
}

// Policy holds call-site limits layered on top of ValidateMatch.
type Policy struct {
	// MaxChallengeSpots caps how far up a challenge may reach. Zero disables the cap.
	MaxChallengeSpots int
}

// Apply runs ValidateMatch and then the policy limits.
func (p Policy) Apply(challengerPosition, defenderPosition int, matchType MatchType, ctx Context) Result {
	res := ValidateMatch(challengerPosition, defenderPosition, matchType, ctx)
	if !res.Valid {
		return res
	}
	if matchType == TypeChallenge && p.MaxChallengeSpots > 0 && challengerPosition-defenderPosition > p.MaxChallengeSpots {
		return reject(fmt.Sprintf("challenge defender must be at most %d spots above the challenger", p.MaxChallengeSpots))
	}
	return res
}
