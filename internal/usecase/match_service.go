package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/challenge"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/ladder"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/match"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/user"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/platform/id"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/platform/logging"
)

const (
	defaultRecentMatchLimit = 20
	maxRecentMatchLimit     = 100
)

type MatchServiceConfig struct {
	Policy          challenge.Policy
	SmackBackWindow time.Duration
}

type MatchService struct {
	ladders   *LadderService
	standings ladder.Repository
	matches   match.Repository
	ids       id.Generator
	cfg       MatchServiceConfig
	now       func() time.Time
	logger    *logging.Logger

	// invalidator is set by NewPrizePoolService so stored results drop cached
	// snapshots even when the standings update fails afterwards.
	invalidator snapshotInvalidator
}

type snapshotInvalidator interface {
	Invalidate(ctx context.Context, ladderName string)
}

func NewMatchService(
	ladders *LadderService,
	standings ladder.Repository,
	matches match.Repository,
	ids id.Generator,
	cfg MatchServiceConfig,
	logger *logging.Logger,
) *MatchService {
	if cfg.SmackBackWindow <= 0 {
		cfg.SmackBackWindow = challenge.SmackBackWindow
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchService{
		ladders:   ladders,
		standings: standings,
		matches:   matches,
		ids:       ids,
		cfg:       cfg,
		now:       time.Now,
		logger:    logger,
	}
}

type EligibilityInput struct {
	Ladder       string
	ChallengerID string
	DefenderID   string
	MatchType    string
	// At defaults to the current time.
	At time.Time
}

type Eligibility struct {
	challenge.Result
	MatchType          challenge.MatchType
	ChallengerPosition int
	DefenderPosition   int
	SmackBackEligible  bool
}

// CheckEligibility resolves both players' current positions and recent
// history, then applies the match rules. A rejected match is not an error.
func (s *MatchService) CheckEligibility(ctx context.Context, input EligibilityInput) (Eligibility, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.CheckEligibility", ladderAttr(input.Ladder))
	defer span.End()

	name, err := parseLadderName(input.Ladder)
	if err != nil {
		return Eligibility{}, err
	}
	challengerID, defenderID, err := normalizePair(input.ChallengerID, input.DefenderID)
	if err != nil {
		return Eligibility{}, err
	}
	at := input.At
	if at.IsZero() {
		at = s.now()
	}

	challenger, err := s.activeStanding(ctx, name, challengerID)
	if err != nil {
		return Eligibility{}, err
	}
	defender, err := s.activeStanding(ctx, name, defenderID)
	if err != nil {
		return Eligibility{}, err
	}

	return s.evaluate(ctx, name, challenge.ParseType(input.MatchType), challenger, defender, at)
}

// ValidatePositions applies the match rules and the configured policy to
// raw positions without touching storage.
func (s *MatchService) ValidatePositions(challengerPosition, defenderPosition int, matchType string, smackBackEligible bool) challenge.Result {
	return s.cfg.Policy.Apply(challengerPosition, defenderPosition, challenge.ParseType(matchType), challenge.Context{
		SmackBackEligible: smackBackEligible,
	})
}

type RecordResultInput struct {
	Ladder       string
	ChallengerID string
	DefenderID   string
	MatchType    string
	WinnerID     string
	Score        string
	CompletedAt  time.Time
	ReportedBy   user.Principal
}

type RecordResultOutput struct {
	Match   match.Match
	Changes []ladder.PositionChange
}

// RecordResult stores a completed match and moves standings. Eligibility is
// re-checked against the positions held when the ladder lock is taken, so a
// rejected result leaves no trace.
func (s *MatchService) RecordResult(ctx context.Context, input RecordResultInput) (RecordResultOutput, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.RecordResult", ladderAttr(input.Ladder))
	defer span.End()

	name, err := parseLadderName(input.Ladder)
	if err != nil {
		return RecordResultOutput{}, err
	}
	challengerID, defenderID, err := normalizePair(input.ChallengerID, input.DefenderID)
	if err != nil {
		return RecordResultOutput{}, err
	}
	matchType := challenge.ParseType(input.MatchType)
	if !matchType.Known() {
		return RecordResultOutput{}, fmt.Errorf("%w: %s %q", ErrInvalidInput, challenge.ReasonUnknownType, input.MatchType)
	}
	winnerID := strings.TrimSpace(input.WinnerID)
	if winnerID != challengerID && winnerID != defenderID {
		return RecordResultOutput{}, fmt.Errorf("%w: winner must be the challenger or the defender", ErrInvalidInput)
	}
	score := strings.TrimSpace(input.Score)
	if score == "" {
		return RecordResultOutput{}, fmt.Errorf("%w: score is required", ErrInvalidInput)
	}

	reporter := input.ReportedBy
	if !reporter.IsAdmin() && reporter.UserID != challengerID && reporter.UserID != defenderID {
		return RecordResultOutput{}, fmt.Errorf("%w: only a participant or an admin can report a result", ErrForbidden)
	}

	now := s.now().UTC()
	completedAt := input.CompletedAt.UTC()
	if input.CompletedAt.IsZero() {
		completedAt = now
	}
	if completedAt.After(now.Add(5 * time.Minute)) {
		return RecordResultOutput{}, fmt.Errorf("%w: completed at cannot be in the future", ErrInvalidInput)
	}

	matchID, err := s.ids.NewID()
	if err != nil {
		return RecordResultOutput{}, fmt.Errorf("generate match id: %w", err)
	}

	var out RecordResultOutput
	_, err = s.ladders.Rearrange(ctx, name, func(ctx context.Context, active []ladder.Standing) ([]ladder.PositionChange, error) {
		challenger, ok := findStanding(active, challengerID)
		if !ok {
			return nil, fmt.Errorf("%w: player=%s ladder=%s", ErrNotFound, challengerID, name)
		}
		defender, ok := findStanding(active, defenderID)
		if !ok {
			return nil, fmt.Errorf("%w: player=%s ladder=%s", ErrNotFound, defenderID, name)
		}

		eligibility, err := s.evaluate(ctx, name, matchType, challenger, defender, completedAt)
		if err != nil {
			return nil, err
		}
		if !eligibility.Valid {
			return nil, fmt.Errorf("%w: %s", ErrMatchRejected, eligibility.Reason)
		}

		m := match.Match{
			ID:                 matchID,
			LadderName:         name,
			Type:               matchType,
			ChallengerID:       challengerID,
			DefenderID:         defenderID,
			ChallengerPosition: challenger.Position,
			DefenderPosition:   defender.Position,
			WinnerID:           winnerID,
			Score:              score,
			CompletedAt:        completedAt,
			CreatedAt:          now,
		}
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if err := s.matches.Create(ctx, m); err != nil {
			return nil, fmt.Errorf("create match: %w", err)
		}
		if s.invalidator != nil {
			s.invalidator.Invalidate(ctx, string(name))
		}

		out.Match = m
		out.Changes = movementPlan(active, m)
		return out.Changes, nil
	})
	if err != nil {
		return RecordResultOutput{}, err
	}

	s.logger.InfoContext(ctx, "match recorded",
		"ladder", name,
		"match_id", out.Match.ID,
		"match_type", matchType,
		"winner_id", winnerID,
		"moved", len(out.Changes),
	)
	return out, nil
}

// CompletedMatchCount counts matches completed in [from, to).
func (s *MatchService) CompletedMatchCount(ctx context.Context, ladderName string, from, to time.Time) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.CompletedMatchCount")
	defer span.End()

	name, err := parseLadderName(ladderName)
	if err != nil {
		return 0, err
	}
	if !from.Before(to) {
		return 0, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	count, err := s.matches.CountCompleted(ctx, name, from.UTC(), to.UTC())
	if err != nil {
		return 0, fmt.Errorf("count completed matches: %w", err)
	}
	return count, nil
}

func (s *MatchService) ListRecent(ctx context.Context, ladderName string, limit int) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListRecent")
	defer span.End()

	name, err := parseLadderName(ladderName)
	if err != nil {
		return nil, err
	}
	switch {
	case limit <= 0:
		limit = defaultRecentMatchLimit
	case limit > maxRecentMatchLimit:
		limit = maxRecentMatchLimit
	}

	items, err := s.matches.ListRecent(ctx, name, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent matches: %w", err)
	}
	return items, nil
}

func (s *MatchService) evaluate(
	ctx context.Context,
	name ladder.Name,
	matchType challenge.MatchType,
	challenger, defender ladder.Standing,
	at time.Time,
) (Eligibility, error) {
	out := Eligibility{
		MatchType:          matchType,
		ChallengerPosition: challenger.Position,
		DefenderPosition:   defender.Position,
	}

	if matchType == challenge.TypeSmackBack {
		since := at.Add(-s.cfg.SmackBackWindow)
		eligible, err := s.matches.HasSmackDownWinAsDefender(ctx, name, challenger.PlayerID, since, at)
		if err != nil {
			return Eligibility{}, fmt.Errorf("check smackdown history: %w", err)
		}
		out.SmackBackEligible = eligible
	}

	out.Result = s.cfg.Policy.Apply(challenger.Position, defender.Position, matchType, challenge.Context{
		SmackBackEligible: out.SmackBackEligible,
	})
	return out, nil
}

func (s *MatchService) activeStanding(ctx context.Context, name ladder.Name, playerID string) (ladder.Standing, error) {
	item, exists, err := s.standings.GetByPlayer(ctx, name, playerID)
	if err != nil {
		return ladder.Standing{}, fmt.Errorf("get standing: %w", err)
	}
	if !exists || !item.Active {
		return ladder.Standing{}, fmt.Errorf("%w: player=%s ladder=%s", ErrNotFound, playerID, name)
	}
	return item, nil
}

// movementPlan maps a stored result to standings changes. Exhibition matches
// never move anyone.
func movementPlan(active []ladder.Standing, m match.Match) []ladder.PositionChange {
	switch {
	case m.Type.Ranked():
		return ladder.ResultPlan(active, m.WinnerID, m.LoserID())
	case m.Type == challenge.TypePosition:
		return ladder.CollisionPlan(active, m.WinnerID, m.LoserID())
	default:
		return nil
	}
}

func normalizePair(challengerID, defenderID string) (string, string, error) {
	challengerID = strings.TrimSpace(challengerID)
	defenderID = strings.TrimSpace(defenderID)
	if challengerID == "" || defenderID == "" {
		return "", "", fmt.Errorf("%w: challenger and defender ids are required", ErrInvalidInput)
	}
	if challengerID == defenderID {
		return "", "", fmt.Errorf("%w: a player cannot play against themselves", ErrInvalidInput)
	}
	return challengerID, defenderID, nil
}

func findStanding(items []ladder.Standing, playerID string) (ladder.Standing, bool) {
	for _, item := range items {
		if item.PlayerID == playerID {
			return item, true
		}
	}
	return ladder.Standing{}, false
}
