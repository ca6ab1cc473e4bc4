package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/ladder"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/usecase"
)

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	ladderName := r.PathValue("ladder")
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matches, err := h.matchService.ListRecent(ctx, ladderName, limit)
	if err != nil {
		h.writeFailure(ctx, w, "list matches failed", err, "ladder", ladderName)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

// ValidateMatch checks raw positions only; storage is not consulted.
func (h *Handler) ValidateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ValidateMatch")
	defer span.End()

	ladderName := r.PathValue("ladder")
	if _, err := ladder.ParseName(ladderName); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	var req validateMatchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	res := h.matchService.ValidatePositions(req.ChallengerPosition, req.DefenderPosition, req.MatchType, req.SmackBackEligible)
	writeSuccess(ctx, w, http.StatusOK, validationDTO{Valid: res.Valid, Reason: res.Reason})
}

func (h *Handler) CheckEligibility(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CheckEligibility")
	defer span.End()

	ladderName := r.PathValue("ladder")
	var req eligibilityRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	var at time.Time
	if req.At != nil {
		at = *req.At
	}
	out, err := h.matchService.CheckEligibility(ctx, usecase.EligibilityInput{
		Ladder:       ladderName,
		ChallengerID: req.ChallengerID,
		DefenderID:   req.DefenderID,
		MatchType:    req.MatchType,
		At:           at,
	})
	if err != nil {
		h.writeFailure(ctx, w, "check eligibility failed", err, "ladder", ladderName)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eligibilityToDTO(out))
}

func (h *Handler) RecordMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordMatch")
	defer span.End()

	ladderName := r.PathValue("ladder")
	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req recordMatchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	var completedAt time.Time
	if req.CompletedAt != nil {
		completedAt = *req.CompletedAt
	}
	out, err := h.matchService.RecordResult(ctx, usecase.RecordResultInput{
		Ladder:       ladderName,
		ChallengerID: req.ChallengerID,
		DefenderID:   req.DefenderID,
		MatchType:    req.MatchType,
		WinnerID:     req.WinnerID,
		Score:        req.Score,
		CompletedAt:  completedAt,
		ReportedBy:   principal,
	})
	if err != nil {
		h.writeFailure(ctx, w, "record match failed", err, "ladder", ladderName, "user_id", principal.UserID)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, recordMatchDTO{
		Match:   matchToDTO(out.Match),
		Changes: changesToDTO(out.Changes),
	})
}
