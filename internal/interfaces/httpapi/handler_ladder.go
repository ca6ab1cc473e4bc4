package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) ListLadders(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLadders")
	defer span.End()

	ladders := h.ladderService.ListLadders()
	items := make([]ladderDTO, 0, len(ladders))
	for _, l := range ladders {
		items = append(items, ladderToDTO(l))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	ladderName := r.PathValue("ladder")
	standings, err := h.ladderService.ListStandings(ctx, ladderName)
	if err != nil {
		h.writeFailure(ctx, w, "list standings failed", err, "ladder", ladderName)
		return
	}

	items := make([]standingDTO, 0, len(standings))
	for _, s := range standings {
		items = append(items, standingToDTO(s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetStanding(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStanding")
	defer span.End()

	ladderName := r.PathValue("ladder")
	playerID := strings.TrimSpace(r.PathValue("playerID"))
	item, err := h.ladderService.GetStanding(ctx, ladderName, playerID)
	if err != nil {
		h.writeFailure(ctx, w, "get standing failed", err, "ladder", ladderName, "player_id", playerID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingToDTO(item))
}

func (h *Handler) RepairStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RepairStandings")
	defer span.End()

	ladderName := r.PathValue("ladder")
	principal, err := requireAdmin(ctx)
	if err != nil {
		h.writeFailure(ctx, w, "repair standings denied", err, "ladder", ladderName)
		return
	}

	moved, err := h.ladderService.RepairPositions(ctx, ladderName)
	if err != nil {
		h.writeFailure(ctx, w, "repair standings failed", err, "ladder", ladderName, "user_id", principal.UserID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"ladder": ladderName, "moved": moved})
}

func (h *Handler) DeactivateStanding(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeactivateStanding")
	defer span.End()

	ladderName := r.PathValue("ladder")
	playerID := strings.TrimSpace(r.PathValue("playerID"))
	principal, err := requireAdmin(ctx)
	if err != nil {
		h.writeFailure(ctx, w, "deactivate standing denied", err, "ladder", ladderName)
		return
	}

	if err := h.ladderService.DeactivatePlayer(ctx, ladderName, playerID); err != nil {
		h.writeFailure(ctx, w, "deactivate standing failed", err, "ladder", ladderName, "player_id", playerID, "user_id", principal.UserID)
		return
	}
	h.prizePoolService.Invalidate(ctx, ladderName)

	w.WriteHeader(http.StatusNoContent)
}
