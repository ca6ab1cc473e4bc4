package httpapi

import (
	"net/http"

	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/ladder"
)

func (h *Handler) GetPrizePool(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPrizePool")
	defer span.End()

	ladderName := r.PathValue("ladder")
	at, err := parseAt(r.URL.Query().Get("at"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := h.prizePoolService.Snapshot(ctx, ladderName, at)
	if err != nil {
		h.writeFailure(ctx, w, "prize pool snapshot failed", err, "ladder", ladderName)
		return
	}

	name, _ := ladder.ParseName(ladderName)
	writeSuccess(ctx, w, http.StatusOK, prizePoolToDTO(name, snapshot))
}

func (h *Handler) ListPrizePools(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPrizePools")
	defer span.End()

	at, err := parseAt(r.URL.Query().Get("at"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	pools, err := h.prizePoolService.SnapshotAll(ctx, at)
	if err != nil {
		h.writeFailure(ctx, w, "prize pool snapshots failed", err)
		return
	}

	items := make([]prizePoolDTO, 0, len(pools))
	for _, p := range pools {
		items = append(items, prizePoolToDTO(p.Ladder.Name, p.Snapshot))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
