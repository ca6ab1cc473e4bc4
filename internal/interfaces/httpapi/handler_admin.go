package httpapi

import "net/http"

func (h *Handler) RunMaintenanceRepair(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunMaintenanceRepair")
	defer span.End()

	principal, err := requireAdmin(ctx)
	if err != nil {
		h.writeFailure(ctx, w, "maintenance repair denied", err)
		return
	}

	result, err := h.maintenanceService.RepairAll(ctx)
	if err != nil {
		h.writeFailure(ctx, w, "maintenance repair failed", err, "user_id", principal.UserID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
