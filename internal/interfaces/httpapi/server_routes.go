package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicLadderRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/ladders", handler.ListLadders)
	mux.HandleFunc("GET /v1/ladders/{ladder}/standings", handler.ListStandings)
	mux.HandleFunc("GET /v1/ladders/{ladder}/standings/{playerID}", handler.GetStanding)
	mux.HandleFunc("GET /v1/ladders/{ladder}/matches", handler.ListMatches)
	mux.HandleFunc("POST /v1/ladders/{ladder}/matches/validate", handler.ValidateMatch)
	mux.HandleFunc("POST /v1/ladders/{ladder}/matches/eligibility", handler.CheckEligibility)
	mux.HandleFunc("GET /v1/ladders/{ladder}/prize-pool", handler.GetPrizePool)
	mux.HandleFunc("GET /v1/prize-pools", handler.ListPrizePools)
}

func registerAuthorizedLadderRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/ladders/{ladder}/matches", RequireAuth(verifier, http.HandlerFunc(handler.RecordMatch)))
}

// Admin routes authenticate here; the handlers check the admin role.
func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/ladders/{ladder}/standings/repair", RequireAuth(verifier, http.HandlerFunc(handler.RepairStandings)))
	mux.Handle("DELETE /v1/ladders/{ladder}/standings/{playerID}", RequireAuth(verifier, http.HandlerFunc(handler.DeactivateStanding)))
	mux.Handle("POST /v1/admin/maintenance/repair", RequireAuth(verifier, http.HandlerFunc(handler.RunMaintenanceRepair)))
}
