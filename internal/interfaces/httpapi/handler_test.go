package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/challenge"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/prizepool"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/user"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/infrastructure/repository/memory"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/platform/cache"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/platform/id"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/platform/logging"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/usecase"
)

type stubVerifier map[string]user.Principal

func (v stubVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	p, ok := v[token]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return p, nil
}

var testVerifier = stubVerifier{
	"token-p1":    {UserID: "test-ladder-p1"},
	"token-p3":    {UserID: "test-ladder-p3"},
	"token-other": {UserID: "someone-else"},
	"token-admin": {UserID: "admin-1", Role: "admin"},
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logging.NewNop()
	standings := memory.NewStandingRepository(memory.SeedStandings(time.Now().UTC()))
	matches := memory.NewMatchRepository(nil)
	ladders := usecase.NewLadderService(standings, logger)
	matchService := usecase.NewMatchService(ladders, standings, matches, id.NewUUIDGenerator(), usecase.MatchServiceConfig{}, logger)
	prizes := usecase.NewPrizePoolService(ladders, matchService, cache.NewStore[prizepool.Snapshot](time.Minute), 2, logger)
	maintenance := usecase.NewMaintenanceService(ladders, prizes, 2, logger)

	handler := NewHandler(ladders, matchService, prizes, maintenance, logger)
	return NewRouter(handler, testVerifier, logger, RouterConfig{SwaggerEnabled: true, CORSAllowedOrigins: []string{"*"}})
}

func doRequest(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type envelope[T any] struct {
	APIVersion string           `json:"apiVersion"`
	Data       T                `json:"data"`
	Error      *googleErrorBody `json:"error"`
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out envelope[T]
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out.Data
}

func errorReason(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var out envelope[any]
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	if out.Error == nil || len(out.Error.Errors) == 0 {
		t.Fatalf("expected error body, got %s", rec.Body.String())
	}
	return out.Error.Errors[0].Reason
}

func TestRouter_PublicReads(t *testing.T) {
	router := newTestRouter(t)

	if rec := doRequest(t, router, http.MethodGet, "/healthz", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("healthz: unexpected status %d", rec.Code)
	}

	rec := doRequest(t, router, http.MethodGet, "/v1/ladders", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list ladders: unexpected status %d", rec.Code)
	}
	if ladders := decodeData[[]ladderDTO](t, rec); len(ladders) != 4 || ladders[0].Name != "499-under" {
		t.Fatalf("unexpected ladders: %+v", ladders)
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/ladders/test-ladder/standings", "", "")
	standings := decodeData[[]standingDTO](t, rec)
	if len(standings) != 3 {
		t.Fatalf("expected 3 standings, got %d", len(standings))
	}
	for i, s := range standings {
		if s.Position != i+1 {
			t.Fatalf("standings not ordered: %+v", standings)
		}
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/ladders/test-ladder/standings/test-ladder-p2", "", "")
	if got := decodeData[standingDTO](t, rec); got.Position != 2 || got.DisplayName != "Test Two" {
		t.Fatalf("unexpected standing: %+v", got)
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/ladders/9-ball/standings", "", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown ladder: expected 400, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/ladders/test-ladder/matches?limit=-1", "", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("negative limit: expected 400, got %d", rec.Code)
	}
}

func TestRouter_ValidateMatch(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/ladders/test-ladder/matches/validate", "",
		`{"challenger_position":6,"defender_position":2,"match_type":"challenge"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	if got := decodeData[validationDTO](t, rec); !got.Valid {
		t.Fatalf("expected valid challenge, got %+v", got)
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/ladders/test-ladder/matches/validate", "",
		`{"challenger_position":1,"defender_position":9,"match_type":"smackdown"}`)
	if got := decodeData[validationDTO](t, rec); got.Valid || got.Reason != challenge.ReasonSmackDownReach {
		t.Fatalf("expected smackdown reach rejection, got %+v", got)
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/ladders/test-ladder/matches/validate", "",
		`{"challenger_position":1,"defender_position":2,"match_type":"challenge","extra":true}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown field: expected 400, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/ladders/test-ladder/matches/validate", "",
		`{"challenger_position":1,"defender_position":2}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing match type: expected 400, got %d", rec.Code)
	}
}

func TestRouter_CheckEligibility(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/ladders/test-ladder/matches/eligibility", "",
		`{"challenger_id":"test-ladder-p3","defender_id":"test-ladder-p1","match_type":"challenge"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	got := decodeData[eligibilityDTO](t, rec)
	if !got.Valid || got.ChallengerPosition != 3 || got.DefenderPosition != 1 {
		t.Fatalf("unexpected eligibility: %+v", got)
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/ladders/test-ladder/matches/eligibility", "",
		`{"challenger_id":"test-ladder-p3","defender_id":"test-ladder-p1","match_type":"smackback"}`)
	if got := decodeData[eligibilityDTO](t, rec); got.Valid || got.SmackBackEligible {
		t.Fatalf("expected smackback without history to be rejected, got %+v", got)
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/ladders/test-ladder/matches/eligibility", "",
		`{"challenger_id":"test-ladder-p3","defender_id":"ghost","match_type":"challenge"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown player: expected 404, got %d", rec.Code)
	}
}

func TestRouter_RecordMatchRequiresAuth(t *testing.T) {
	router := newTestRouter(t)
	body := `{"challenger_id":"test-ladder-p3","defender_id":"test-ladder-p1","match_type":"challenge","winner_id":"test-ladder-p3","score":"7-4"}`

	if rec := doRequest(t, router, http.MethodPost, "/v1/ladders/test-ladder/matches", "", body); rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: expected 401, got %d", rec.Code)
	}
	if rec := doRequest(t, router, http.MethodPost, "/v1/ladders/test-ladder/matches", "bogus", body); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: expected 401, got %d", rec.Code)
	}
	rec := doRequest(t, router, http.MethodPost, "/v1/ladders/test-ladder/matches", "token-other", body)
	if rec.Code != http.StatusForbidden || errorReason(t, rec) != "forbidden" {
		t.Fatalf("non participant: expected 403, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_RecordMatchMovesStandingsAndRefreshesPrizePool(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/ladders/test-ladder/prize-pool", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("prize pool: unexpected status %d", rec.Code)
	}
	before := decodeData[prizePoolDTO](t, rec)
	if before.ActivePlayerCount != 3 || before.CompletedMatchCount != 0 {
		t.Fatalf("unexpected initial prize pool: %+v", before)
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/ladders/test-ladder/matches", "token-p3",
		`{"challenger_id":"test-ladder-p3","defender_id":"test-ladder-p1","match_type":"challenge","winner_id":"test-ladder-p3","score":"7-4"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("record match: unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	recorded := decodeData[recordMatchDTO](t, rec)
	if recorded.Match.LoserID != "test-ladder-p1" || len(recorded.Changes) != 3 {
		t.Fatalf("unexpected record output: %+v", recorded)
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/ladders/test-ladder/standings", "", "")
	standings := decodeData[[]standingDTO](t, rec)
	want := []string{"test-ladder-p3", "test-ladder-p1", "test-ladder-p2"}
	for i, s := range standings {
		if s.PlayerID != want[i] {
			t.Fatalf("unexpected order after result: %+v", standings)
		}
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/ladders/test-ladder/matches", "", "")
	if matches := decodeData[[]matchDTO](t, rec); len(matches) != 1 || matches[0].Score != "7-4" {
		t.Fatalf("unexpected matches: %+v", matches)
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/ladders/test-ladder/prize-pool", "", "")
	if after := decodeData[prizePoolDTO](t, rec); after.CompletedMatchCount != 1 {
		t.Fatalf("expected cached snapshot to be invalidated, got %+v", after)
	}
}

func TestRouter_RecordMatchRejectedByRules(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/ladders/test-ladder/matches", "token-p1",
		`{"challenger_id":"test-ladder-p1","defender_id":"test-ladder-p3","match_type":"challenge","winner_id":"test-ladder-p1","score":"7-1"}`)
	if rec.Code != http.StatusUnprocessableEntity || errorReason(t, rec) != "matchRejected" {
		t.Fatalf("expected 422 matchRejected, got %d %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/ladders/test-ladder/matches", "", "")
	if matches := decodeData[[]matchDTO](t, rec); len(matches) != 0 {
		t.Fatalf("rejected match must not be stored, got %+v", matches)
	}
}

func TestRouter_AdminRoutes(t *testing.T) {
	router := newTestRouter(t)

	if rec := doRequest(t, router, http.MethodDelete, "/v1/ladders/test-ladder/standings/test-ladder-p1", "token-p3", ""); rec.Code != http.StatusForbidden {
		t.Fatalf("non admin deactivate: expected 403, got %d", rec.Code)
	}

	rec := doRequest(t, router, http.MethodDelete, "/v1/ladders/test-ladder/standings/test-ladder-p1", "token-admin", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("admin deactivate: expected 204, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/ladders/test-ladder/standings", "", "")
	standings := decodeData[[]standingDTO](t, rec)
	if len(standings) != 2 || standings[0].PlayerID != "test-ladder-p2" || standings[0].Position != 1 {
		t.Fatalf("expected gap to close after deactivation, got %+v", standings)
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/ladders/test-ladder/standings/repair", "token-admin", "")
	if got := decodeData[map[string]any](t, rec); rec.Code != http.StatusOK || got["moved"] != float64(0) {
		t.Fatalf("repair: unexpected response %d %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/admin/maintenance/repair", "token-admin", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("maintenance: unexpected status %d", rec.Code)
	}
	if result := decodeData[usecase.RepairResult](t, rec); result.LadderCount != 4 || result.FailedCount != 0 {
		t.Fatalf("unexpected maintenance result: %+v", result)
	}
}

func TestRouter_ListPrizePools(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/prize-pools?at=2025-10-01T12:00:00Z", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	pools := decodeData[[]prizePoolDTO](t, rec)
	if len(pools) != 4 || pools[0].Ladder != "499-under" || pools[0].Phase != 1 || pools[0].Binding {
		t.Fatalf("unexpected prize pools: %+v", pools)
	}
	// 6 players in phase 1: 6*7 placement seed and 6*1 climber seed.
	if pools[0].TotalPrizePool != "48.00" || pools[0].PlacesToPay != 2 {
		t.Fatalf("unexpected 499-under pool: %+v", pools[0])
	}

	if rec := doRequest(t, router, http.MethodGet, "/v1/prize-pools?at=yesterday", "", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad at: expected 400, got %d", rec.Code)
	}
}

func TestRouter_Docs(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/openapi.yaml", "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Ladder League API") {
		t.Fatalf("unexpected openapi response: %d", rec.Code)
	}
}

func TestRecoverPanic_WritesInternalError(t *testing.T) {
	handler := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/ladders", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if errorReason(t, rec) != "internalError" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
