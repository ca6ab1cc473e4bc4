package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/config"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:                   config.EnvDev,
		HTTPAddr:                 ":0",
		ReadTimeout:              time.Second,
		WriteTimeout:             time.Second,
		StorageDriver:            config.StorageMemory,
		CacheEnabled:             true,
		CacheTTL:                 time.Minute,
		CORSAllowedOrigins:       []string{"*"},
		AuthTimeout:              time.Second,
		AuthCircuitFailureCount:  3,
		AuthCircuitOpenTimeout:   time.Second,
		AuthCircuitHalfOpenMaxRq: 1,
		LadderSmackBackWindow:    7 * 24 * time.Hour,
		MaintenanceCron:          "0 4 * * *",
		MaintenanceWorkers:       2,
	}
}

func TestNew_MemoryServesStandings(t *testing.T) {
	a, err := New(context.Background(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer a.Close()

	if a.Scheduler != nil {
		t.Fatalf("expected no scheduler when maintenance is disabled")
	}

	rec := httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/ladders/499-under/standings", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
}

func TestNew_RejectsEmptyAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""
	if _, err := New(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}

func TestNew_RegistersMaintenanceJob(t *testing.T) {
	cfg := memoryConfig()
	cfg.MaintenanceEnabled = true
	a, err := New(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer a.Close()
	if a.Scheduler == nil {
		t.Fatalf("expected scheduler")
	}
	a.Scheduler.Start()
	if err := a.Scheduler.Stop(); err != nil {
		t.Fatalf("stop scheduler: %v", err)
	}
}

func TestNew_InvalidMaintenanceCron(t *testing.T) {
	cfg := memoryConfig()
	cfg.MaintenanceEnabled = true
	cfg.MaintenanceCron = "not a cron"
	if _, err := New(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for invalid cron")
	}
}
