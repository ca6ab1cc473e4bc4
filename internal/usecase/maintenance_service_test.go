package usecase

import (
	"context"
	"testing"

	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/ladder"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/infrastructure/repository/memory"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/platform/logging"
)

func TestMaintenanceService_RepairAll(t *testing.T) {
	t.Parallel()

	roster := testRoster(4)
	roster[2].Position = 7
	roster[3].Position = 7
	roster = append(roster, ladder.Standing{PlayerID: "x1", LadderName: ladder.Name550Plus, Position: 3, Active: true})

	ladders := NewLadderService(memory.NewStandingRepository(roster), logging.NewNop())
	service := NewMaintenanceService(ladders, nil, 3, logging.NewNop())

	result, err := service.RepairAll(context.Background())
	if err != nil {
		t.Fatalf("repair all: %v", err)
	}
	if result.LadderCount != len(ladder.All) || result.WorkerCount != 3 {
		t.Fatalf("unexpected result header: %+v", result)
	}
	if result.RepairedCount != 2 || result.FailedCount != 0 {
		t.Fatalf("unexpected counts: %+v", result)
	}

	byLadder := make(map[string]LadderRepairResult, len(result.Ladders))
	for _, row := range result.Ladders {
		byLadder[row.Ladder] = row
	}
	if row := byLadder[string(ladder.NameTest)]; row.Status != repairStatusRepaired || row.Moved != 2 {
		t.Fatalf("unexpected test ladder row: %+v", row)
	}
	if row := byLadder[string(ladder.Name550Plus)]; row.Status != repairStatusRepaired || row.Moved != 1 {
		t.Fatalf("unexpected 550-plus row: %+v", row)
	}
	if row := byLadder[string(ladder.Name499Under)]; row.Status != repairStatusUnchanged {
		t.Fatalf("unexpected 499-under row: %+v", row)
	}

	again, err := service.RepairAll(context.Background())
	if err != nil || again.RepairedCount != 0 {
		t.Fatalf("expected second pass to be a no-op, got %+v err=%v", again, err)
	}
}
