package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/platform/logging"
)

const (
	repairStatusRepaired  = "repaired"
	repairStatusUnchanged = "unchanged"
	repairStatusFailed    = "failed"
)

type RepairResult struct {
	LadderCount   int                  `json:"ladder_count"`
	WorkerCount   int                  `json:"worker_count"`
	RepairedCount int                  `json:"repaired_count"`
	FailedCount   int                  `json:"failed_count"`
	Ladders       []LadderRepairResult `json:"ladders"`
}

type LadderRepairResult struct {
	Ladder     string `json:"ladder"`
	Status     string `json:"status"`
	Moved      int    `json:"moved"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

type MaintenanceService struct {
	ladders *LadderService
	prizes  *PrizePoolService
	workers int
	logger  *logging.Logger
}

func NewMaintenanceService(ladders *LadderService, prizes *PrizePoolService, workers int, logger *logging.Logger) *MaintenanceService {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &MaintenanceService{
		ladders: ladders,
		prizes:  prizes,
		workers: workers,
		logger:  logger,
	}
}

// RepairAll repairs every ladder on a bounded worker pool. A failing ladder
// is reported in the result and does not stop the others.
func (s *MaintenanceService) RepairAll(ctx context.Context) (RepairResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MaintenanceService.RepairAll")
	defer span.End()

	ladders := s.ladders.ListLadders()
	workerCount := min(s.workers, len(ladders))
	result := RepairResult{
		LadderCount: len(ladders),
		WorkerCount: workerCount,
		Ladders:     make([]LadderRepairResult, 0, len(ladders)),
	}
	if len(ladders) == 0 {
		return result, nil
	}

	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return RepairResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	results := make(chan LadderRepairResult, len(ladders))
	var repaired, failed atomic.Int32
	var wg sync.WaitGroup
	for _, l := range ladders {
		wg.Add(1)
		if err := workerPool.Submit(func() {
			defer wg.Done()

			start := time.Now()
			row := LadderRepairResult{Ladder: string(l.Name), Status: repairStatusUnchanged}
			moved, err := s.ladders.RepairPositions(ctx, string(l.Name))
			switch {
			case err != nil:
				row.Status = repairStatusFailed
				row.Message = err.Error()
				failed.Add(1)
			case moved > 0:
				row.Status = repairStatusRepaired
				row.Moved = moved
				repaired.Add(1)
				if s.prizes != nil {
					s.prizes.Invalidate(ctx, string(l.Name))
				}
			}
			row.DurationMs = time.Since(start).Milliseconds()
			results <- row
		}); err != nil {
			wg.Done()
			return RepairResult{}, fmt.Errorf("submit repair task: %w", err)
		}
	}

	wg.Wait()
	close(results)
	for row := range results {
		result.Ladders = append(result.Ladders, row)
	}
	slices.SortFunc(result.Ladders, func(a, b LadderRepairResult) int {
		return strings.Compare(a.Ladder, b.Ladder)
	})

	result.RepairedCount = int(repaired.Load())
	result.FailedCount = int(failed.Load())
	if result.FailedCount > 0 {
		s.logger.WarnContext(ctx, "ladder repair finished with failures", "failed", result.FailedCount, "repaired", result.RepairedCount)
	}
	return result, nil
}

// LogPrizePools records the current snapshot of every ladder.
func (s *MaintenanceService) LogPrizePools(ctx context.Context) error {
	if s.prizes == nil {
		return nil
	}
	items, err := s.prizes.SnapshotAll(ctx, time.Time{})
	if err != nil {
		return fmt.Errorf("snapshot prize pools: %w", err)
	}
	for _, item := range items {
		s.logger.InfoContext(ctx, "prize pool snapshot",
			"ladder", item.Ladder.Name,
			"phase", item.Snapshot.Phase,
			"binding", item.Snapshot.Binding,
			"players", item.Snapshot.ActivePlayerCount,
			"matches", item.Snapshot.CompletedMatchCount,
			"total", item.Snapshot.TotalPrizePool.StringFixed(2),
		)
	}
	return nil
}
