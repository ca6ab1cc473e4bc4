package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-co-op/gocron/v2"

	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/usecase"
)

const maintenanceJobName = "ladder-maintenance"

// Maintenance is the slice of usecase.MaintenanceService the job needs.
type Maintenance interface {
	RepairAll(ctx context.Context) (usecase.RepairResult, error)
	LogPrizePools(ctx context.Context) error
}

// RegisterMaintenance schedules position repair for every ladder followed by
// a prize pool snapshot log.
func RegisterMaintenance(s *Service, cronExpr string, m Maintenance) (gocron.Job, error) {
	return s.AddJob(maintenanceJobName, cronExpr, func(ctx context.Context) error {
		result, repairErr := m.RepairAll(ctx)
		if repairErr == nil {
			s.logger.InfoContext(ctx, "ladder maintenance finished",
				"ladders", result.LadderCount,
				"repaired", result.RepairedCount,
				"failed", result.FailedCount,
			)
		}
		if repairErr == nil && result.FailedCount > 0 {
			repairErr = fmt.Errorf("%d ladder repairs failed", result.FailedCount)
		}
		return errors.Join(repairErr, m.LogPrizePools(ctx))
	})
}
