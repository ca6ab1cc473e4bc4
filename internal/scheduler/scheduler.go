package scheduler

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"

	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/platform/logging"
)

var (
	ErrEmptyJobName  = errors.New("job name is required")
	ErrEmptyCronExpr = errors.New("cron expression is required")
)

// Task is one scheduled unit of work. The context is cancelled on Stop or
// after the job timeout.
type Task func(ctx context.Context) error

// Service wraps a gocron scheduler. Jobs run one at a time per job name.
type Service struct {
	scheduler  gocron.Scheduler
	logger     *logging.Logger
	jobTimeout time.Duration

	baseCtx  context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once
	stopErr  error
}

func New(logger *logging.Logger, jobTimeout time.Duration) (*Service, error) {
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("scheduler")
	if jobTimeout <= 0 {
		jobTimeout = 5 * time.Minute
	}

	sched, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
		gocron.WithGlobalJobOptions(
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
			gocron.WithEventListeners(
				gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, jobName string, recoverData any) {
					logger.Error("scheduler job panicked",
						"job_id", jobID.String(),
						"job_name", jobName,
						"panic", recoverData,
					)
				}),
				gocron.AfterJobRunsWithError(func(jobID uuid.UUID, jobName string, err error) {
					logger.Warn("scheduler job failed",
						"job_id", jobID.String(),
						"job_name", jobName,
						"error", err,
					)
				}),
			),
		),
	)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		scheduler:  sched,
		logger:     logger,
		jobTimeout: jobTimeout,
		baseCtx:    ctx,
		cancel:     cancel,
	}, nil
}

func (s *Service) Start() {
	s.logger.Info("scheduler starting", "jobs", len(s.scheduler.Jobs()))
	s.scheduler.Start()
}

// Stop cancels running tasks and waits for the scheduler to shut down.
func (s *Service) Stop() error {
	s.stopOnce.Do(func() {
		s.logger.Info("scheduler stopping")
		s.cancel()
		s.stopErr = s.scheduler.Shutdown()
	})
	return s.stopErr
}

// AddJob registers a cron job. cronExpr uses five fields, evaluated in UTC.
func (s *Service) AddJob(name, cronExpr string, task Task) (gocron.Job, error) {
	name = strings.TrimSpace(name)
	cronExpr = strings.TrimSpace(cronExpr)
	if name == "" {
		return nil, ErrEmptyJobName
	}
	if cronExpr == "" {
		return nil, ErrEmptyCronExpr
	}
	jobLogger := s.logger.With("job_name", name, "cron", cronExpr)

	wrapped := func() error {
		ctx, cancel := context.WithTimeout(s.baseCtx, s.jobTimeout)
		defer cancel()

		started := time.Now()
		jobLogger.DebugContext(ctx, "scheduler job started")
		err := task(ctx)
		jobLogger.DebugContext(ctx, "scheduler job completed", "duration_ms", time.Since(started).Milliseconds())
		return err
	}

	job, err := s.scheduler.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(wrapped),
		gocron.WithName(name),
	)
	if err != nil {
		jobLogger.Error("failed to register scheduler job", "error", err)
		return nil, err
	}
	jobLogger.Info("scheduler job registered")
	return job, nil
}
