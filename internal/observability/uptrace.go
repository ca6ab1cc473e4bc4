package observability

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/uptrace-go/uptrace"

	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/config"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/platform/logging"
)

// InitUptrace installs the global OpenTelemetry tracer provider. Without it
// spans from otelhttp, otelsqlx and the usecases are no-ops.
func InitUptrace(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if !cfg.UptraceEnabled || cfg.UptraceDSN == "" {
		logger.Debug("uptrace disabled")
		return func(context.Context) error { return nil }, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
	)

	logger.Info("uptrace enabled", "service_name", cfg.ServiceName, "service_version", cfg.ServiceVersion, "environment", cfg.AppEnv)
	return uptrace.Shutdown, nil
}

// Stack holds the running telemetry components so they stop together.
type Stack struct {
	pprof         interface{ Shutdown(context.Context) error }
	stopTracing   func(context.Context) error
	stopProfiling func() error
}

// Start brings up tracing, continuous profiling and pprof per cfg.
func Start(cfg config.Config, logger *logging.Logger) (*Stack, error) {
	stopTracing, err := InitUptrace(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init uptrace: %w", err)
	}
	stopProfiling, err := InitPyroscope(cfg, logger)
	if err != nil {
		_ = stopTracing(context.Background())
		return nil, fmt.Errorf("init pyroscope: %w", err)
	}

	stack := &Stack{stopTracing: stopTracing, stopProfiling: stopProfiling}
	if srv := StartPprofServer(cfg, logger); srv != nil {
		stack.pprof = srv
	}
	return stack, nil
}

// Shutdown flushes spans and stops profilers. All components are attempted.
func (s *Stack) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.pprof != nil {
		if err := s.pprof.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop pprof: %w", err))
		}
	}
	if err := s.stopProfiling(); err != nil {
		errs = append(errs, fmt.Errorf("stop pyroscope: %w", err))
	}
	if err := s.stopTracing(ctx); err != nil {
		errs = append(errs, fmt.Errorf("stop uptrace: %w", err))
	}
	return errors.Join(errs...)
}
