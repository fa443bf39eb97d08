// Package scheduler drives the periodic integrity scan: load the
// snapshot, validate it, publish the report and the gauges. The core
// stays synchronous; this is the only place that decides when it runs.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/riasku/internal/clock"
	obsmetrics "github.com/smallbiznis/riasku/internal/observability/metrics"
	"github.com/smallbiznis/riasku/internal/store"
	validationdomain "github.com/smallbiznis/riasku/internal/validation/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log       *zap.Logger
	Snapshots *store.Snapshots
	Validator validationdomain.Service
	Metrics   *obsmetrics.Metrics
	Holder    *ReportHolder
	GenID     *snowflake.Node
	Clock     clock.Clock
	Config    Config `optional:"true"`
}

type Scheduler struct {
	log       *zap.Logger
	cfg       Config
	snapshots *store.Snapshots
	validator validationdomain.Service
	metrics   *obsmetrics.Metrics
	holder    *ReportHolder
	genID     *snowflake.Node
	clock     clock.Clock
}

func New(p Params) (*Scheduler, error) {
	if p.Log == nil || p.Snapshots == nil || p.Validator == nil || p.Metrics == nil || p.Holder == nil || p.GenID == nil || p.Clock == nil {
		return nil, ErrInvalidConfig
	}
	return &Scheduler{
		log:       p.Log.Named("scheduler").With(zap.String("component", "scheduler")),
		cfg:       p.Config.withDefaults(),
		snapshots: p.Snapshots,
		validator: p.Validator,
		metrics:   p.Metrics,
		holder:    p.Holder,
		genID:     p.GenID,
		clock:     p.Clock,
	}, nil
}

// RunOnce executes a single scheduled scan.
func (s *Scheduler) RunOnce(parent context.Context) error {
	return s.runJob(parent, "validation_scan", s.cfg.JobTimeout, s.validationScanJob)
}

func (s *Scheduler) runJob(parent context.Context, name string, timeout time.Duration, fn func(ctx context.Context) error) error {
	start := s.clock.Now()
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	runID := s.genID.Generate().String()
	log := s.log.With(
		zap.String("job", name),
		zap.String("run_id", runID),
	)
	log.Debug("job started")

	err := fn(ctx)

	outcome := "ok"
	if err != nil {
		outcome = "error"
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			outcome = "timeout"
		}
	}
	s.metrics.SchedulerJobRuns.WithLabelValues(name, outcome).Inc()

	if err == nil {
		log.Debug("job finished", zap.Duration("elapsed", s.clock.Now().Sub(start)))
		return nil
	}
	if outcome == "timeout" {
		// soft timeout: the next tick retries
		log.Warn("job timed out", zap.Duration("timeout", timeout), zap.Error(err))
		return nil
	}
	log.Error("job failed", zap.Error(err))
	return fmt.Errorf("%s: %w", name, err)
}

func (s *Scheduler) validationScanJob(ctx context.Context) error {
	clients, err := s.snapshots.LoadClients(ctx)
	if err != nil {
		return err
	}
	projects, err := s.snapshots.LoadProjects(ctx)
	if err != nil {
		return err
	}
	invoices, err := s.snapshots.LoadInvoices(ctx)
	if err != nil {
		return err
	}

	report := s.validator.Validate(ctx, clients, projects, invoices)

	s.metrics.ObserveValidation("scheduler",
		report.Summary.TotalErrors,
		report.Summary.TotalWarnings,
		len(report.Clients.Flagged),
		len(report.Projects.Flagged),
		len(report.Invoices.Flagged),
	)
	s.holder.Set(LastReport{
		RunID:  s.genID.Generate().String(),
		At:     s.clock.Now(),
		Report: report,
	})

	if !report.Summary.IsValid {
		s.log.Warn("integrity scan found errors",
			zap.Int("total_errors", report.Summary.TotalErrors),
			zap.Int("total_warnings", report.Summary.TotalWarnings),
		)
	}
	return nil
}
