package scheduler

import (
	"context"
	"time"

	"github.com/smallbiznis/riasku/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("scheduler",
	fx.Provide(NewReportHolder),
	fx.Provide(provideConfig),
	fx.Provide(New),
	fx.Invoke(run),
)

func provideConfig(cfg config.Config) Config {
	return Config{
		Interval:   cfg.SchedulerInterval,
		JobTimeout: cfg.SchedulerTimeout,
	}
}

func run(lc fx.Lifecycle, s *Scheduler, cfg config.Config, log *zap.Logger) {
	if !cfg.SchedulerEnabled {
		log.Info("scheduler disabled")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go loop(ctx, s, done)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			select {
			case <-done:
			case <-time.After(5 * time.Second):
			}
			return nil
		},
	})
}

func loop(ctx context.Context, s *Scheduler, done chan<- struct{}) {
	defer close(done)

	// first scan right after startup, then on the interval
	_ = s.RunOnce(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = s.RunOnce(ctx)
		}
	}
}
