package seed

import (
	"context"

	"github.com/smallbiznis/riasku/internal/config"
	"github.com/smallbiznis/riasku/internal/store"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("seed",
	fx.Invoke(func(cfg config.Config, snapshots *store.Snapshots, log *zap.Logger) error {
		if !cfg.SeedDemoData {
			return nil
		}
		if err := EnsureDemoData(context.Background(), snapshots); err != nil {
			return err
		}
		log.Info("demo data ensured")
		return nil
	}),
)
