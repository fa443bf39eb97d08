package reconcile

import (
	"github.com/smallbiznis/riasku/internal/reconcile/service"
	"go.uber.org/fx"
)

var Module = fx.Module("reconcile.service",
	fx.Provide(service.New),
)
