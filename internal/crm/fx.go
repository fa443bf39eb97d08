package crm

import (
	"github.com/smallbiznis/riasku/internal/crm/service"
	"go.uber.org/fx"
)

var Module = fx.Module("crm.service",
	fx.Provide(service.New),
)
