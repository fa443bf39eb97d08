package validation

import (
	"github.com/smallbiznis/riasku/internal/validation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("validation.service",
	fx.Provide(service.New),
)
