package configfx

import (
	"go.uber.org/fx"

	"wandermind/internal/config"
)

var Module = fx.Provide(config.NewFromEnv)
