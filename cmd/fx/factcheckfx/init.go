package factcheckfx

import (
	"go.uber.org/fx"

	"wandermind/internal/api/controllers"
	"wandermind/internal/config"
	"wandermind/internal/services"
)

var Module = fx.Provide(
	provideFactCheckService,
	controllers.NewFactCheckController,
)

func provideFactCheckService(cfg *config.Config) services.FactCheckServiceInterface {
	return services.NewFactCheckService(cfg.FactCheckInterval,
		services.WithBaseURLs(cfg.NominatimBaseURL, cfg.WikipediaBaseURL),
		services.WithCacheTTL(cfg.FactCheckCacheTTL),
	)
}
