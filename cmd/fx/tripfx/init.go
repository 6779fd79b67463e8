package tripfx

import (
	"go.uber.org/fx"

	"wandermind/internal/api/controllers"
	"wandermind/internal/config"
	"wandermind/internal/services"
	"wandermind/pkg/llm"
)

var Module = fx.Provide(
	providePromptBuilder,
	provideParser,
	provideResolver,
	provideNormalizer,
	provideGeneratorFactory,
	provideItineraryService,
	controllers.NewTripController,
)

func providePromptBuilder() *services.PromptBuilder {
	return services.NewPromptBuilder()
}

func provideParser() services.ItineraryParserInterface {
	return services.NewItineraryParser()
}

func provideResolver() services.DefaultLocationResolver {
	return services.NewStaticCityResolver()
}

func provideNormalizer(resolver services.DefaultLocationResolver) services.NormalizerServiceInterface {
	return services.NewNormalizerService(resolver)
}

// provideGeneratorFactory falls back to the configured key when the request
// carries none.
func provideGeneratorFactory(cfg *config.Config) llm.GeneratorFactory {
	return func(provider, apiKey string) (llm.TextGenerator, error) {
		if apiKey == "" {
			apiKey = cfg.ProviderKey(provider)
		}
		return llm.NewTextGenerator(provider, apiKey)
	}
}

func provideItineraryService(
	factory llm.GeneratorFactory,
	parser services.ItineraryParserInterface,
	normalizer services.NormalizerServiceInterface,
	prompts *services.PromptBuilder,
	resolver services.DefaultLocationResolver,
	cfg *config.Config,
) services.ItineraryServiceInterface {
	return services.NewItineraryService(factory, parser, normalizer, prompts, resolver, cfg.MinDailyBudget)
}
