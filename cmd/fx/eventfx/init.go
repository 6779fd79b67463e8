package eventfx

import (
	"go.uber.org/fx"

	"wandermind/internal/api/controllers"
	"wandermind/internal/services"
	"wandermind/pkg/llm"
)

var Module = fx.Provide(
	provideModifierService,
	controllers.NewEventController,
)

func provideModifierService(
	factory llm.GeneratorFactory,
	parser services.ItineraryParserInterface,
	normalizer services.NormalizerServiceInterface,
	prompts *services.PromptBuilder,
) services.ModifierServiceInterface {
	return services.NewModifierService(factory, parser, normalizer, prompts)
}
