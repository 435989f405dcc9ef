package transcript_fx

import (
	"go.uber.org/fx"
	"studymate/internal/services"
)

var Module = fx.Provide(provideTranscriptService)

func provideTranscriptService() services.TranscriptServiceInterface {
	return services.NewTranscriptService()
}
