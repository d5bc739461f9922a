// Package app assembles the outfit pipeline from configuration. Both the HTTP server and
// the CLI are built on it.
package app

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	appservices "style-outfits/internal/application/services"
	"style-outfits/internal/application/usecases"
	"style-outfits/internal/config"
	"style-outfits/internal/domain/repositories"
	domainservices "style-outfits/internal/domain/services"
	"style-outfits/internal/domain/valueobjects"
	"style-outfits/internal/infrastructure/api"
	"style-outfits/internal/infrastructure/external"
	"style-outfits/internal/infrastructure/services"
	"style-outfits/internal/metrics"
)

type App struct {
	Config   config.Config
	Metrics  *metrics.Registry
	Outfits  *usecases.OutfitUseCase
	Analysis *usecases.AnalysisUseCase
	Handler  http.Handler

	pools repositories.ClientPoolService
}

func New(cfg config.Config) (*App, error) {
	pools := services.NewClientPoolService(repositories.AIClientConfig{
		ProjectID:    cfg.ProjectID,
		Location:     cfg.Location,
		GeminiAPIKey: cfg.GeminiAPIKey,
	})

	textAI, err := textService(cfg, pools)
	if err != nil {
		return nil, err
	}

	var imageAI repositories.GenerationService
	switch {
	case cfg.MannequinAvailable():
		imageAI = external.NewGeminiGenerationService(pools.GenAIPool())
	case cfg.MannequinEnabled:
		log.Warn().Str("provider", cfg.Provider).Msg("Mannequin images need GEMINI_API_KEY; continuing without them")
	}

	threshold, err := valueobjects.ParseSafetyThreshold(cfg.SafetyThreshold)
	if err != nil {
		return nil, err
	}
	safety := valueobjects.UniformSafety(threshold)

	reg := metrics.NewRegistry()

	outfitService := domainservices.NewOutfitDomainService(textAI, imageAI, domainservices.OutfitOptions{
		TextModel:        cfg.EffectiveTextModel(),
		ImageModel:       cfg.ImageModel,
		Safety:           safety,
		Timeout:          cfg.Timeout,
		MannequinEnabled: imageAI != nil,
		Placeholder:      cfg.MannequinPlaceholder,
	}, reg)

	analysisService := domainservices.NewAnalysisDomainService(textAI, domainservices.AnalysisOptions{
		Model:        cfg.EffectiveTextModel(),
		Safety:       safety,
		Timeout:      cfg.Timeout,
		MaxDimension: cfg.AnalysisMaxDimension,
	}, reg)

	outfits := usecases.NewOutfitUseCase(outfitService)
	analysis := usecases.NewAnalysisUseCase(analysisService)

	handler := api.NewOutfitHandler(outfits, analysis, appservices.NewParameterService(), cfg.MaxUploadBytes)

	log.Info().
		Str("provider", textAI.Provider()).
		Str("text_model", cfg.EffectiveTextModel()).
		Bool("mannequin", imageAI != nil).
		Dur("timeout", cfg.Timeout).
		Msg("Outfit pipeline ready")

	return &App{
		Config:   cfg,
		Metrics:  reg,
		Outfits:  outfits,
		Analysis: analysis,
		Handler:  api.NewRouter(handler, reg),
		pools:    pools,
	}, nil
}

func textService(cfg config.Config, pools repositories.ClientPoolService) (repositories.GenerationService, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return external.NewGeminiGenerationService(pools.GenAIPool()), nil
	case config.ProviderVertex:
		return external.NewVertexGenerationService(pools.VertexAIPool()), nil
	case config.ProviderOpenAI:
		return external.NewOpenAIGenerationService(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL), nil
	default:
		return nil, fmt.Errorf("unknown generation provider %q", cfg.Provider)
	}
}

func (a *App) Close() error {
	return a.pools.Close()
}
