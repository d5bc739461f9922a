package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"style-outfits/internal/domain/entities"
	"style-outfits/internal/domain/errs"
	"style-outfits/internal/domain/repositories"
	"style-outfits/internal/domain/valueobjects"
)

type AnalysisOptions struct {
	Model        string
	Safety       valueobjects.SafetySettings
	Timeout      time.Duration
	MaxDimension int
}

type AnalysisDomainService struct {
	ai      repositories.GenerationService
	opts    AnalysisOptions
	metrics MetricsRecorder
}

func NewAnalysisDomainService(ai repositories.GenerationService, opts AnalysisOptions, metrics MetricsRecorder) *AnalysisDomainService {
	return &AnalysisDomainService{
		ai:      ai,
		opts:    opts,
		metrics: metrics,
	}
}

// AnalyzeClothingItem asks the model for the attributes of the pictured garment.
// There is no fallback: any provider or parse failure is returned to the caller.
func (s *AnalysisDomainService) AnalyzeClothingItem(
	ctx context.Context,
	image *valueobjects.ImageData,
	overrides valueobjects.SafetySettings,
) (*entities.ClothingAttributes, error) {
	logger := log.Ctx(ctx)

	if image == nil || len(image.Data()) == 0 {
		return nil, errs.NewValidationError("image", "is required")
	}

	prepared, err := image.Fit(s.opts.MaxDimension)
	if err == nil {
		prepared, err = prepared.Portable()
	}
	if err != nil {
		return nil, errs.NewValidationError("image", "could not be decoded")
	}

	if err := overrides.Validate(); err != nil {
		return nil, errs.NewValidationError("safety", err.Error())
	}

	config, err := valueobjects.TextConfig(s.opts.Model, s.opts.Safety.Merge(overrides))
	if err != nil {
		return nil, fmt.Errorf("analysis config: %w", err)
	}

	logger.Debug().
		Str("provider", s.ai.Provider()).
		Str("format", string(prepared.Format())).
		Int("bytes", len(prepared.Data())).
		Msg("Analyzing clothing item")

	callCtx := ctx
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	request := entities.NewGenerationRequest(BuildAnalysisPrompt(), []*valueobjects.ImageData{prepared}, config)
	result, err := s.ai.Generate(callCtx, request)
	if err != nil {
		wrapped := errs.NewExternalServiceError(s.ai.Provider(), err)
		logger.Error().Err(err).Bool("quota", wrapped.Quota).Bool("timeout", wrapped.Timeout()).Msg("Item analysis failed")
		s.inc(ctx, "provider_error")
		return nil, wrapped
	}

	outcome := ParseClothingAttributes(result.Text())
	if outcome.Kind() != OutcomeOK {
		logger.Error().
			Str("outcome", outcome.Kind().String()).
			Str("reason", outcome.Reason()).
			Strs("missing_fields", outcome.MissingFields()).
			Msg("Item analysis response rejected")
		s.inc(ctx, outcome.Kind().String())
		return nil, outcome.Err()
	}

	s.inc(ctx, "ok")
	return outcome.Value(), nil
}

func (s *AnalysisDomainService) inc(ctx context.Context, result string) {
	if s.metrics != nil {
		s.metrics.Inc(ctx, MetricItemAnalyses, map[string]string{"result": result}, 1)
	}
}
