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

// MetricsRecorder counts domain events. Implementations must be safe for concurrent use.
type MetricsRecorder interface {
	Inc(ctx context.Context, name string, labels map[string]string, n int64)
}

const (
	MetricOutfitGenerations = "outfit_generations_total"
	MetricMannequinResults  = "mannequin_results_total"
	MetricUnknownImageRefs  = "outfit_unknown_image_refs_total"
	MetricItemAnalyses      = "item_analyses_total"
)

type OutfitOptions struct {
	TextModel        string
	ImageModel       string
	Safety           valueobjects.SafetySettings
	Timeout          time.Duration
	MannequinEnabled bool
	Placeholder      string
}

type OutfitDomainService struct {
	textAI   repositories.GenerationService
	imageAI  repositories.GenerationService
	opts     OutfitOptions
	fallback *FallbackPolicy
	metrics  MetricsRecorder
}

// NewOutfitDomainService wires the primary text call and the optional mannequin image call.
// imageAI may be nil, in which case suggestions are returned without a mannequin.
func NewOutfitDomainService(
	textAI repositories.GenerationService,
	imageAI repositories.GenerationService,
	opts OutfitOptions,
	metrics MetricsRecorder,
) *OutfitDomainService {
	return &OutfitDomainService{
		textAI:   textAI,
		imageAI:  imageAI,
		opts:     opts,
		fallback: NewFallbackPolicy(opts.Placeholder, opts.Timeout),
		metrics:  metrics,
	}
}

// GenerateOutfit runs the primary suggestion call and then, if enabled, the mannequin call.
// A failed primary call is an error. A failed mannequin call degrades to the placeholder.
// overrides adjust the configured safety thresholds for this call only and may be nil.
func (s *OutfitDomainService) GenerateOutfit(
	ctx context.Context,
	request *entities.OutfitRequest,
	overrides valueobjects.SafetySettings,
) (*entities.OutfitSuggestion, error) {
	prompt, err := BuildOutfitPrompt(request)
	if err != nil {
		return nil, err
	}

	logger := log.Ctx(ctx).With().Str("outfit_request_id", string(request.ID())).Logger()

	if err := overrides.Validate(); err != nil {
		return nil, errs.NewValidationError("safety", err.Error())
	}

	config, err := valueobjects.TextConfig(s.opts.TextModel, s.opts.Safety.Merge(overrides))
	if err != nil {
		return nil, fmt.Errorf("outfit generation config: %w", err)
	}

	logger.Debug().
		Str("stage", string(entities.StagePrimaryGenerating)).
		Str("provider", s.textAI.Provider()).
		Int("items", len(request.WardrobeItems())).
		Msg("Generating outfit suggestion")

	callCtx, cancel := s.withTimeout(ctx)
	result, err := s.textAI.Generate(callCtx, entities.NewGenerationRequest(prompt, nil, config))
	cancel()
	if err != nil {
		wrapped := errs.NewExternalServiceError(s.textAI.Provider(), err)
		logger.Error().Err(err).
			Str("stage", string(entities.StagePrimaryFailed)).
			Bool("quota", wrapped.Quota).
			Bool("timeout", wrapped.Timeout()).
			Msg("Outfit generation failed")
		s.inc(ctx, MetricOutfitGenerations, "result", "provider_error")
		return nil, wrapped
	}

	outcome := ParseOutfitSuggestion(result.Text())
	if outcome.Kind() != OutcomeOK {
		logger.Error().
			Str("stage", string(entities.StagePrimaryFailed)).
			Str("outcome", outcome.Kind().String()).
			Str("reason", outcome.Reason()).
			Strs("missing_fields", outcome.MissingFields()).
			Msg("Outfit response rejected")
		s.inc(ctx, MetricOutfitGenerations, "result", outcome.Kind().String())
		return nil, outcome.Err()
	}

	suggestion := outcome.Value()
	s.inc(ctx, MetricOutfitGenerations, "result", "ok")

	if unknown := UnknownImageReferences(request, suggestion); len(unknown) > 0 {
		logger.Warn().Int("count", len(unknown)).Msg("Suggestion references images outside the request")
		s.inc(ctx, MetricUnknownImageRefs, "", "")
	}

	if !s.opts.MannequinEnabled || s.imageAI == nil {
		return suggestion, nil
	}

	s.attachMannequin(logger.WithContext(ctx), request, suggestion, overrides)
	return suggestion, nil
}

func (s *OutfitDomainService) attachMannequin(
	ctx context.Context,
	request *entities.OutfitRequest,
	suggestion *entities.OutfitSuggestion,
	overrides valueobjects.SafetySettings,
) {
	logger := log.Ctx(ctx)
	suggestion.SetStage(entities.StageSecondaryGenerating)

	mannequin := s.fallback.Resolve(ctx, func(ctx context.Context) (string, error) {
		config, err := valueobjects.ImageConfig(s.opts.ImageModel, s.opts.Safety.Merge(overrides))
		if err != nil {
			return "", err
		}
		prompt := BuildMannequinPrompt(suggestion, request.MannequinPreference())
		result, err := s.imageAI.Generate(ctx, entities.NewGenerationRequest(prompt, nil, config))
		if err != nil {
			return "", errs.NewExternalServiceError(s.imageAI.Provider(), err)
		}
		return result.ImageDataURI(), nil
	})

	suggestion.SetMannequin(mannequin)

	if mannequin.UsedFallback() {
		logger.Warn().Err(mannequin.Cause()).
			Str("stage", string(suggestion.Stage())).
			Msg("Mannequin generation failed, using placeholder")
		s.inc(ctx, MetricMannequinResults, "path", "fallback")
		return
	}

	logger.Debug().Str("stage", string(suggestion.Stage())).Msg("Mannequin image generated")
	s.inc(ctx, MetricMannequinResults, "path", "generated")
}

func (s *OutfitDomainService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.opts.Timeout)
}

func (s *OutfitDomainService) inc(ctx context.Context, name, labelKey, labelValue string) {
	if s.metrics == nil {
		return
	}
	var labels map[string]string
	if labelKey != "" {
		labels = map[string]string{labelKey: labelValue}
	}
	s.metrics.Inc(ctx, name, labels, 1)
}
