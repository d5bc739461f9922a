package services

import (
	"net/http"

	"style-outfits/internal/domain/errs"
	"style-outfits/internal/domain/valueobjects"
)

const (
	uniformSafetyKey = "safety_setting"
	safetyKeyPrefix  = "safety_"
)

type ParameterService struct{}

func NewParameterService() *ParameterService {
	return &ParameterService{}
}

// ParseSafetyOverrides reads per-call safety thresholds from form or query values.
// safety_setting applies to every category and safety_<category> overrides a single one,
// e.g. safety_harassment=block_only_high. Returns nil when nothing was supplied.
func (s *ParameterService) ParseSafetyOverrides(r *http.Request) (valueobjects.SafetySettings, error) {
	var overrides valueobjects.SafetySettings

	if value := r.FormValue(uniformSafetyKey); value != "" {
		threshold, err := valueobjects.ParseSafetyThreshold(value)
		if err != nil {
			return nil, errs.NewValidationError(uniformSafetyKey, err.Error())
		}
		overrides = valueobjects.UniformSafety(threshold)
	}

	for _, category := range valueobjects.HarmCategories {
		key := safetyKeyPrefix + string(category)
		value := r.FormValue(key)
		if value == "" {
			continue
		}

		threshold, err := valueobjects.ParseSafetyThreshold(value)
		if err != nil {
			return nil, errs.NewValidationError(key, err.Error())
		}
		if overrides == nil {
			overrides = make(valueobjects.SafetySettings)
		}
		overrides[category] = threshold
	}

	return overrides, nil
}
