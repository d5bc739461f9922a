package entities

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"style-outfits/internal/domain/errs"
	"style-outfits/internal/domain/valueobjects"
)

type OutfitRequestID string

// OutfitRequest is built per generation call and is never persisted.
type OutfitRequest struct {
	id                  OutfitRequestID
	wardrobeItems       []*WardrobeItem
	userStyle           string
	climate             string
	occasion            string
	mannequinPreference valueobjects.MannequinPreference
}

// NewOutfitRequest does not validate; Validate is called by the prompt builder so that an
// invalid request fails before any provider call.
func NewOutfitRequest(
	wardrobeItems []*WardrobeItem,
	userStyle string,
	climate string,
	occasion string,
	mannequinPreference valueobjects.MannequinPreference,
) *OutfitRequest {
	return &OutfitRequest{
		id:                  OutfitRequestID("req_" + uuid.NewString()),
		wardrobeItems:       wardrobeItems,
		userStyle:           strings.TrimSpace(userStyle),
		climate:             strings.TrimSpace(climate),
		occasion:            strings.TrimSpace(occasion),
		mannequinPreference: mannequinPreference,
	}
}

func (r *OutfitRequest) ID() OutfitRequestID {
	return r.id
}

func (r *OutfitRequest) WardrobeItems() []*WardrobeItem {
	return r.wardrobeItems
}

func (r *OutfitRequest) UserStyle() string {
	return r.userStyle
}

func (r *OutfitRequest) Climate() string {
	return r.climate
}

func (r *OutfitRequest) Occasion() string {
	return r.occasion
}

func (r *OutfitRequest) MannequinPreference() valueobjects.MannequinPreference {
	return r.mannequinPreference
}

// ItemByReference finds the supplied wardrobe item carrying the image reference.
func (r *OutfitRequest) ItemByReference(reference string) (*WardrobeItem, bool) {
	for _, item := range r.wardrobeItems {
		if item != nil && item.ImageReference() == reference {
			return item, true
		}
	}
	return nil, false
}

// ImageReferences returns the set of image references supplied with the request.
func (r *OutfitRequest) ImageReferences() map[string]struct{} {
	refs := make(map[string]struct{}, len(r.wardrobeItems))
	for _, item := range r.wardrobeItems {
		refs[item.ImageReference()] = struct{}{}
	}
	return refs
}

// Validate returns a *errs.ValidationError naming the first offending field.
func (r *OutfitRequest) Validate() error {
	if r == nil {
		return errs.NewValidationError("request", "is required")
	}

	if len(r.wardrobeItems) == 0 {
		return errs.NewValidationError("wardrobeItems", "must not be empty")
	}

	if r.userStyle == "" {
		return errs.NewValidationError("userStyle", "is required")
	}

	if r.climate == "" {
		return errs.NewValidationError("climate", "is required")
	}

	if r.occasion == "" {
		return errs.NewValidationError("occasion", "is required")
	}

	if _, err := valueobjects.ParseMannequinPreference(string(r.mannequinPreference)); err != nil {
		return errs.NewValidationError("mannequinPreference", err.Error())
	}

	for i, item := range r.wardrobeItems {
		if item == nil {
			return errs.NewValidationError(fmt.Sprintf("wardrobeItems[%d]", i), "is null")
		}
		if strings.TrimSpace(item.ImageReference()) == "" {
			return errs.NewValidationError(fmt.Sprintf("wardrobeItems[%d].imageReference", i), "is required")
		}
		if strings.TrimSpace(item.Category()) == "" {
			return errs.NewValidationError(fmt.Sprintf("wardrobeItems[%d].type", i), "is required")
		}
	}

	return nil
}
