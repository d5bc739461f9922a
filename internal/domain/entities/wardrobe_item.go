package entities

import (
	"slices"

	"github.com/google/uuid"
)

type WardrobeItemID string

func NewWardrobeItemID() WardrobeItemID {
	return WardrobeItemID(uuid.NewString())
}

// WardrobeItem is a single analyzed clothing piece. It is immutable once created.
type WardrobeItem struct {
	id             WardrobeItemID
	imageReference string
	category       string
	color          string
	season         string
	occasion       string
	tags           []string
}

func NewWardrobeItem(
	id WardrobeItemID,
	imageReference string,
	category string,
	color string,
	season string,
	occasion string,
	tags []string,
) *WardrobeItem {
	if id == "" {
		id = NewWardrobeItemID()
	}

	return &WardrobeItem{
		id:             id,
		imageReference: imageReference,
		category:       category,
		color:          color,
		season:         season,
		occasion:       occasion,
		tags:           slices.Clone(tags),
	}
}

func (i *WardrobeItem) ID() WardrobeItemID {
	return i.id
}

// ImageReference is the photo of the item, either a data URI or a URL.
func (i *WardrobeItem) ImageReference() string {
	return i.imageReference
}

// Category is the garment type, e.g. "T-Shirt".
func (i *WardrobeItem) Category() string {
	return i.category
}

func (i *WardrobeItem) Color() string {
	return i.color
}

func (i *WardrobeItem) Season() string {
	return i.season
}

func (i *WardrobeItem) Occasion() string {
	return i.occasion
}

func (i *WardrobeItem) Tags() []string {
	return slices.Clone(i.tags)
}
