package entities

import "slices"

// ClothingAttributes is the outcome of analyzing a single clothing photo.
type ClothingAttributes struct {
	category string
	color    string
	season   string
	occasion string
	tags     []string
}

func NewClothingAttributes(category, color, season, occasion string, tags []string) *ClothingAttributes {
	return &ClothingAttributes{
		category: category,
		color:    color,
		season:   season,
		occasion: occasion,
		tags:     slices.Clone(tags),
	}
}

func (a *ClothingAttributes) Category() string {
	return a.category
}

func (a *ClothingAttributes) Color() string {
	return a.color
}

func (a *ClothingAttributes) Season() string {
	return a.season
}

func (a *ClothingAttributes) Occasion() string {
	return a.occasion
}

func (a *ClothingAttributes) Tags() []string {
	return slices.Clone(a.tags)
}

// ToWardrobeItem attaches the analyzed attributes to the photo they came from.
func (a *ClothingAttributes) ToWardrobeItem(id WardrobeItemID, imageReference string) *WardrobeItem {
	return NewWardrobeItem(id, imageReference, a.category, a.color, a.season, a.occasion, a.tags)
}
