package view

import (
	"github.com/kapu/meal-browser-go/internal/constants"
	"github.com/kapu/meal-browser-go/internal/domain"
	"github.com/kapu/meal-browser-go/internal/util"
)

const (
	categoryCardClass  = "meal-card position-relative overflow-hidden rounded-2 cursor-pointer"
	categoryLayerClass = "meal-layer position-absolute d-flex flex-column align-items-center justify-content-center text-black p-2 text-center"
	iconCardClass      = "meal-card rounded-2 text-center cursor-pointer p-3 text-white"
)

// Summary shortens a free-text description for a card.
func Summary(description string) string {
	return util.TruncateWords(description, constants.DisplayLimits.DescriptionWords)
}

func Categories(categories []domain.Category) Node {
	cards := make([]Node, 0, len(categories))
	for _, category := range categories {
		card := El("div", categoryCardClass,
			Node{Tag: "img", Class: "w-100", Attrs: []Attr{{"src", category.Thumb}, {"alt", category.Name}}},
			El("div", categoryLayerClass,
				TextEl("h3", "", category.Name),
				TextEl("p", "", Summary(category.Description)),
			),
		).On(ActionCategory, category.Name)

		cards = append(cards, El("div", "col-md-3", card))
	}
	return Fragment(cards...)
}

func Areas(areas []domain.Area) Node {
	cards := make([]Node, 0, len(areas))
	for _, area := range areas {
		card := El("div", iconCardClass,
			El("i", "fa-solid fa-house-laptop fa-4x"),
			TextEl("h3", "", area.Name),
		).On(ActionArea, area.Name)

		cards = append(cards, El("div", "col-md-3", card))
	}
	return Fragment(cards...)
}

// Ingredients renders every ingredient it is given; callers cap the list.
func Ingredients(ingredients []domain.Ingredient) Node {
	cards := make([]Node, 0, len(ingredients))
	for _, ingredient := range ingredients {
		card := El("div", iconCardClass,
			El("i", "fa-solid fa-drumstick-bite fa-4x"),
			TextEl("h3", "", ingredient.Name),
			TextEl("p", "", Summary(ingredient.Description)),
		).On(ActionIngredient, ingredient.Name)

		cards = append(cards, El("div", "col-md-3", card))
	}
	return Fragment(cards...)
}
