package view

import (
	"github.com/kapu/meal-browser-go/internal/domain"
	"github.com/kapu/meal-browser-go/internal/util"
)

const (
	mealCardClass   = "meal-card meal position-relative overflow-hidden rounded-2 cursor-pointer"
	mealLayerClass  = "meal-layer position-absolute d-flex align-items-center text-black p-2"
	recipeItemClass = "alert alert-info m-2 p-1"
	tagItemClass    = "alert alert-danger m-2 p-1"
	badgeListClass  = "list-unstyled d-flex g-3 flex-wrap"
)

// MealCards renders one clickable card per meal.
func MealCards(meals []domain.MealSummary) Node {
	cards := make([]Node, 0, len(meals))
	for _, meal := range meals {
		card := El("div", mealCardClass,
			Node{Tag: "img", Class: "w-100", Attrs: []Attr{{"src", meal.Thumb}, {"alt", meal.Name}}},
			El("div", mealLayerClass, TextEl("h3", "", meal.Name)),
		).With(Attr{"data-id", meal.ID}).On(ActionMeal, meal.ID)

		cards = append(cards, El("div", "col-md-3", card))
	}
	return Fragment(cards...)
}

// IngredientLines pairs measures with ingredient names in slot order,
// skipping unused slots. The measure is kept even when empty.
func IngredientLines(meal domain.MealDetail) []string {
	lines := make([]string, 0, len(meal.Slots))
	for _, slot := range meal.Slots {
		if slot.IsEmpty() {
			continue
		}
		lines = append(lines, slot.Measure+" "+slot.Name)
	}
	return lines
}

// TagBadges splits the comma-separated tag string; tokens are not trimmed.
func TagBadges(tags string) []string {
	return util.SplitVerbatim(tags, ",")
}

// MealDetail renders the full recipe view.
func MealDetail(meal domain.MealDetail) Node {
	image := El("div", "col-md-4",
		Node{Tag: "img", Class: "w-100 rounded-3", Attrs: []Attr{{"src", meal.Thumb}, {"alt", meal.Name}}},
		TextEl("h2", "", meal.Name),
	)

	recipes := El("ul", badgeListClass)
	for _, line := range IngredientLines(meal) {
		recipes.Children = append(recipes.Children, TextEl("li", recipeItemClass, line))
	}

	tags := El("ul", badgeListClass)
	for _, tag := range TagBadges(meal.Tags) {
		tags.Children = append(tags.Children, TextEl("li", tagItemClass, tag))
	}

	details := El("div", "col-md-8",
		TextEl("h2", "", "Instructions"),
		TextEl("p", "", meal.Instructions),
		labeled("Area : ", meal.Area),
		labeled("Category : ", meal.Category),
		TextEl("h3", "", "Recipes :"),
		recipes,
		TextEl("h3", "", "Tags :"),
		tags,
	)
	if meal.Source != "" {
		details.Children = append(details.Children, externalLink("btn btn-success me-2", "Source", meal.Source))
	}
	if meal.YouTube != "" {
		details.Children = append(details.Children, externalLink("btn btn-danger", "Youtube", meal.YouTube))
	}

	return Fragment(image, details)
}

func labeled(label, value string) Node {
	return Node{
		Tag: "h3",
		Children: []Node{
			TextEl("span", "fw-bolder", label),
			{Text: value},
		},
	}
}

func externalLink(class, label, href string) Node {
	return Node{
		Tag:   "a",
		Class: class,
		Text:  label,
		Attrs: []Attr{{"href", href}, {"target", "_blank"}, {"rel", "noopener"}},
	}
}
