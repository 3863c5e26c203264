package view

import (
	"strings"
	"testing"

	"github.com/kapu/meal-browser-go/internal/domain"
)

func sparseMeal() domain.MealDetail {
	meal := domain.MealDetail{
		ID:       "52772",
		Name:     "Teriyaki Chicken Casserole",
		Area:     "Japanese",
		Category: "Chicken",
		Tags:     "Tag1,Tag2,Tag3",
	}
	meal.Slots[0] = domain.IngredientSlot{Name: "soy sauce", Measure: "3/4 cup"}
	meal.Slots[1] = domain.IngredientSlot{Name: "water", Measure: "1/2 cup"}
	meal.Slots[4] = domain.IngredientSlot{Name: "brown sugar", Measure: "1/4 cup"}
	// measure without an ingredient does not count
	meal.Slots[7] = domain.IngredientSlot{Measure: "pinch"}
	return meal
}

func TestIngredientLinesSkipsEmptySlotsInOrder(t *testing.T) {
	lines := IngredientLines(sparseMeal())

	want := []string{"3/4 cup soy sauce", "1/2 cup water", "1/4 cup brown sugar"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %v", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestIngredientLinesKeepsEmptyMeasure(t *testing.T) {
	var meal domain.MealDetail
	meal.Slots[2] = domain.IngredientSlot{Name: "salt"}

	lines := IngredientLines(meal)
	if len(lines) != 1 || lines[0] != " salt" {
		t.Fatalf("expected measure-less line %q, got %v", " salt", lines)
	}
}

func TestTagBadgesVerbatim(t *testing.T) {
	badges := TagBadges("Tag1,Tag2,Tag3")
	if len(badges) != 3 || badges[0] != "Tag1" || badges[1] != "Tag2" || badges[2] != "Tag3" {
		t.Fatalf("unexpected badges %v", badges)
	}

	spaced := TagBadges("Soup, Warming")
	if len(spaced) != 2 || spaced[1] != " Warming" {
		t.Fatalf("expected untrimmed tokens, got %q", spaced)
	}

	if TagBadges("") != nil {
		t.Fatalf("expected no badges for absent tags")
	}
}

func TestMealDetailStructure(t *testing.T) {
	tree := MealDetail(sparseMeal())

	recipes := tree.Find(recipeItemClass)
	if len(recipes) != 3 {
		t.Fatalf("expected 3 recipe entries, got %d", len(recipes))
	}
	tags := tree.Find(tagItemClass)
	if len(tags) != 3 {
		t.Fatalf("expected 3 tag badges, got %d", len(tags))
	}
	if links := tree.Find("btn btn-success me-2"); len(links) != 0 {
		t.Fatalf("expected no source button for a meal without source")
	}
}

func TestMealCardsCarryActions(t *testing.T) {
	tree := MealCards([]domain.MealSummary{
		{ID: "1", Name: "Arrabiata", Thumb: "a.jpg"},
		{ID: "2", Name: "Corba", Thumb: "c.jpg"},
	})

	cards := tree.Find(mealCardClass)
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
	for i, id := range []string{"1", "2"} {
		if cards[i].Action == nil || cards[i].Action.Name != ActionMeal || cards[i].Action.Arg != id {
			t.Fatalf("card %d: unexpected action %+v", i, cards[i].Action)
		}
	}
}

func TestSummaryTruncatesToTwentyWords(t *testing.T) {
	words := make([]string, 30)
	for i := range words {
		words[i] = "w"
	}
	got := Summary(strings.Join(words, " "))
	if n := len(strings.Fields(got)); n != 20 {
		t.Fatalf("expected 20 words, got %d", n)
	}
	if Summary("") != "" {
		t.Fatalf("expected empty summary for absent description")
	}
}

func TestIngredientsAbsentDescriptionIsEmpty(t *testing.T) {
	tree := Ingredients([]domain.Ingredient{{Name: "Chicken"}})
	cards := tree.Find(iconCardClass)
	if len(cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(cards))
	}
	p := cards[0].Children[2]
	if p.Tag != "p" || p.Text != "" {
		t.Fatalf("expected empty paragraph, got %+v", p)
	}
	if cards[0].Action.Name != ActionIngredient || cards[0].Action.Arg != "Chicken" {
		t.Fatalf("unexpected action %+v", cards[0].Action)
	}
}

func TestContactFormStartsDisabled(t *testing.T) {
	form := ContactForm()
	buttons := form.Find("btn btn-outline-danger px-2 mt-3")
	if len(buttons) != 1 {
		t.Fatalf("expected one submit button, got %d", len(buttons))
	}
	if _, disabled := buttons[0].Attr("disabled"); !disabled {
		t.Fatalf("expected submit to start disabled")
	}
	if alerts := form.Find("alert alert-danger w-100 mt-2 d-none"); len(alerts) != len(domain.FormFields) {
		t.Fatalf("expected %d hidden alerts, got %d", len(domain.FormFields), len(alerts))
	}
}
