package domain

import (
	"encoding/json"
	"fmt"
)

// IngredientSlotCount is the number of numbered ingredient/measure pairs a
// MealDB record carries.
const IngredientSlotCount = 20

type MealSummary struct {
	ID    string `json:"idMeal"`
	Name  string `json:"strMeal"`
	Thumb string `json:"strMealThumb"`
}

// IngredientSlot is one numbered ingredient/measure pair. An empty Name means
// the slot is unused.
type IngredientSlot struct {
	Name    string
	Measure string
}

func (s IngredientSlot) IsEmpty() bool {
	return s.Name == ""
}

type MealDetail struct {
	ID           string
	Name         string
	Thumb        string
	Instructions string
	Area         string
	Category     string
	Tags         string
	Source       string
	YouTube      string
	// Slots[i] holds strIngredient{i+1} / strMeasure{i+1}.
	Slots [IngredientSlotCount]IngredientSlot
}

// UnmarshalJSON reads the flat MealDB record, including the numbered
// strIngredientN / strMeasureN keys. Missing keys and JSON null both decode
// to "".
func (m *MealDetail) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode meal detail: %w", err)
	}

	// Non-string values are treated like null.
	get := func(key string) string {
		var v string
		if msg, ok := raw[key]; ok {
			_ = json.Unmarshal(msg, &v)
		}
		return v
	}

	detail := MealDetail{
		ID:           get("idMeal"),
		Name:         get("strMeal"),
		Thumb:        get("strMealThumb"),
		Instructions: get("strInstructions"),
		Area:         get("strArea"),
		Category:     get("strCategory"),
		Tags:         get("strTags"),
		Source:       get("strSource"),
		YouTube:      get("strYoutube"),
	}
	for i := 0; i < IngredientSlotCount; i++ {
		detail.Slots[i] = IngredientSlot{
			Name:    get(fmt.Sprintf("strIngredient%d", i+1)),
			Measure: get(fmt.Sprintf("strMeasure%d", i+1)),
		}
	}

	*m = detail
	return nil
}

type Category struct {
	ID          string `json:"idCategory"`
	Name        string `json:"strCategory"`
	Thumb       string `json:"strCategoryThumb"`
	Description string `json:"strCategoryDescription"`
}

type Area struct {
	Name string `json:"strArea"`
}

type Ingredient struct {
	ID          string `json:"idIngredient"`
	Name        string `json:"strIngredient"`
	Description string `json:"strDescription"`
}

// MealsResponse is the envelope used by every endpoint that answers with a
// "meals" key. A null value and a missing key both leave Meals nil.
type MealsResponse[T any] struct {
	Meals []T `json:"meals"`
}

type CategoriesResponse struct {
	Categories []Category `json:"categories"`
}
