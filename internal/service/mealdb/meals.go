package mealdb

import (
	"context"

	"github.com/kapu/meal-browser-go/internal/constants"
	"github.com/kapu/meal-browser-go/internal/domain"
)

// Each lookup returns ok=false when the response is absent. A present
// response with "meals": null yields ok=true and a nil slice.

func (c *Client) SearchByName(ctx context.Context, term string) ([]domain.MealSummary, bool) {
	return c.summaries(ctx, c.URL(constants.Endpoints.Search, "s", term))
}

func (c *Client) SearchByFirstLetter(ctx context.Context, letter string) ([]domain.MealSummary, bool) {
	return c.summaries(ctx, c.URL(constants.Endpoints.Search, "f", letter))
}

func (c *Client) FilterByCategory(ctx context.Context, category string) ([]domain.MealSummary, bool) {
	return c.summaries(ctx, c.URL(constants.Endpoints.Filter, "c", category))
}

func (c *Client) FilterByArea(ctx context.Context, area string) ([]domain.MealSummary, bool) {
	return c.summaries(ctx, c.URL(constants.Endpoints.Filter, "a", area))
}

func (c *Client) FilterByIngredient(ctx context.Context, ingredient string) ([]domain.MealSummary, bool) {
	return c.summaries(ctx, c.URL(constants.Endpoints.Filter, "i", ingredient))
}

// LookupMeal returns the first meal of the lookup response, or nil when the
// response is absent or holds no meals.
func (c *Client) LookupMeal(ctx context.Context, id string) *domain.MealDetail {
	var resp domain.MealsResponse[domain.MealDetail]
	if !c.FetchJSON(ctx, c.URL(constants.Endpoints.Lookup, "i", id), &resp) {
		return nil
	}
	if len(resp.Meals) == 0 {
		return nil
	}
	return &resp.Meals[0]
}

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, bool) {
	var resp domain.CategoriesResponse
	if !c.FetchJSON(ctx, c.URL(constants.Endpoints.Categories), &resp) {
		return nil, false
	}
	return resp.Categories, true
}

func (c *Client) ListAreas(ctx context.Context) ([]domain.Area, bool) {
	var resp domain.MealsResponse[domain.Area]
	if !c.FetchJSON(ctx, c.URL(constants.Endpoints.List, "a", "list"), &resp) {
		return nil, false
	}
	return resp.Meals, true
}

func (c *Client) ListIngredients(ctx context.Context) ([]domain.Ingredient, bool) {
	var resp domain.MealsResponse[domain.Ingredient]
	if !c.FetchJSON(ctx, c.URL(constants.Endpoints.List, "i", "list"), &resp) {
		return nil, false
	}
	return resp.Meals, true
}

func (c *Client) summaries(ctx context.Context, rawURL string) ([]domain.MealSummary, bool) {
	var resp domain.MealsResponse[domain.MealSummary]
	if !c.FetchJSON(ctx, rawURL, &resp) {
		return nil, false
	}
	return resp.Meals, true
}
