package command

import (
	"context"
	"fmt"

	"github.com/kapu/meal-browser-go/internal/domain"
)

// FilterCommand opens the meals of a clicked category, area or ingredient.
type FilterCommand struct {
	deps   *Dependencies
	action string
}

func NewFilterCommand(deps *Dependencies, action string) *FilterCommand {
	return &FilterCommand{deps: deps, action: action}
}

func (c *FilterCommand) Name() string {
	return c.action
}

func (c *FilterCommand) Description() string {
	return fmt.Sprintf("List meals by %s", c.action)
}

func (c *FilterCommand) Execute(_ context.Context, msg *domain.ClientMessage) error {
	switch c.action {
	case domain.ActionCategory:
		c.deps.Browser.ShowCategory(msg.Arg)
	case domain.ActionArea:
		c.deps.Browser.ShowArea(msg.Arg)
	case domain.ActionIngredient:
		c.deps.Browser.ShowIngredient(msg.Arg)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, c.action)
	}
	return nil
}

// MealCommand opens the detail view of a clicked meal card.
type MealCommand struct {
	deps *Dependencies
}

func NewMealCommand(deps *Dependencies) *MealCommand {
	return &MealCommand{deps: deps}
}

func (c *MealCommand) Name() string {
	return domain.ActionMeal
}

func (c *MealCommand) Description() string {
	return "Show meal details"
}

func (c *MealCommand) Execute(_ context.Context, msg *domain.ClientMessage) error {
	c.deps.Browser.ShowMeal(msg.Arg)
	return nil
}
