package command

import (
	"context"

	"github.com/kapu/meal-browser-go/internal/domain"
)

// SearchCommand handles the name and first-letter search inputs.
type SearchCommand struct {
	deps   *Dependencies
	action string
}

func NewSearchCommand(deps *Dependencies, action string) *SearchCommand {
	return &SearchCommand{deps: deps, action: action}
}

func (c *SearchCommand) Name() string {
	return c.action
}

func (c *SearchCommand) Description() string {
	if c.action == domain.ActionSearchLetter {
		return "Search meals by first letter"
	}
	return "Search meals by name"
}

func (c *SearchCommand) Execute(_ context.Context, msg *domain.ClientMessage) error {
	if c.action == domain.ActionSearchLetter {
		c.deps.Browser.SearchByFirstLetter(msg.Arg)
		return nil
	}
	c.deps.Browser.SearchByName(msg.Arg)
	return nil
}
