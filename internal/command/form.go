package command

import (
	"context"

	"github.com/kapu/meal-browser-go/internal/domain"
)

// FormCommand forwards contact form input and submit events.
type FormCommand struct {
	deps   *Dependencies
	action string
}

func NewFormCommand(deps *Dependencies, action string) *FormCommand {
	return &FormCommand{deps: deps, action: action}
}

func (c *FormCommand) Name() string {
	return c.action
}

func (c *FormCommand) Description() string {
	if c.action == domain.ActionFormSubmit {
		return "Submit the contact form"
	}
	return "Validate the contact form"
}

func (c *FormCommand) Execute(_ context.Context, msg *domain.ClientMessage) error {
	if c.action == domain.ActionFormSubmit {
		return c.deps.Browser.SubmitForm(msg.Values)
	}
	c.deps.Browser.UpdateForm(msg.Values)
	return nil
}
