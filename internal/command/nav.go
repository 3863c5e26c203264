package command

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/kapu/meal-browser-go/internal/domain"
	"github.com/kapu/meal-browser-go/pkg/errors"
)

// NavCommand handles the panel toggle, the panel links and the logo.
type NavCommand struct {
	deps   *Dependencies
	action string
}

func NewNavCommand(deps *Dependencies, action string) *NavCommand {
	return &NavCommand{deps: deps, action: action}
}

func (c *NavCommand) Name() string {
	return c.action
}

func (c *NavCommand) Description() string {
	switch c.action {
	case domain.ActionNavToggle:
		return "Open or close the side panel"
	case domain.ActionLogo:
		return "Return to the full meal list"
	default:
		return "Follow a side panel link"
	}
}

func (c *NavCommand) Execute(_ context.Context, msg *domain.ClientMessage) error {
	switch c.action {
	case domain.ActionNavToggle:
		c.deps.Browser.ToggleNav()
		return nil
	case domain.ActionLogo:
		c.deps.Browser.ClickLogo()
		return nil
	case domain.ActionNavLink:
		index, err := strconv.Atoi(strings.TrimSpace(msg.Arg))
		if err != nil {
			return errors.NewValidationError("link index must be a number", "arg", msg.Arg)
		}
		return c.deps.Browser.FollowNavLink(index)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, c.action)
	}
}
