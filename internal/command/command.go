package command

import (
	"context"

	"github.com/kapu/meal-browser-go/internal/domain"
	"go.uber.org/zap"
)

type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, msg *domain.ClientMessage) error
}

// Browser is the set of session operations commands drive. Content
// operations return immediately and finish in the background.
type Browser interface {
	SearchByName(term string)
	SearchByFirstLetter(letter string)
	ShowCategory(category string)
	ShowArea(area string)
	ShowIngredient(ingredient string)
	ShowMeal(id string)
	ToggleNav()
	FollowNavLink(index int) error
	ClickLogo()
	UpdateForm(values map[string]string)
	SubmitForm(values map[string]string) error
}

type Dependencies struct {
	Browser Browser
	Logger  *zap.Logger
}

// Dispatcher delivers client messages to their commands.
type Dispatcher interface {
	Publish(ctx context.Context, msgs ...*domain.ClientMessage) (int, error)
}

// RegisterAll registers every browser command on registry.
func RegisterAll(registry *Registry, deps *Dependencies) {
	registry.Register(NewSearchCommand(deps, domain.ActionSearchName))
	registry.Register(NewSearchCommand(deps, domain.ActionSearchLetter))
	registry.Register(NewFilterCommand(deps, domain.ActionCategory))
	registry.Register(NewFilterCommand(deps, domain.ActionArea))
	registry.Register(NewFilterCommand(deps, domain.ActionIngredient))
	registry.Register(NewMealCommand(deps))
	registry.Register(NewNavCommand(deps, domain.ActionNavToggle))
	registry.Register(NewNavCommand(deps, domain.ActionNavLink))
	registry.Register(NewNavCommand(deps, domain.ActionLogo))
	registry.Register(NewFormCommand(deps, domain.ActionFormInput))
	registry.Register(NewFormCommand(deps, domain.ActionFormSubmit))
}
