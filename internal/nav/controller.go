package nav

import (
	"fmt"
	"sync"
	"time"

	"github.com/kapu/meal-browser-go/internal/constants"
)

// Target is the view a navigation link leads to.
type Target string

const (
	TargetSearch      Target = "search"
	TargetCategories  Target = "categories"
	TargetAreas       Target = "areas"
	TargetIngredients Target = "ingredients"
	TargetContact     Target = "contact"
)

// Link is one entry of the side panel, in display order.
type Link struct {
	Label  string
	Target Target
}

// Links is the fixed, ordered link list. A link's position decides its target.
var Links = []Link{
	{Label: "Search", Target: TargetSearch},
	{Label: "Categories", Target: TargetCategories},
	{Label: "Area", Target: TargetAreas},
	{Label: "Ingredients", Target: TargetIngredients},
	{Label: "Contact Us", Target: TargetContact},
}

// LinkStyle is the inline style a link should carry in the current state.
type LinkStyle struct {
	Top        string        `json:"top"`
	Transition string        `json:"transition"`
	Delay      time.Duration `json:"-"`
	DelayMS    int64         `json:"delayMs"`
}

// State describes the panel's visual state.
type State struct {
	Open       bool        `json:"open"`
	PanelClass string      `json:"panelClass"`
	IconClass  string      `json:"iconClass"`
	Links      []LinkStyle `json:"links"`
}

// Controller owns the open/closed flag of one session's side panel.
type Controller struct {
	mu   sync.Mutex
	open bool
}

// NewController returns a controller in the closed state.
func NewController() *Controller {
	return &Controller{}
}

// Toggle flips the panel and returns the new state.
func (c *Controller) Toggle() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = !c.open
	return stateFor(c.open)
}

// Close forces the panel closed.
func (c *Controller) Close() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = false
	return stateFor(false)
}

// Resolve maps a link position to its target.
func Resolve(index int) (Target, error) {
	if index < 0 || index >= len(Links) {
		return "", fmt.Errorf("navigation link %d out of range", index)
	}
	return Links[index].Target, nil
}

func stateFor(open bool) State {
	anim := constants.NavAnimation
	state := State{
		Open:  open,
		Links: make([]LinkStyle, len(Links)),
	}

	if open {
		state.IconClass = anim.IconOpen
	} else {
		state.PanelClass = anim.PanelClosed
		state.IconClass = anim.IconClosed
	}

	for i := range Links {
		style := LinkStyle{Transition: anim.Transition, Top: anim.ClosedTop}
		if open {
			// staggered reveal: later links start later
			style.Top = anim.OpenTop
			style.Delay = time.Duration(i+anim.StepOffset) * anim.StepDelay
			style.DelayMS = style.Delay.Milliseconds()
		}
		state.Links[i] = style
	}
	return state
}
