package app

import (
	"github.com/kapu/meal-browser-go/internal/form"
	"github.com/kapu/meal-browser-go/internal/nav"
)

// Region names of the shell page.
const (
	RegionContent = "content"
	RegionSearch  = "search"
)

// Surface is the page a session draws on. Implementations must be safe for
// concurrent use.
type Surface interface {
	Replace(region, markup string) error
	SetLoading(visible bool) error
	HideOverlay() error
	ApplyNav(state nav.State) error
	ApplyForm(result form.Result) error
}
