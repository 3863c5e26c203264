package domain

// Client actions carried over the session socket.
const (
	ActionSearchName   = "search-name"
	ActionSearchLetter = "search-letter"
	ActionCategory     = "category"
	ActionArea         = "area"
	ActionIngredient   = "ingredient"
	ActionMeal         = "meal"
	ActionNavToggle    = "nav-toggle"
	ActionNavLink      = "nav-link"
	ActionLogo         = "logo"
	ActionFormInput    = "form-input"
	ActionFormSubmit   = "form-submit"
)

// ClientMessage is one event sent by the browser shim.
type ClientMessage struct {
	Action string            `json:"action"`
	Arg    string            `json:"arg"`
	Values map[string]string `json:"values,omitempty"`
}
