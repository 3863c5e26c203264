package constants

import "time"

var APIConfig = struct {
	MealDBBaseURL string
	MealDBTimeout time.Duration
}{
	MealDBBaseURL: "https://www.themealdb.com/api/json/v1/1",
	MealDBTimeout: 0, // no client timeout, same as a browser fetch
}

// Endpoints are relative to APIConfig.MealDBBaseURL.
var Endpoints = struct {
	Search     string
	Filter     string
	Lookup     string
	List       string
	Categories string
}{
	Search:     "/search.php",
	Filter:     "/filter.php",
	Lookup:     "/lookup.php",
	List:       "/list.php",
	Categories: "/categories.php",
}

var DisplayLimits = struct {
	IngredientSlots   int
	BrowseIngredients int
	DescriptionWords  int
}{
	IngredientSlots:   20,
	BrowseIngredients: 20,
	DescriptionWords:  20,
}

var Messages = struct {
	NoMeals       string
	NoMealDetails string
	ContactSent   string
}{
	NoMeals:       "No meals found.",
	NoMealDetails: "No meal details found.",
	ContactSent:   "Thanks! Your message has been received.",
}

// DefaultLetter is used when search-by-first-letter gets an empty input.
const DefaultLetter = "a"

var NavAnimation = struct {
	Transition  string
	StepDelay   time.Duration
	StepOffset  int
	OpenTop     string
	ClosedTop   string
	IconOpen    string
	IconClosed  string
	PanelClosed string
}{
	Transition:  "top 0.5s",
	StepDelay:   100 * time.Millisecond,
	StepOffset:  2,
	OpenTop:     "0",
	ClosedTop:   "300px",
	IconOpen:    "fa-x",
	IconClosed:  "fa-align-justify",
	PanelClosed: "closed",
}

var CircuitBreakerConfig = struct {
	FailureThreshold int
	ResetTimeout     time.Duration
}{
	FailureThreshold: 5,
	ResetTimeout:     30 * time.Second,
}

var CacheTTL = struct {
	Responses time.Duration
}{
	Responses: 10 * time.Minute,
}

var WebSocketConfig = struct {
	WriteTimeout   time.Duration
	PingInterval   time.Duration
	PongWait       time.Duration
	ReadLimitBytes int64
}{
	WriteTimeout:   10 * time.Second,
	PingInterval:   25 * time.Second,
	PongWait:       60 * time.Second,
	ReadLimitBytes: 64 * 1024,
}
