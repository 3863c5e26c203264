package app

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/kapu/meal-browser-go/internal/command"
	"github.com/kapu/meal-browser-go/internal/constants"
	"github.com/kapu/meal-browser-go/internal/domain"
	"github.com/kapu/meal-browser-go/internal/form"
	"github.com/kapu/meal-browser-go/internal/nav"
	"github.com/kapu/meal-browser-go/internal/service/contact"
	"github.com/kapu/meal-browser-go/internal/util"
	"github.com/kapu/meal-browser-go/internal/view"
	"github.com/kapu/meal-browser-go/pkg/errors"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

// MealSource is the remote data the session browses. ok=false means the
// response was absent.
type MealSource interface {
	SearchByName(ctx context.Context, term string) ([]domain.MealSummary, bool)
	SearchByFirstLetter(ctx context.Context, letter string) ([]domain.MealSummary, bool)
	FilterByCategory(ctx context.Context, category string) ([]domain.MealSummary, bool)
	FilterByArea(ctx context.Context, area string) ([]domain.MealSummary, bool)
	FilterByIngredient(ctx context.Context, ingredient string) ([]domain.MealSummary, bool)
	LookupMeal(ctx context.Context, id string) *domain.MealDetail
	ListCategories(ctx context.Context) ([]domain.Category, bool)
	ListAreas(ctx context.Context) ([]domain.Area, bool)
	ListIngredients(ctx context.Context) ([]domain.Ingredient, bool)
}

type SessionOptions struct {
	DropStaleResponses bool
	Contacts           contact.Store // nil: submissions are only logged
}

// Session is the state behind one open browser tab.
type Session struct {
	id         string
	surface    Surface
	meals      MealSource
	validator  *form.Validator
	nav        *nav.Controller
	contacts   contact.Store
	dispatcher command.Dispatcher
	logger     *zap.Logger
	dropStale  bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     conc.WaitGroup

	seq atomic.Uint64
	// renderMu orders content writes against the sequence check
	renderMu sync.Mutex

	loadingMu sync.Mutex
	loading   int

	formMu     sync.Mutex
	formValues form.Values
}

func NewSession(parent context.Context, surface Surface, meals MealSource, logger *zap.Logger, opts SessionOptions) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.NewString()
	ctx, cancel := context.WithCancel(parent)

	s := &Session{
		id:         id,
		surface:    surface,
		meals:      meals,
		validator:  form.NewValidator(),
		nav:        nav.NewController(),
		contacts:   opts.Contacts,
		logger:     logger.With(zap.String("session", id)),
		dropStale:  opts.DropStaleResponses,
		ctx:        ctx,
		cancel:     cancel,
		formValues: form.Values{},
	}

	registry := command.NewRegistry()
	command.RegisterAll(registry, &command.Dependencies{Browser: s, Logger: s.logger})
	s.dispatcher = command.NewSequentialDispatcher(registry, nil)

	return s
}

func (s *Session) ID() string {
	return s.id
}

// Bootstrap forces the panel closed and starts the initial unfiltered search
// in the background. The page overlay is hidden once the search settles,
// whether or not it succeeded.
func (s *Session) Bootstrap() {
	s.applyNav(s.nav.Close())

	token := s.seq.Add(1)
	s.wg.Go(func() {
		defer s.hideOverlay()
		s.runMeals(token, func(ctx context.Context) ([]domain.MealSummary, bool) {
			return s.meals.SearchByName(ctx, "")
		})
	})
}

// Handle dispatches one client message. Errors are logged, never fatal.
func (s *Session) Handle(msg *domain.ClientMessage) {
	if _, err := s.dispatcher.Publish(s.ctx, msg); err != nil {
		if errors.IsValidation(err) {
			s.logger.Info("Client action rejected",
				zap.String("action", msg.Action),
				zap.Error(err),
			)
			return
		}
		s.logger.Warn("Client action failed",
			zap.String("action", msg.Action),
			zap.String("arg", msg.Arg),
			zap.Error(err),
		)
	}
}

// Wait blocks until every background operation has finished.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Close cancels in-flight fetches and waits for them to return.
func (s *Session) Close() {
	s.cancel()
	s.wg.Wait()
}

func (s *Session) SearchByName(term string) {
	s.spawnMeals(func(ctx context.Context) ([]domain.MealSummary, bool) {
		return s.meals.SearchByName(ctx, term)
	})
}

// SearchByFirstLetter searches by the first character of letter, "a" when
// letter is empty.
func (s *Session) SearchByFirstLetter(letter string) {
	first := util.FirstRune(letter)
	if first == "" {
		first = constants.DefaultLetter
	}
	s.spawnMeals(func(ctx context.Context) ([]domain.MealSummary, bool) {
		return s.meals.SearchByFirstLetter(ctx, first)
	})
}

func (s *Session) ShowCategory(category string) {
	s.spawnMeals(func(ctx context.Context) ([]domain.MealSummary, bool) {
		return s.meals.FilterByCategory(ctx, category)
	})
}

func (s *Session) ShowArea(area string) {
	s.spawnMeals(func(ctx context.Context) ([]domain.MealSummary, bool) {
		return s.meals.FilterByArea(ctx, area)
	})
}

func (s *Session) ShowIngredient(ingredient string) {
	s.spawnMeals(func(ctx context.Context) ([]domain.MealSummary, bool) {
		return s.meals.FilterByIngredient(ctx, ingredient)
	})
}

func (s *Session) ShowMeal(id string) {
	s.spawn(func(ctx context.Context) (view.Node, bool) {
		meal := s.meals.LookupMeal(ctx, id)
		if meal == nil {
			return view.Message(constants.Messages.NoMealDetails), true
		}
		return view.MealDetail(*meal), true
	})
}

func (s *Session) ShowCategories() {
	s.replace(RegionSearch, view.Fragment())
	s.spawn(func(ctx context.Context) (view.Node, bool) {
		categories, ok := s.meals.ListCategories(ctx)
		if !ok {
			s.logger.Warn("Category list unavailable")
			return view.Node{}, false
		}
		return view.Categories(categories), true
	})
}

func (s *Session) ShowAreas() {
	s.replace(RegionSearch, view.Fragment())
	s.spawn(func(ctx context.Context) (view.Node, bool) {
		areas, ok := s.meals.ListAreas(ctx)
		if !ok {
			s.logger.Warn("Area list unavailable")
			return view.Node{}, false
		}
		return view.Areas(areas), true
	})
}

// ShowIngredients lists the first ingredients of the full ingredient list.
func (s *Session) ShowIngredients() {
	s.replace(RegionSearch, view.Fragment())
	s.spawn(func(ctx context.Context) (view.Node, bool) {
		ingredients, ok := s.meals.ListIngredients(ctx)
		if !ok {
			s.logger.Warn("Ingredient list unavailable")
			return view.Node{}, false
		}
		if len(ingredients) > constants.DisplayLimits.BrowseIngredients {
			ingredients = ingredients[:constants.DisplayLimits.BrowseIngredients]
		}
		return view.Ingredients(ingredients), true
	})
}

// ShowSearch shows the search inputs and clears the results.
func (s *Session) ShowSearch() {
	s.replace(RegionSearch, view.SearchInputs())
	s.replaceContent(view.Fragment())
}

// ShowContact shows the contact form with a fresh validation state.
func (s *Session) ShowContact() {
	s.formMu.Lock()
	s.formValues = form.Values{}
	s.formMu.Unlock()

	s.replace(RegionSearch, view.Fragment())
	s.replaceContent(view.ContactForm())
}

func (s *Session) ToggleNav() {
	s.applyNav(s.nav.Toggle())
}

// FollowNavLink opens the view behind link index and closes the panel.
func (s *Session) FollowNavLink(index int) error {
	target, err := nav.Resolve(index)
	if err != nil {
		return errors.NewValidationError(err.Error(), "arg", index)
	}

	switch target {
	case nav.TargetSearch:
		s.ShowSearch()
	case nav.TargetCategories:
		s.ShowCategories()
	case nav.TargetAreas:
		s.ShowAreas()
	case nav.TargetIngredients:
		s.ShowIngredients()
	case nav.TargetContact:
		s.ShowContact()
	}

	s.applyNav(s.nav.Close())
	return nil
}

// ClickLogo clears the search inputs, lists every meal and closes the panel.
func (s *Session) ClickLogo() {
	s.replace(RegionSearch, view.Fragment())
	s.SearchByName("")
	s.applyNav(s.nav.Close())
}

// UpdateForm merges values into the form and re-validates every field.
func (s *Session) UpdateForm(values map[string]string) {
	result := s.validator.Validate(s.mergeForm(values))
	if err := s.surface.ApplyForm(result); err != nil {
		s.logger.Debug("Failed to push form state", zap.Error(err))
	}
}

// SubmitForm re-validates the form and stores the submission when every
// field is valid.
func (s *Session) SubmitForm(values map[string]string) error {
	current := s.mergeForm(values)
	result := s.validator.Validate(current)
	if !result.SubmitEnabled {
		if err := s.surface.ApplyForm(result); err != nil {
			s.logger.Debug("Failed to push form state", zap.Error(err))
		}
		for _, state := range result.Fields {
			if !state.Valid {
				return errors.NewValidationError("contact form is not valid", state.Field.String(), "")
			}
		}
		return errors.NewValidationError("contact form is not valid", "", "")
	}

	submission, err := contact.NewSubmission(current)
	if err != nil {
		return err
	}

	s.spawn(func(ctx context.Context) (view.Node, bool) {
		if s.contacts == nil {
			s.logger.Info("Contact message received",
				zap.String("name", submission.Name),
				zap.String("email", submission.Email),
			)
		} else if err := s.contacts.Save(ctx, submission); err != nil {
			s.logger.Error("Failed to store contact message", zap.Error(err))
			return view.Node{}, false
		}
		return view.Message(constants.Messages.ContactSent), true
	})
	return nil
}

func (s *Session) mergeForm(values map[string]string) form.Values {
	s.formMu.Lock()
	defer s.formMu.Unlock()

	for key, value := range values {
		field := domain.FormField(key)
		if field.IsValid() {
			s.formValues[field] = value
		}
	}

	snapshot := make(form.Values, len(s.formValues))
	for k, v := range s.formValues {
		snapshot[k] = v
	}
	return snapshot
}

func (s *Session) spawnMeals(fetch func(ctx context.Context) ([]domain.MealSummary, bool)) {
	token := s.seq.Add(1)
	s.wg.Go(func() {
		s.runMeals(token, fetch)
	})
}

// runMeals renders a meal list, or the empty message when the list is empty
// or absent.
func (s *Session) runMeals(token uint64, fetch func(ctx context.Context) ([]domain.MealSummary, bool)) {
	s.run(token, func(ctx context.Context) (view.Node, bool) {
		meals, _ := fetch(ctx)
		if len(meals) == 0 {
			return view.Message(constants.Messages.NoMeals), true
		}
		return view.MealCards(meals), true
	})
}

// spawn runs a content operation in the background. The sequence number is
// taken before the goroutine starts so that operations are ordered by
// arrival.
func (s *Session) spawn(build func(ctx context.Context) (view.Node, bool)) {
	token := s.seq.Add(1)
	s.wg.Go(func() {
		s.run(token, build)
	})
}

func (s *Session) run(token uint64, build func(ctx context.Context) (view.Node, bool)) {
	s.acquireLoading()
	defer s.releaseLoading()

	node, ok := build(s.ctx)
	if !ok || s.ctx.Err() != nil {
		return
	}

	s.renderMu.Lock()
	defer s.renderMu.Unlock()
	if s.dropStale && s.seq.Load() != token {
		s.logger.Debug("Dropping stale response", zap.Uint64("seq", token))
		return
	}
	s.render(RegionContent, node)
}

// replaceContent swaps the content region synchronously and supersedes any
// operation still in flight.
func (s *Session) replaceContent(node view.Node) {
	s.renderMu.Lock()
	defer s.renderMu.Unlock()
	s.seq.Add(1)
	s.render(RegionContent, node)
}

func (s *Session) replace(region string, node view.Node) {
	s.render(region, node)
}

func (s *Session) render(region string, node view.Node) {
	markup, err := view.Render(node)
	if err != nil {
		s.logger.Error("Failed to render view", zap.String("region", region), zap.Error(err))
		return
	}
	if err := s.surface.Replace(region, markup); err != nil {
		s.logger.Debug("Failed to replace region", zap.String("region", region), zap.Error(err))
	}
}

func (s *Session) hideOverlay() {
	if err := s.surface.HideOverlay(); err != nil {
		s.logger.Debug("Failed to hide overlay", zap.Error(err))
	}
}

func (s *Session) applyNav(state nav.State) {
	if err := s.surface.ApplyNav(state); err != nil {
		s.logger.Debug("Failed to push nav state", zap.Error(err))
	}
}

// The loading indicator stays visible while any operation is in flight.
func (s *Session) acquireLoading() {
	s.loadingMu.Lock()
	defer s.loadingMu.Unlock()
	s.loading++
	if s.loading == 1 {
		s.setLoading(true)
	}
}

func (s *Session) releaseLoading() {
	s.loadingMu.Lock()
	defer s.loadingMu.Unlock()
	s.loading--
	if s.loading == 0 {
		s.setLoading(false)
	}
}

func (s *Session) setLoading(visible bool) {
	if err := s.surface.SetLoading(visible); err != nil {
		s.logger.Debug("Failed to push loading state", zap.Error(err))
	}
}
