package command

import (
	"context"
	"errors"
	"testing"

	"github.com/kapu/meal-browser-go/internal/domain"
	"go.uber.org/zap"
)

type fakeBrowser struct {
	calls  []string
	values map[string]string
	navErr error
}

func (f *fakeBrowser) SearchByName(term string)          { f.calls = append(f.calls, "name:"+term) }
func (f *fakeBrowser) SearchByFirstLetter(letter string) { f.calls = append(f.calls, "letter:"+letter) }
func (f *fakeBrowser) ShowCategory(category string)      { f.calls = append(f.calls, "category:"+category) }
func (f *fakeBrowser) ShowArea(area string)              { f.calls = append(f.calls, "area:"+area) }
func (f *fakeBrowser) ShowIngredient(ingredient string) {
	f.calls = append(f.calls, "ingredient:"+ingredient)
}
func (f *fakeBrowser) ShowMeal(id string) { f.calls = append(f.calls, "meal:"+id) }
func (f *fakeBrowser) ToggleNav()         { f.calls = append(f.calls, "toggle") }
func (f *fakeBrowser) ClickLogo()         { f.calls = append(f.calls, "logo") }

func (f *fakeBrowser) FollowNavLink(index int) error {
	f.calls = append(f.calls, "link:"+string(rune('0'+index)))
	return f.navErr
}

func (f *fakeBrowser) UpdateForm(values map[string]string) {
	f.calls = append(f.calls, "input")
	f.values = values
}

func (f *fakeBrowser) SubmitForm(values map[string]string) error {
	f.calls = append(f.calls, "submit")
	f.values = values
	return nil
}

func newTestDispatcher() (Dispatcher, *fakeBrowser, *Registry) {
	browser := &fakeBrowser{}
	registry := NewRegistry()
	RegisterAll(registry, &Dependencies{Browser: browser, Logger: zap.NewNop()})
	return NewSequentialDispatcher(registry, nil), browser, registry
}

func TestRegisterAll(t *testing.T) {
	_, _, registry := newTestDispatcher()
	if registry.Count() != 11 {
		t.Fatalf("expected 11 commands, got %d", registry.Count())
	}
}

func TestDispatchRoutesActions(t *testing.T) {
	dispatcher, browser, _ := newTestDispatcher()

	msgs := []*domain.ClientMessage{
		{Action: domain.ActionSearchName, Arg: "Arrabiata"},
		{Action: domain.ActionSearchLetter, Arg: "b"},
		{Action: domain.ActionCategory, Arg: "Beef"},
		{Action: domain.ActionArea, Arg: "Italian"},
		{Action: domain.ActionIngredient, Arg: "Chicken"},
		{Action: domain.ActionMeal, Arg: "52772"},
		{Action: domain.ActionNavToggle},
		{Action: domain.ActionNavLink, Arg: "3"},
		{Action: domain.ActionLogo},
	}

	executed, err := dispatcher.Publish(context.Background(), msgs...)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if executed != len(msgs) {
		t.Fatalf("expected %d executed, got %d", len(msgs), executed)
	}

	want := []string{
		"name:Arrabiata", "letter:b", "category:Beef", "area:Italian",
		"ingredient:Chicken", "meal:52772", "toggle", "link:3", "logo",
	}
	if len(browser.calls) != len(want) {
		t.Fatalf("expected calls %v, got %v", want, browser.calls)
	}
	for i := range want {
		if browser.calls[i] != want[i] {
			t.Fatalf("call %d = %q, want %q", i, browser.calls[i], want[i])
		}
	}
}

func TestDispatchIsCaseInsensitiveAndKeepsArg(t *testing.T) {
	dispatcher, browser, _ := newTestDispatcher()

	if _, err := dispatcher.Publish(context.Background(), &domain.ClientMessage{Action: "  Search-NAME ", Arg: " Beef "}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(browser.calls) != 1 || browser.calls[0] != "name: Beef " {
		t.Fatalf("unexpected calls %v", browser.calls)
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	dispatcher, browser, _ := newTestDispatcher()

	executed, err := dispatcher.Publish(context.Background(), &domain.ClientMessage{Action: "explode"})
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
	if executed != 0 || len(browser.calls) != 0 {
		t.Fatalf("unknown command must not execute anything")
	}
}

func TestDispatchSkipsEmptyActions(t *testing.T) {
	dispatcher, _, _ := newTestDispatcher()

	executed, err := dispatcher.Publish(context.Background(), nil, &domain.ClientMessage{Action: "  "})
	if err != nil || executed != 0 {
		t.Fatalf("expected nothing executed, got %d, %v", executed, err)
	}
}

func TestNavLinkRejectsNonNumericIndex(t *testing.T) {
	dispatcher, browser, _ := newTestDispatcher()

	if _, err := dispatcher.Publish(context.Background(), &domain.ClientMessage{Action: domain.ActionNavLink, Arg: "two"}); err == nil {
		t.Fatalf("expected error for non-numeric link index")
	}
	if len(browser.calls) != 0 {
		t.Fatalf("expected no browser calls, got %v", browser.calls)
	}
}

func TestFormValuesAreCloned(t *testing.T) {
	dispatcher, browser, _ := newTestDispatcher()

	values := map[string]string{"name": "Jane"}
	if _, err := dispatcher.Publish(context.Background(), &domain.ClientMessage{Action: domain.ActionFormInput, Values: values}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	browser.values["name"] = "changed"
	if values["name"] != "Jane" {
		t.Fatalf("handler mutated the caller's values")
	}
}
