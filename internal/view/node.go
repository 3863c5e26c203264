// Package view maps meal data to declarative view descriptions. Builders are
// pure: they take typed records and return a Node tree with no reference to
// any rendering surface. Render turns a tree into markup.
package view

import "github.com/kapu/meal-browser-go/internal/domain"

// Action names carried by clickable nodes. The browser shim sends the name
// and argument back when the node is clicked.
const (
	ActionMeal         = domain.ActionMeal
	ActionCategory     = domain.ActionCategory
	ActionArea         = domain.ActionArea
	ActionIngredient   = domain.ActionIngredient
	ActionSearchName   = domain.ActionSearchName
	ActionSearchLetter = domain.ActionSearchLetter
	ActionFormInput    = domain.ActionFormInput
	ActionFormSubmit   = domain.ActionFormSubmit
)

type Attr struct {
	Key string
	Val string
}

// Action is the event a node triggers when clicked.
type Action struct {
	Name string
	Arg  string
}

// Node is one element of a view description. A Node with an empty Tag is a
// fragment: only its children are rendered.
type Node struct {
	Tag      string
	Class    string
	Attrs    []Attr
	Text     string
	Action   *Action
	Children []Node
}

// El builds an element node.
func El(tag, class string, children ...Node) Node {
	return Node{Tag: tag, Class: class, Children: children}
}

// Fragment groups nodes without a wrapping element.
func Fragment(children ...Node) Node {
	return Node{Children: children}
}

// TextEl builds an element whose only content is text.
func TextEl(tag, class, text string) Node {
	return Node{Tag: tag, Class: class, Text: text}
}

// With returns a copy of n with extra attributes appended.
func (n Node) With(attrs ...Attr) Node {
	n.Attrs = append(append([]Attr(nil), n.Attrs...), attrs...)
	return n
}

// On returns a copy of n that triggers action when clicked.
func (n Node) On(name, arg string) Node {
	n.Action = &Action{Name: name, Arg: arg}
	return n
}

// Attr returns the value of key and whether it is set.
func (n Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Find returns every node in the tree (n included) whose class list equals
// class, in document order.
func (n Node) Find(class string) []Node {
	var out []Node
	var walk func(Node)
	walk = func(cur Node) {
		if cur.Class == class {
			out = append(out, cur)
		}
		for _, child := range cur.Children {
			walk(child)
		}
	}
	walk(n)
	return out
}

// Message is the plain paragraph used for empty results and notices.
func Message(text string) Node {
	return TextEl("p", "", text)
}
