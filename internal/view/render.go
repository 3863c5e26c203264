package view

import (
	"bytes"
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Render converts a view description into markup.
func Render(n Node) (string, error) {
	var buf bytes.Buffer
	for _, node := range ToHTML(n) {
		if err := html.Render(&buf, node); err != nil {
			return "", fmt.Errorf("render view: %w", err)
		}
	}
	return buf.String(), nil
}

// ToHTML builds the html.Node forest for n. A fragment yields its children.
func ToHTML(n Node) []*html.Node {
	if n.Tag == "" {
		var out []*html.Node
		if n.Text != "" {
			out = append(out, &html.Node{Type: html.TextNode, Data: n.Text})
		}
		for _, child := range n.Children {
			out = append(out, ToHTML(child)...)
		}
		return out
	}

	el := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
	}
	if n.Class != "" {
		el.Attr = append(el.Attr, html.Attribute{Key: "class", Val: n.Class})
	}
	for _, a := range n.Attrs {
		el.Attr = append(el.Attr, html.Attribute{Key: a.Key, Val: a.Val})
	}
	if n.Action != nil {
		el.Attr = append(el.Attr,
			html.Attribute{Key: "data-action", Val: n.Action.Name},
			html.Attribute{Key: "data-arg", Val: n.Action.Arg},
		)
	}
	if n.Text != "" {
		el.AppendChild(&html.Node{Type: html.TextNode, Data: n.Text})
	}
	for _, child := range n.Children {
		for _, c := range ToHTML(child) {
			el.AppendChild(c)
		}
	}
	return []*html.Node{el}
}
