package server

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/kapu/meal-browser-go/internal/app"
	"github.com/kapu/meal-browser-go/internal/nav"
)

//go:embed templates/index.html.tmpl
var templateFS embed.FS

type pageLink struct {
	Index int
	Label string
}

type pageData struct {
	Links         []pageLink
	ContentRegion string
	SearchRegion  string
}

// page is the shell document every session draws into.
type page struct {
	tmpl *template.Template
	data pageData
}

func newPage() (*page, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	links := make([]pageLink, len(nav.Links))
	for i, l := range nav.Links {
		links[i] = pageLink{Index: i, Label: l.Label}
	}

	return &page{
		tmpl: tmpl,
		data: pageData{
			Links:         links,
			ContentRegion: app.RegionContent,
			SearchRegion:  app.RegionSearch,
		},
	}, nil
}

func (p *page) render(w io.Writer) error {
	return p.tmpl.Execute(w, p.data)
}
