package render

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/mchmarny/treemenu/pkg/menu"
)

const layout = `
{{define "page"}}<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<nav>{{template "menu" .Menu}}</nav>
<main><h1>{{.Title}}</h1></main>
</body>
</html>
{{end}}

{{define "menu"}}{{with .}}{{if not .Empty}}<ul class="menu" data-menu="{{.Menu.Name}}">
{{range .Tree}}{{template "node" .}}{{end}}</ul>
{{end}}{{end}}{{end}}

{{define "node"}}<li class="{{classes .}}"><a href="{{href .Item}}">{{.Item.Title}}</a>
{{if .Children}}<ul>
{{range .Children}}{{template "node" .}}{{end}}</ul>
{{end}}</li>
{{end}}
`

// Page is the data of a rendered page.
type Page struct {
	// Title of the page
	Title string

	// Menu is the menu drawn in the page navigation, may be nil.
	Menu *menu.Result
}

// Renderer draws pages with nested navigation markup.
type Renderer struct {
	tmpl *template.Template
}

// New creates a Renderer resolving item route names with r.
func New(r menu.Reverser) (*Renderer, error) {
	t, err := template.New("layout").Funcs(template.FuncMap{
		"href": func(it *menu.Item) string {
			return it.Href(r)
		},
		"classes": nodeClasses,
	}).Parse(layout)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	return &Renderer{tmpl: t}, nil
}

// Page writes the full page to w.
func (r *Renderer) Page(w io.Writer, p Page) error {
	if err := r.tmpl.ExecuteTemplate(w, "page", p); err != nil {
		return fmt.Errorf("failed to render page %q: %w", p.Title, err)
	}

	return nil
}

// Menu writes only the menu markup to w. Nothing is written for an empty result.
func (r *Renderer) Menu(w io.Writer, res *menu.Result) error {
	if err := r.tmpl.ExecuteTemplate(w, "menu", res); err != nil {
		return fmt.Errorf("failed to render menu: %w", err)
	}

	return nil
}

func nodeClasses(n *menu.Node) string {
	c := []string{"menu-item"}
	if n.IsActive {
		c = append(c, "active")
	}
	if n.IsParentActive {
		c = append(c, "open")
	}

	return strings.Join(c, " ")
}
