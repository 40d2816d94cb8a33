package render

import (
	_ "embed"
	"html/template"
	"io"
)

//go:embed template.html
var pageTemplate string

// Templater wraps a rendered body into a complete HTML document.
type Templater interface {
	Render(w io.Writer, ctx Context, body string) error
}

// HTMLTemplater renders documents with the built-in page template.
type HTMLTemplater struct {
	tmpl *template.Template
}

// NewHTMLTemplater parses the built-in page template.
func NewHTMLTemplater() *HTMLTemplater {
	return &HTMLTemplater{tmpl: template.Must(template.New("page").Parse(pageTemplate))}
}

type page struct {
	Title    string
	HasTitle bool
	Lang     string
	CSS      []string
	Script   []string
	Head     template.HTML
	Body     template.HTML
}

// Render writes the document for ctx and body to w.
// Head and body are trusted HTML and are emitted without escaping.
func (t *HTMLTemplater) Render(w io.Writer, ctx Context, body string) error {
	return t.tmpl.Execute(w, page{
		Title:    ctx.Title,
		HasTitle: ctx.HasTitle,
		Lang:     ctx.Lang,
		CSS:      ctx.CSS,
		Script:   ctx.Script,
		Head:     template.HTML(ctx.Head), // #nosec G203 -- raw head injection is the documented purpose
		Body:     template.HTML(body),     // #nosec G203 -- rendered Markdown output
	})
}
