package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Engine converts Markdown bodies to HTML fragments.
//
// An Engine is stateless between calls and may be reused for every document of a run.
type Engine struct {
	md goldmark.Markdown
}

// NewEngine builds an engine with tables, strikethrough, task lists,
// autolinks, footnotes, definition lists, smart punctuation and heading
// attributes enabled. Raw HTML in the source is passed through.
func NewEngine() *Engine {
	return &Engine{md: goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			extension.DefinitionList,
			extension.Typographer,
		),
		goldmark.WithParserOptions(
			parser.WithHeadingAttribute(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)}
}

// Render converts body and appends the HTML to dst.
//
// When hardBreaks is set every soft line break becomes a hard break. This
// mapping is applied before hook sees any event. hook is called once per
// link or image, in document order; a nil hook behaves like Identity.
func (e *Engine) Render(dst *bytes.Buffer, body []byte, hardBreaks bool, hook Transformer) error {
	if hook == nil {
		hook = Identity
	}

	root := e.md.Parser().Parse(text.NewReader(body))

	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *gmast.Text:
			if hardBreaks && node.SoftLineBreak() {
				node.SetSoftLineBreak(false)
				node.SetHardLineBreak(true)
			}
		case *gmast.Link:
			// Reference-style links are resolved to Link nodes by the parser.
			in := Link{
				Kind:        LinkKindInline,
				Destination: string(node.Destination),
				Title:       string(node.Title),
			}
			node.Destination, node.Title = apply(hook, in, node.Destination, node.Title)
		case *gmast.Image:
			in := Link{
				Kind:        LinkKindImage,
				Destination: string(node.Destination),
				Title:       string(node.Title),
			}
			node.Destination, node.Title = apply(hook, in, node.Destination, node.Title)
		}
		return gmast.WalkContinue, nil
	})

	if err := e.md.Renderer().Render(dst, body, root); err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	return nil
}

// apply runs hook on in and returns the new destination and title. Fields the
// hook left unchanged keep their original slices, so an absent title stays
// nil and is not rendered.
func apply(hook Transformer, in Link, dest, title []byte) ([]byte, []byte) {
	out := hook.Transform(in)
	if out.Destination != in.Destination {
		dest = []byte(out.Destination)
	}
	if out.Title != in.Title {
		title = nil
		if out.Title != "" {
			title = []byte(out.Title)
		}
	}
	return dest, title
}
