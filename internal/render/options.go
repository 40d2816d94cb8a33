// Package render merges per-document metadata with the global rendering
// options and wraps rendered Markdown bodies into complete HTML documents.
package render

// Well-known stylesheet URLs selected by the --normalize-css and --sakura-css flags.
const (
	NormalizeCSSURL = "https://unpkg.com/normalize.css@8.0.1/normalize.css"
	SakuraCSSURL    = "https://cdn.jsdelivr.net/npm/sakura.css/css/sakura.css"
)

// Options are the global rendering options shared by every document of a run.
type Options struct {
	// Lang is the default lang attribute of <html>; empty means unset.
	Lang string
	// CSS and Script are appended to every document, in command-line order.
	CSS    []string
	Script []string
	// NormalizeCSS puts normalize.css first in every document.
	NormalizeCSS bool
	// SakuraCSS appends sakura.css to every document.
	SakuraCSS bool
	// Head is raw HTML injected into <head> when a document declares none.
	Head string
	// HardBreaks renders soft line breaks as <br> unless a document overrides it.
	HardBreaks bool
}

// Context is the fully resolved set of presentation options for one document.
type Context struct {
	Title      string
	HasTitle   bool
	Lang       string
	CSS        []string
	Script     []string
	Head       string
	HardBreaks bool
}
