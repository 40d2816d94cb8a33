package render

import (
	"git.home.luguber.info/inful/mdhtml/internal/frontmatter"
	"git.home.luguber.info/inful/mdhtml/internal/util/sets"
)

// Merge resolves a document's metadata against the global options.
//
// The steps run in a fixed order and the resulting stylesheet order depends on it:
// normalize.css is moved to the front, global stylesheets follow the document's
// own, and sakura.css is appended last unless it was already present.
func Merge(meta frontmatter.Metadata, opts Options) Context {
	ctx := Context{
		HardBreaks: opts.HardBreaks,
		Head:       meta.Head,
	}
	if meta.HardBreaks != nil {
		ctx.HardBreaks = *meta.HardBreaks
	}
	if meta.Title != nil {
		ctx.Title = *meta.Title
		ctx.HasTitle = true
	}

	css := sets.NewOrdered(meta.CSS...)
	if opts.NormalizeCSS {
		css.Insert(NormalizeCSSURL)
		css.MoveToFront(NormalizeCSSURL)
	}
	css.Extend(opts.CSS...)

	script := sets.NewOrdered(meta.Script...)
	script.Extend(opts.Script...)

	if ctx.Head == "" {
		ctx.Head = opts.Head
	}

	if meta.Lang != nil {
		ctx.Lang = *meta.Lang
	} else {
		ctx.Lang = opts.Lang
	}

	if opts.SakuraCSS {
		css.Insert(SakuraCSSURL)
	}

	ctx.CSS = css.Values()
	ctx.Script = script.Values()
	return ctx
}
