package format

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"

	foundationerrors "git.home.luguber.info/inful/mdhtml/internal/foundation/errors"
)

// Formatter reformats complete HTML documents. It is not safe for concurrent
// use because it reuses its output buffer.
type Formatter struct {
	opts Options
	buf  bytes.Buffer
}

// New validates opts and returns a formatter using them.
func New(opts Options) (*Formatter, error) {
	if err := opts.Validate(); err != nil {
		return nil, foundationerrors.FormatError(err)
	}
	return &Formatter{opts: opts}, nil
}

// Options returns the formatter configuration.
func (f *Formatter) Options() Options { return f.opts }

// Format parses src as an HTML document and returns it pretty-printed.
func (f *Formatter) Format(src []byte) ([]byte, error) {
	doc, err := html.Parse(bytes.NewReader(src))
	if err != nil {
		return nil, foundationerrors.FormatError(err)
	}

	if f.opts.RemoveComments {
		removeComments(doc)
	}
	if f.opts.JoinClasses || f.opts.JoinStyles {
		joinAttributes(doc, f.opts.JoinClasses, f.opts.JoinStyles)
	}
	if f.opts.MergeDivs {
		mergeNested(doc, "div")
	}
	if f.opts.MergeSpans {
		mergeNested(doc, "span")
	}

	f.buf.Reset()
	p := newPrinter(&f.buf, &f.opts)
	if err := p.children(doc, 0); err != nil {
		return nil, foundationerrors.FormatError(err)
	}

	out := f.buf.String()
	if eol := f.opts.EOL.Sequence(); eol != "\n" {
		out = strings.ReplaceAll(out, "\n", eol)
	}
	return []byte(out), nil
}
