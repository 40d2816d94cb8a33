package format

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/mdhtml/internal/util/sets"
)

// inlineElements flow within a line of text. Every other element starts its
// own line.
var inlineElements = sets.New(
	atom.A, atom.Abbr, atom.Audio, atom.B, atom.Bdi, atom.Bdo, atom.Br,
	atom.Button, atom.Canvas, atom.Cite, atom.Code, atom.Data, atom.Del,
	atom.Dfn, atom.Em, atom.Embed, atom.I, atom.Iframe, atom.Img, atom.Input,
	atom.Ins, atom.Kbd, atom.Label, atom.Mark, atom.Math, atom.Meter,
	atom.Object, atom.Output, atom.Picture, atom.Progress, atom.Q, atom.Rp,
	atom.Rt, atom.Ruby, atom.S, atom.Samp, atom.Select, atom.Small,
	atom.Span, atom.Strong, atom.Sub, atom.Sup, atom.Svg, atom.Textarea,
	atom.Time, atom.U, atom.Var, atom.Video, atom.Wbr,
)

var voidElements = sets.New(
	atom.Area, atom.Base, atom.Br, atom.Col, atom.Embed, atom.Hr, atom.Img,
	atom.Input, atom.Keygen, atom.Link, atom.Meta, atom.Param, atom.Source,
	atom.Track, atom.Wbr,
)

// preservedElements keep their content byte for byte.
var preservedElements = sets.New(atom.Pre, atom.Textarea, atom.Listing, atom.Plaintext)

// rawTextElements hold unescaped text.
var rawTextElements = sets.New(
	atom.Iframe, atom.Noembed, atom.Noframes, atom.Noscript, atom.Script,
	atom.Style, atom.Xmp,
)

// reindentable are the raw text elements affected by indent-cdata.
var reindentable = sets.New(atom.Script, atom.Style)

type printer struct {
	w    *bytes.Buffer
	opts *Options
	unit string
}

func newPrinter(w *bytes.Buffer, opts *Options) *printer {
	unit := strings.Repeat(" ", opts.IndentSize)
	if opts.Tabs {
		unit = "\t"
	}
	return &printer{w: w, opts: opts, unit: unit}
}

func (p *printer) line(depth int, s string) {
	if s != "" {
		for range depth {
			p.w.WriteString(p.unit)
		}
		p.w.WriteString(s)
	}
	p.w.WriteByte('\n')
}

func isInline(n *html.Node) bool {
	switch n.Type {
	case html.TextNode, html.CommentNode:
		return true
	case html.ElementNode:
		return n.Namespace == "" && inlineElements.Has(n.DataAtom) ||
			n.Namespace != "" && n.Parent != nil && n.Parent.Namespace != ""
	default:
		return false
	}
}

// children prints the children of parent. Consecutive inline nodes form one
// run of text.
func (p *printer) children(parent *html.Node, depth int) error {
	var run []*html.Node
	flush := func() error {
		if len(run) == 0 {
			return nil
		}
		lines, err := p.inline(run)
		run = run[:0]
		if err != nil {
			return err
		}
		p.text(lines, depth, depth)
		return nil
	}

	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if isInline(c) {
			run = append(run, c)
			continue
		}
		if err := flush(); err != nil {
			return err
		}
		if err := p.block(c, depth); err != nil {
			return err
		}
	}
	return flush()
}

func (p *printer) block(n *html.Node, depth int) error {
	switch n.Type {
	case html.DoctypeNode:
		s, err := renderNode(n)
		if err != nil {
			return err
		}
		p.line(depth, s)
		return nil
	case html.ElementNode:
	default:
		return nil
	}

	switch {
	case preservedElements.Has(n.DataAtom):
		s, err := renderNode(n)
		if err != nil {
			return err
		}
		p.line(depth, s)
		return nil
	case rawTextElements.Has(n.DataAtom):
		return p.rawText(n, depth)
	case voidElements.Has(n.DataAtom):
		p.openTag(n, depth)
		return nil
	}

	expanded := p.opts.IndentAttributes && len(n.Attr) > 1
	if expanded || hasBlockChild(n) {
		p.openTag(n, depth)
		if err := p.children(n, depth+1); err != nil {
			return err
		}
		p.line(depth, closeTag(n))
		return nil
	}

	lines, err := p.inline(childNodes(n))
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		p.line(depth, openTag(n)+closeTag(n))
		return nil
	}
	lines[0][0] = openTag(n) + lines[0][0]
	last := lines[len(lines)-1]
	last[len(last)-1] += closeTag(n)
	p.text(lines, depth, depth+1)
	return nil
}

// rawText prints script, style and similar elements.
func (p *printer) rawText(n *html.Node, depth int) error {
	var content strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		content.WriteString(c.Data)
	}
	body := content.String()

	switch {
	case strings.TrimSpace(body) == "":
		p.line(depth, openTag(n)+closeTag(n))
	case p.opts.IndentCDATA && reindentable.Has(n.DataAtom):
		p.openTag(n, depth)
		for _, l := range dedent(body) {
			if l == "" {
				p.line(0, "")
				continue
			}
			p.line(depth+1, l)
		}
		p.line(depth, closeTag(n))
	default:
		s, err := renderNode(n)
		if err != nil {
			return err
		}
		p.line(depth, s)
	}
	return nil
}

// openTag prints the start tag of n, one attribute per line when
// indent-attributes applies.
func (p *printer) openTag(n *html.Node, depth int) {
	if !p.opts.IndentAttributes || len(n.Attr) < 2 {
		p.line(depth, openTag(n))
		return
	}
	p.line(depth, "<"+tagName(n))
	for i, a := range n.Attr {
		s := attribute(a)
		if i == len(n.Attr)-1 {
			s += ">"
		}
		p.line(depth+1, s)
	}
}

// text prints lines of words, wrapping at the configured column. Wrapped
// continuation lines are indented at contDepth.
func (p *printer) text(lines [][]string, depth, contDepth int) {
	for i, words := range lines {
		d := depth
		if i > 0 {
			d = contDepth
		}
		if p.opts.Wrap == 0 {
			p.line(d, strings.Join(words, " "))
			continue
		}

		var cur strings.Builder
		width := 0
		for _, word := range words {
			n := utf8.RuneCountInString(word)
			limit := p.opts.Wrap - d*p.opts.indentWidth()
			if cur.Len() > 0 && width+1+n > limit {
				p.line(d, cur.String())
				cur.Reset()
				width = 0
				d = contDepth
			}
			if cur.Len() > 0 {
				cur.WriteByte(' ')
				width++
			}
			cur.WriteString(word)
			width += n
		}
		p.line(d, cur.String())
	}
}

// inline renders nodes as words grouped into lines. Whitespace in text
// collapses to word boundaries; tags never contain a boundary.
func (p *printer) inline(nodes []*html.Node) ([][]string, error) {
	w := &words{}
	for _, n := range nodes {
		if err := p.inlineNode(w, n); err != nil {
			return nil, err
		}
	}
	return w.finish(), nil
}

func (p *printer) inlineNode(w *words, n *html.Node) error {
	switch n.Type {
	case html.TextNode:
		w.text(n.Data)
	case html.CommentNode:
		w.raw("<!--" + n.Data + "-->")
	case html.ElementNode:
		if preservedElements.Has(n.DataAtom) || rawTextElements.Has(n.DataAtom) {
			s, err := renderNode(n)
			if err != nil {
				return err
			}
			w.raw(s)
			return nil
		}
		w.raw(openTag(n))
		if voidElements.Has(n.DataAtom) && n.Namespace == "" {
			if n.DataAtom == atom.Br && p.opts.NewlineAfterBr {
				w.lineBreak()
			}
			return nil
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := p.inlineNode(w, c); err != nil {
				return err
			}
		}
		w.raw(closeTag(n))
	}
	return nil
}

// words accumulates inline output.
type words struct {
	lines [][]string
	line  []string
	cur   strings.Builder
}

func (w *words) raw(s string) { w.cur.WriteString(s) }

func (w *words) boundary() {
	if w.cur.Len() > 0 {
		w.line = append(w.line, w.cur.String())
		w.cur.Reset()
	}
}

func (w *words) lineBreak() {
	w.boundary()
	if len(w.line) > 0 {
		w.lines = append(w.lines, w.line)
		w.line = nil
	}
}

func (w *words) text(s string) {
	start := 0
	for i := 0; i < len(s); i++ {
		if !isSpace(s[i]) {
			continue
		}
		if i > start {
			w.cur.WriteString(html.EscapeString(s[start:i]))
		}
		w.boundary()
		start = i + 1
	}
	if start < len(s) {
		w.cur.WriteString(html.EscapeString(s[start:]))
	}
}

func (w *words) finish() [][]string {
	w.lineBreak()
	return w.lines
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

func hasBlockChild(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !isInline(c) {
			return true
		}
	}
	return false
}

func childNodes(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

func tagName(n *html.Node) string {
	if n.Namespace != "" && n.Namespace != "svg" && n.Namespace != "math" {
		return n.Namespace + ":" + n.Data
	}
	return n.Data
}

func attribute(a html.Attribute) string {
	key := a.Key
	if a.Namespace != "" {
		key = a.Namespace + ":" + a.Key
	}
	return key + `="` + html.EscapeString(a.Val) + `"`
}

func openTag(n *html.Node) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(tagName(n))
	for _, a := range n.Attr {
		b.WriteByte(' ')
		b.WriteString(attribute(a))
	}
	b.WriteByte('>')
	return b.String()
}

func closeTag(n *html.Node) string {
	if voidElements.Has(n.DataAtom) && n.Namespace == "" {
		return ""
	}
	return "</" + tagName(n) + ">"
}

// renderNode serializes n and its subtree unchanged.
func renderNode(n *html.Node) (string, error) {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return "", err
	}
	return b.String(), nil
}

// dedent splits s into lines, trims trailing whitespace and removes the
// indentation common to all non-blank lines. Leading and trailing blank
// lines are dropped.
func dedent(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	common := -1
	for i, l := range lines {
		l = strings.TrimRight(l, " \t\r")
		lines[i] = l
		if l == "" {
			continue
		}
		indent := len(l) - len(strings.TrimLeft(l, " \t"))
		if common < 0 || indent < common {
			common = indent
		}
	}
	for i, l := range lines {
		if len(l) >= common && common > 0 {
			lines[i] = l[common:]
		}
	}
	return lines
}
