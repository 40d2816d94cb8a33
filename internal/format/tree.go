package format

import (
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/mdhtml/internal/util/sets"
)

// removeComments deletes every comment node below n.
func removeComments(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.CommentNode {
			n.RemoveChild(c)
		} else {
			removeComments(c)
		}
		c = next
	}
}

// joinAttributes combines repeated class and/or style attributes of every
// element below n into the first occurrence.
func joinAttributes(n *html.Node, classes, styles bool) {
	if n.Type == html.ElementNode {
		if classes {
			n.Attr = joinRepeated(n.Attr, "class", joinClassValues)
		}
		if styles {
			n.Attr = joinRepeated(n.Attr, "style", joinStyleValues)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		joinAttributes(c, classes, styles)
	}
}

func joinRepeated(attrs []html.Attribute, key string, join func(...string) string) []html.Attribute {
	first := -1
	var values []string
	for i, a := range attrs {
		if a.Namespace == "" && a.Key == key {
			if first < 0 {
				first = i
			}
			values = append(values, a.Val)
		}
	}
	if len(values) < 2 {
		return attrs
	}

	out := make([]html.Attribute, 0, len(attrs)-len(values)+1)
	for i, a := range attrs {
		switch {
		case i == first:
			a.Val = join(values...)
			out = append(out, a)
		case a.Namespace == "" && a.Key == key:
		default:
			out = append(out, a)
		}
	}
	return out
}

// joinClassValues merges class lists, dropping repeated class names.
func joinClassValues(values ...string) string {
	names := sets.NewOrdered[string]()
	for _, v := range values {
		names.Extend(strings.Fields(v)...)
	}
	return strings.Join(names.Values(), " ")
}

// joinStyleValues concatenates declarations with "; ".
func joinStyleValues(values ...string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimRight(strings.TrimSpace(v), "; \t\n")
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, "; ")
}

// mergeAttributes combines the attributes of an outer element with those of
// its sole child. Classes and styles are joined; for other keys the inner
// value wins.
func mergeAttributes(outer, inner []html.Attribute) []html.Attribute {
	out := make([]html.Attribute, len(outer), len(outer)+len(inner))
	copy(out, outer)
	for _, a := range inner {
		i := indexAttr(out, a)
		switch {
		case i < 0:
			out = append(out, a)
		case a.Namespace == "" && a.Key == "class":
			out[i].Val = joinClassValues(out[i].Val, a.Val)
		case a.Namespace == "" && a.Key == "style":
			out[i].Val = joinStyleValues(out[i].Val, a.Val)
		default:
			out[i].Val = a.Val
		}
	}
	return out
}

func indexAttr(attrs []html.Attribute, a html.Attribute) int {
	for i := range attrs {
		if attrs[i].Namespace == a.Namespace && attrs[i].Key == a.Key {
			return i
		}
	}
	return -1
}

// mergeNested collapses every tag element whose only non-whitespace child is
// another tag element into a single element.
func mergeNested(n *html.Node, tag string) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		mergeNested(c, tag)
	}
	if n.Type != html.ElementNode || n.Data != tag || n.Namespace != "" {
		return
	}
	for {
		inner := soleElementChild(n)
		if inner == nil || inner.Data != tag || inner.Namespace != "" {
			return
		}
		n.Attr = mergeAttributes(n.Attr, inner.Attr)
		for c := n.FirstChild; c != nil; {
			next := c.NextSibling
			n.RemoveChild(c)
			c = next
		}
		for c := inner.FirstChild; c != nil; {
			next := c.NextSibling
			inner.RemoveChild(c)
			n.AppendChild(c)
			c = next
		}
	}
}

// soleElementChild returns the single element child of n when every other
// child is whitespace-only text.
func soleElementChild(n *html.Node) *html.Node {
	var only *html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return nil
			}
		case html.ElementNode:
			if only != nil {
				return nil
			}
			only = c
		default:
			return nil
		}
	}
	return only
}
