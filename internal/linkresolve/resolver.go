// Package linkresolve decides which intra-site Markdown links are rewritten
// to their rendered .html counterparts during a directory conversion.
package linkresolve

import (
	"os"
	"path/filepath"
	"strings"
)

// Decision records why a link was or was not rewritten.
type Decision string

const (
	Rewritten   Decision = "rewritten"
	NotMarkdown Decision = "not_markdown"
	External    Decision = "external"
	BaseURL     Decision = "base_url"
	IllegalName Decision = "illegal_name"
	Hidden      Decision = "hidden"
	OutsideRoot Decision = "outside_root"
	Missing     Decision = "missing"
)

const (
	markdownExt = ".md"
	htmlExt     = ".html"
)

// Resolver rewrites links whose target is a real Markdown file inside Root.
//
// Resolve only reads the file system; repeated calls with the same input
// return the same result.
type Resolver struct {
	// Root is the canonical conversion root (symlinks resolved, absolute).
	Root string
	// SkipHidden refuses links through dot-prefixed path segments.
	SkipHidden bool
	// BaseURLs enables rewriting of links starting with '/', resolved against Root.
	BaseURLs bool
	// StrictNames additionally refuses control characters and characters
	// reserved in file names on case-insensitive file systems.
	StrictNames bool
}

// Resolve returns the rewritten destination for a link found in the document
// at docPath, or dest unchanged with the reason it was left alone.
func (r *Resolver) Resolve(docPath, dest string) (string, Decision) {
	if strings.HasPrefix(dest, "/") && !r.BaseURLs {
		return dest, BaseURL
	}

	urlPath, trailing := SplitLink(dest)
	stem, ok := strings.CutSuffix(urlPath, markdownExt)
	if !ok {
		return dest, NotMarkdown
	}
	if strings.Contains(urlPath, ":") {
		return dest, External
	}
	if r.StrictNames && hasIllegalNameChars(urlPath) {
		return dest, IllegalName
	}
	if r.SkipHidden && HasHiddenSegment(urlPath) {
		return dest, Hidden
	}

	if decision := r.check(docPath, urlPath); decision != Rewritten {
		return dest, decision
	}
	return stem + htmlExt + trailing, Rewritten
}

// check resolves urlPath and verifies it is a regular file below Root.
func (r *Resolver) check(docPath, urlPath string) Decision {
	var target string
	if rest, ok := strings.CutPrefix(urlPath, "/"); ok {
		target = r.Root + string(filepath.Separator) + filepath.FromSlash(rest)
	} else {
		target = filepath.Dir(docPath) + string(filepath.Separator) + filepath.FromSlash(urlPath)
	}

	// EvalSymlinks resolves each component in order, so ".." is applied to
	// the symlink target rather than lexically.
	resolved, err := filepath.EvalSymlinks(target)
	if err != nil {
		return Missing
	}
	resolved, err = filepath.Abs(resolved)
	if err != nil {
		return Missing
	}
	if !Within(r.Root, resolved) {
		return OutsideRoot
	}

	info, err := os.Stat(resolved)
	if err != nil || !info.Mode().IsRegular() {
		return Missing
	}
	return Rewritten
}

// Within reports whether p equals root or lies below it. Both must be clean absolute paths.
func Within(root, p string) bool {
	if p == root {
		return true
	}
	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(p, prefix)
}
