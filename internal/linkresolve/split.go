package linkresolve

import "strings"

// SplitLink splits a link destination into its path and the trailing query
// and/or fragment. The fragment is split off first. A '?' only starts the
// query when it appears after the last '/' of what remains, so
// "a/b?c/d" has no query at all. path+trailing always equals url.
func SplitLink(url string) (path, trailing string) {
	base, _, _ := strings.Cut(url, "#")

	lastSlash := max(strings.LastIndexByte(base, '/'), 0)
	if i := strings.IndexByte(base[lastSlash:], '?'); i >= 0 {
		return url[:lastSlash+i], url[lastSlash+i:]
	}
	return base, url[len(base):]
}

// HasHiddenSegment reports whether any '/'-separated segment of p other than
// "." and ".." starts with a dot.
func HasHiddenSegment(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		if seg == "." || seg == ".." {
			continue
		}
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}

// hasIllegalNameChars reports characters that cannot appear in a file name
// on case-insensitive (Windows-style) file systems.
func hasIllegalNameChars(s string) bool {
	for i := 0; i < len(s); i++ {
		switch b := s[i]; {
		case b <= 31:
			return true
		case strings.IndexByte(`"<>|:*?\`, b) >= 0:
			return true
		}
	}
	return false
}
