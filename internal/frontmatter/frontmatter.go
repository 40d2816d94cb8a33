package frontmatter

import (
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/mdhtml/internal/util/sets"
)

const (
	delimiter  = "---"
	whitespace = " \t\r\n"
)

// Metadata holds the per-document rendering attributes declared in front matter.
//
// Nil pointers mean "not set"; the merger falls back to the global options for them.
// CSS and Script never contain duplicates.
type Metadata struct {
	Title      *string  `yaml:"title,omitempty"`
	Lang       *string  `yaml:"lang,omitempty"`
	CSS        []string `yaml:"css,omitempty"`
	Script     []string `yaml:"script,omitempty"`
	Head       string   `yaml:"head,omitempty"`
	HardBreaks *bool    `yaml:"hard_breaks,omitempty"`
}

// Document is the result of splitting a source file.
type Document struct {
	Metadata Metadata
	Body     string
	// Had is true when a front matter block was recognized and decoded.
	Had bool
	// Err is set when a block was recognized but could not be decoded.
	// The block is then treated as ordinary body text.
	Err error
}

// Split separates a `---` delimited front matter block from the body.
//
// Leading whitespace is ignored. The opening delimiter must be followed by a
// line break, and the first "\n---" after it closes the block; the closing
// delimiter must itself be followed by a line break or only whitespace.
// When no block is recognized, ok is false and body is the trimmed source.
func Split(source string) (block string, body string, ok bool) {
	s := strings.TrimLeft(source, whitespace)

	rest, found := strings.CutPrefix(s, delimiter)
	if !found || !startsWithLineBreak(rest) {
		return "", strings.TrimRight(s, whitespace), false
	}

	block, after, found := strings.Cut(rest, "\n"+delimiter)
	if !found {
		return "", strings.TrimRight(s, whitespace), false
	}
	if !startsWithLineBreak(after) && strings.Trim(after, whitespace) != "" {
		return "", strings.TrimRight(s, whitespace), false
	}

	return block, strings.Trim(after, whitespace), true
}

// Parse splits source and decodes its front matter.
//
// Decoding failures are not fatal: the whole trimmed source becomes the body
// and Document.Err records why the block was ignored.
func Parse(source string) Document {
	block, body, ok := Split(source)
	if !ok {
		return Document{Body: body}
	}

	meta, err := Decode(block)
	if err != nil {
		return Document{Body: strings.Trim(source, whitespace), Err: err}
	}
	return Document{Metadata: meta, Body: body, Had: true}
}

// Decode parses a raw YAML block (without delimiters) into Metadata.
func Decode(block string) (Metadata, error) {
	var meta Metadata
	if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
		return Metadata{}, err
	}
	meta.CSS = sets.NewOrdered(meta.CSS...).Values()
	meta.Script = sets.NewOrdered(meta.Script...).Values()
	return meta, nil
}

func startsWithLineBreak(s string) bool {
	return strings.HasPrefix(s, "\n") || strings.HasPrefix(s, "\r\n")
}
