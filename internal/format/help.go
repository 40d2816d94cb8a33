package format

import (
	_ "embed"
	"strings"
)

//go:embed help.md
var helpText string

// HelpText returns the reference for every --format option.
func HelpText() string {
	return strings.TrimSpace(helpText)
}
