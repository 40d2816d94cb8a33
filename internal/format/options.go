// Package format pretty-prints rendered HTML documents.
package format

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrInvalidOptions is wrapped by every option parsing or validation error.
var ErrInvalidOptions = errors.New("invalid format options")

// LineEnding selects the line terminator of formatted output.
type LineEnding int

const (
	LF LineEnding = iota
	CRLF
	CR
)

// String implements fmt.Stringer.
func (e LineEnding) String() string {
	switch e {
	case CRLF:
		return "crlf"
	case CR:
		return "cr"
	default:
		return "lf"
	}
}

// Sequence returns the bytes written at the end of each line.
func (e LineEnding) Sequence() string {
	switch e {
	case CRLF:
		return "\r\n"
	case CR:
		return "\r"
	default:
		return "\n"
	}
}

const (
	maxIndentSize = 32
	minWrap       = 20
	tabWidth      = 8
)

// Options configures the formatter.
type Options struct {
	// Tabs indents with tab characters; IndentSize is then the tab width.
	Tabs       bool
	IndentSize int
	// IndentAttributes puts each attribute of a multi-attribute block
	// element on its own line.
	IndentAttributes bool
	// IndentCDATA re-indents the contents of script and style elements.
	IndentCDATA bool
	// Wrap is the column at which text lines are wrapped. 0 disables wrapping.
	Wrap           int
	RemoveComments bool
	EOL            LineEnding
	JoinClasses    bool
	JoinStyles     bool
	NewlineAfterBr bool
	MergeDivs      bool
	MergeSpans     bool
}

// DefaultOptions returns four-space indentation, no wrapping and LF line endings.
func DefaultOptions() Options {
	return Options{IndentSize: 4}
}

// Validate rejects option combinations the printer cannot honor.
func (o *Options) Validate() error {
	err := validation.ValidateStruct(o,
		validation.Field(&o.IndentSize, validation.Min(0), validation.Max(maxIndentSize)),
		validation.Field(&o.Wrap, validation.Min(0), validation.When(o.Wrap != 0, validation.Min(minWrap))),
		validation.Field(&o.EOL, validation.In(LF, CRLF, CR)),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	return nil
}

// indentWidth is the display width of one indentation level.
func (o *Options) indentWidth() int {
	if o.Tabs {
		return tabWidth
	}
	return o.IndentSize
}
