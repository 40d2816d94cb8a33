package format

import (
	"fmt"
	"strconv"
	"strings"
)

// ArgError reports an unparsable --format argument.
type ArgError struct {
	msg string
}

func (e *ArgError) Error() string { return e.msg }

// Unwrap lets callers match ErrInvalidOptions.
func (e *ArgError) Unwrap() error { return ErrInvalidOptions }

func invalidValue(arg, val, msg string) error {
	return &ArgError{msg: fmt.Sprintf("invalid value '%s' for `%s`: %s", val, arg, msg)}
}

// Arg is one parsed "key=value" formatter setting.
type Arg struct {
	Name  string
	apply func(*Options)
}

// Apply writes the setting into o.
func (a Arg) Apply(o *Options) {
	if a.apply != nil {
		a.apply(o)
	}
}

var boolArgs = map[string]func(*Options, bool){
	"indent-attributes": func(o *Options, v bool) { o.IndentAttributes = v },
	"indent-cdata":      func(o *Options, v bool) { o.IndentCDATA = v },
	"remove-comments":   func(o *Options, v bool) { o.RemoveComments = v },
	"join-classes":      func(o *Options, v bool) { o.JoinClasses = v },
	"join-styles":       func(o *Options, v bool) { o.JoinStyles = v },
	"newline-after-br":  func(o *Options, v bool) { o.NewlineAfterBr = v },
	"merge-divs":        func(o *Options, v bool) { o.MergeDivs = v },
	"merge-spans":       func(o *Options, v bool) { o.MergeSpans = v },
}

// ParseArg parses "key=value" or "key:value". Keys and values are trimmed and
// case-insensitive. A boolean key without a value means true.
func ParseArg(s string) (Arg, error) {
	origArg, origVal := s, ""
	if i := strings.IndexAny(s, ":="); i >= 0 {
		origArg, origVal = s[:i], s[i+1:]
	}
	origArg = strings.TrimSpace(origArg)
	origVal = strings.TrimSpace(origVal)
	arg := strings.ToLower(origArg)
	val := strings.ToLower(origVal)

	switch arg {
	case "indent":
		switch val {
		case "tabs", "tab":
			return Arg{Name: arg, apply: func(o *Options) {
				o.Tabs = true
				o.IndentSize = tabWidth
			}}, nil
		case "", "spaces", "space":
			return spacesArg(arg, 4), nil
		}
		n, err := strconv.ParseUint(val, 10, 16)
		if err != nil {
			return Arg{}, invalidValue(arg, origVal, "value must be 'tabs', 'spaces' or a non-negative integer")
		}
		return spacesArg(arg, int(n)), nil

	case "wrap":
		n, err := strconv.ParseUint(val, 10, 32)
		if err != nil {
			return Arg{}, invalidValue(arg, origVal, "value must be a non-negative integer")
		}
		return Arg{Name: arg, apply: func(o *Options) { o.Wrap = int(n) }}, nil

	case "eol", "newline":
		var eol LineEnding
		switch val {
		case "lf":
			eol = LF
		case "crlf":
			eol = CRLF
		case "cr":
			eol = CR
		default:
			return Arg{}, invalidValue(arg, origVal, "value must be one of 'lf', 'crlf' and 'cr'")
		}
		return Arg{Name: arg, apply: func(o *Options) { o.EOL = eol }}, nil
	}

	set, ok := boolArgs[arg]
	if !ok {
		return Arg{}, &ArgError{msg: fmt.Sprintf("unknown format option `%s`", origArg)}
	}
	var v bool
	switch val {
	case "", "true", "t", "on", "yes", "1":
		v = true
	case "false", "f", "off", "no", "0":
		v = false
	default:
		return Arg{}, invalidValue(arg, origVal, "value must be boolean")
	}
	return Arg{Name: arg, apply: func(o *Options) { set(o, v) }}, nil
}

func spacesArg(name string, n int) Arg {
	return Arg{Name: name, apply: func(o *Options) {
		o.Tabs = false
		o.IndentSize = n
	}}
}

// ParseOptions applies every argument in order on top of DefaultOptions and
// validates the result.
func ParseOptions(args []string) (Options, error) {
	opts := DefaultOptions()
	for _, s := range args {
		a, err := ParseArg(s)
		if err != nil {
			return Options{}, err
		}
		a.Apply(&opts)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}
