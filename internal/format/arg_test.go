package format

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseArg(t *testing.T) {
	tests := []struct {
		in   string
		want func(*Options)
	}{
		{"indent=tabs", func(o *Options) { o.Tabs, o.IndentSize = true, 8 }},
		{"indent:TAB", func(o *Options) { o.Tabs, o.IndentSize = true, 8 }},
		{"indent", func(o *Options) { o.IndentSize = 4 }},
		{"indent=spaces", func(o *Options) { o.IndentSize = 4 }},
		{" Indent = 2 ", func(o *Options) { o.IndentSize = 2 }},
		{"wrap=80", func(o *Options) { o.Wrap = 80 }},
		{"eol=crlf", func(o *Options) { o.EOL = CRLF }},
		{"newline:CR", func(o *Options) { o.EOL = CR }},
		{"remove-comments", func(o *Options) { o.RemoveComments = true }},
		{"indent-attributes=yes", func(o *Options) { o.IndentAttributes = true }},
		{"indent-cdata:on", func(o *Options) { o.IndentCDATA = true }},
		{"join-classes=1", func(o *Options) { o.JoinClasses = true }},
		{"join-styles=T", func(o *Options) { o.JoinStyles = true }},
		{"newline-after-br=true", func(o *Options) { o.NewlineAfterBr = true }},
		{"MERGE-DIVS", func(o *Options) { o.MergeDivs = true }},
		{"merge-spans=", func(o *Options) { o.MergeSpans = true }},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			a, err := ParseArg(tc.in)
			require.NoError(t, err)

			got := DefaultOptions()
			a.Apply(&got)
			want := DefaultOptions()
			tc.want(&want)
			require.Equal(t, want, got)
		})
	}
}

func TestParseArg_FalseValues(t *testing.T) {
	for _, v := range []string{"false", "f", "off", "no", "0", "NO"} {
		opts := Options{RemoveComments: true}
		a, err := ParseArg("remove-comments=" + v)
		require.NoError(t, err)
		a.Apply(&opts)
		require.False(t, opts.RemoveComments, "value %q", v)
	}
}

func TestParseArg_SplitsAtFirstSeparator(t *testing.T) {
	_, err := ParseArg("wrap=8:0")
	require.EqualError(t, err, "invalid value '8:0' for `wrap`: value must be a non-negative integer")
}

func TestParseArg_Errors(t *testing.T) {
	tests := []struct {
		in, msg string
	}{
		{"indent=wide", "invalid value 'wide' for `indent`: value must be 'tabs', 'spaces' or a non-negative integer"},
		{"indent=-1", "invalid value '-1' for `indent`: value must be 'tabs', 'spaces' or a non-negative integer"},
		{"wrap", "invalid value '' for `wrap`: value must be a non-negative integer"},
		{"eol=LFCR", "invalid value 'LFCR' for `eol`: value must be one of 'lf', 'crlf' and 'cr'"},
		{"merge-divs=maybe", "invalid value 'maybe' for `merge-divs`: value must be boolean"},
		{"Colour=red", "unknown format option `Colour`"},
	}

	for _, tc := range tests {
		_, err := ParseArg(tc.in)
		require.EqualError(t, err, tc.msg)
		require.True(t, errors.Is(err, ErrInvalidOptions))
	}
}

func TestParseOptions(t *testing.T) {
	opts, err := ParseOptions([]string{"indent=tabs", "indent=2", "wrap=100", "remove-comments"})
	require.NoError(t, err)
	require.False(t, opts.Tabs)
	require.Equal(t, 2, opts.IndentSize)
	require.Equal(t, 100, opts.Wrap)
	require.True(t, opts.RemoveComments)

	_, err = ParseOptions([]string{"wrap=10"})
	require.ErrorIs(t, err, ErrInvalidOptions)

	_, err = ParseOptions([]string{"indent=64"})
	require.ErrorIs(t, err, ErrInvalidOptions)

	opts, err = ParseOptions(nil)
	require.NoError(t, err)
	require.Equal(t, DefaultOptions(), opts)
}

func TestOptions_Validate(t *testing.T) {
	valid := []Options{
		DefaultOptions(),
		{Tabs: true, IndentSize: 8},
		{IndentSize: 32, Wrap: 20},
		{Wrap: 0, EOL: CR},
	}
	for _, o := range valid {
		require.NoError(t, o.Validate(), "%+v", o)
	}

	invalid := []Options{
		{IndentSize: 33},
		{IndentSize: -1},
		{Wrap: 1},
		{Wrap: 19},
		{Wrap: -5},
		{EOL: LineEnding(7)},
	}
	for _, o := range invalid {
		require.ErrorIs(t, o.Validate(), ErrInvalidOptions, "%+v", o)
	}
}

func TestHelpText(t *testing.T) {
	help := HelpText()
	for name := range boolArgs {
		require.Contains(t, help, "`"+name+"`")
	}
	for _, name := range []string{"`indent`", "`wrap`", "`eol`"} {
		require.Contains(t, help, name)
	}
}
