package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/mdhtml/internal/config"
	"git.home.luguber.info/inful/mdhtml/internal/convert"
	"git.home.luguber.info/inful/mdhtml/internal/format"
	foundationerrors "git.home.luguber.info/inful/mdhtml/internal/foundation/errors"
	"git.home.luguber.info/inful/mdhtml/internal/logfields"
	"git.home.luguber.info/inful/mdhtml/internal/metrics"
	"git.home.luguber.info/inful/mdhtml/internal/render"
	"git.home.luguber.info/inful/mdhtml/internal/version"
)

// CLI definition and flags.
type CLI struct {
	Paths []string `arg:"" optional:"" name:"path" help:"Path to a single directory or one or more Markdown files (- or none reads standard input)."`

	Out    string `short:"o" xor:"output" help:"Write output to a file (- writes standard output)."`
	OutDir string `short:"O" name:"out-dir" xor:"output" help:"Write all converted HTML files into a directory."`
	All    bool   `short:"a" help:"Do not ignore hidden files and directories."`

	Lang            string   `short:"l" help:"Set the lang attribute of <html>."`
	CSS             []string `short:"c" name:"css" sep:"none" placeholder:"URL" help:"Import CSS styles from a URL (repeatable)."`
	Script          []string `short:"s" sep:"none" placeholder:"URL" help:"Import a script from a URL (repeatable)."`
	NormalizeCSS    bool     `short:"N" name:"normalize-css" help:"Import Normalize.css."`
	SakuraCSS       bool     `short:"S" name:"sakura-css" help:"Import Sakura.css."`
	Head            string   `help:"Append raw HTML into <head>."`
	HardBreaks      bool     `short:"H" help:"Turn newlines into hard breaks."`
	NoConvertURLs   bool     `short:"U" name:"no-convert-urls" help:"Do not convert URLs that end with .md (directory conversion only)."`
	ConvertBaseURLs bool     `name:"convert-base-urls" help:"Convert URLs starting with / as well, relative to the input directory (directory conversion only)."`

	NoFormat   bool           `name:"no-format" help:"Do not format the generated HTML."`
	Format     []string       `short:"f" sep:"none" placeholder:"KEY=VALUE" help:"Set a formatting option (repeatable); see --help-format."`
	HelpFormat helpFormatFlag `name:"help-format" help:"Show the formatting options and exit."`

	Verbose         bool             `short:"v" help:"Enable verbose logging."`
	LogFormat       string           `name:"log-format" default:"text" help:"Log output format (${log_formats})."`
	CaseSensitivity string           `name:"case-sensitivity" default:"auto" help:"Output file name comparison (${case_sensitivities})."`
	MetricsFile     string           `name:"metrics-file" placeholder:"PATH" help:"Write Prometheus metrics to this file after the run."`
	Version         kong.VersionFlag `name:"version" help:"Show version and exit."`

	logger   *slog.Logger
	caseMode config.CaseSensitivity
	argsFile string
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
}

type helpFormatFlag bool

// BeforeReset prints the formatter reference before arguments are validated.
func (helpFormatFlag) BeforeReset(app *kong.Kong) error {
	_, _ = fmt.Fprintln(app.Stdout, format.HelpText())
	app.Exit(0)
	return nil
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	logFormat, err := config.ParseLogFormat(c.LogFormat)
	if err != nil {
		return foundationerrors.ConfigError("invalid --log-format", err)
	}
	c.caseMode, err = config.ParseCaseSensitivity(c.CaseSensitivity)
	if err != nil {
		return foundationerrors.ConfigError("invalid --case-sensitivity", err)
	}
	c.logger = config.NewLogger(c.stderr, logFormat, c.Verbose).With(logfields.RunID(uuid.NewString()))
	slog.SetDefault(c.logger)
	return nil
}

// Run converts the requested documents.
func (c *CLI) Run() error {
	if c.argsFile != "" {
		c.logger.Debug("Loaded arguments file", logfields.Path(c.argsFile))
	}

	opts := convert.Options{
		Render: render.Options{
			Lang:         c.Lang,
			CSS:          c.CSS,
			Script:       c.Script,
			NormalizeCSS: c.NormalizeCSS,
			SakuraCSS:    c.SakuraCSS,
			Head:         c.Head,
			HardBreaks:   c.HardBreaks,
		},
		SkipHidden:      !c.All,
		NoConvertURLs:   c.NoConvertURLs,
		ConvertBaseURLs: c.ConvertBaseURLs,
		NamePolicy:      c.caseMode.PolicyFor,
	}
	if !c.NoFormat {
		fo, err := format.ParseOptions(c.Format)
		if err != nil {
			var argErr *format.ArgError
			if errors.As(err, &argErr) {
				return foundationerrors.UsageError(err.Error())
			}
			return foundationerrors.FormatError(err)
		}
		opts.Format = &fo
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if c.MetricsFile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		recorder = prom
	}

	driver, err := convert.New(opts,
		convert.WithLogger(c.logger),
		convert.WithRecorder(recorder),
		convert.WithStdio(c.stdin, c.stdout))
	if err != nil {
		return err
	}

	runErr := driver.Run(convert.Request{Paths: c.Paths, Out: c.Out, OutDir: c.OutDir})
	if prom != nil {
		if err := prom.WriteTextfile(c.MetricsFile); err != nil {
			c.logger.Warn("Failed to write metrics", logfields.Path(c.MetricsFile), logfields.Error(err))
		}
	}
	return runErr
}

// IO bundles the streams a command run uses.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Execute parses args (without the program name), runs the conversion and
// returns the process exit code.
func Execute(args []string, argsFile string, stdio IO) int {
	cli := &CLI{
		argsFile: argsFile,
		stdin:    stdio.Stdin,
		stdout:   stdio.Stdout,
		stderr:   stdio.Stderr,
	}

	exitCode, exited := 0, false
	parser, err := kong.New(cli,
		kong.Name("mdhtml"),
		kong.Description("Converts Markdown files into HTML."),
		kong.Vars{
			"version":            version.String(),
			"log_formats":        strings.Join(config.LogFormatValues(), "|"),
			"case_sensitivities": strings.Join(config.CaseSensitivityValues(), "|"),
		},
		kong.Writers(stdio.Stdout, stdio.Stderr),
		kong.Exit(func(code int) {
			if !exited {
				exitCode, exited = code, true
			}
		}),
		kong.UsageOnError(),
	)
	if err != nil {
		_, _ = fmt.Fprintf(stdio.Stderr, "error: %v\n", err)
		return 1
	}

	_, err = parser.Parse(args)
	if exited {
		return exitCode
	}
	if err != nil {
		if _, ok := foundationerrors.AsClassified(err); !ok {
			parser.FatalIfErrorf(err)
			return exitCode
		}
	}

	adapter := foundationerrors.NewCLIErrorAdapter(cli.Verbose, cli.logger).
		WithOutput(stdio.Stderr, func(code int) { exitCode = code })
	if err == nil {
		err = cli.Run()
	}
	adapter.HandleError(err)
	return exitCode
}
