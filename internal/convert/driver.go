package convert

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/natefinch/atomic"

	"git.home.luguber.info/inful/mdhtml/internal/format"
	foundationerrors "git.home.luguber.info/inful/mdhtml/internal/foundation/errors"
	"git.home.luguber.info/inful/mdhtml/internal/frontmatter"
	"git.home.luguber.info/inful/mdhtml/internal/logfields"
	"git.home.luguber.info/inful/mdhtml/internal/markdown"
	"git.home.luguber.info/inful/mdhtml/internal/metrics"
	"git.home.luguber.info/inful/mdhtml/internal/render"
)

// Driver converts documents. It reuses its buffers between documents and is
// not safe for concurrent use.
type Driver struct {
	opts      Options
	logger    *slog.Logger
	recorder  metrics.Recorder
	engine    *markdown.Engine
	templater render.Templater
	formatter *format.Formatter
	stdin     io.Reader
	stdout    io.Writer

	src  bytes.Buffer
	body bytes.Buffer
	page bytes.Buffer
}

// Option customizes a Driver.
type Option func(*Driver)

// WithLogger sets the logger. The default discards all records.
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) { d.logger = l }
}

// WithRecorder sets the metrics recorder. The default is metrics.NoopRecorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(d *Driver) { d.recorder = r }
}

// WithTemplater replaces the built-in page template.
func WithTemplater(t render.Templater) Option {
	return func(d *Driver) { d.templater = t }
}

// WithStdio sets the streams used for the "-" path.
func WithStdio(in io.Reader, out io.Writer) Option {
	return func(d *Driver) {
		d.stdin = in
		d.stdout = out
	}
}

// New returns a driver for opts. It fails with a format error when
// opts.Format is invalid.
func New(opts Options, options ...Option) (*Driver, error) {
	d := &Driver{
		opts:      opts,
		logger:    slog.New(slog.DiscardHandler),
		recorder:  metrics.NoopRecorder{},
		engine:    markdown.NewEngine(),
		templater: render.NewHTMLTemplater(),
		stdin:     os.Stdin,
		stdout:    os.Stdout,
	}
	for _, o := range options {
		o(d)
	}
	if opts.Format != nil {
		f, err := format.New(*opts.Format)
		if err != nil {
			return nil, err
		}
		d.formatter = f
	}
	return d, nil
}

// Run picks the conversion mode for req: a directory tree when OutDir is set
// and the only path is a directory, a flattened list when OutDir is set
// otherwise, and a single document when it is not.
func (d *Driver) Run(req Request) error {
	start := time.Now()
	err := d.run(req)

	d.recorder.ObserveRunDuration(time.Since(start))
	if err != nil {
		d.recorder.IncRunOutcome(metrics.ResultFailed)
		return err
	}
	d.recorder.IncRunOutcome(metrics.ResultSuccess)
	return nil
}

func (d *Driver) run(req Request) error {
	if req.OutDir != "" {
		if req.Out != "" {
			return foundationerrors.UsageError("--out and --out-dir cannot be used together")
		}
		if len(req.Paths) == 0 || slices.Contains(req.Paths, Stdio) {
			return foundationerrors.UsageError("--out-dir needs input files or a directory; standard input cannot be used")
		}
		if len(req.Paths) == 1 {
			if info, err := os.Stat(req.Paths[0]); err == nil && info.IsDir() {
				return d.ConvertTree(req.OutDir, req.Paths[0])
			}
		}
		return d.ConvertList(req.OutDir, req.Paths)
	}

	switch len(req.Paths) {
	case 0:
		return d.ConvertSingle(Stdio, req.Out)
	case 1:
		return d.ConvertSingle(req.Paths[0], req.Out)
	default:
		return foundationerrors.UsageError("cannot write multiple files into one; use the --out-dir option instead")
	}
}

// ConvertSingle converts one document without link rewriting. in and out may
// be "-" for standard input and output; an empty out also means standard
// output.
func (d *Driver) ConvertSingle(in, out string) error {
	start := time.Now()
	err := d.convertSingle(in, out)
	d.observe(ModeSingle, start, err)
	return err
}

func (d *Driver) convertSingle(in, out string) error {
	if err := d.read(in); err != nil {
		return err
	}
	page, err := d.convert(in, markdown.Identity)
	if err != nil {
		return err
	}

	if out == "" || out == Stdio {
		if _, err := d.stdout.Write(page); err != nil {
			return foundationerrors.OutputError("failure writing to", "standard output", err)
		}
		return nil
	}
	return d.write(in, out, page)
}

// read loads path, or standard input for "-", into the source buffer.
func (d *Driver) read(path string) error {
	d.src.Reset()

	var err error
	if path == Stdio {
		_, err = d.src.ReadFrom(d.stdin)
	} else {
		var f *os.File
		f, err = os.Open(path)
		if err == nil {
			_, err = d.src.ReadFrom(f)
			_ = f.Close()
		}
	}
	if err != nil {
		return foundationerrors.InputError(displayPath(path), err)
	}
	if !utf8.Valid(d.src.Bytes()) {
		return foundationerrors.InputError(displayPath(path), errInvalidUTF8)
	}
	return nil
}

// convert runs the source buffer through front matter parsing, Markdown
// rendering, templating and formatting.
func (d *Driver) convert(path string, hook markdown.Transformer) ([]byte, error) {
	doc := frontmatter.Parse(d.src.String())
	if doc.Err != nil {
		d.logger.Debug("Ignoring invalid front matter",
			logfields.Path(displayPath(path)),
			logfields.Error(doc.Err))
	}

	ctx := render.Merge(doc.Metadata, d.opts.Render)

	d.body.Reset()
	if err := d.engine.Render(&d.body, []byte(doc.Body), ctx.HardBreaks, hook); err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryInternal, "failed to render markdown").
			WithContext(logfields.KeyPath, path).
			Build()
	}

	d.page.Reset()
	body := strings.Trim(d.body.String(), " \t\n\r")
	if err := d.templater.Render(&d.page, ctx, body); err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryInternal, "failed to render template").
			WithContext(logfields.KeyPath, path).
			Build()
	}

	if d.formatter == nil {
		return d.page.Bytes(), nil
	}
	return d.formatter.Format(d.page.Bytes())
}

// write replaces dest with page atomically.
func (d *Driver) write(src, dest string, page []byte) error {
	if err := atomic.WriteFile(dest, bytes.NewReader(page)); err != nil {
		return foundationerrors.OutputError("failure writing to", dest, err)
	}
	d.logger.Info("Wrote document", logfields.Path(displayPath(src)), logfields.Output(dest))
	return nil
}

func (d *Driver) observe(mode Mode, start time.Time, err error) {
	d.recorder.ObserveDocumentDuration(string(mode), time.Since(start))
	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultFailed
	}
	d.recorder.IncDocumentResult(string(mode), result)
}

func displayPath(path string) string {
	if path == Stdio {
		return "standard input"
	}
	return path
}
