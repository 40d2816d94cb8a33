package convert

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdhtml/internal/config"
	"git.home.luguber.info/inful/mdhtml/internal/filename"
	"git.home.luguber.info/inful/mdhtml/internal/format"
	foundationerrors "git.home.luguber.info/inful/mdhtml/internal/foundation/errors"
	"git.home.luguber.info/inful/mdhtml/internal/metrics"
	"git.home.luguber.info/inful/mdhtml/internal/render"
)

type fakeRecorder struct {
	documents map[string]int
	links     map[string]int
	runs      map[metrics.ResultLabel]int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{documents: map[string]int{}, links: map[string]int{}, runs: map[metrics.ResultLabel]int{}}
}

func (f *fakeRecorder) ObserveDocumentDuration(string, time.Duration) {}
func (f *fakeRecorder) IncDocumentResult(mode string, result metrics.ResultLabel) {
	f.documents[mode+"/"+string(result)]++
}
func (f *fakeRecorder) IncLinkDecision(decision string)          { f.links[decision]++ }
func (f *fakeRecorder) ObserveRunDuration(time.Duration)         {}
func (f *fakeRecorder) IncRunOutcome(result metrics.ResultLabel) { f.runs[result]++ }

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func sensitive(string) filename.Policy { return filename.CaseSensitive }

func newDriver(t *testing.T, opts Options, options ...Option) *Driver {
	t.Helper()
	if opts.NamePolicy == nil {
		opts.NamePolicy = sensitive
	}
	d, err := New(opts, options...)
	require.NoError(t, err)
	return d
}

var site = map[string]string{
	"a.md": "# A\n\n" +
		"[B](b.md)\n\n" +
		"[C](sub/c.md#x)\n\n" +
		"[Missing](nope.md)\n\n" +
		"[Ext](https://example.com/y.md)\n\n" +
		"[Hidden](.h/d.md)\n\n" +
		"[Root](/b.md)\n\n" +
		"![img](b.md)\n",
	"b.md":       "# B\n",
	"sub/c.md":   "[A](../a.md?v=1)\n",
	".h/d.md":    "# D\n",
	".hidden.md": "# hidden\n",
	"notes.txt":  "not markdown\n",
}

func TestConvertTree_RewritesIntraSiteLinks(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	writeFiles(t, root, site)

	rec := newFakeRecorder()
	d := newDriver(t, Options{SkipHidden: true}, WithRecorder(rec))
	require.NoError(t, d.ConvertTree(out, root))

	a := readFile(t, filepath.Join(out, "a.html"))
	require.Contains(t, a, `<a href="b.html">B</a>`)
	require.Contains(t, a, `<a href="sub/c.html#x">C</a>`)
	require.Contains(t, a, `<a href="nope.md">Missing</a>`)
	require.Contains(t, a, `<a href="https://example.com/y.md">Ext</a>`)
	require.Contains(t, a, `<a href=".h/d.md">Hidden</a>`)
	require.Contains(t, a, `<a href="/b.md">Root</a>`)
	require.Contains(t, a, `<img src="b.md" alt="img">`)

	c := readFile(t, filepath.Join(out, "sub", "c.html"))
	require.Contains(t, c, `<a href="../a.html?v=1">A</a>`)

	require.FileExists(t, filepath.Join(out, "b.html"))
	require.NoDirExists(t, filepath.Join(out, ".h"))
	require.NoFileExists(t, filepath.Join(out, ".hidden.html"))
	require.NoFileExists(t, filepath.Join(out, "notes.html"))

	require.Equal(t, 3, rec.documents["tree/success"])
	require.Equal(t, 3, rec.links["rewritten"])
	require.Equal(t, 1, rec.links["missing"])
	require.Equal(t, 1, rec.links["external"])
	require.Equal(t, 1, rec.links["hidden"])
	require.Equal(t, 1, rec.links["base_url"])
}

func TestConvertTree_AllAndBaseURLs(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	writeFiles(t, root, site)

	d := newDriver(t, Options{ConvertBaseURLs: true})
	require.NoError(t, d.ConvertTree(out, root))

	a := readFile(t, filepath.Join(out, "a.html"))
	require.Contains(t, a, `<a href=".h/d.html">Hidden</a>`)
	require.Contains(t, a, `<a href="/b.html">Root</a>`)
	require.FileExists(t, filepath.Join(out, ".h", "d.html"))
	require.FileExists(t, filepath.Join(out, ".hidden.html"))
}

func TestConvertTree_NoConvertURLs(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	writeFiles(t, root, site)

	d := newDriver(t, Options{SkipHidden: true, NoConvertURLs: true})
	require.NoError(t, d.ConvertTree(out, root))
	require.Contains(t, readFile(t, filepath.Join(out, "a.html")), `<a href="b.md">B</a>`)
}

func TestConvertTree_IsRepeatable(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	writeFiles(t, root, site)

	d := newDriver(t, Options{SkipHidden: true})
	require.NoError(t, d.ConvertTree(out, root))
	first := readFile(t, filepath.Join(out, "a.html"))
	require.NoError(t, d.ConvertTree(out, root))
	require.Equal(t, first, readFile(t, filepath.Join(out, "a.html")))
}

func TestConvertList_FlattensAndKeepsLinks(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	writeFiles(t, root, map[string]string{
		"a.md":     "[B](b.md)\n",
		"sub/b.md": "# B\n",
		"README":   "plain\n",
		".profile": "dot\n",
		"x.tar.md": "# X\n",
	})

	d := newDriver(t, Options{})
	files := []string{
		filepath.Join(root, "a.md"),
		filepath.Join(root, "sub", "b.md"),
		filepath.Join(root, "README"),
		filepath.Join(root, ".profile"),
		filepath.Join(root, "x.tar.md"),
		filepath.Join(root, "a.md"),
	}
	require.NoError(t, d.ConvertList(out, files))

	require.Contains(t, readFile(t, filepath.Join(out, "a.html")), `<a href="b.md">B</a>`)
	require.FileExists(t, filepath.Join(out, "b.html"))
	require.FileExists(t, filepath.Join(out, "README.html"))
	require.FileExists(t, filepath.Join(out, ".profile.html"))
	require.FileExists(t, filepath.Join(out, "x.tar.html"))
}

func TestConvertList_CollisionWritesNothing(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	writeFiles(t, root, map[string]string{
		"first.md":   "# 1\n",
		"x/index.md": "# x\n",
		"y/index.md": "# y\n",
	})

	d := newDriver(t, Options{})
	err := d.ConvertList(out, []string{
		filepath.Join(root, "first.md"),
		filepath.Join(root, "x", "index.md"),
		filepath.Join(root, "y", "index.md"),
	})
	require.ErrorIs(t, err, filename.ErrDuplicateName)
	require.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryDuplicateName))

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestConvertList_SameOutputFromDifferentExtensions(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	writeFiles(t, root, map[string]string{
		"a.md":       "from md\n",
		"a.markdown": "from markdown\n",
	})

	d := newDriver(t, Options{})
	err := d.ConvertList(out, []string{
		filepath.Join(root, "a.md"),
		filepath.Join(root, "a.markdown"),
	})
	require.ErrorIs(t, err, filename.ErrDuplicateName)
	require.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryDuplicateName))
	require.Contains(t, err.Error(), `"a.html"`)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestConvertList_CaseInsensitiveCollision(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	writeFiles(t, root, map[string]string{
		"x/Guide.md": "# x\n",
		"y/guide.md": "# y\n",
	})

	d := newDriver(t, Options{NamePolicy: config.CaseInsensitive.PolicyFor})
	err := d.ConvertList(out, []string{
		filepath.Join(root, "x", "Guide.md"),
		filepath.Join(root, "y", "guide.md"),
	})
	require.ErrorIs(t, err, filename.ErrDuplicateName)
}

func TestConvertSingle_StdinToStdout(t *testing.T) {
	var stdout bytes.Buffer
	in := strings.NewReader("\n---\ntitle: Hello\nlang: de\ncss: [x.css]\n---\n# Hi\nline one\nline two\n")

	d := newDriver(t, Options{Render: render.Options{HardBreaks: true, Lang: "en"}}, WithStdio(in, &stdout))
	require.NoError(t, d.ConvertSingle(Stdio, ""))

	page := stdout.String()
	require.Contains(t, page, "<title>Hello</title>")
	require.Contains(t, page, `<html lang="de">`)
	require.Contains(t, page, `<link rel="stylesheet" href="x.css">`)
	require.Contains(t, page, "<h1>Hi</h1>")
	require.Contains(t, page, "line one<br>\nline two")
}

func TestConvertSingle_LinksAreNotRewritten(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"a.md": "[B](b.md)\n", "b.md": "# B\n"})
	dest := filepath.Join(root, "a.html")

	d := newDriver(t, Options{})
	require.NoError(t, d.ConvertSingle(filepath.Join(root, "a.md"), dest))
	require.Contains(t, readFile(t, dest), `<a href="b.md">B</a>`)
}

func TestConvertSingle_InvalidUTF8(t *testing.T) {
	var stdout bytes.Buffer
	d := newDriver(t, Options{}, WithStdio(bytes.NewReader([]byte{0xff, 0xfe, 'a'}), &stdout))

	err := d.ConvertSingle(Stdio, Stdio)
	require.ErrorIs(t, err, errInvalidUTF8)
	require.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryInput))
	require.Empty(t, stdout.String())
}

func TestConvertSingle_MissingInput(t *testing.T) {
	d := newDriver(t, Options{})
	err := d.ConvertSingle(filepath.Join(t.TempDir(), "missing.md"), "")
	require.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryInput))
}

func TestConvertSingle_UnwritableOutput(t *testing.T) {
	var stdout bytes.Buffer
	d := newDriver(t, Options{}, WithStdio(strings.NewReader("# x"), &stdout))
	err := d.ConvertSingle(Stdio, filepath.Join(t.TempDir(), "missing-dir", "out.html"))
	require.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryOutput))
}

func TestConvertSingle_InvalidFrontMatterIsLoggedAndIgnored(t *testing.T) {
	var stdout, logs bytes.Buffer
	in := strings.NewReader("---\ntitle: [broken\n---\ntext\n")

	d := newDriver(t, Options{},
		WithStdio(in, &stdout),
		WithLogger(config.NewLogger(&logs, config.LogFormatText, true)))
	require.NoError(t, d.ConvertSingle(Stdio, ""))

	require.Contains(t, logs.String(), "Ignoring invalid front matter")
	require.NotContains(t, stdout.String(), "<title>")
	require.Contains(t, stdout.String(), "<hr>")
}

func TestConvert_Formatted(t *testing.T) {
	var stdout bytes.Buffer
	opts := format.DefaultOptions()
	d := newDriver(t, Options{Format: &opts}, WithStdio(strings.NewReader("# Hi\n\ntext"), &stdout))
	require.NoError(t, d.ConvertSingle(Stdio, ""))

	require.Contains(t, stdout.String(), "    <body>\n        <h1>Hi</h1>\n        <p>text</p>\n    </body>\n")
}

func TestNew_InvalidFormatOptions(t *testing.T) {
	_, err := New(Options{Format: &format.Options{Wrap: 5}})
	require.ErrorIs(t, err, format.ErrInvalidOptions)
}

func TestRun_SelectsMode(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"docs/a.md": "# A\n", "b.md": "# B\n"})

	rec := newFakeRecorder()
	d := newDriver(t, Options{}, WithRecorder(rec))

	treeOut := filepath.Join(t.TempDir(), "tree")
	require.NoError(t, d.Run(Request{Paths: []string{filepath.Join(root, "docs")}, OutDir: treeOut}))
	require.FileExists(t, filepath.Join(treeOut, "a.html"))

	listOut := filepath.Join(t.TempDir(), "list")
	require.NoError(t, d.Run(Request{Paths: []string{filepath.Join(root, "b.md")}, OutDir: listOut}))
	require.FileExists(t, filepath.Join(listOut, "b.html"))

	err := d.Run(Request{Paths: []string{filepath.Join(root, "b.md"), filepath.Join(root, "docs", "a.md")}})
	require.EqualError(t, err, "[usage] cannot write multiple files into one; use the --out-dir option instead")
	require.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryUsage))

	require.Equal(t, 1, rec.documents["tree/success"])
	require.Equal(t, 1, rec.documents["list/success"])
	require.Equal(t, 2, rec.runs[metrics.ResultSuccess])
	require.Equal(t, 1, rec.runs[metrics.ResultFailed])
}

func TestRun_OutDirRejectsStandardInput(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"a.md": "# A\n"})
	out := filepath.Join(t.TempDir(), "out")

	d := newDriver(t, Options{})
	for _, paths := range [][]string{nil, {Stdio}, {filepath.Join(root, "a.md"), Stdio}} {
		err := d.Run(Request{Paths: paths, OutDir: out})
		require.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryUsage), "paths=%v", paths)
	}
	require.NoDirExists(t, out)
}

func TestHTMLName(t *testing.T) {
	tests := map[string]string{
		"a.md":      "a.html",
		"a.b.md":    "a.b.html",
		"README":    "README.html",
		".profile":  ".profile.html",
		".md":       ".md.html",
		"page.html": "page.html",
		"archive.":  "archive.html",
	}
	for in, want := range tests {
		require.Equal(t, want, htmlName(in), "input %q", in)
	}
}
