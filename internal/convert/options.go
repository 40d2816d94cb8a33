// Package convert drives Markdown to HTML conversion for one document, an
// explicit list of documents or a whole directory tree.
package convert

import (
	"git.home.luguber.info/inful/mdhtml/internal/filename"
	"git.home.luguber.info/inful/mdhtml/internal/format"
	"git.home.luguber.info/inful/mdhtml/internal/render"
)

// Mode names a conversion mode in logs and metrics.
type Mode string

const (
	ModeSingle Mode = "single"
	ModeList   Mode = "list"
	ModeTree   Mode = "tree"
)

// Stdio is the path meaning standard input or standard output.
const Stdio = "-"

// Options configures a Driver.
type Options struct {
	Render render.Options

	// SkipHidden ignores dot-prefixed files and directories in tree mode and
	// refuses links through them.
	SkipHidden bool
	// NoConvertURLs disables link rewriting in tree mode.
	NoConvertURLs bool
	// ConvertBaseURLs also rewrites links starting with '/', resolved against
	// the tree root.
	ConvertBaseURLs bool

	// Format enables the HTML formatter. Nil writes the templated HTML as is.
	Format *format.Options

	// NamePolicy chooses the file-name policy for an output directory.
	// Nil probes the directory with filename.Detect.
	NamePolicy func(dir string) filename.Policy
}

func (o *Options) namePolicy(dir string) filename.Policy {
	if o.NamePolicy != nil {
		return o.NamePolicy(dir)
	}
	return filename.Detect(dir)
}

// Request selects inputs and destination for Driver.Run.
type Request struct {
	Paths  []string
	Out    string
	OutDir string
}
