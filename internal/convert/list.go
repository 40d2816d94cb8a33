package convert

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/mdhtml/internal/filename"
	foundationerrors "git.home.luguber.info/inful/mdhtml/internal/foundation/errors"
	"git.home.luguber.info/inful/mdhtml/internal/logfields"
	"git.home.luguber.info/inful/mdhtml/internal/markdown"
)

var errInvalidUTF8 = errors.New("stream did not contain valid UTF-8")

const htmlExt = ".html"

// htmlName replaces the extension of name with .html. Names without an
// extension, including dot-files, get .html appended.
func htmlName(name string) string {
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return name + htmlExt
	}
	return strings.TrimSuffix(name, ext) + htmlExt
}

// ConvertList converts every file into outDir, flattening directories. Every
// output name is claimed before any document is read, so a name collision
// aborts the batch without writing anything.
func (d *Driver) ConvertList(outDir string, files []string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return foundationerrors.OutputError("failed to create directory", outDir, err)
	}

	table := filename.NewTable(d.opts.namePolicy(outDir), filename.WithOutputName(htmlName))
	d.logger.Debug("Selected file name policy", logfields.Policy(table.Policy().String()), logfields.Output(outDir))

	type job struct{ src, dest string }
	jobs := make([]job, 0, len(files))
	seen := make(map[string]struct{}, len(files))
	for _, p := range files {
		name, err := table.Claim(p)
		if err != nil {
			return err
		}
		dest := filepath.Join(outDir, htmlName(name))
		// Claim only lets the same canonical file through twice.
		if _, dup := seen[dest]; dup {
			continue
		}
		seen[dest] = struct{}{}
		jobs = append(jobs, job{src: p, dest: dest})
	}
	d.logger.Debug("Collected inputs", logfields.Mode(string(ModeList)), logfields.Count(table.Len()))

	for _, j := range jobs {
		start := time.Now()
		err := d.convertFile(j.src, j.dest, markdown.Identity)
		d.observe(ModeList, start, err)
		if err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) convertFile(src, dest string, hook markdown.Transformer) error {
	if err := d.read(src); err != nil {
		return err
	}
	page, err := d.convert(src, hook)
	if err != nil {
		return err
	}
	return d.write(src, dest, page)
}
