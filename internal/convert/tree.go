package convert

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/mdhtml/internal/filename"
	foundationerrors "git.home.luguber.info/inful/mdhtml/internal/foundation/errors"
	"git.home.luguber.info/inful/mdhtml/internal/linkresolve"
	"git.home.luguber.info/inful/mdhtml/internal/logfields"
	"git.home.luguber.info/inful/mdhtml/internal/markdown"
)

const markdownExt = ".md"

// ConvertTree converts every regular *.md file below root into the same
// relative location under outDir. Links between documents of the tree are
// rewritten to the generated .html files unless NoConvertURLs is set.
func (d *Driver) ConvertTree(outDir, root string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return foundationerrors.OutputError("failed to create directory", outDir, err)
	}

	if canonical, err := filename.Canonical(root); err == nil {
		root = canonical
	}

	policy := d.opts.namePolicy(outDir)
	resolver := &linkresolve.Resolver{
		Root:        root,
		SkipHidden:  d.opts.SkipHidden,
		BaseURLs:    d.opts.ConvertBaseURLs,
		StrictNames: policy.StrictNames(),
	}
	d.logger.Debug("Converting directory",
		logfields.Root(root),
		logfields.Output(outDir),
		logfields.Policy(policy.String()))

	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return foundationerrors.InputError(path, err)
		}
		if path != root && d.opts.SkipHidden && strings.HasPrefix(entry.Name(), ".") {
			d.logger.Debug("Skipping hidden entry", logfields.Path(path))
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() || !strings.HasSuffix(entry.Name(), markdownExt) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return foundationerrors.PathError("error constructing target path for", path, err)
		}
		dest := filepath.Join(outDir, filepath.Dir(rel), htmlName(filepath.Base(rel)))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return foundationerrors.OutputError("failed to create directory", filepath.Dir(dest), err)
		}

		start := time.Now()
		err = d.convertFile(path, dest, d.linkHook(resolver, path))
		d.observe(ModeTree, start, err)
		return err
	})
}

// linkHook returns the transformer applied to the links of the document at
// docPath.
func (d *Driver) linkHook(resolver *linkresolve.Resolver, docPath string) markdown.Transformer {
	if d.opts.NoConvertURLs {
		return markdown.Identity
	}
	return markdown.TransformerFunc(func(l markdown.Link) markdown.Link {
		if l.Kind != markdown.LinkKindInline {
			return l
		}
		dest, decision := resolver.Resolve(docPath, l.Destination)
		d.recorder.IncLinkDecision(string(decision))
		d.logger.Debug("Link",
			logfields.Path(docPath),
			logfields.Link(l.Destination),
			logfields.Target(dest),
			logfields.Decision(string(decision)))
		l.Destination = dest
		return l
	})
}
