package filename

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	foundationerrors "git.home.luguber.info/inful/mdhtml/internal/foundation/errors"
)

// ErrDuplicateName is the cause of every collision reported by Table.Claim.
var ErrDuplicateName = errors.New("duplicate file name")

// Table maps output name keys to the canonical source path that claimed them.
// It lives for one conversion run and is not safe for concurrent use.
type Table struct {
	policy     Policy
	outputName func(string) string
	entries    map[string]string
}

// TableOption customizes a Table.
type TableOption func(*Table)

// WithOutputName makes the table compare the names fn derives from each
// input file name, so inputs that differ only by extension still collide
// when they produce the same output file.
func WithOutputName(fn func(string) string) TableOption {
	return func(t *Table) { t.outputName = fn }
}

// NewTable returns an empty table comparing names with policy.
func NewTable(policy Policy, opts ...TableOption) *Table {
	t := &Table{
		policy:     policy,
		outputName: func(name string) string { return name },
		entries:    make(map[string]string),
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Policy returns the comparison policy of the table.
func (t *Table) Policy() Policy { return t.policy }

// Len returns the number of distinct names claimed so far.
func (t *Table) Len() int { return len(t.entries) }

// Claim records the file name of path. Claiming the same file twice is a
// no-op. A different file whose name has the same key is a duplicate_name
// error naming both paths.
//
// The returned name is the file's base name as stored on disk.
func (t *Table) Claim(path string) (string, error) {
	canonical, err := Canonical(path)
	if err != nil {
		return "", foundationerrors.InputError(path, err)
	}

	name := filepath.Base(canonical)
	if t.policy == CaseInsensitive {
		name = onDiskName(filepath.Dir(canonical), name)
	}
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", foundationerrors.PathError("cannot determine file name of", path, nil)
	}

	out := t.outputName(name)
	key := t.policy.Key(out)
	if prev, ok := t.entries[key]; ok {
		if prev == canonical {
			return name, nil
		}
		return "", foundationerrors.WrapError(ErrDuplicateName, foundationerrors.CategoryDuplicateName,
			fmt.Sprintf("file name %q used by both %s and %s", out, prev, canonical)).
			WithContext("path", canonical).
			WithContext("previous", prev).
			Build()
	}
	t.entries[key] = canonical
	return name, nil
}

// Canonical returns path made absolute with every symlink resolved.
func Canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// onDiskName looks name up in dir ignoring case and returns the spelling the
// directory actually stores. It returns name unchanged if the lookup fails.
func onDiskName(dir, name string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return name
	}
	for _, e := range entries {
		if e.Name() == name {
			return name
		}
	}
	for _, e := range entries {
		if strings.EqualFold(e.Name(), name) {
			return e.Name()
		}
	}
	return name
}
