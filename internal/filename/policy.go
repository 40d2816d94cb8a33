// Package filename decides how output file names compare on the target file
// system and detects collisions when several inputs are flattened into one
// directory.
package filename

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Policy selects how file names are compared.
type Policy int

const (
	// CaseSensitive compares names byte for byte.
	CaseSensitive Policy = iota
	// CaseInsensitive compares names after Unicode upper-casing.
	CaseInsensitive
)

// String implements fmt.Stringer.
func (p Policy) String() string {
	if p == CaseInsensitive {
		return "insensitive"
	}
	return "sensitive"
}

// Key returns the comparison key for name.
func (p Policy) Key(name string) string {
	if p == CaseInsensitive {
		return cases.Upper(language.Und).String(name)
	}
	return name
}

// StrictNames reports whether link targets must also avoid characters that
// case-insensitive (Windows-style) file systems reserve.
func (p Policy) StrictNames() bool {
	return p == CaseInsensitive
}

// DefaultPolicy is the policy assumed when the file system cannot be probed.
func DefaultPolicy() Policy {
	switch runtime.GOOS {
	case "windows", "darwin", "ios":
		return CaseInsensitive
	default:
		return CaseSensitive
	}
}

const probePrefix = "mdhtml-case-probe-"

// Detect probes dir once by creating a temporary lower-case file and looking
// it up under its upper-case name. It falls back to DefaultPolicy when dir is
// not writable.
func Detect(dir string) Policy {
	f, err := os.CreateTemp(dir, probePrefix+"*")
	if err != nil {
		return DefaultPolicy()
	}
	name := f.Name()
	defer func() { _ = os.Remove(name) }()

	created, err := f.Stat()
	_ = f.Close()
	if err != nil {
		return DefaultPolicy()
	}

	swapped := filepath.Join(filepath.Dir(name), strings.ToUpper(filepath.Base(name)))
	other, err := os.Stat(swapped)
	if err != nil {
		return CaseSensitive
	}
	if os.SameFile(created, other) {
		return CaseInsensitive
	}
	return CaseSensitive
}
