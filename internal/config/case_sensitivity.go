package config

import (
	"git.home.luguber.info/inful/mdhtml/internal/filename"
	"git.home.luguber.info/inful/mdhtml/internal/foundation/normalization"
)

// CaseSensitivity selects how output file names are compared.
type CaseSensitivity string

const (
	CaseAuto        CaseSensitivity = "auto"
	CaseSensitive   CaseSensitivity = "sensitive"
	CaseInsensitive CaseSensitivity = "insensitive"
)

var caseSensitivityNormalizer = normalization.NewEnumNormalizer("case sensitivity", map[string]CaseSensitivity{
	"auto":        CaseAuto,
	"sensitive":   CaseSensitive,
	"insensitive": CaseInsensitive,
}, CaseAuto)

// ParseCaseSensitivity normalizes raw and rejects unknown values.
func ParseCaseSensitivity(raw string) (CaseSensitivity, error) {
	return caseSensitivityNormalizer.NormalizeWithValidation(raw)
}

// CaseSensitivityValues lists the accepted spellings.
func CaseSensitivityValues() []string { return caseSensitivityNormalizer.ValidValues() }

// PolicyFor returns the file-name policy for output directory dir, probing
// it when c is auto.
func (c CaseSensitivity) PolicyFor(dir string) filename.Policy {
	switch c {
	case CaseSensitive:
		return filename.CaseSensitive
	case CaseInsensitive:
		return filename.CaseInsensitive
	default:
		return filename.Detect(dir)
	}
}
