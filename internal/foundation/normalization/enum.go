// Package normalization maps loosely typed flag and environment values onto
// closed sets of options.
package normalization

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// EnumNormalizer maps case- and whitespace-insensitive spellings to values of T.
type EnumNormalizer[T comparable] struct {
	name     string
	values   map[string]T
	keys     []string
	fallback T
}

// NewEnumNormalizer builds a normalizer for the option called name. Keys of
// values are the accepted spellings; fallback is selected by an empty value.
func NewEnumNormalizer[T comparable](name string, values map[string]T, fallback T) *EnumNormalizer[T] {
	normalized := make(map[string]T, len(values))
	for k, v := range values {
		normalized[clean(k)] = v
	}
	return &EnumNormalizer[T]{
		name:     name,
		values:   normalized,
		keys:     slices.Sorted(maps.Keys(normalized)),
		fallback: fallback,
	}
}

// NormalizeWithValidation returns the value spelled by raw and reports
// unknown spellings. An empty raw value selects the fallback.
func (e *EnumNormalizer[T]) NormalizeWithValidation(raw string) (T, error) {
	c := clean(raw)
	if c == "" {
		return e.fallback, nil
	}
	if v, ok := e.values[c]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q, valid options: %s", e.name, raw, strings.Join(e.keys, ", "))
}

// ValidValues returns the accepted spellings in sorted order.
func (e *EnumNormalizer[T]) ValidValues() []string {
	return slices.Clone(e.keys)
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
