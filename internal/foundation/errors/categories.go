package errors

// ErrorCategory names the kind of failure.
type ErrorCategory string

const (
	// CategoryInput covers unreadable source files and standard input failures.
	CategoryInput ErrorCategory = "input"
	// CategoryFrontMatter is recovered internally and never surfaced to the user.
	CategoryFrontMatter ErrorCategory = "frontmatter"
	// CategoryOutput covers unwritable destinations and uncreatable directories.
	CategoryOutput ErrorCategory = "output"
	// CategoryPath covers file names and relative paths that cannot be determined.
	CategoryPath          ErrorCategory = "path"
	CategoryDuplicateName ErrorCategory = "duplicate_name"
	CategoryFormat        ErrorCategory = "format"
	CategoryUsage         ErrorCategory = "usage"
	CategoryConfig        ErrorCategory = "config"
	CategoryInternal      ErrorCategory = "internal"
)

// ErrorContext holds structured fields attached to an error.
type ErrorContext map[string]any

// Set stores value under key, allocating the map when needed.
func (c ErrorContext) Set(key string, value any) ErrorContext {
	if c == nil {
		c = make(ErrorContext)
	}
	c[key] = value
	return c
}

// GetString returns the value under key when it is a string.
func (c ErrorContext) GetString(key string) (string, bool) {
	s, ok := c[key].(string)
	return s, ok
}
