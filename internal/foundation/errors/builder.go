package errors

// ErrorBuilder provides a fluent API for creating ClassifiedError instances.
type ErrorBuilder struct {
	category ErrorCategory
	message  string
	cause    error
	context  ErrorContext
}

// NewError creates a new ErrorBuilder with the specified category and message.
func NewError(category ErrorCategory, message string) *ErrorBuilder {
	return &ErrorBuilder{
		category: category,
		message:  message,
		context:  make(ErrorContext),
	}
}

// WrapError creates a new ErrorBuilder that wraps an existing error.
func WrapError(err error, category ErrorCategory, message string) *ErrorBuilder {
	b := NewError(category, message)
	b.cause = err
	return b
}

// WithContext adds a context key-value pair.
func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	b.context = b.context.Set(key, value)
	return b
}

// Build creates the final ClassifiedError.
func (b *ErrorBuilder) Build() *ClassifiedError {
	return &ClassifiedError{
		category: b.category,
		message:  b.message,
		cause:    b.cause,
		context:  b.context,
	}
}

// Convenience constructors, one per error kind.

// InputError reports an unreadable source.
func InputError(path string, cause error) *ClassifiedError {
	return WrapError(cause, CategoryInput, "failure reading "+path).
		WithContext("path", path).
		Build()
}

// OutputError reports an unwritable destination or uncreatable directory.
func OutputError(message, path string, cause error) *ClassifiedError {
	return WrapError(cause, CategoryOutput, message+" "+path).
		WithContext("path", path).
		Build()
}

// PathError reports a path whose name or relative form cannot be determined.
func PathError(message, path string, cause error) *ClassifiedError {
	return WrapError(cause, CategoryPath, message+" "+path).
		WithContext("path", path).
		Build()
}

// UsageError reports conflicting or missing command-line input.
func UsageError(message string) *ClassifiedError {
	return NewError(CategoryUsage, message).Build()
}

// FormatError reports a formatter rejecting its configuration or input.
func FormatError(cause error) *ClassifiedError {
	return WrapError(cause, CategoryFormat, "failed to format html").Build()
}

// ConfigError reports an unusable configuration value.
func ConfigError(message string, cause error) *ClassifiedError {
	return WrapError(cause, CategoryConfig, message).Build()
}
