// Package errors provides the classified error primitives used across mdhtml.
//
// Every fatal condition of a conversion run is reported as a ClassifiedError
// whose category names the kind of failure (input, output, path, duplicate
// name, format, usage). The CLI adapter turns any of them into a single
// human-readable line on standard error and a non-zero exit code.
//
// Example usage:
//
//	err := errors.WrapError(ioErr, errors.CategoryInput, "failure reading file").
//		WithContext("path", p).
//		Build()
package errors
