// Package errs provides standardized error types for the rental application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g. ErrValueIsInvalid)
//   - A struct type carrying the error details
//   - Constructor functions with and without an underlying cause
//   - Error() for formatting and Unwrap() for errors.Is classification
//
// Validation failures (missing or malformed values), lookup failures, and
// optimistic-concurrency version conflicts are all expressed through these
// types so that callers can classify outcomes without string matching.
package errs
