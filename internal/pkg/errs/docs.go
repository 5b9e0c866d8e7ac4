// Package errs provides standardized error types for the departure tracking core.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers the full error taxonomy of the core:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError: input validation
//   - ObjectNotFoundError: a referenced entity is absent
//   - InvalidTransitionError: a state machine rule was violated
//   - ConflictError: a concurrent mutation lost, or a uniqueness constraint fired
//   - InvalidReferenceError: a catalog reference (absence reason, price row) is missing or inactive
//   - VersionIsInvalidError: an aggregate carries an impossible version
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is classifies against the sentinel
//
// Callers branch on the sentinels, never on message text.
package errs
