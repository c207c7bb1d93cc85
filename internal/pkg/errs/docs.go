// Package errs provides standardized error types for the order service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types for every failure kind the service reports:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: bad input shape
//   - ObjectNotFoundError: unknown order, food item or payment reference
//   - InvalidStateError: operation not valid for the current lifecycle state
//   - AmountMismatchError: payment amount differs from the order total
//   - GatewayError: payment gateway failure or timeout
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for errors.Is support
//
// KindOf maps any error produced by the service to a stable Kind string that the
// transport layer exposes to clients.
package errs
