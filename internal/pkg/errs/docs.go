// Package errs provides the standardized error types of the food-ordering core.
//
// The package distinguishes two families of failures:
//   - business and validation errors (ValueIsRequiredError, ValueIsInvalidError,
//     ValueIsOutOfRangeError, ObjectNotFoundError), deterministic for a given input
//     and store state;
//   - infrastructure errors (UnavailableError), raised by adapters when the store
//     cannot be reached or a query fails for reasons unrelated to the data.
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
package errs
