// Package errs provides standardized error types for the laundry order service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// Value errors describe rejected input:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside its bounds
//   - ObjectNotFoundError: For when an object cannot be found
//
// Lifecycle errors describe rejected operations on orders and commissions:
//   - InvalidTransitionError: a status change outside the forward path
//   - ForbiddenError: an actor without authority over the change
//   - ConflictError: a lost compare-and-swap or a duplicate
//   - InvalidStateError: a precondition that does not hold
//   - UnavailableError: storage or broker failure
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
package errs
