// Package errs provides the shared error taxonomy of the dispatch service.
//
// Every error kind pairs a sentinel (for classification with errors.Is) with
// a structured type carrying the parameter name and an optional cause:
//
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value failed validation
//   - ValueIsOutOfRangeError: a value is outside its [min, max] bounds
//   - ObjectNotFoundError: a lookup found nothing
//
// Callers match on the sentinel to decide how to react (the HTTP layer maps
// them to status codes) and read the struct fields when they need detail.
// Each structured type unwraps to its sentinel.
package errs
