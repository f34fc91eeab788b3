// Package errors provides the classified error primitives used across autosite.
//
// A ClassifiedError carries a category (what failed) and a severity (how much it
// matters for the run). The build pipeline uses severity to decide between
// aborting the run and logging a warning before moving on to the next page.
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryNotFound, "page source not found").
//		Warning().
//		WithContext("path", page.Path).
//		Build()
package errors
