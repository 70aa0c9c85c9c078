// Package errors provides structured error types for the gosqlbridge library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Kind set mirrors the failure taxonomy of the native driver
// boundary: load and link failures, parameter/connection/request/fetch/cancel
// errors reported by the native layer, and cursor misuse detected before a
// native call is made.
//
// Use the convenience constructors for common patterns:
//
//	err := errors.Link("createRows", cause)
//	err := errors.Request("createRows", "bind value count mismatch")
//
// All errors implement the standard error interface and support errors.Is/As;
// Is matches on Phase and Kind, so callers can test against a prototype:
//
//	if errors.Is(err, &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindAlreadyLoaded}) { ... }
package errors
