package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseLoad    Phase = "load"    // library discovery and opening
	PhaseLink    Phase = "link"    // entry-point resolution
	PhaseCall    Phase = "call"    // native entry-point invocation
	PhaseConnect Phase = "connect" // session establishment
	PhaseRows    Phase = "rows"    // cursor state machine
)

// Kind categorizes the error
type Kind string

const (
	KindAlreadyLoaded Kind = "already_loaded"
	KindLibraryOpen   Kind = "library_open"
	KindSymbolMissing Kind = "symbol_missing"
	KindParam         Kind = "param"
	KindConnection    Kind = "connection"
	KindRequest       Kind = "request"
	KindFetch         Kind = "fetch"
	KindCancel        Kind = "cancel"
	KindClosed        Kind = "closed"
	KindInvalidState  Kind = "invalid_state"
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Symbol string // native entry point involved, when known
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Symbol != "" {
		b.WriteString(" at ")
		b.WriteString(e.Symbol)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Convenience constructors for common error patterns

// AlreadyLoaded reports a second load attempt in the same process
func AlreadyLoaded() *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindAlreadyLoaded,
		Detail: "native library already loaded in this process",
	}
}

// LibraryOpen reports a failure to open the native library file
func LibraryOpen(path string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindLibraryOpen,
		Detail: fmt.Sprintf("could not load library %q", path),
		Cause:  cause,
	}
}

// Link reports a missing or incompatible entry point. The whole load fails;
// no entry point from the attempt becomes callable.
func Link(symbol string, cause error) *Error {
	return &Error{
		Phase:  PhaseLink,
		Kind:   KindSymbolMissing,
		Symbol: symbol,
		Detail: "could not link to function",
		Cause:  cause,
	}
}

// Param reports a native-side rejection of connection parameters
func Param(symbol, detail string) *Error {
	return &Error{Phase: PhaseCall, Kind: KindParam, Symbol: symbol, Detail: detail}
}

// Connection reports a native-side session failure (network, auth, protocol)
func Connection(symbol, detail string) *Error {
	return &Error{Phase: PhaseCall, Kind: KindConnection, Symbol: symbol, Detail: detail}
}

// Request reports a native-side rejection of request text or bind values
func Request(symbol, detail string) *Error {
	return &Error{Phase: PhaseCall, Kind: KindRequest, Symbol: symbol, Detail: detail}
}

// Fetch reports a native-side cursor failure
func Fetch(symbol, detail string) *Error {
	return &Error{Phase: PhaseCall, Kind: KindFetch, Symbol: symbol, Detail: detail}
}

// Cancel reports a native-side cancellation failure
func Cancel(symbol, detail string) *Error {
	return &Error{Phase: PhaseCall, Kind: KindCancel, Symbol: symbol, Detail: detail}
}

// Connect wraps a driver error that aborted session establishment
func Connect(step string, cause error) *Error {
	return &Error{
		Phase:  PhaseConnect,
		Kind:   KindConnection,
		Detail: step,
		Cause:  cause,
	}
}

// Closed reports use of a session or cursor after it was closed
func Closed(what string) *Error {
	return &Error{
		Phase:  PhaseRows,
		Kind:   KindClosed,
		Detail: fmt.Sprintf("%s is closed", what),
	}
}

// InvalidState reports a cursor operation that is not valid in the cursor's
// current state. No native call is made for these.
func InvalidState(detail string) *Error {
	return &Error{Phase: PhaseRows, Kind: KindInvalidState, Detail: detail}
}
