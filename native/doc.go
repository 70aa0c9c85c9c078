// Package native implements the Driver interface on top of the dynamically
// loaded driver library.
//
// Load opens the platform-specific library file exactly once per process and
// resolves the fixed entry-point set into an immutable registry held by the
// returned Library. Every entry point follows one calling convention: 64-bit
// integer handles plus NUL-terminated UTF-8 text inputs, with an
// error-pointer output parameter (nil on success) and zero or more further
// output parameters holding native-owned text or scalar results.
//
// The call wrappers uphold the ownership protocol: every non-nil buffer the
// native side hands back is copied into Go memory and then released exactly
// once through the freePointer entry point, under the log-handle context of
// the producing call, on success and failure paths alike.
package native
