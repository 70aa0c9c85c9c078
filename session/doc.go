// Package session layers connection and cursor lifecycles on top of a
// Driver.
//
// Connect runs the establishment pipeline: client metadata is merged into
// the caller's connection parameters, the parameters are validated to
// obtain a log handle, and the connection is opened under that handle. The
// resulting Session issues requests and manages transactions; each request
// yields a Rows cursor that walks result sets and rows in order and
// guarantees the underlying native cursor is released exactly once no
// matter how iteration ends.
//
// A Session serializes all driver calls through its own mutex. A Rows
// cursor belongs to the session that produced it and must not be used
// concurrently with other cursors of the same session.
package session
