package gosqlbridge

// LogHandle identifies a diagnostic/correlation context produced by
// parameter parsing. It is threaded through every later call on the same
// logical session, including buffer release.
type LogHandle uint64

// ConnHandle identifies an established session on the native side.
type ConnHandle uint64

// RowsHandle identifies an active cursor over one request's results.
// A request may contain several semicolon-separated statements; the cursor
// then spans several result sets.
type RowsHandle uint64

// NoBindValues is the JSON marker passed to CreateRows when a request has
// no bind values.
const NoBindValues = "null"

// ResultMeta describes the shape of the current result set of a cursor.
// ColumnMetadata is a JSON object produced by the native layer and is
// passed through without interpretation.
type ResultMeta struct {
	ActivityName   string
	ColumnMetadata string
	ActivityCount  uint64
	ActivityType   uint16
}

// Driver is the capability interface over the native entry-point set.
//
// Handles are opaque; validity is enforced entirely by the implementation.
// All text is UTF-8 and passed through without interpretation. There are
// two implementations: native.Library, backed by the dynamically loaded
// driver library, and drivermock.Mock for tests.
type Driver interface {
	// CombineJSON merges two JSON objects into one. Precedence on a key
	// collision belongs to the implementation. Fails if either input is
	// not a JSON object.
	CombineJSON(json1, json2 string) (string, error)

	// ParseParams validates connection parameters and registers a
	// diagnostic context for the session being established.
	ParseParams(params string) (LogHandle, error)

	// CreateConnection establishes a session. An empty version selects the
	// native driver's own version string.
	CreateConnection(log LogHandle, version, params string) (ConnHandle, error)

	// CloseConnection tears down a session.
	CloseConnection(log LogHandle, conn ConnHandle) error

	// CancelRequest aborts the in-flight request on a connection. It may be
	// called concurrently with an operation blocked on the same connection.
	CancelRequest(log LogHandle, conn ConnHandle) error

	// CreateRows submits one or more semicolon-separated statements with an
	// optional JSON array-of-arrays of bind rows (NoBindValues when absent)
	// and returns a cursor over the results.
	CreateRows(log LogHandle, conn ConnHandle, requestText, bindValues string) (RowsHandle, error)

	// ResultMetadata describes the current result set of a cursor.
	ResultMetadata(log LogHandle, rows RowsHandle) (ResultMeta, error)

	// FetchRow returns the next row of the current result set as a JSON
	// array of column values. ok is false, with a nil error, once the
	// current result set is exhausted.
	FetchRow(log LogHandle, rows RowsHandle) (row string, ok bool, err error)

	// NextResult advances the cursor to the next result set. When it
	// returns true the caller must read ResultMetadata again before
	// fetching; when it returns false no further metadata or fetch calls
	// are valid on the cursor.
	NextResult(log LogHandle, rows RowsHandle) (bool, error)

	// CloseRows releases the cursor's native resources. Exactly one close
	// per rows handle, on every exit path, including mid-iteration.
	CloseRows(log LogHandle, rows RowsHandle) error
}
