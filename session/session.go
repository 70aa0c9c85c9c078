package session

import (
	"encoding/json"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	bridge "github.com/Teradata/gosqlbridge"
	"github.com/Teradata/gosqlbridge/errors"
)

// Escape-function request texts for transaction control.
const (
	commitRequest        = "{fn teradata_commit}"
	rollbackRequest      = "{fn teradata_rollback}"
	autocommitOnRequest  = "{fn teradata_nativesql}{fn teradata_autocommit_on}"
	autocommitOffRequest = "{fn teradata_nativesql}{fn teradata_autocommit_off}"
)

// clientMetadata identifies this binding to the database. client_kind "U"
// marks the Go binding; client_stack captures the connecting call site.
type clientMetadata struct {
	ClientKind  string `json:"client_kind"`
	ClientStack string `json:"client_stack"`
}

// Session is an established connection. All request and transaction calls
// are serialized through the session; Cancel is the exception and may be
// called concurrently to interrupt an in-flight request.
type Session struct {
	driver bridge.Driver
	log    bridge.LogHandle
	conn   bridge.ConnHandle
	closed atomic.Bool
	mu     sync.Mutex
}

// Connect establishes a session. paramsJSON is the caller's connection
// parameter object; the derived client metadata is merged into it before
// validation. The caller's parameters travel first, the metadata second;
// precedence on a key collision is the merge implementation's decision.
func Connect(d bridge.Driver, paramsJSON string) (*Session, error) {
	meta, err := json.Marshal(clientMetadata{
		ClientKind:  "U",
		ClientStack: abbreviatedStack(),
	})
	if err != nil {
		return nil, errors.Connect("encoding client metadata", err)
	}

	combined, err := d.CombineJSON(paramsJSON, string(meta))
	if err != nil {
		return nil, errors.Connect("combining connection parameters", err)
	}

	log, err := d.ParseParams(combined)
	if err != nil {
		return nil, errors.Connect("parsing connection parameters", err)
	}

	// Empty version string defers to the driver's own version.
	conn, err := d.CreateConnection(log, "", combined)
	if err != nil {
		return nil, errors.Connect("creating connection", err)
	}

	Logger().Debug("session established",
		zap.Uint64("log", uint64(log)),
		zap.Uint64("conn", uint64(conn)))

	return &Session{driver: d, log: log, conn: conn}, nil
}

// Execute submits a request and returns a cursor over its results. An
// empty bindValues means the request carries no bind values. Close the
// returned Rows before issuing the next request.
func (s *Session) Execute(requestText, bindValues string) (*Rows, error) {
	if s.closed.Load() {
		return nil, errors.Closed("session")
	}
	if bindValues == "" {
		bindValues = bridge.NoBindValues
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	handle, err := s.driver.CreateRows(s.log, s.conn, requestText, bindValues)
	if err != nil {
		return nil, err
	}
	Logger().Debug("request submitted",
		zap.Uint64("rows", uint64(handle)),
		zap.String("request", requestText))
	return &Rows{session: s, handle: handle}, nil
}

// Cancel interrupts the request currently executing on this session. It
// deliberately bypasses the session's serialization so it can reach a
// connection that is blocked inside Execute or a fetch.
func (s *Session) Cancel() error {
	if s.closed.Load() {
		return errors.Closed("session")
	}
	return s.driver.CancelRequest(s.log, s.conn)
}

// Commit commits the open transaction.
func (s *Session) Commit() error {
	return s.execSimple(commitRequest)
}

// Rollback rolls back the open transaction.
func (s *Session) Rollback() error {
	return s.execSimple(rollbackRequest)
}

// SetAutocommit switches the session's autocommit mode.
func (s *Session) SetAutocommit(on bool) error {
	if on {
		return s.execSimple(autocommitOnRequest)
	}
	return s.execSimple(autocommitOffRequest)
}

// execSimple runs a request whose results are irrelevant, releasing the
// cursor immediately.
func (s *Session) execSimple(requestText string) error {
	if s.closed.Load() {
		return errors.Closed("session")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	handle, err := s.driver.CreateRows(s.log, s.conn, requestText, bridge.NoBindValues)
	if err != nil {
		return err
	}
	return s.driver.CloseRows(s.log, handle)
}

// Close tears down the connection. Close is idempotent; only the first
// call reaches the driver. Cursors still open on the session must be
// closed before the session.
func (s *Session) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.driver.CloseConnection(s.log, s.conn)
	if err != nil {
		return err
	}
	Logger().Debug("session closed", zap.Uint64("conn", uint64(s.conn)))
	return nil
}
