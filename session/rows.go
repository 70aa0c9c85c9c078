package session

import (
	"sync"

	bridge "github.com/Teradata/gosqlbridge"
	"github.com/Teradata/gosqlbridge/errors"
)

// State is the position of a cursor in its lifecycle.
type State uint8

const (
	// StateCreated is the initial state and the state re-entered after
	// advancing to a new result set.
	StateCreated State = iota
	// StateMetadataAvailable means the current result set's metadata has
	// been read and cached.
	StateMetadataAvailable
	// StateFetching means at least one row of the current result set has
	// been fetched.
	StateFetching
	// StateNoMoreRows means the current result set is exhausted.
	StateNoMoreRows
	// StateNoMoreResults means the request has no further result sets.
	StateNoMoreResults
	// StateFailed is entered when a driver call fails; only Close leaves it.
	StateFailed
	// StateClosed is terminal.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateMetadataAvailable:
		return "metadata-available"
	case StateFetching:
		return "fetching"
	case StateNoMoreRows:
		return "no-more-rows"
	case StateNoMoreResults:
		return "no-more-results"
	case StateFailed:
		return "failed"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Rows is a cursor over the result sets of one request. It is not safe for
// concurrent use.
type Rows struct {
	session  *Session
	handle   bridge.RowsHandle
	state    State
	meta     bridge.ResultMeta
	haveMeta bool
	mu       sync.Mutex
}

// State returns the cursor's current lifecycle state.
func (r *Rows) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// open reports whether driver calls are still permitted, translating the
// terminal states into errors.
func (r *Rows) open() error {
	switch r.state {
	case StateClosed:
		return errors.Closed("rows")
	case StateFailed:
		return errors.InvalidState("cursor has failed; close it")
	}
	return nil
}

// fail absorbs a driver error: the cursor stops accepting fetch traffic
// and only Close remains valid.
func (r *Rows) fail() {
	r.state = StateFailed
	r.haveMeta = false
}

// Metadata describes the current result set. It is read from the driver
// once per result set and cached; after the last result set no metadata
// exists.
func (r *Rows) Metadata() (bridge.ResultMeta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.open(); err != nil {
		return bridge.ResultMeta{}, err
	}
	if r.haveMeta {
		return r.meta, nil
	}
	if r.state != StateCreated {
		return bridge.ResultMeta{}, errors.InvalidState("no current result set")
	}
	return r.loadMeta()
}

// loadMeta reads and caches the current result set's metadata. Caller
// holds r.mu and has checked the state.
func (r *Rows) loadMeta() (bridge.ResultMeta, error) {
	s := r.session
	s.mu.Lock()
	meta, err := s.driver.ResultMetadata(s.log, r.handle)
	s.mu.Unlock()
	if err != nil {
		r.fail()
		return bridge.ResultMeta{}, err
	}

	r.meta = meta
	r.haveMeta = true
	r.state = StateMetadataAvailable
	return meta, nil
}

// Fetch returns the next row of the current result set. Metadata is read
// first if the caller has not done so. ok is false with a nil error once
// the result set is exhausted; further calls keep reporting exhaustion
// without touching the driver.
func (r *Rows) Fetch() (row string, ok bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.open(); err != nil {
		return "", false, err
	}
	if r.state == StateNoMoreRows || r.state == StateNoMoreResults {
		return "", false, nil
	}
	if r.state == StateCreated {
		if _, err := r.loadMeta(); err != nil {
			return "", false, err
		}
	}

	s := r.session
	s.mu.Lock()
	row, ok, err = s.driver.FetchRow(s.log, r.handle)
	s.mu.Unlock()
	if err != nil {
		r.fail()
		return "", false, err
	}
	if !ok {
		r.state = StateNoMoreRows
		return "", false, nil
	}
	r.state = StateFetching
	return row, true, nil
}

// NextResultSet advances the cursor to the next result set of the request.
// On true the cursor returns to its initial state with fresh metadata
// pending; on false no further result sets exist.
func (r *Rows) NextResultSet() (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.open(); err != nil {
		return false, err
	}
	if r.state == StateNoMoreResults {
		return false, nil
	}

	s := r.session
	s.mu.Lock()
	more, err := s.driver.NextResult(s.log, r.handle)
	s.mu.Unlock()
	if err != nil {
		r.fail()
		return false, err
	}
	if !more {
		r.state = StateNoMoreResults
		return false, nil
	}
	r.state = StateCreated
	r.haveMeta = false
	r.meta = bridge.ResultMeta{}
	return true, nil
}

// Close releases the cursor. It is valid in every state, including after a
// failure, and reaches the driver exactly once; repeated calls are no-ops.
func (r *Rows) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateClosed {
		return nil
	}
	r.state = StateClosed
	r.haveMeta = false

	s := r.session
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.driver.CloseRows(s.log, r.handle)
}
