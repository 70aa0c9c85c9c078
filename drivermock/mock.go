package drivermock

import (
	"encoding/json"
	"fmt"
	"sync"

	bridge "github.com/Teradata/gosqlbridge"
	"github.com/Teradata/gosqlbridge/errors"
)

// Result is one scripted result set.
type Result struct {
	Meta bridge.ResultMeta
	Rows []string
}

// Call records one entry-point invocation.
type Call struct {
	Op          string
	RequestText string
	BindValues  string
	JSON1       string
	JSON2       string
}

type connState struct {
	params string
}

type rowsState struct {
	results []Result
	result  int
	row     int
}

// Mock is an in-memory Driver. The zero value is not usable; call New.
type Mock struct {
	conns     table
	rows      table
	scripts   map[string][]Result
	failures  map[string]string
	calls     []Call
	closeRows map[bridge.RowsHandle]int
	nextLog   uint64
	mu        sync.Mutex
}

var _ bridge.Driver = (*Mock)(nil)

// New creates an empty mock. Requests without a script produce a single
// empty result set.
func New() *Mock {
	return &Mock{
		scripts:   make(map[string][]Result),
		failures:  make(map[string]string),
		closeRows: make(map[bridge.RowsHandle]int),
	}
}

// Script registers the result sets a request text should produce.
func (m *Mock) Script(requestText string, results ...Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scripts[requestText] = results
}

// FailWith makes every subsequent call to the named entry point fail with
// the given message. An empty message clears the injection.
func (m *Mock) FailWith(op, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if message == "" {
		delete(m.failures, op)
		return
	}
	m.failures[op] = message
}

// Calls returns a copy of the recorded call log.
func (m *Mock) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// OpenConnections reports the number of live connection handles.
func (m *Mock) OpenConnections() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.conns.live()
}

// OpenRows reports the number of live cursor handles.
func (m *Mock) OpenRows() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows.live()
}

// CloseRowsCount reports how many times a cursor handle has been closed.
func (m *Mock) CloseRowsCount(h bridge.RowsHandle) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeRows[h]
}

func (m *Mock) record(op, requestText, bindValues string) {
	m.calls = append(m.calls, Call{Op: op, RequestText: requestText, BindValues: bindValues})
}

func (m *Mock) injected(op string) (string, bool) {
	msg, ok := m.failures[op]
	return msg, ok
}

func (m *Mock) CombineJSON(json1, json2 string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Op: bridge.OpCombineJSON, JSON1: json1, JSON2: json2})
	if msg, ok := m.injected(bridge.OpCombineJSON); ok {
		return "", errors.Param(bridge.OpCombineJSON, msg)
	}

	var a, b map[string]any
	if err := json.Unmarshal([]byte(json1), &a); err != nil {
		return "", errors.Param(bridge.OpCombineJSON, "first argument is not a JSON object")
	}
	if err := json.Unmarshal([]byte(json2), &b); err != nil {
		return "", errors.Param(bridge.OpCombineJSON, "second argument is not a JSON object")
	}
	for k, v := range b {
		a[k] = v
	}
	combined, err := json.Marshal(a)
	if err != nil {
		return "", errors.Param(bridge.OpCombineJSON, err.Error())
	}
	return string(combined), nil
}

func (m *Mock) ParseParams(params string) (bridge.LogHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(bridge.OpParseParams, "", "")
	if msg, ok := m.injected(bridge.OpParseParams); ok {
		return 0, errors.Param(bridge.OpParseParams, msg)
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(params), &obj); err != nil {
		return 0, errors.Param(bridge.OpParseParams, "parameters are not a JSON object")
	}
	m.nextLog++
	return bridge.LogHandle(m.nextLog), nil
}

func (m *Mock) CreateConnection(log bridge.LogHandle, version, params string) (bridge.ConnHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(bridge.OpCreateConnection, "", "")
	if msg, ok := m.injected(bridge.OpCreateConnection); ok {
		return 0, errors.Connection(bridge.OpCreateConnection, msg)
	}
	return bridge.ConnHandle(m.conns.create(&connState{params: params})), nil
}

func (m *Mock) CloseConnection(log bridge.LogHandle, conn bridge.ConnHandle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(bridge.OpCloseConnection, "", "")
	if msg, ok := m.injected(bridge.OpCloseConnection); ok {
		return errors.Connection(bridge.OpCloseConnection, msg)
	}
	if _, ok := m.conns.drop(uint64(conn)); !ok {
		return errors.Connection(bridge.OpCloseConnection, fmt.Sprintf("unknown connection handle %d", conn))
	}
	return nil
}

func (m *Mock) CancelRequest(log bridge.LogHandle, conn bridge.ConnHandle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(bridge.OpCancelRequest, "", "")
	if msg, ok := m.injected(bridge.OpCancelRequest); ok {
		return errors.Cancel(bridge.OpCancelRequest, msg)
	}
	if _, ok := m.conns.get(uint64(conn)); !ok {
		return errors.Cancel(bridge.OpCancelRequest, fmt.Sprintf("unknown connection handle %d", conn))
	}
	return nil
}

func (m *Mock) CreateRows(log bridge.LogHandle, conn bridge.ConnHandle, requestText, bindValues string) (bridge.RowsHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(bridge.OpCreateRows, requestText, bindValues)
	if msg, ok := m.injected(bridge.OpCreateRows); ok {
		return 0, errors.Request(bridge.OpCreateRows, msg)
	}
	if _, ok := m.conns.get(uint64(conn)); !ok {
		return 0, errors.Request(bridge.OpCreateRows, fmt.Sprintf("unknown connection handle %d", conn))
	}

	// An empty script behaves like an unscripted request: a single empty
	// result set, never a cursor with nothing current.
	results := m.scripts[requestText]
	if len(results) == 0 {
		results = []Result{{}}
	}
	return bridge.RowsHandle(m.rows.create(&rowsState{results: results})), nil
}

func (m *Mock) rowsState(op string, rows bridge.RowsHandle) (*rowsState, error) {
	v, ok := m.rows.get(uint64(rows))
	if !ok {
		return nil, errors.Fetch(op, fmt.Sprintf("unknown rows handle %d", rows))
	}
	return v.(*rowsState), nil
}

func (m *Mock) ResultMetadata(log bridge.LogHandle, rows bridge.RowsHandle) (bridge.ResultMeta, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(bridge.OpResultMetaData, "", "")
	if msg, ok := m.injected(bridge.OpResultMetaData); ok {
		return bridge.ResultMeta{}, errors.Fetch(bridge.OpResultMetaData, msg)
	}
	st, err := m.rowsState(bridge.OpResultMetaData, rows)
	if err != nil {
		return bridge.ResultMeta{}, err
	}
	return st.results[st.result].Meta, nil
}

func (m *Mock) FetchRow(log bridge.LogHandle, rows bridge.RowsHandle) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(bridge.OpFetchRow, "", "")
	if msg, ok := m.injected(bridge.OpFetchRow); ok {
		return "", false, errors.Fetch(bridge.OpFetchRow, msg)
	}
	st, err := m.rowsState(bridge.OpFetchRow, rows)
	if err != nil {
		return "", false, err
	}
	current := st.results[st.result]
	if st.row >= len(current.Rows) {
		return "", false, nil
	}
	row := current.Rows[st.row]
	st.row++
	return row, true, nil
}

func (m *Mock) NextResult(log bridge.LogHandle, rows bridge.RowsHandle) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(bridge.OpNextResult, "", "")
	if msg, ok := m.injected(bridge.OpNextResult); ok {
		return false, errors.Fetch(bridge.OpNextResult, msg)
	}
	st, err := m.rowsState(bridge.OpNextResult, rows)
	if err != nil {
		return false, err
	}
	if st.result+1 >= len(st.results) {
		return false, nil
	}
	st.result++
	st.row = 0
	return true, nil
}

func (m *Mock) CloseRows(log bridge.LogHandle, rows bridge.RowsHandle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(bridge.OpCloseRows, "", "")
	m.closeRows[rows]++
	if msg, ok := m.injected(bridge.OpCloseRows); ok {
		return errors.Fetch(bridge.OpCloseRows, msg)
	}
	if _, ok := m.rows.drop(uint64(rows)); !ok {
		return errors.Fetch(bridge.OpCloseRows, fmt.Sprintf("unknown rows handle %d", rows))
	}
	return nil
}
