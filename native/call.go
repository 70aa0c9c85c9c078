package native

import (
	"runtime"
	"unsafe"

	bridge "github.com/Teradata/gosqlbridge"
	"github.com/Teradata/gosqlbridge/errors"
)

// logHandleNone is the sentinel context for calls made before parameter
// parsing has produced a log handle.
const logHandleNone bridge.LogHandle = 0

// CombineJSON merges two JSON objects through the native layer.
func (l *Library) CombineJSON(json1, json2 string) (string, error) {
	cJSON1 := cString(json1)
	cJSON2 := cString(json2)
	var errPtr, combined uintptr

	syscallN(l.syms.combineJSON,
		cPtr(cJSON1),
		cPtr(cJSON2),
		uintptr(unsafe.Pointer(&errPtr)),
		uintptr(unsafe.Pointer(&combined)),
	)
	runtime.KeepAlive(cJSON1)
	runtime.KeepAlive(cJSON2)

	if errPtr != 0 {
		return "", errors.Param(bridge.OpCombineJSON, l.takeString(logHandleNone, errPtr))
	}
	return l.takeString(logHandleNone, combined), nil
}

// ParseParams validates connection parameters and returns the log handle
// for the session being established.
func (l *Library) ParseParams(params string) (bridge.LogHandle, error) {
	cParams := cString(params)
	var errPtr uintptr
	var log uint64

	syscallN(l.syms.parseParams,
		cPtr(cParams),
		uintptr(unsafe.Pointer(&errPtr)),
		uintptr(unsafe.Pointer(&log)),
	)
	runtime.KeepAlive(cParams)

	if errPtr != 0 {
		return 0, errors.Param(bridge.OpParseParams, l.takeString(bridge.LogHandle(log), errPtr))
	}
	return bridge.LogHandle(log), nil
}

// CreateConnection establishes a session.
func (l *Library) CreateConnection(log bridge.LogHandle, version, params string) (bridge.ConnHandle, error) {
	cVersion := cString(version)
	cParams := cString(params)
	var errPtr uintptr
	var conn uint64

	syscallN(l.syms.createConnection,
		uintptr(log),
		cPtr(cVersion),
		cPtr(cParams),
		uintptr(unsafe.Pointer(&errPtr)),
		uintptr(unsafe.Pointer(&conn)),
	)
	runtime.KeepAlive(cVersion)
	runtime.KeepAlive(cParams)

	if errPtr != 0 {
		return 0, errors.Connection(bridge.OpCreateConnection, l.takeString(log, errPtr))
	}
	return bridge.ConnHandle(conn), nil
}

// CloseConnection tears down a session.
func (l *Library) CloseConnection(log bridge.LogHandle, conn bridge.ConnHandle) error {
	var errPtr uintptr

	syscallN(l.syms.closeConnection,
		uintptr(log),
		uintptr(conn),
		uintptr(unsafe.Pointer(&errPtr)),
	)

	if errPtr != 0 {
		return errors.Connection(bridge.OpCloseConnection, l.takeString(log, errPtr))
	}
	return nil
}

// CancelRequest aborts the in-flight request on a connection.
func (l *Library) CancelRequest(log bridge.LogHandle, conn bridge.ConnHandle) error {
	var errPtr uintptr

	syscallN(l.syms.cancelRequest,
		uintptr(log),
		uintptr(conn),
		uintptr(unsafe.Pointer(&errPtr)),
	)

	if errPtr != 0 {
		return errors.Cancel(bridge.OpCancelRequest, l.takeString(log, errPtr))
	}
	return nil
}

// CreateRows submits a request and returns a cursor over its results.
// requestText and bindValues pass through unmodified.
func (l *Library) CreateRows(log bridge.LogHandle, conn bridge.ConnHandle, requestText, bindValues string) (bridge.RowsHandle, error) {
	cRequest := cString(requestText)
	cBind := cString(bindValues)
	var errPtr uintptr
	var rows uint64

	syscallN(l.syms.createRows,
		uintptr(log),
		uintptr(conn),
		cPtr(cRequest),
		cPtr(cBind),
		uintptr(unsafe.Pointer(&errPtr)),
		uintptr(unsafe.Pointer(&rows)),
	)
	runtime.KeepAlive(cRequest)
	runtime.KeepAlive(cBind)

	if errPtr != 0 {
		return 0, errors.Request(bridge.OpCreateRows, l.takeString(log, errPtr))
	}
	return bridge.RowsHandle(rows), nil
}

// ResultMetadata describes the current result set of a cursor.
func (l *Library) ResultMetadata(log bridge.LogHandle, rows bridge.RowsHandle) (bridge.ResultMeta, error) {
	var errPtr uintptr
	var activityCount uint64
	var activityType uint16
	var activityName, columnMetadata uintptr

	syscallN(l.syms.resultMetaData,
		uintptr(log),
		uintptr(rows),
		uintptr(unsafe.Pointer(&errPtr)),
		uintptr(unsafe.Pointer(&activityCount)),
		uintptr(unsafe.Pointer(&activityType)),
		uintptr(unsafe.Pointer(&activityName)),
		uintptr(unsafe.Pointer(&columnMetadata)),
	)

	if errPtr != 0 {
		// No other output is read on the error branch.
		return bridge.ResultMeta{}, errors.Fetch(bridge.OpResultMetaData, l.takeString(log, errPtr))
	}
	return bridge.ResultMeta{
		ActivityCount:  activityCount,
		ActivityType:   activityType,
		ActivityName:   l.takeString(log, activityName),
		ColumnMetadata: l.takeString(log, columnMetadata),
	}, nil
}

// FetchRow returns the next row of the current result set. ok is false with
// a nil error once the result set is exhausted; end-of-rows is never
// conflated with an error.
func (l *Library) FetchRow(log bridge.LogHandle, rows bridge.RowsHandle) (string, bool, error) {
	var errPtr, columnValues uintptr

	syscallN(l.syms.fetchRow,
		uintptr(log),
		uintptr(rows),
		uintptr(unsafe.Pointer(&errPtr)),
		uintptr(unsafe.Pointer(&columnValues)),
	)

	if errPtr != 0 {
		return "", false, errors.Fetch(bridge.OpFetchRow, l.takeString(log, errPtr))
	}
	if columnValues == 0 {
		return "", false, nil
	}
	return l.takeString(log, columnValues), true, nil
}

// NextResult advances the cursor to the next result set.
func (l *Library) NextResult(log bridge.LogHandle, rows bridge.RowsHandle) (bool, error) {
	var errPtr uintptr
	var avail byte

	syscallN(l.syms.nextResult,
		uintptr(log),
		uintptr(rows),
		uintptr(unsafe.Pointer(&errPtr)),
		uintptr(unsafe.Pointer(&avail)),
	)

	if errPtr != 0 {
		return false, errors.Fetch(bridge.OpNextResult, l.takeString(log, errPtr))
	}
	return avail == 'Y', nil
}

// CloseRows releases the cursor's native resources.
func (l *Library) CloseRows(log bridge.LogHandle, rows bridge.RowsHandle) error {
	var errPtr uintptr

	syscallN(l.syms.closeRows,
		uintptr(log),
		uintptr(rows),
		uintptr(unsafe.Pointer(&errPtr)),
	)

	if errPtr != 0 {
		return errors.Fetch(bridge.OpCloseRows, l.takeString(log, errPtr))
	}
	return nil
}
