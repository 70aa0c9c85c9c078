package native

import (
	bridge "github.com/Teradata/gosqlbridge"
)

// symbols is the resolved entry-point table. Populated once during Load,
// immutable thereafter, shared read-only by every call wrapper.
type symbols struct {
	combineJSON      uintptr
	parseParams      uintptr
	createConnection uintptr
	closeConnection  uintptr
	cancelRequest    uintptr
	createRows       uintptr
	resultMetaData   uintptr
	fetchRow         uintptr
	nextResult       uintptr
	closeRows        uintptr
	freePointer      uintptr
}

// resolve fills the table from the opened library. Any missing symbol fails
// the whole resolution; the caller discards the partial table.
func (s *symbols) resolve(handle uintptr) (string, error) {
	for _, ep := range []struct {
		name string
		dst  *uintptr
	}{
		{bridge.OpCombineJSON, &s.combineJSON},
		{bridge.OpParseParams, &s.parseParams},
		{bridge.OpCreateConnection, &s.createConnection},
		{bridge.OpCloseConnection, &s.closeConnection},
		{bridge.OpCancelRequest, &s.cancelRequest},
		{bridge.OpCreateRows, &s.createRows},
		{bridge.OpResultMetaData, &s.resultMetaData},
		{bridge.OpFetchRow, &s.fetchRow},
		{bridge.OpNextResult, &s.nextResult},
		{bridge.OpCloseRows, &s.closeRows},
		{bridge.OpFreePointer, &s.freePointer},
	} {
		addr, err := lookupSymbol(handle, ep.name)
		if err != nil {
			return ep.name, err
		}
		*ep.dst = addr
	}
	return "", nil
}
