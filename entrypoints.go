package gosqlbridge

// Native entry-point names. Names, argument order, and out-parameter roles
// are part of the compatibility surface with the native library and must
// not change.
const (
	OpCombineJSON      = "combineJSON"
	OpParseParams      = "parseParams"
	OpCreateConnection = "createConnection"
	OpCloseConnection  = "closeConnection"
	OpCancelRequest    = "cancelRequest"
	OpCreateRows       = "createRows"
	OpResultMetaData   = "resultMetaData"
	OpFetchRow         = "fetchRow"
	OpNextResult       = "nextResult"
	OpCloseRows        = "closeRows"
	OpFreePointer      = "freePointer"
)

// EntryPoints enumerates every entry point resolved at load time.
var EntryPoints = []string{
	OpCombineJSON,
	OpParseParams,
	OpCreateConnection,
	OpCloseConnection,
	OpCancelRequest,
	OpCreateRows,
	OpResultMetaData,
	OpFetchRow,
	OpNextResult,
	OpCloseRows,
	OpFreePointer,
}
