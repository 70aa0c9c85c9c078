// Package gosqlbridge binds the platform-specific Teradata GoSQL native
// driver library at runtime and exposes its entry points as a safe,
// ownership-correct request/response protocol.
//
// The library works with opaque 64-bit handles (log, connection, rows) and
// UTF-8 text. SQL execution, the wire protocol, and the meaning of the JSON
// payloads all live inside the native library; this layer is responsible for
// finding and loading the right library file, resolving its entry points
// exactly once, and making sure every native-owned buffer is released
// exactly once.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	gosqlbridge/         Root package with the Driver capability interface and handle types
//	├── session/         Connection lifecycle and the rows/result iteration state machine
//	├── native/          Dynamic-load backed Driver implementation (loader, symbol registry, call wrapper)
//	├── platform/        Native library filename resolution per OS/CPU/FIPS mode
//	├── drivermock/      In-memory Driver implementation for deterministic tests
//	└── errors/          Structured error types shared by all packages
//
// # Quick Start
//
// Load the native library once, connect, and iterate results:
//
//	lib, err := native.Load("/opt/teradata/lib")
//	if err != nil {
//		// handle error
//	}
//
//	sess, err := session.Connect(lib, `{"host":"whomooz","user":"guest","password":"please"}`)
//	if err != nil {
//		// handle error
//	}
//	defer sess.Close()
//
//	rows, err := sess.Execute("select * from dbc.dbcinfo", "")
//	if err != nil {
//		// handle error
//	}
//	defer rows.Close()
//
//	for {
//		meta, err := rows.Metadata()
//		if err != nil {
//			// handle error
//		}
//		_ = meta
//		for {
//			row, ok, err := rows.Fetch()
//			if err != nil || !ok {
//				break
//			}
//			fmt.Println(row)
//		}
//		more, err := rows.NextResultSet()
//		if err != nil || !more {
//			break
//		}
//	}
//
// # Concurrency
//
// Every operation is a synchronous, blocking call into native code. A rows
// handle must be driven from a single goroutine at a time. Cancellation is
// available through Session.Cancel, which may be invoked from a different
// goroutine against an in-flight request on the same connection.
package gosqlbridge
