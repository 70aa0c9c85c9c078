package native

import (
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	bridge "github.com/Teradata/gosqlbridge"
	"github.com/Teradata/gosqlbridge/errors"
	"github.com/Teradata/gosqlbridge/platform"
)

var (
	loadMu    sync.Mutex
	loadedLib *Library
)

var _ bridge.Driver = (*Library)(nil)

// Library is the dynamic-load backed Driver implementation. It owns the
// loaded native library and the resolved entry-point table for the life of
// the process. All methods are synchronous calls into native code.
type Library struct {
	handle uintptr
	syms   symbols
}

// Load opens the platform-specific native library found in dir and resolves
// its entry points. It succeeds at most once per process: a second call
// fails with an already_loaded error regardless of the directory, and the
// first registry is unchanged. A failed load leaves the process ready for
// another attempt.
func Load(dir string) (*Library, error) {
	loadMu.Lock()
	defer loadMu.Unlock()

	if loadedLib != nil {
		return nil, errors.AlreadyLoaded()
	}

	path := filepath.Join(dir, platform.Detect().LibraryName())

	handle, err := openLibrary(path)
	if err != nil {
		return nil, errors.LibraryOpen(path, err)
	}

	lib := &Library{handle: handle}
	if name, err := lib.syms.resolve(handle); err != nil {
		// All-or-nothing: discard the partial table and the mapping.
		closeLibrary(handle)
		return nil, errors.Link(name, err)
	}

	loadedLib = lib
	Logger().Debug("native library loaded", zap.String("path", path))
	return lib, nil
}

// freePointer releases a native-owned buffer under the given log-handle
// context. Zero pointers are ignored.
func (l *Library) freePointer(log bridge.LogHandle, p uintptr) {
	if p == 0 {
		return
	}
	syscallN(l.syms.freePointer, uintptr(log), p)
}

// takeString copies a native-owned text buffer into a Go string and
// releases the buffer. Exactly one release per non-zero pointer.
func (l *Library) takeString(log bridge.LogHandle, p uintptr) string {
	if p == 0 {
		return ""
	}
	s := goString(p)
	l.freePointer(log, p)
	return s
}
