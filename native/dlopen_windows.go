//go:build windows

package native

import (
	"syscall"
)

// openLibrary loads a dynamic library on Windows.
func openLibrary(path string) (uintptr, error) {
	handle, err := syscall.LoadLibrary(path)
	if err != nil {
		return 0, err
	}
	return uintptr(handle), nil
}

// closeLibrary unloads the library. Only used when symbol resolution fails;
// a fully loaded library stays mapped for the life of the process.
func closeLibrary(handle uintptr) {
	if handle != 0 {
		syscall.FreeLibrary(syscall.Handle(handle))
	}
}

// lookupSymbol resolves a named entry point in the library.
func lookupSymbol(handle uintptr, name string) (uintptr, error) {
	proc, err := syscall.GetProcAddress(syscall.Handle(handle), name)
	if err != nil {
		return 0, err
	}
	return uintptr(proc), nil
}

// syscallN invokes a resolved entry point with the C calling convention.
//
//go:uintptrescapes
func syscallN(fn uintptr, args ...uintptr) {
	syscall.SyscallN(fn, args...)
}
