//go:build !windows

package native

import (
	"github.com/ebitengine/purego"
)

// openLibrary loads a dynamic library using purego.
func openLibrary(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}

// closeLibrary unloads the library. Only used when symbol resolution fails;
// a fully loaded library stays mapped for the life of the process.
func closeLibrary(handle uintptr) {
	if handle != 0 {
		purego.Dlclose(handle)
	}
}

// lookupSymbol resolves a named entry point in the library.
func lookupSymbol(handle uintptr, name string) (uintptr, error) {
	return purego.Dlsym(handle, name)
}

// syscallN invokes a resolved entry point with the C calling convention.
//
//go:uintptrescapes
func syscallN(fn uintptr, args ...uintptr) {
	purego.SyscallN(fn, args...)
}
