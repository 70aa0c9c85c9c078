package native

import (
	"unsafe"
)

// cString returns s as a NUL-terminated byte slice for the native text
// convention. The slice must be kept alive across the native call.
func cString(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}

// cPtr returns the address of the first byte of a cString result.
func cPtr(b []byte) uintptr {
	return uintptr(unsafe.Pointer(&b[0]))
}

// goString copies the NUL-terminated text at p into a Go string. The copy
// lets the caller release the native buffer immediately afterwards.
func goString(p uintptr) string {
	if p == 0 {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Pointer(p + uintptr(n))) != 0 {
		n++
	}
	if n == 0 {
		return ""
	}
	b := make([]byte, n)
	copy(b, unsafe.Slice((*byte)(unsafe.Pointer(p)), n))
	return string(b)
}
