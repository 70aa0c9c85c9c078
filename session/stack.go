package session

import (
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// abbreviatedStack renders the caller's stack as a single line for the
// client_stack connection metadata: outermost frame first, one
// "function file:line" entry per frame, standard-library internals omitted.
func abbreviatedStack() string {
	pc := make([]uintptr, 32)
	n := runtime.Callers(2, pc)
	if n == 0 {
		return ""
	}

	var entries []string
	frames := runtime.CallersFrames(pc[:n])
	for {
		frame, more := frames.Next()
		if frame.Function != "" && !stdFrame(frame) {
			entry := frame.Function + " " + filepath.ToSlash(frame.File) + ":" + strconv.Itoa(frame.Line)
			entries = append(entries, entry)
		}
		if !more {
			break
		}
	}

	// Innermost frame comes out first; the metadata wants outermost first.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return strings.Join(entries, " ")
}

// stdFrame reports whether a frame belongs to the standard library.
func stdFrame(frame runtime.Frame) bool {
	if strings.HasPrefix(frame.Function, "runtime.") || strings.HasPrefix(frame.Function, "testing.") {
		return true
	}
	goroot := filepath.ToSlash(runtime.GOROOT())
	return goroot != "" && strings.HasPrefix(filepath.ToSlash(frame.File), goroot+"/")
}
