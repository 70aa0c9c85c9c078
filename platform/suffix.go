package platform

import (
	"runtime"
	"strconv"
	"strings"
)

// libraryPrefix is the fixed base name of the native driver library.
const libraryPrefix = "teradatasql."

// Suffix computes the native library filename suffix for a platform.
// os and arch use Go's runtime.GOOS/GOARCH vocabulary; bits is the pointer
// width in bits. Deterministic and total: every input yields a suffix.
func Suffix(os, arch string, bits int, fips bool) string {
	arm := strings.HasPrefix(arch, "arm")
	power := arch == "ppc64le"

	switch os {
	case "windows":
		if bits == 32 {
			return "x86.dll"
		}
		return "dll"
	case "darwin":
		return "dylib"
	case "aix":
		return "aix.so"
	}

	switch {
	case arm && fips:
		return "arm.fips.so"
	case arm:
		return "arm.so"
	case power:
		return "power.so"
	case bits == 32:
		return "x86.so"
	case fips:
		return "fips.so"
	}
	return "so"
}

// LibraryName returns the native library filename for a platform.
func LibraryName(os, arch string, bits int, fips bool) string {
	return libraryPrefix + Suffix(os, arch, bits, fips)
}

// Info describes the platform the process is running on.
type Info struct {
	OS   string
	Arch string
	Bits int
	FIPS bool
}

// Detect returns the descriptor of the running process. The FIPS flag is
// read from the platform's security-mode indicator and is false when the
// indicator is absent or unreadable.
func Detect() Info {
	return Info{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
		Bits: strconv.IntSize,
		FIPS: fipsEnabled(),
	}
}

// LibraryName returns the native library filename for this platform.
func (i Info) LibraryName() string {
	return LibraryName(i.OS, i.Arch, i.Bits, i.FIPS)
}
