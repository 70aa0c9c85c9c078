package platform

import (
	"os"
	"strings"
)

const fipsIndicatorPath = "/proc/sys/crypto/fips_enabled"

// fipsEnabled reports whether the kernel runs in FIPS mode. Unreadable or
// missing indicator means false.
func fipsEnabled() bool {
	data, err := os.ReadFile(fipsIndicatorPath)
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(data)) == "1"
}
