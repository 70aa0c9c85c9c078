//go:build !linux

package platform

// Only Linux exposes a FIPS mode indicator relevant to library selection.
func fipsEnabled() bool {
	return false
}
