// Package platform resolves the filename of the native driver library for a
// given operating system, CPU architecture, pointer width, and security
// mode.
//
// The native library ships one build per platform, distinguished by the
// filename suffix (teradatasql.so, teradatasql.dll, teradatasql.arm.fips.so,
// and so on). Suffix is a pure function over the platform descriptor; Detect
// reads the descriptor of the running process, including the Linux FIPS
// indicator.
package platform
