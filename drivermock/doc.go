// Package drivermock provides an in-memory Driver for tests.
//
// Mock speaks the same contract as the native library: opaque handles,
// JSON-string rows, and one result set at a time per cursor. Tests script
// the results a request should produce, run code against the Driver
// interface, and then assert on the recorded call log and open-handle
// counts. Failures can be injected per entry point to exercise error
// paths without a native library on disk.
package drivermock
