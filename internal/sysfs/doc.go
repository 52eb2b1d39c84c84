// Package sysfs provides persistent, low-overhead read handles on kernel
// pseudo-files (procfs, sysfs, debugfs).
//
// A Handle opens its path exactly once. Each Refresh rewinds the same open
// file to offset 0, re-reads the whole content and re-parses it with the
// ParseFunc given at open time. Failed refreshes keep the previous value, so
// callers can display a stale reading instead of nothing.
//
// A Pair couples two related handles (current/max frequency, current/voltage)
// and only commits new values when both files were read and parsed in the
// same refresh.
//
// All file access goes through an FS, which wraps an afero.Fs. Production code
// uses the OS filesystem, optionally re-rooted under a prefix; tests run the
// same code against afero.NewMemMapFs fixtures.
//
// Reads are bounded by the FS timeout. A handle whose read times out is
// marked stalled and fails fast until the stuck read returns, so a misbehaving
// driver node can delay at most one tick by the timeout.
package sysfs
