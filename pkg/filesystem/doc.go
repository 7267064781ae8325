// Package filesystem provides the types.FS implementations used by prepenv:
// the real OS filesystem and an afero-backed one for tests and dry runs.
package filesystem
