package types

import (
	"io/fs"
)

// FS is the filesystem surface the injector needs. Production code uses the
// OS implementation; tests swap in an in-memory one.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Remove(name string) error
}
