package types

import (
	"io"
	"io/fs"
)

// FS is the filesystem interface required for overlay operations. It covers
// both the blob search path and the configfs control tree.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	Open(name string) (File, error)
	OpenFile(name string, flag int, perm fs.FileMode) (File, error)

	// Directory operations
	ReadDir(name string) ([]fs.DirEntry, error)
	Mkdir(name string, perm fs.FileMode) error

	// Remove deletes a file or an empty directory. On configfs, removing an
	// overlay directory unapplies the overlay.
	Remove(name string) error
}

// File is an open handle returned by FS. Both *os.File and afero.File satisfy it.
type File interface {
	io.Reader
	io.Writer
	io.Closer
	Name() string
}
