//go:build !linux

package configfs

import "errors"

// ErrUnsupported is returned by IsConfigFS on platforms without configfs.
var ErrUnsupported = errors.New("configfs detection is only supported on linux")

// IsConfigFS reports whether path lives on a configfs mount.
func IsConfigFS(path string) (bool, error) {
	return false, ErrUnsupported
}
