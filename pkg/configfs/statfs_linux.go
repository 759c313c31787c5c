//go:build linux

package configfs

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// IsConfigFS reports whether path lives on a configfs mount.
func IsConfigFS(path string) (bool, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return false, fmt.Errorf("statfs %s: %w", path, err)
	}
	return uint32(st.Type) == Magic, nil
}
