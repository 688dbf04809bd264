// Package du measures the disk footprint of a directory tree.
package du

import (
	"fmt"
	"io/fs"
	"path/filepath"
)

// Size returns the summed length of every non-directory entry below root.
// A missing root or any unreadable entry fails the whole scan.
func Size(root string) (uint64, error) {
	var size uint64

	if err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		size += uint64(info.Size())

		return nil
	}); err != nil {
		return 0, fmt.Errorf("disk usage of %v: %w", root, err)
	}

	return size, nil
}
