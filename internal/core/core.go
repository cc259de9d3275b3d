package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lakshaymaurya-felt/macmole/internal/config"
)

// IsRoot reports whether the process runs with root privileges. Deleting
// system-owned paths without them fails with a permission error, which is
// reported per candidate rather than aborting a run.
func IsRoot() bool {
	return os.Geteuid() == 0
}

// isProtected reports whether path is, or contains, a never-delete path.
func isProtected(path string) bool {
	cleaned := filepath.Clean(path)
	for _, p := range config.GetNeverDeletePaths() {
		protected := filepath.Clean(p)
		if cleaned == protected {
			return true
		}
		// Refuse to delete ancestors of protected paths too.
		if strings.HasPrefix(protected, cleaned+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// SafeDelete recursively deletes path after verifying it is absolute and not
// on the never-delete list. Returns the number of bytes freed. In dryRun
// mode the size is computed but nothing is removed.
func SafeDelete(path string, dryRun bool) (int64, error) {
	if path == "" {
		return 0, fmt.Errorf("refusing to delete empty path")
	}
	if !filepath.IsAbs(path) {
		return 0, fmt.Errorf("refusing to delete relative path %q", path)
	}
	if isProtected(path) {
		return 0, fmt.Errorf("refusing to delete protected path %q", path)
	}

	size := DirSize(path)

	if dryRun {
		return size, nil
	}
	if err := os.RemoveAll(path); err != nil {
		return 0, err
	}
	return size, nil
}

// DirSize sums file sizes under path, best effort. Entries that vanish or
// deny access are skipped. Returns 0 for an absent path.
func DirSize(path string) int64 {
	var total int64
	_ = filepath.WalkDir(path, func(_ string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			total += info.Size()
		}
		return nil
	})
	return total
}
