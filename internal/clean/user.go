package clean

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/lakshaymaurya-felt/macmole/internal/core"
	"github.com/lakshaymaurya-felt/macmole/pkg/whitelist"
)

// ─── User Cache Scanning ─────────────────────────────────────────────────────

// appCacheSkipPrefixes are cache bundle identifiers that are risky to clear
// wholesale (login/session state lives next to them).
var appCacheSkipPrefixes = []string{
	"com.apple.bird", // iCloud sync state
	"CloudKit",
	"FamilyCircle",
}

// ScanUserCaches scans ~/Library/Caches, one item per application bundle,
// skipping identifiers known to hold sync state.
func ScanUserCaches(wl *whitelist.Whitelist) []CleanItem {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	cachesDir := filepath.Join(home, "Library", "Caches")

	items := scanDirectory(cachesDir, "user", "User application caches", wl)

	filtered := items[:0]
	for _, it := range items {
		base := filepath.Base(it.Path)
		skip := false
		for _, prefix := range appCacheSkipPrefixes {
			if strings.HasPrefix(base, prefix) {
				skip = true
				break
			}
		}
		if !skip {
			filtered = append(filtered, it)
		}
	}
	return filtered
}

// ─── Trash ───────────────────────────────────────────────────────────────────

// trashDir returns the user's Trash directory.
func trashDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".Trash")
}

// ScanTrash returns the total size of the user's Trash.
func ScanTrash() (int64, error) {
	dir := trashDir()
	if dir == "" {
		return 0, nil
	}
	if _, err := os.Stat(dir); err != nil {
		return 0, nil
	}
	return core.DirSize(dir), nil
}

// EmptyTrash removes the contents of ~/.Trash (not the directory itself —
// Finder expects it to exist). In dryRun mode, no action is taken.
func EmptyTrash(dryRun bool) (int64, error) {
	dir := trashDir()
	if dir == "" {
		return 0, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	var freed int64
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		size := core.DirSize(path)
		if !e.IsDir() {
			if info, err := e.Info(); err == nil {
				size = info.Size()
			}
		}
		if dryRun {
			freed += size
			continue
		}
		if err := os.RemoveAll(path); err != nil {
			continue
		}
		freed += size
	}
	return freed, nil
}
