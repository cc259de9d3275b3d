package clean

import (
	"os"
	"path/filepath"

	"github.com/lakshaymaurya-felt/macmole/internal/config"
	"github.com/lakshaymaurya-felt/macmole/internal/core"
	"github.com/lakshaymaurya-felt/macmole/pkg/whitelist"
)

// CleanItem is one deletable path discovered by a scan.
type CleanItem struct {
	Path        string
	Size        int64
	Category    string
	Description string
}

// scanDirectory lists the immediate children of dir as clean items, sized
// recursively. Whitelisted children are skipped. Errors on individual
// entries are tolerated — a path we can't read is a path we won't clean.
func scanDirectory(dir, category, description string, wl *whitelist.Whitelist) []CleanItem {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var items []CleanItem
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if wl != nil && wl.IsWhitelisted(path) {
			continue
		}

		var size int64
		if e.IsDir() {
			size = core.DirSize(path)
		} else {
			info, err := e.Info()
			if err != nil {
				continue
			}
			size = info.Size()
		}

		items = append(items, CleanItem{
			Path:        path,
			Size:        size,
			Category:    category,
			Description: description,
		})
	}

	return items
}

// ScanTargets resolves a set of clean targets into concrete items. Glob
// wildcards in target paths are expanded; absent paths are ignored.
func ScanTargets(targets []config.CleanTarget, wl *whitelist.Whitelist) []CleanItem {
	var items []CleanItem
	for _, t := range targets {
		for _, p := range t.Paths {
			paths := []string{p}
			if hasGlob(p) {
				matches, err := filepath.Glob(p)
				if err != nil {
					continue
				}
				paths = matches
			}
			for _, path := range paths {
				if wl != nil && wl.IsWhitelisted(path) {
					continue
				}
				info, err := os.Stat(path)
				if err != nil {
					continue
				}
				size := info.Size()
				if info.IsDir() {
					size = core.DirSize(path)
				}
				items = append(items, CleanItem{
					Path:        path,
					Size:        size,
					Category:    t.Category,
					Description: t.Description,
				})
			}
		}
	}
	return items
}

func hasGlob(path string) bool {
	for _, c := range path {
		if c == '*' || c == '?' || c == '[' {
			return true
		}
	}
	return false
}

// TotalSize sums the sizes of a scan result.
func TotalSize(items []CleanItem) int64 {
	var total int64
	for _, it := range items {
		total += it.Size
	}
	return total
}
