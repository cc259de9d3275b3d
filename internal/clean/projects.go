package clean

import (
	"os"
	"path/filepath"
	"time"

	"github.com/lakshaymaurya-felt/macmole/internal/core"
	"github.com/lakshaymaurya-felt/macmole/pkg/whitelist"
)

// ─── Project Artifact Scanning ───────────────────────────────────────────────

// artifactDirs are build output directory names worth reclaiming from
// project checkouts.
var artifactDirs = map[string]string{
	"node_modules": "Node.js dependencies",
	"target":       "Rust/Java build output",
	"build":        "Build output",
	"dist":         "Distribution output",
	".next":        "Next.js build cache",
	".nuxt":        "Nuxt build cache",
	".venv":        "Python virtualenv",
	"Pods":         "CocoaPods checkout",
}

// maxProjectDepth bounds the walk below each project root. Deep scans are
// slow and artifacts live near the top of a checkout anyway.
const maxProjectDepth = 3

// ScanProjectArtifacts walks the given project roots looking for build
// artifact directories whose contents haven't been touched within minAge.
// Roots that don't exist are skipped.
func ScanProjectArtifacts(roots []string, minAge time.Duration, wl *whitelist.Whitelist) []CleanItem {
	cutoff := time.Now().Add(-minAge)

	var items []CleanItem
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			continue
		}
		items = append(items, scanProjectRoot(root, root, 0, cutoff, wl)...)
	}
	return items
}

func scanProjectRoot(root, dir string, depth int, cutoff time.Time, wl *whitelist.Whitelist) []CleanItem {
	if depth > maxProjectDepth {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var items []CleanItem
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())

		desc, isArtifact := artifactDirs[e.Name()]
		if !isArtifact {
			// Recurse into regular directories; hidden ones are skipped
			// except the artifact names matched above.
			if e.Name()[0] == '.' {
				continue
			}
			items = append(items, scanProjectRoot(root, path, depth+1, cutoff, wl)...)
			continue
		}

		if wl != nil && wl.IsWhitelisted(path) {
			continue
		}

		// Recently built projects are left alone.
		info, err := e.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}

		items = append(items, CleanItem{
			Path:        path,
			Size:        core.DirSize(path),
			Category:    "projects",
			Description: desc,
		})
	}
	return items
}
