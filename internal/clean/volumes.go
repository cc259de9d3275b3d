package clean

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/lakshaymaurya-felt/macmole/pkg/whitelist"
)

// ─── External Volume Scanning ────────────────────────────────────────────────

// volumesRoot is where macOS mounts external and secondary volumes.
const volumesRoot = "/Volumes"

// commonJunkDirs are directory names commonly holding temporary files on
// external volumes. These are safe to clean.
var commonJunkDirs = []string{
	"tmp",
	"temp",
	"Temp",
	"cache",
	"Cache",
	"Caches",
}

// externalVolumes returns mounted volumes under /Volumes, skipping the boot
// volume (mounted as a symlink to /) and network mounts we can't stat.
func externalVolumes() []string {
	entries, err := os.ReadDir(volumesRoot)
	if err != nil {
		return nil
	}

	var volumes []string
	for _, e := range entries {
		path := filepath.Join(volumesRoot, e.Name())

		// The boot volume appears as a symlink to "/" — never scan it here,
		// it's already covered by the standard targets.
		if e.Type()&os.ModeSymlink != 0 {
			continue
		}
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			continue
		}
		volumes = append(volumes, path)
	}
	return volumes
}

// ScanVolumes discovers external volumes and scans them for temp and cache
// directories plus macOS metadata junk (.Trashes).
func ScanVolumes(wl *whitelist.Whitelist) []CleanItem {
	var items []CleanItem

	for _, vol := range externalVolumes() {
		label := filepath.Base(vol)

		// 1. Common temp/cache directories at the volume root.
		for _, junk := range commonJunkDirs {
			dir := filepath.Join(vol, junk)
			info, err := os.Stat(dir)
			if err != nil || !info.IsDir() {
				continue
			}
			if wl != nil && wl.IsWhitelisted(dir) {
				continue
			}
			items = append(items, scanDirectory(dir, "volumes", label+": temp files", wl)...)
		}

		// 2. Per-volume trash folders.
		trashes := filepath.Join(vol, ".Trashes")
		if info, err := os.Stat(trashes); err == nil && info.IsDir() {
			if wl == nil || !wl.IsWhitelisted(trashes) {
				items = append(items, scanDirectory(trashes, "volumes", label+": volume trash", wl)...)
			}
		}

		// 3. Top-level nested temp directories (common on data volumes).
		entries, err := os.ReadDir(vol)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
				continue
			}
			for _, sub := range commonJunkDirs {
				subPath := filepath.Join(vol, e.Name(), sub)
				if info, err := os.Stat(subPath); err == nil && info.IsDir() {
					if wl != nil && wl.IsWhitelisted(subPath) {
						continue
					}
					items = append(items, scanDirectory(subPath, "volumes", label+": "+e.Name()+" temp", wl)...)
				}
			}
		}
	}

	return items
}
