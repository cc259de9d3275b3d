package sdk

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// platformExt is the directory suffix for platform bundles under the
// developer root (e.g. "iPhoneOS.platform").
const platformExt = ".platform"

// Candidate is one discovered SDK bundle, annotated with its parsed version.
type Candidate struct {
	// Platform is the toolchain family the SDK belongs to ("iPhoneOS",
	// "MacOSX", ...). Grouping key for retention.
	Platform string

	// Path is the filesystem location of the bundle. Unique per scan.
	Path string

	// RawName is the bundle directory's base name.
	RawName string

	// Version is the parsed version key; sentinel when unparsable.
	Version Version
}

// Discover enumerates SDK bundles under developerRoot, one Candidate per
// bundle directory. The expected layout is
//
//	<root>/Platforms/<Name>.platform/Developer/SDKs/<Name><ver>.sdk
//
// An absent or empty root yields an empty result, not an error — toolchain
// cleanup is simply skipped. Entries that don't match the layout are ignored.
func Discover(fsys afero.Fs, developerRoot string) []Candidate {
	if developerRoot == "" {
		return nil
	}

	platformsRoot := filepath.Join(developerRoot, "Platforms")
	platforms, err := afero.ReadDir(fsys, platformsRoot)
	if err != nil {
		return nil
	}

	var out []Candidate
	for _, p := range platforms {
		if !p.IsDir() || !strings.HasSuffix(p.Name(), platformExt) {
			continue
		}
		platform := strings.TrimSuffix(p.Name(), platformExt)

		sdksDir := filepath.Join(platformsRoot, p.Name(), "Developer", "SDKs")
		bundles, err := afero.ReadDir(fsys, sdksDir)
		if err != nil {
			// Platform without an SDKs directory — ignore.
			continue
		}

		for _, b := range bundles {
			if !strings.HasSuffix(b.Name(), BundleExt) {
				continue
			}
			// Skip version-less symlink aliases like "MacOSX.sdk" that point
			// at the current release; deleting those would break the alias,
			// and only real bundle directories participate in retention.
			if !b.IsDir() || b.Mode()&os.ModeSymlink != 0 {
				continue
			}
			out = append(out, Candidate{
				Platform: platform,
				Path:     filepath.Join(sdksDir, b.Name()),
				RawName:  b.Name(),
				Version:  ParseVersion(b.Name()),
			})
		}
	}

	return out
}

// ResolveDeveloperRoot returns the active developer directory: an explicit
// override wins, then $DEVELOPER_DIR, then `xcode-select -p`. Returns "" when
// no toolchain is installed, which callers treat as "skip".
func ResolveDeveloperRoot(override string) string {
	if override != "" {
		return override
	}
	if dir := os.Getenv("DEVELOPER_DIR"); dir != "" {
		return dir
	}
	out, err := exec.Command("xcode-select", "-p").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
