package sdk

import (
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"github.com/spf13/afero"
)

// mkSDK creates one SDK bundle directory in the expected layout.
func mkSDK(t *testing.T, fsys afero.Fs, root, platform, bundle string) string {
	t.Helper()
	dir := filepath.Join(root, "Platforms", platform+".platform", "Developer", "SDKs", bundle)
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestDiscoverAbsentRoot(t *testing.T) {
	fsys := afero.NewMemMapFs()

	if got := Discover(fsys, "/nonexistent"); len(got) != 0 {
		t.Errorf("absent root should yield no candidates, got %d", len(got))
	}
	if got := Discover(fsys, ""); len(got) != 0 {
		t.Errorf("empty root should yield no candidates, got %d", len(got))
	}
}

func TestDiscoverEmptyPlatforms(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := fsys.MkdirAll("/dev/Platforms", 0o755); err != nil {
		t.Fatal(err)
	}

	if got := Discover(fsys, "/dev"); len(got) != 0 {
		t.Errorf("empty Platforms dir should yield no candidates, got %d", len(got))
	}
}

func TestDiscoverLayout(t *testing.T) {
	fsys := afero.NewMemMapFs()
	root := "/Applications/Xcode.app/Contents/Developer"

	mkSDK(t, fsys, root, "iPhoneOS", "iPhoneOS16.2.sdk")
	mkSDK(t, fsys, root, "iPhoneOS", "iPhoneOS16.0.sdk")
	mkSDK(t, fsys, root, "MacOSX", "MacOSX14.0.sdk")

	// Noise that must be ignored.
	if err := fsys.MkdirAll(filepath.Join(root, "Platforms", "NotAPlatform"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := fsys.MkdirAll(filepath.Join(root, "Platforms", "iPhoneOS.platform", "Developer", "SDKs", "README"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fsys, filepath.Join(root, "Platforms", "MacOSX.platform", "Developer", "SDKs", "notes.sdk"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := Discover(fsys, root)
	if len(got) != 3 {
		t.Fatalf("expected 3 candidates, got %d: %+v", len(got), got)
	}

	names := make([]string, len(got))
	for i, c := range got {
		names[i] = c.Platform + "/" + c.RawName
		if c.Path == "" {
			t.Errorf("candidate %q has empty path", c.RawName)
		}
	}
	sort.Strings(names)
	want := []string{
		"MacOSX/MacOSX14.0.sdk",
		"iPhoneOS/iPhoneOS16.0.sdk",
		"iPhoneOS/iPhoneOS16.2.sdk",
	}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("candidates = %v, want %v", names, want)
	}
}

func TestDiscoverParsesVersionsImmediately(t *testing.T) {
	fsys := afero.NewMemMapFs()
	root := "/dev"
	mkSDK(t, fsys, root, "iPhoneOS", "iPhoneOS16.2.sdk")
	mkSDK(t, fsys, root, "iPhoneOS", "WeirdName.sdk")

	for _, c := range Discover(fsys, root) {
		switch c.RawName {
		case "iPhoneOS16.2.sdk":
			if !c.Version.Known() || c.Version.Major != 16 || c.Version.Minor != 2 {
				t.Errorf("expected parsed 16.2, got %s", c.Version)
			}
		case "WeirdName.sdk":
			if c.Version.Known() {
				t.Errorf("expected sentinel version for %q", c.RawName)
			}
		}
	}
}

func TestDiscoverUniquePaths(t *testing.T) {
	fsys := afero.NewMemMapFs()
	root := "/dev"
	mkSDK(t, fsys, root, "iPhoneOS", "iPhoneOS16.2.sdk")
	mkSDK(t, fsys, root, "MacOSX", "MacOSX14.0.sdk")
	mkSDK(t, fsys, root, "AppleTVOS", "AppleTVOS17.0.sdk")

	seen := make(map[string]bool)
	for _, c := range Discover(fsys, root) {
		if seen[c.Path] {
			t.Errorf("duplicate path %q in one discovery pass", c.Path)
		}
		seen[c.Path] = true
	}
}
