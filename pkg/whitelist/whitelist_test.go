package whitelist

import (
	"path/filepath"
	"testing"
)

func TestAddRemove(t *testing.T) {
	wl := &Whitelist{}

	if !wl.Add("/Users/dev/Library/Caches/important") {
		t.Error("first Add should report true")
	}
	if wl.Add("/Users/dev/Library/Caches/important/") {
		t.Error("duplicate Add (trailing slash) should report false")
	}
	if len(wl.Entries) != 1 {
		t.Fatalf("entries = %v", wl.Entries)
	}

	if !wl.Remove("/Users/dev/Library/Caches/important") {
		t.Error("Remove of present entry should report true")
	}
	if wl.Remove("/Users/dev/Library/Caches/important") {
		t.Error("Remove of absent entry should report false")
	}
	if len(wl.Entries) != 0 {
		t.Fatalf("entries = %v", wl.Entries)
	}
}

func TestIsWhitelisted(t *testing.T) {
	wl := &Whitelist{}
	wl.Add("/Users/dev/keep")

	tests := []struct {
		path string
		want bool
	}{
		{"/Users/dev/keep", true},
		{"/Users/dev/keep/nested/file", true},
		{"/Users/dev/keepsake", false},
		{"/Users/dev", false},
		{"/tmp/other", false},
	}
	for _, tt := range tests {
		if got := wl.IsWhitelisted(tt.path); got != tt.want {
			t.Errorf("IsWhitelisted(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := DefaultPath(t.TempDir())

	wl, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(wl.Entries) != 0 {
		t.Fatalf("missing file should load empty, got %v", wl.Entries)
	}

	wl.Add("/Users/dev/b")
	wl.Add("/Users/dev/a")
	if err := wl.Save(); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"/Users/dev/a", "/Users/dev/b"}
	if len(loaded.Entries) != len(want) {
		t.Fatalf("entries = %v, want %v", loaded.Entries, want)
	}
	for i := range want {
		if loaded.Entries[i] != want[i] {
			t.Errorf("entry %d = %q, want %q (sorted)", i, loaded.Entries[i], want[i])
		}
	}

	// A reloaded whitelist keeps its backing path and can save again.
	loaded.Add("/Users/dev/c")
	if err := loaded.Save(); err != nil {
		t.Fatal(err)
	}
}

func TestDefaultPath(t *testing.T) {
	if got := DefaultPath("/home/x/.macmole"); got != filepath.Join("/home/x/.macmole", "whitelist.yaml") {
		t.Errorf("DefaultPath = %q", got)
	}
}
