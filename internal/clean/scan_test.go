package clean

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lakshaymaurya-felt/macmole/internal/config"
	"github.com/lakshaymaurya-felt/macmole/pkg/whitelist"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "com.example.app", "blob"), 100)
	writeFile(t, filepath.Join(dir, "com.other.app", "blob"), 50)
	writeFile(t, filepath.Join(dir, "loose.log"), 5)

	items := scanDirectory(dir, "user", "App caches", nil)
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3: %+v", len(items), items)
	}

	sizes := make(map[string]int64)
	for _, it := range items {
		sizes[filepath.Base(it.Path)] = it.Size
		if it.Category != "user" {
			t.Errorf("category = %q, want user", it.Category)
		}
	}
	if sizes["com.example.app"] != 100 || sizes["com.other.app"] != 50 || sizes["loose.log"] != 5 {
		t.Errorf("sizes = %v", sizes)
	}

	if got := TotalSize(items); got != 155 {
		t.Errorf("TotalSize = %d, want 155", got)
	}
}

func TestScanDirectorySkipsWhitelisted(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "keepme", "blob"), 10)
	writeFile(t, filepath.Join(dir, "junk", "blob"), 10)

	wl := &whitelist.Whitelist{}
	wl.Add(filepath.Join(dir, "keepme"))

	items := scanDirectory(dir, "user", "App caches", wl)
	if len(items) != 1 || filepath.Base(items[0].Path) != "junk" {
		t.Errorf("items = %+v, want only junk", items)
	}
}

func TestScanDirectoryAbsent(t *testing.T) {
	if items := scanDirectory("/no/such/dir", "user", "x", nil); items != nil {
		t.Errorf("absent dir should yield nil, got %+v", items)
	}
}

func TestScanTargets(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "DerivedData", "proj", "obj.o"), 40)
	writeFile(t, filepath.Join(dir, "profiles", "abc.default", "cache.sqlite"), 8)
	writeFile(t, filepath.Join(dir, "profiles", "def.work", "cache.sqlite"), 8)

	targets := []config.CleanTarget{
		{
			Category:    "xcode",
			Description: "Xcode build products",
			Paths:       []string{filepath.Join(dir, "DerivedData")},
		},
		{
			Category:    "browser",
			Description: "Profile caches",
			Paths:       []string{filepath.Join(dir, "profiles", "*")},
		},
		{
			Category: "user",
			Paths:    []string{filepath.Join(dir, "missing")},
		},
	}

	items := ScanTargets(targets, nil)
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3: %+v", len(items), items)
	}

	byCategory := make(map[string]int)
	for _, it := range items {
		byCategory[it.Category]++
	}
	if byCategory["xcode"] != 1 || byCategory["browser"] != 2 || byCategory["user"] != 0 {
		t.Errorf("category counts = %v", byCategory)
	}
}

func TestScanTargetsWhitelist(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "cache", "blob"), 10)

	wl := &whitelist.Whitelist{}
	wl.Add(filepath.Join(dir, "cache"))

	targets := []config.CleanTarget{
		{Category: "user", Paths: []string{filepath.Join(dir, "cache")}},
	}
	if items := ScanTargets(targets, wl); len(items) != 0 {
		t.Errorf("whitelisted target should be skipped, got %+v", items)
	}
}
