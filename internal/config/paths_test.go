package config

import (
	"path/filepath"
	"testing"
)

func TestCleanTargetsWellFormed(t *testing.T) {
	seen := make(map[string]bool)
	for _, target := range GetCleanTargets() {
		if target.Name == "" || target.Category == "" || target.Description == "" {
			t.Errorf("incomplete target: %+v", target)
		}
		if seen[target.Name] {
			t.Errorf("duplicate target name %q", target.Name)
		}
		seen[target.Name] = true

		switch target.RiskLevel {
		case "low", "medium", "high":
		default:
			t.Errorf("%s: unknown risk level %q", target.Name, target.RiskLevel)
		}

		for _, p := range target.Paths {
			if !filepath.IsAbs(p) {
				t.Errorf("%s: relative path %q", target.Name, p)
			}
		}
	}
}

func TestGetTargetsByCategory(t *testing.T) {
	for _, cat := range []string{"user", "browser", "xcode", "dev", "system"} {
		targets := GetTargetsByCategory(cat)
		if len(targets) == 0 {
			t.Errorf("category %q has no targets", cat)
		}
		for _, target := range targets {
			if target.Category != cat {
				t.Errorf("%s: category = %q, want %q", target.Name, target.Category, cat)
			}
		}
	}
	if got := GetTargetsByCategory("nope"); len(got) != 0 {
		t.Errorf("unknown category should be empty, got %v", got)
	}
}

func TestNeverDeleteCoversCriticalRoots(t *testing.T) {
	paths := GetNeverDeletePaths()
	want := []string{"/", "/System", "/Users", "/usr"}
	for _, w := range want {
		found := false
		for _, p := range paths {
			if p == w {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("never-delete list is missing %q", w)
		}
	}
}
