// Package whitelist manages user-protected paths that cleanup must not touch.
// The list is persisted as YAML so it can be edited by hand.
package whitelist

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Whitelist holds protected path prefixes.
type Whitelist struct {
	path    string
	Entries []string `yaml:"protected"`
}

// DefaultPath returns the whitelist location under the config directory.
func DefaultPath(configDir string) string {
	return filepath.Join(configDir, "whitelist.yaml")
}

// Load reads a whitelist from path. A missing file yields an empty list.
func Load(path string) (*Whitelist, error) {
	wl := &Whitelist{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return wl, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read whitelist: %w", err)
	}
	if err := yaml.Unmarshal(data, wl); err != nil {
		return nil, fmt.Errorf("parse whitelist: %w", err)
	}
	return wl, nil
}

// Save writes the whitelist back to its file, creating directories as needed.
func (w *Whitelist) Save() error {
	sort.Strings(w.Entries)
	data, err := yaml.Marshal(w)
	if err != nil {
		return fmt.Errorf("encode whitelist: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("create whitelist directory: %w", err)
	}
	return os.WriteFile(w.path, data, 0o644)
}

// Add registers a protected path. Returns false if it was already present.
func (w *Whitelist) Add(path string) bool {
	cleaned := filepath.Clean(path)
	for _, e := range w.Entries {
		if e == cleaned {
			return false
		}
	}
	w.Entries = append(w.Entries, cleaned)
	return true
}

// Remove drops a protected path. Returns false if it was not present.
func (w *Whitelist) Remove(path string) bool {
	cleaned := filepath.Clean(path)
	for i, e := range w.Entries {
		if e == cleaned {
			w.Entries = append(w.Entries[:i], w.Entries[i+1:]...)
			return true
		}
	}
	return false
}

// IsWhitelisted reports whether path equals, or lives under, any protected
// entry.
func (w *Whitelist) IsWhitelisted(path string) bool {
	cleaned := filepath.Clean(path)
	for _, e := range w.Entries {
		if cleaned == e || strings.HasPrefix(cleaned, e+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
