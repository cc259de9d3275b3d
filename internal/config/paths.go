package config

import (
	"os"
	"path/filepath"

	"github.com/lakshaymaurya-felt/macmole/internal/envutil"
)

// CleanTarget represents a category of files that can be cleaned.
type CleanTarget struct {
	// Name is the unique identifier for this target.
	Name string

	// Paths is the list of filesystem paths to clean. Entries may contain
	// glob wildcards.
	Paths []string

	// Description is a human-readable description.
	Description string

	// RequiresAdmin indicates whether elevated privileges are needed.
	RequiresAdmin bool

	// Category groups related targets (e.g., "user", "xcode", "browser", "dev").
	Category string

	// RiskLevel is one of "low", "medium", "high".
	RiskLevel string
}

// expand resolves environment variables and ~ in a path.
func expand(path string) string {
	return envutil.Expand(path)
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return expand("~")
	}
	return home
}

// libraryDir returns ~/Library.
func libraryDir() string {
	return filepath.Join(homeDir(), "Library")
}

// cachesDir returns ~/Library/Caches, the per-user cache root.
func cachesDir() string {
	return filepath.Join(libraryDir(), "Caches")
}

// xcodeDir returns ~/Library/Developer/Xcode.
func xcodeDir() string {
	return filepath.Join(libraryDir(), "Developer", "Xcode")
}

// GetCleanTargets returns all available cleanup targets with paths expanded.
func GetCleanTargets() []CleanTarget {
	home := homeDir()
	library := libraryDir()
	caches := cachesDir()
	xcode := xcodeDir()

	return []CleanTarget{
		// ── User Logs & Caches ──────────────────────────────────
		{
			Name:          "UserLogs",
			Paths:         []string{filepath.Join(library, "Logs")},
			Description:   "User application logs",
			RequiresAdmin: false,
			Category:      "user",
			RiskLevel:     "low",
		},
		{
			Name:          "QuickLookCache",
			Paths:         []string{filepath.Join(caches, "com.apple.QuickLook.thumbnailcache")},
			Description:   "Quick Look thumbnail cache (rebuilds automatically)",
			RequiresAdmin: false,
			Category:      "user",
			RiskLevel:     "low",
		},
		// ── Browser Caches ──────────────────────────────────────
		{
			Name: "ChromeCache",
			Paths: []string{
				filepath.Join(caches, "Google", "Chrome"),
				filepath.Join(library, "Application Support", "Google", "Chrome", "Default", "Service Worker", "CacheStorage"),
			},
			Description:   "Google Chrome browser cache",
			RequiresAdmin: false,
			Category:      "browser",
			RiskLevel:     "low",
		},
		{
			Name: "SafariCache",
			Paths: []string{
				filepath.Join(caches, "com.apple.Safari"),
				filepath.Join(caches, "com.apple.WebKit.WebContent"),
			},
			Description:   "Safari browser cache",
			RequiresAdmin: false,
			Category:      "browser",
			RiskLevel:     "low",
		},
		{
			Name: "FirefoxCache",
			Paths: []string{
				filepath.Join(caches, "Firefox", "Profiles", "*", "cache2"),
				filepath.Join(caches, "Firefox", "Profiles", "*", "startupCache"),
			},
			Description:   "Mozilla Firefox browser cache (cache2 within profiles)",
			RequiresAdmin: false,
			Category:      "browser",
			RiskLevel:     "low",
		},

		// ── Xcode & Toolchain ───────────────────────────────────
		{
			Name:          "DerivedData",
			Paths:         []string{filepath.Join(xcode, "DerivedData")},
			Description:   "Xcode build intermediates and indexes",
			RequiresAdmin: false,
			Category:      "xcode",
			RiskLevel:     "low",
		},
		{
			Name:          "XcodeArchives",
			Paths:         []string{filepath.Join(xcode, "Archives")},
			Description:   "Xcode app archives (needed for dSYM symbolication)",
			RequiresAdmin: false,
			Category:      "xcode",
			RiskLevel:     "high",
		},
		{
			Name:          "DeviceSupport",
			Paths:         []string{filepath.Join(xcode, "iOS DeviceSupport"), filepath.Join(xcode, "watchOS DeviceSupport")},
			Description:   "Per-device debugging symbols (re-downloaded on connect)",
			RequiresAdmin: false,
			Category:      "xcode",
			RiskLevel:     "low",
		},
		{
			Name:          "SimulatorCaches",
			Paths:         []string{filepath.Join(library, "Developer", "CoreSimulator", "Caches")},
			Description:   "iOS Simulator caches",
			RequiresAdmin: false,
			Category:      "xcode",
			RiskLevel:     "low",
		},

		// ── Developer Caches ────────────────────────────────────
		{
			Name:          "HomebrewCache",
			Paths:         []string{filepath.Join(caches, "Homebrew")},
			Description:   "Homebrew download cache",
			RequiresAdmin: false,
			Category:      "dev",
			RiskLevel:     "low",
		},
		{
			Name:          "NpmCache",
			Paths:         []string{filepath.Join(home, ".npm", "_cacache")},
			Description:   "npm package manager cache",
			RequiresAdmin: false,
			Category:      "dev",
			RiskLevel:     "low",
		},
		{
			Name:          "PipCache",
			Paths:         []string{filepath.Join(caches, "pip")},
			Description:   "Python pip package cache",
			RequiresAdmin: false,
			Category:      "dev",
			RiskLevel:     "low",
		},
		{
			Name:          "CargoCache",
			Paths:         []string{filepath.Join(home, ".cargo", "registry", "cache")},
			Description:   "Rust cargo registry cache",
			RequiresAdmin: false,
			Category:      "dev",
			RiskLevel:     "low",
		},
		{
			Name:          "GradleCache",
			Paths:         []string{filepath.Join(home, ".gradle", "caches")},
			Description:   "Gradle build cache",
			RequiresAdmin: false,
			Category:      "dev",
			RiskLevel:     "low",
		},
		{
			Name:          "CocoaPodsCache",
			Paths:         []string{filepath.Join(caches, "CocoaPods")},
			Description:   "CocoaPods spec and pod cache",
			RequiresAdmin: false,
			Category:      "dev",
			RiskLevel:     "low",
		},
		{
			Name:          "GoModCache",
			Paths:         []string{filepath.Join(home, "go", "pkg", "mod", "cache")},
			Description:   "Go module download cache",
			RequiresAdmin: false,
			Category:      "dev",
			RiskLevel:     "low",
		},

		// ── IDE Caches ──────────────────────────────────────────
		{
			Name: "VSCodeCache",
			Paths: []string{
				filepath.Join(library, "Application Support", "Code", "Cache"),
				filepath.Join(library, "Application Support", "Code", "CachedData"),
				filepath.Join(library, "Application Support", "Code", "logs"),
			},
			Description:   "Visual Studio Code cache and logs",
			RequiresAdmin: false,
			Category:      "dev",
			RiskLevel:     "low",
		},
		{
			Name: "JetBrainsCache",
			Paths: []string{
				filepath.Join(caches, "JetBrains", "*", "caches"),
				filepath.Join(caches, "JetBrains", "*", "tmp"),
			},
			Description:   "JetBrains IDE caches (IntelliJ, GoLand, etc.)",
			RequiresAdmin: false,
			Category:      "dev",
			RiskLevel:     "medium",
		},

		// ── System ──────────────────────────────────────────────
		{
			Name:          "SystemLogs",
			Paths:         []string{"/Library/Logs", "/private/var/log"},
			Description:   "System-wide logs",
			RequiresAdmin: true,
			Category:      "system",
			RiskLevel:     "medium",
		},
		{
			Name:          "DiagnosticReports",
			Paths:         []string{filepath.Join(library, "Logs", "DiagnosticReports"), "/Library/Logs/DiagnosticReports"},
			Description:   "Crash and spin diagnostic reports",
			RequiresAdmin: false,
			Category:      "system",
			RiskLevel:     "low",
		},
	}
}

// GetTargetsByCategory returns clean targets filtered by category.
func GetTargetsByCategory(category string) []CleanTarget {
	var result []CleanTarget
	for _, t := range GetCleanTargets() {
		if t.Category == category {
			result = append(result, t)
		}
	}
	return result
}

// GetNeverDeletePaths returns paths that must NEVER be deleted under any
// circumstances, regardless of what a target table or whitelist says.
func GetNeverDeletePaths() []string {
	home := homeDir()
	return []string{
		"/",
		"/System",
		"/Library",
		"/Applications",
		"/Users",
		"/usr",
		"/bin",
		"/sbin",
		"/etc",
		"/var",
		"/private",
		"/Volumes",
		home,
		filepath.Join(home, "Library"),
		filepath.Join(home, "Documents"),
		filepath.Join(home, "Desktop"),
	}
}
