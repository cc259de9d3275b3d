package envutil

import (
	"os"
	"path/filepath"
	"strings"
)

// Expand resolves $VAR / ${VAR} references and a leading ~ in a path.
// Unset variables expand to the empty string, same as the shell.
func Expand(path string) string {
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
