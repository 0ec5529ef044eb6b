// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-vault2html/internal/fileutil"
)

// ForRootDocument returns hints for an unreadable root document.
// It detects a missing vault directory and a root document whose name only
// differs in case.
func ForRootDocument(vaultDir, rootDocument string) string {
	if !fileutil.DirExists(vaultDir) {
		return format("source directory " + vaultDir + " does not exist; pass the vault path as the first argument")
	}

	entries, err := os.ReadDir(vaultDir)
	if err == nil {
		want := filepath.Base(rootDocument)
		for _, e := range entries {
			if !e.IsDir() && e.Name() != want && strings.EqualFold(e.Name(), want) {
				return format("found " + e.Name() + "; set vault.rootDocument: " + e.Name())
			}
		}
	}

	return format("create " + rootDocument + " in the vault or set vault.rootDocument in the config")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path to suggest
	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/go-vault2html/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForAssetPath returns hints for an invalid --assets directory.
func ForAssetPath() string {
	return format("the directory may hold styles/default.css, templates/page.html and scripts/script.js")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
