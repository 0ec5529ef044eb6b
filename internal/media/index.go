// Package media indexes vault media, resolves embed references against the
// index and renders resolved media as HTML fragments.
package media

import (
	"errors"
	"io/fs"
	"log/slog"
	"path"
)

// Index is the set of media files available to embeds, keyed as
// "<dir>/<filename>". Immutable once built.
type Index struct {
	entries map[string]struct{}
}

// BuildIndex lists each directory of fsys (non-recursively) and records its
// files. A missing directory is skipped; an unreadable one is logged
// and contributes nothing.
func BuildIndex(fsys fs.FS, dirs []string, logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	idx := &Index{entries: make(map[string]struct{})}
	for _, dir := range dirs {
		dir = path.Clean(dir)
		entries, err := fs.ReadDir(fsys, dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Debug("media directory not found", "dir", dir)
				continue
			}
			logger.Warn("reading media directory", "dir", dir, "err", err)
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			idx.entries[dir+"/"+e.Name()] = struct{}{}
		}
	}

	logger.Info("indexed media files", "count", idx.Len())
	return idx
}

// Has reports whether p is an exact, case-sensitive member of the index.
func (i *Index) Has(p string) bool {
	if i == nil {
		return false
	}
	_, ok := i.entries[p]
	return ok
}

// Len returns the number of indexed files.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.entries)
}
