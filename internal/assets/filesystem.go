package assets

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// NewFilesystemLoader returns a Loader over the directory basePath.
// Reads go through os.Root, so neither names nor symlinks can reach
// outside basePath.
// Returns ErrInvalidBasePath if basePath is not a readable directory.
func NewFilesystemLoader(basePath string) (*Loader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, absPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, absPath)
	}
	if _, err := os.ReadDir(absPath); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	return &Loader{
		source: absPath,
		open: func() (fs.FS, func() error, error) {
			root, err := os.OpenRoot(absPath)
			if err != nil {
				return nil, nil, err
			}
			return root.FS(), root.Close, nil
		},
	}, nil
}
