package assets

import (
	"embed"
	"io/fs"
)

//go:embed styles/*.css templates/*.html scripts/*.js
var embedded embed.FS

// NewEmbeddedLoader returns a Loader over the built-in assets.
func NewEmbeddedLoader() *Loader {
	return &Loader{
		source: "embedded assets",
		open: func() (fs.FS, func() error, error) {
			return embedded, func() error { return nil }, nil
		},
	}
}
