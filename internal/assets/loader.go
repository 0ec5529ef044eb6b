package assets

import (
	"errors"
	"fmt"
	"io/fs"
)

// AssetLoader defines the contract for loading stylesheets, page templates
// and browser scripts by name. Names are bare file stems; anything else
// returns ErrInvalidAssetName. A missing asset returns the kind's
// not-found error.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
	LoadScript(name string) (string, error)
}

// Loader reads assets from one filesystem laid out as
// styles/*.css, templates/*.html and scripts/*.js.
type Loader struct {
	source string
	open   func() (fs.FS, func() error, error)
}

// Source describes where the loader reads from.
func (l *Loader) Source() string {
	return l.source
}

// Load reads the asset name of kind k.
func (l *Loader) Load(k Kind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	fsys, done, err := l.open()
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrAssetRead, l.source, err)
	}
	defer done()

	content, err := fs.ReadFile(fsys, k.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %q in %s", k.NotFound, name, l.source)
		}
		return "", fmt.Errorf("%w: %s: %v", ErrAssetRead, k.path(name), err)
	}
	return string(content), nil
}

// LoadStyle loads styles/{name}.css.
func (l *Loader) LoadStyle(name string) (string, error) {
	return l.Load(Style, name)
}

// LoadTemplate loads templates/{name}.html.
func (l *Loader) LoadTemplate(name string) (string, error) {
	return l.Load(Template, name)
}

// LoadScript loads scripts/{name}.js.
func (l *Loader) LoadScript(name string) (string, error) {
	return l.Load(Script, name)
}

// Compile-time interface check.
var _ AssetLoader = (*Loader)(nil)
