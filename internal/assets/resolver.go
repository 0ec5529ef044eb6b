package assets

import "errors"

// AssetResolver loads each asset from the first layer that has it. With a
// custom directory the layers are [custom, embedded]; without one, only
// embedded.
type AssetResolver struct {
	layers []*Loader
}

// NewAssetResolver creates an AssetResolver. An empty customBasePath uses
// the embedded assets only.
// Returns ErrInvalidBasePath if customBasePath is set but unusable.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{}

	if customBasePath != "" {
		custom, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.layers = append(r.layers, custom)
	}
	r.layers = append(r.layers, NewEmbeddedLoader())

	return r, nil
}

// Sources lists the layers in lookup order.
func (r *AssetResolver) Sources() []string {
	out := make([]string, len(r.layers))
	for i, l := range r.layers {
		out[i] = l.Source()
	}
	return out
}

// Load returns the asset from the first layer that has it. Only a
// not-found error moves on to the next layer; invalid names and read
// errors are returned as is.
func (r *AssetResolver) Load(k Kind, name string) (string, error) {
	var err error
	for _, l := range r.layers {
		var content string
		content, err = l.Load(k, name)
		if err == nil {
			return content, nil
		}
		if !errors.Is(err, k.NotFound) {
			return "", err
		}
	}
	return "", err
}

// LoadStyle loads a stylesheet, custom layer first.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.Load(Style, name)
}

// LoadTemplate loads a page template, custom layer first.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.Load(Template, name)
}

// LoadScript loads a browser script, custom layer first.
func (r *AssetResolver) LoadScript(name string) (string, error) {
	return r.Load(Script, name)
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
