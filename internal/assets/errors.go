package assets

import "errors"

// Not-found errors, one per asset kind. The resolver falls back to the
// embedded assets only on these.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrScriptNotFound   = errors.New("script not found")
)

// Other asset errors.
var (
	// ErrInvalidAssetName indicates a name that is not a bare file stem.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath indicates a custom asset directory that cannot be
	// opened.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead indicates an asset exists but could not be read,
	// including a symlink leading outside the asset directory.
	ErrAssetRead = errors.New("failed to read asset")
)
