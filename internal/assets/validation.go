package assets

import (
	"fmt"
	"regexp"
)

// assetName is a bare file stem: no separators, dots or extension.
var assetName = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateAssetName returns ErrInvalidAssetName unless name is a bare
// file stem such as "default" or "dark_mode-v2".
func ValidateAssetName(name string) error {
	if !assetName.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
