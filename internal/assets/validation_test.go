package assets

import (
	"errors"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "page template", input: PageTemplateName},
		{name: "browser script", input: BrowserScriptName},
		{name: "hyphen and underscore", input: "dark_mode-v2"},
		{name: "empty", input: "", wantErr: true},
		{name: "extension", input: "default.css", wantErr: true},
		{name: "parent directory", input: "..", wantErr: true},
		{name: "forward slash", input: "styles/default", wantErr: true},
		{name: "backslash", input: `styles\default`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if tt.wantErr && !errors.Is(err, ErrInvalidAssetName) {
				t.Errorf("ValidateAssetName(%q) error = %v, want ErrInvalidAssetName", tt.input, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateAssetName(%q) unexpected error: %v", tt.input, err)
			}
		})
	}
}
