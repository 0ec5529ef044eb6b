package pipeline

import (
	"strings"
	"testing"
)

func TestDecorateMedia(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "image gets lazy loading",
			input:    `<p><img src="attachments/a.png" alt="a"></p>`,
			contains: []string{`loading="lazy"`, `src="attachments/a.png"`},
		},
		{
			name:     "existing loading attribute kept",
			input:    `<img src="a.png" loading="eager">`,
			contains: []string{`loading="eager"`},
			excludes: []string{`loading="lazy"`},
		},
		{
			name:     "video gets metadata preload",
			input:    `<figure><video controls><source src="v.mp4" type="video/mp4"></video></figure>`,
			contains: []string{`preload="metadata"`, `<source src="v.mp4" type="video/mp4"/>`},
		},
		{
			name:     "existing preload kept",
			input:    `<video preload="none"></video>`,
			contains: []string{`preload="none"`},
			excludes: []string{`preload="metadata"`},
		},
		{
			name:     "nested images all decorated",
			input:    `<ul><li><img src="a.png"></li><li><img src="b.png"></li></ul>`,
			contains: []string{`<img src="a.png" loading="lazy"/>`, `<img src="b.png" loading="lazy"/>`},
		},
		{
			name:     "script content preserved",
			input:    `<img src="a.png"><script type="application/json">{"a":"<b>"}</script>`,
			contains: []string{`{"a":"<b>"}`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := DecorateMedia(tt.input)
			if err != nil {
				t.Fatalf("DecorateMedia() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("missing %q in:\n%s", want, got)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("unexpected %q in:\n%s", unwanted, got)
				}
			}
		})
	}
}

func TestDecorateMedia_NoMediaUnchanged(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"<p>plain <em>text</em></p>",
		"<p>unbalanced <b>markup</p>",
	}
	for _, input := range inputs {
		got, err := DecorateMedia(input)
		if err != nil {
			t.Fatalf("DecorateMedia(%q) error = %v", input, err)
		}
		if got != input {
			t.Errorf("DecorateMedia(%q) = %q, want unchanged", input, got)
		}
	}
}

func TestDecorateMedia_Idempotent(t *testing.T) {
	t.Parallel()

	once, err := DecorateMedia(`<img src="a.png"><video></video>`)
	if err != nil {
		t.Fatalf("DecorateMedia() error = %v", err)
	}
	twice, err := DecorateMedia(once)
	if err != nil {
		t.Fatalf("DecorateMedia() error = %v", err)
	}
	if once != twice {
		t.Errorf("second pass changed output:\n%s\n%s", once, twice)
	}
}
