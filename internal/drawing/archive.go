// Package drawing reads Excalidraw drawing archives and renders them as
// embeddable HTML fragments.
//
// A drawing archive is a Markdown file holding the serialized scene in a
// fenced code block labelled either "json" (plain) or "compressed-json"
// (lz-string base64). The package extracts and validates the scene,
// normalizes font indexes the stand-alone renderer does not know, and
// produces the container markup and once-per-page runtime bundle.
package drawing

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	lzstring "github.com/daku10/go-lz-string"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Fence markers used by drawing archives.
const (
	compressedFence = "```compressed-json"
	plainFence      = "```json"
	closingFence    = "```"
)

// Font index limits of the stand-alone renderer.
const (
	maxSupportedFontFamily = 4
	handDrawnFontFamily    = 1
)

// Sentinel errors for archive parsing.
var (
	ErrNoSceneFence   = errors.New("drawing archive has no scene fence")
	ErrUnclosedFence  = errors.New("drawing scene fence is not closed")
	ErrEmptyScene     = errors.New("drawing scene is empty")
	ErrDecompress     = errors.New("failed to decompress drawing scene")
	ErrInvalidScene   = errors.New("drawing scene is not valid JSON")
	ErrNormalizeScene = errors.New("failed to normalize drawing scene")
)

// ExtractScene returns the JSON scene stored in a drawing archive.
// Compressed payloads are stripped of line breaks and decoded first.
func ExtractScene(archive string) ([]byte, error) {
	compressed := strings.Contains(archive, compressedFence)
	marker := plainFence
	if compressed {
		marker = compressedFence
	}

	start := strings.Index(archive, marker)
	if start == -1 {
		return nil, ErrNoSceneFence
	}
	start += len(marker)

	end := strings.Index(archive[start:], closingFence)
	if end == -1 {
		return nil, ErrUnclosedFence
	}
	payload := archive[start : start+end]

	var scene string
	if compressed {
		payload = strings.NewReplacer("\n", "", "\r", "").Replace(payload)
		if strings.TrimSpace(payload) == "" {
			return nil, ErrEmptyScene
		}
		decoded, err := lzstring.DecompressFromBase64(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecompress, err)
		}
		if decoded == "" {
			return nil, ErrDecompress
		}
		scene = decoded
	} else {
		scene = payload
	}

	if strings.TrimSpace(scene) == "" {
		return nil, ErrEmptyScene
	}
	if !gjson.Valid(scene) {
		return nil, ErrInvalidScene
	}
	return []byte(scene), nil
}

// NormalizeFonts remaps every element fontFamily above the supported range
// to the hand-drawn family. Other bytes of the scene are left untouched.
func NormalizeFonts(scene []byte) ([]byte, error) {
	var paths []string
	i := 0
	gjson.GetBytes(scene, "elements").ForEach(func(_, el gjson.Result) bool {
		if ff := el.Get("fontFamily"); ff.Exists() && ff.Num > maxSupportedFontFamily {
			paths = append(paths, fmt.Sprintf("elements.%d.fontFamily", i))
		}
		i++
		return true
	})

	out := scene
	for _, p := range paths {
		var err error
		out, err = sjson.SetBytes(out, p, handDrawnFontFamily)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNormalizeScene, err)
		}
	}
	return out, nil
}

// NewID returns a page-unique element id for a drawing titled title:
// spaces become underscores, dots are dropped, and a random hex suffix
// separates repeated embeds of the same drawing.
func NewID(title string) string {
	base := strings.ReplaceAll(strings.ReplaceAll(title, " ", "_"), ".", "")
	var suffix [4]byte
	_, _ = rand.Read(suffix[:])
	return base + "_" + hex.EncodeToString(suffix[:])
}
