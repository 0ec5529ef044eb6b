package media

import (
	"log/slog"
	"path"
	"strings"
)

// Extensions the resolver and renderer understand.
const (
	ExtDrawing = ".md"
	ExtSVG     = ".svg"
	ExtMKV     = ".mkv"
	ExtMP4     = ".mp4"
	ExtWebM    = ".webm"
	ExtPNG     = ".png"
	ExtJPG     = ".jpg"
	ExtJPEG    = ".jpeg"
)

// inferredExtensions is tried in order for references without an extension.
var inferredExtensions = []string{ExtDrawing, ExtSVG, ExtMKV, ExtMP4, ExtWebM, ExtPNG, ExtJPG}

// Resolver maps embed references to indexed media paths.
type Resolver struct {
	index  *Index
	dirs   []string // search order, attachments first
	logger *slog.Logger
}

// NewResolver creates a Resolver searching dirs in order.
func NewResolver(index *Index, dirs []string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	cleaned := make([]string, len(dirs))
	for i, d := range dirs {
		cleaned[i] = path.Clean(d)
	}
	return &Resolver{index: index, dirs: cleaned, logger: logger}
}

// Resolve returns the indexed path for ref, trying in order:
//  1. ref as written, when it carries an extension, in each directory;
//  2. ref + ".md" when its extension is not ".md" (drawings saved with
//     compound names such as "chart.excalidraw.md");
//  3. ref + each inferred extension, when it has none.
//
// Directories are tried in order within each candidate, so earlier
// directories win at every tier.
func (r *Resolver) Resolve(ref string) (string, bool) {
	ext := Ext(ref)

	var candidates []string
	if ext != "" {
		candidates = append(candidates, ref)
		if ext != ExtDrawing {
			candidates = append(candidates, ref+ExtDrawing)
		}
	} else {
		for _, e := range inferredExtensions {
			candidates = append(candidates, ref+e)
		}
	}

	for _, c := range candidates {
		for _, dir := range r.dirs {
			p := dir + "/" + c
			if r.index.Has(p) {
				if c != ref {
					r.logger.Debug("resolved embed", "ref", ref, "path", p)
				}
				return p, true
			}
		}
	}

	r.logger.Warn("failed to resolve media file", "ref", ref)
	return "", false
}

// Ext returns the extension of the last path element of p, including the
// dot. A leading dot (".hidden") is not an extension.
func Ext(p string) string {
	base := path.Base(p)
	if base == "." || base == "/" {
		return ""
	}
	dot := strings.LastIndexByte(base, '.')
	if dot <= 0 {
		return ""
	}
	return base[dot:]
}

// Title returns the display title of ref: its last path element without
// the extension.
func Title(ref string) string {
	base := path.Base(ref)
	return strings.TrimSuffix(base, Ext(base))
}
