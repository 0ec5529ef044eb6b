package media

import (
	"fmt"
	"html"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/alnah/go-vault2html/internal/drawing"
)

// Fragment is the rendered HTML for one embed.
type Fragment struct {
	HTML string
	// UsesDrawingRuntime is set when the fragment needs the drawing
	// runtime bundle on the page.
	UsesDrawingRuntime bool
}

// EmbedRenderer renders an embed reference. Implemented by *Renderer.
type EmbedRenderer interface {
	RenderEmbed(ref string) Fragment
}

// Renderer resolves and renders embeds. It reads drawing archives from
// the vault filesystem.
type Renderer struct {
	vault    fs.FS
	resolver *Resolver
	logger   *slog.Logger
}

// NewRenderer creates a Renderer reading drawing archives from vault.
func NewRenderer(vault fs.FS, resolver *Resolver, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Renderer{vault: vault, resolver: resolver, logger: logger}
}

// RenderEmbed resolves ref and renders it.
func (r *Renderer) RenderEmbed(ref string) Fragment {
	resolved, _ := r.resolver.Resolve(ref)
	return r.Render(ref, resolved)
}

// Render dispatches on the resolved path's extension. An empty resolved
// path renders the missing indicator. Failures never escape as errors;
// they render as visible fragments.
func (r *Renderer) Render(ref, resolved string) Fragment {
	if resolved == "" {
		return Fragment{HTML: `<div class="error-embed">Missing: ` + html.EscapeString(ref) + `</div>`}
	}

	title := html.EscapeString(Title(ref))
	src := html.EscapeString(resolved)

	switch strings.ToLower(Ext(resolved)) {
	case ExtMKV, ExtMP4, ExtWebM:
		return Fragment{HTML: fmt.Sprintf(videoTemplate, src, src, title)}
	case ExtSVG:
		return Fragment{HTML: fmt.Sprintf(svgTemplate, src, title)}
	case ExtDrawing:
		return r.renderDrawing(ref, resolved)
	case ExtPNG, ExtJPG, ExtJPEG:
		return Fragment{HTML: fmt.Sprintf(imageTemplate, src, title, title)}
	}

	return Fragment{HTML: `<div class="unknown-embed">Unsupported embed: ` + html.EscapeString(ref) + ` (Type unknown)</div>`}
}

func (r *Renderer) renderDrawing(ref, resolved string) Fragment {
	failed := Fragment{HTML: `<div class="error-embed">Error rendering: ` + html.EscapeString(ref) + `</div>`}

	archive, err := fs.ReadFile(r.vault, resolved)
	if err != nil {
		r.logger.Warn("reading drawing archive", "path", resolved, "err", err)
		return failed
	}
	scene, err := drawing.ExtractScene(string(archive))
	if err != nil {
		r.logger.Warn("parsing drawing archive", "path", resolved, "err", err)
		return failed
	}
	scene, err = drawing.NormalizeFonts(scene)
	if err != nil {
		r.logger.Warn("normalizing drawing fonts", "path", resolved, "err", err)
		return failed
	}

	title := Title(ref)
	id := drawing.NewID(title)
	return Fragment{
		HTML:               fmt.Sprintf(drawingTemplate, drawing.Embed(scene, id), html.EscapeString(title)),
		UsesDrawingRuntime: true,
	}
}

// IsFailure reports whether a fragment is one of the visible failure
// indicators.
func IsFailure(f Fragment) bool {
	return strings.HasPrefix(f.HTML, `<div class="error-embed">`) ||
		strings.HasPrefix(f.HTML, `<div class="unknown-embed">`)
}

const videoTemplate = `<div class="media-embed video-embed">
<video controls class="lesson-video">
<source src="%s" type="video/webm">
<source src="%s" type="video/mp4">
Your browser does not support the video tag.
</video>
<div class="media-caption">%s</div>
</div>`

const svgTemplate = `<div class="media-embed svg-embed">
<object type="image/svg+xml" data="%s" class="lesson-svg"></object>
<div class="media-caption">%s</div>
</div>`

const imageTemplate = `<div class="media-embed image-embed">
<img src="%s" alt="%s" class="lesson-image">
<div class="media-caption">%s</div>
</div>`

const drawingTemplate = `<div class="media-embed excalidraw-embed">
%s
<div class="media-caption">%s</div>
</div>`
