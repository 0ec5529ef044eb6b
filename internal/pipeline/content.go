package pipeline

import (
	"context"
	"html"
	"log/slog"
	"strings"

	"github.com/alnah/go-vault2html/internal/media"
)

// Rendered is one section body after the content pipeline.
type Rendered struct {
	HTML string
	// UsesDrawingRuntime is the OR of every embed fragment's flag.
	UsesDrawingRuntime bool
	// Embeds counts the embeds found; FailedEmbeds counts those rendered
	// as missing, broken or unsupported.
	Embeds       int
	FailedEmbeds int
}

// Processor turns a raw section body into HTML. It is safe for concurrent
// use when its embed renderer is.
type Processor struct {
	embeds         media.EmbedRenderer
	highlightStyle string
	logger         *slog.Logger
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithProcessorHighlightStyle sets the chroma style for fenced code.
func WithProcessorHighlightStyle(style string) ProcessorOption {
	return func(p *Processor) {
		p.highlightStyle = style
	}
}

// WithProcessorLogger sets the logger. Nil discards.
func WithProcessorLogger(logger *slog.Logger) ProcessorOption {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewProcessor creates a Processor rendering embeds with embeds.
func NewProcessor(embeds media.EmbedRenderer, opts ...ProcessorOption) *Processor {
	p := &Processor{
		embeds:         embeds,
		highlightStyle: DefaultHighlightStyle,
		logger:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process renders body. sectionID prefixes footnote ids so that several
// sections can share a page.
//
// Embeds are swapped for markers before Markdown conversion and replaced by
// their fragments afterwards, so embed HTML is never parsed as Markdown.
func (p *Processor) Process(ctx context.Context, sectionID, body string) (Rendered, error) {
	content, placeholders := protectEmbeds(normalizeLineEndings(body))

	conv := NewGoldmarkConverter(
		WithHighlightStyle(p.highlightStyle),
		WithFootnotePrefix(sectionID+"-"),
	)
	out, err := conv.ToHTML(ctx, content)
	if err != nil {
		return Rendered{}, err
	}

	var r Rendered
	for token, ref := range placeholders {
		marker := embedMarker(token)
		if strings.Contains(out, marker) {
			frag := p.embeds.RenderEmbed(ref)
			out = strings.Replace(out, marker, frag.HTML, 1)
			r.Embeds++
			r.UsesDrawingRuntime = r.UsesDrawingRuntime || frag.UsesDrawingRuntime
			if media.IsFailure(frag) {
				r.FailedEmbeds++
			}
			continue
		}
		if restored, ok := restoreLiteralEmbed(out, marker, ref); ok {
			out = restored
			continue
		}
		p.logger.Debug("embed marker not found in output", "section", sectionID, "ref", ref)
	}

	r.HTML = out
	return r, nil
}

// restoreLiteralEmbed handles a marker that ended up inside a code span,
// where goldmark escaped it. The author's ![[ref]] text is put back.
func restoreLiteralEmbed(out, marker, ref string) (string, bool) {
	escaped := html.EscapeString(marker)
	if !strings.Contains(out, escaped) {
		return out, false
	}
	return strings.Replace(out, escaped, html.EscapeString("![["+ref+"]]"), 1), true
}
