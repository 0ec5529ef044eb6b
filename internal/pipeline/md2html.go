package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// DefaultHighlightStyle is the chroma style used for fenced code.
const DefaultHighlightStyle = "github"

// HTMLConverter abstracts Markdown to HTML fragment conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// GoldmarkConverter converts Markdown to an HTML fragment using goldmark
// with GFM, typographic replacements, footnotes, code highlighting and the
// vault syntax rules.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// ConverterOption configures a GoldmarkConverter.
type ConverterOption func(*converterConfig)

type converterConfig struct {
	highlightStyle string
	footnotePrefix string
}

// WithHighlightStyle sets the chroma style for fenced code blocks.
func WithHighlightStyle(style string) ConverterOption {
	return func(c *converterConfig) {
		if style != "" {
			c.highlightStyle = style
		}
	}
}

// WithFootnotePrefix prefixes footnote ids so several converted fragments
// can share one page.
func WithFootnotePrefix(prefix string) ConverterOption {
	return func(c *converterConfig) {
		c.footnotePrefix = prefix
	}
}

// NewGoldmarkConverter creates a GoldmarkConverter.
// Raw HTML passes through unchanged; single newlines are not hard breaks.
func NewGoldmarkConverter(opts ...ConverterOption) *GoldmarkConverter {
	cfg := converterConfig{highlightStyle: DefaultHighlightStyle}
	for _, opt := range opts {
		opt(&cfg)
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // Tables, strikethrough, autolinks, task lists
			extension.Typographer,
			extension.NewFootnote(
				extension.WithFootnoteIDPrefix([]byte(cfg.footnotePrefix)),
			),
			highlighting.NewHighlighting(
				highlighting.WithStyle(cfg.highlightStyle),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
			VaultSyntax,
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(), // Embed markers and author HTML are kept verbatim
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML converts Markdown content to an HTML fragment. Heading ids are
// unique within one call.
// Supports context cancellation via goroutine + select pattern since
// goldmark doesn't natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		pc := parser.NewContext(parser.WithIDs(newSlugIDs()))
		if err := c.md.Convert([]byte(content), &buf, parser.WithContext(pc)); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
