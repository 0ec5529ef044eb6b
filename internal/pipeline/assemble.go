package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
)

// ErrPageRender indicates the page template failed to execute.
var ErrPageRender = errors.New("page template rendering failed")

// ErrPageTemplate indicates the page template could not be parsed.
var ErrPageTemplate = errors.New("invalid page template")

// PageSection is one section block of the page.
type PageSection struct {
	ID    string
	Title string
	// Anchor is the permalink control placed after the section title.
	Anchor template.HTML
	// Body is the rendered section body, inserted verbatim.
	Body template.HTML
}

// Page is the data the page template executes with.
type Page struct {
	Title      string
	Lang       string
	Stylesheet string
	Script     string
	Sections   []PageSection
	// DrawingRuntime holds the drawing runtime bundle, empty when no
	// section embeds a drawing.
	DrawingRuntime template.HTML
}

// PageOptions holds the page-level values that do not come from sections.
type PageOptions struct {
	Title      string
	Lang       string
	Stylesheet string
	Script     string
	// UsesDrawingRuntime includes runtime in the page when set.
	UsesDrawingRuntime bool
	Runtime            string
}

// NewPage builds page data from sections in their given order.
func NewPage(sections []Section, opts PageOptions) *Page {
	p := &Page{
		Title:      opts.Title,
		Lang:       opts.Lang,
		Stylesheet: opts.Stylesheet,
		Script:     opts.Script,
		Sections:   make([]PageSection, 0, len(sections)),
	}
	for _, s := range sections {
		p.Sections = append(p.Sections, PageSection{
			ID:     s.ID,
			Title:  s.Title,
			Anchor: template.HTML(AnchorControl(s.ID)), // #nosec G203 -- id is escaped
			Body:   template.HTML(s.RenderedBody),      // #nosec G203 -- rendered section body
		})
	}
	if opts.UsesDrawingRuntime {
		p.DrawingRuntime = template.HTML(opts.Runtime) // #nosec G203 -- built-in bundle
	}
	return p
}

// Assembler renders the final page from a page template.
type Assembler struct {
	tmpl *template.Template
}

// NewAssembler creates an Assembler with a parsed page template.
func NewAssembler(tmplContent string) (*Assembler, error) {
	tmpl, err := template.New("page").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageTemplate, err)
	}
	return &Assembler{tmpl: tmpl}, nil
}

// Assemble executes the page template with page.
func (a *Assembler) Assemble(ctx context.Context, page *Page) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if page == nil {
		page = &Page{}
	}

	var buf bytes.Buffer
	if err := a.tmpl.Execute(&buf, page); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return buf.String(), nil
}
