package pipeline

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Inline parser priorities. goldmark runs lower values first; the built-in
// link parser sits at 200 and GFM strikethrough at 500.
const (
	wikilinkPriority      = 199
	strikethroughPriority = 499
	commentPriority       = 100
	insertedPriority      = 500
	markPriority          = 500
)

// wikilinkClass is set on every anchor produced from [[Target]].
const wikilinkClass = "wikilink"

// copyAnchorIcon is the link glyph inside the heading permalink button.
const copyAnchorIcon = `<svg viewBox="0 0 24 24" width="18" height="18" stroke="currentColor" stroke-width="2" fill="none" stroke-linecap="round" stroke-linejoin="round"><path d="M10 13a5 5 0 0 0 7.54.54l3-3a5 5 0 0 0-7.07-7.07l-1.72 1.71"></path><path d="M14 11a5 5 0 0 0-7.54-.54l-3 3a5 5 0 0 0 7.07 7.07l1.71-1.71"></path></svg>`

// ---------------------------------------------------------------------------
// Delimited spans
// ---------------------------------------------------------------------------

// scanDelimited consumes open, the content up to the nearest following
// close, and close itself. The search may continue onto later lines of the
// same block. When open is absent or no closer exists the reader is left
// untouched and ok is false.
func scanDelimited(block text.Reader, open, close []byte) (content []byte, ok bool) {
	line, _ := block.PeekLine()
	if !bytes.HasPrefix(line, open) {
		return nil, false
	}

	savedLine, savedSeg := block.Position()
	block.Advance(len(open))

	var buf []byte
	for {
		line, _ = block.PeekLine()
		if line == nil {
			block.SetPosition(savedLine, savedSeg)
			return nil, false
		}
		if i := bytes.Index(line, close); i >= 0 {
			buf = append(buf, line[:i]...)
			block.Advance(i + len(close))
			return buf, true
		}
		buf = append(buf, line...)
		block.AdvanceLine()
	}
}

// rawText returns a text node that renders content HTML-escaped and
// without further inline parsing.
func rawText(content []byte) *ast.String {
	s := ast.NewString(content)
	s.SetRaw(true)
	return s
}

// ---------------------------------------------------------------------------
// [[wikilink]]
// ---------------------------------------------------------------------------

type wikilinkParser struct{}

func (wikilinkParser) Trigger() []byte { return []byte{'['} }

func (wikilinkParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	content, ok := scanDelimited(block, []byte("[["), []byte("]]"))
	if !ok {
		return nil
	}
	link := ast.NewLink()
	link.Destination = []byte("#" + Slugify(string(content)))
	link.SetAttributeString("class", []byte(wikilinkClass))
	link.AppendChild(link, rawText(content))
	return link
}

// ---------------------------------------------------------------------------
// ~~strikethrough~~
// ---------------------------------------------------------------------------

type strikethroughParser struct{}

func (strikethroughParser) Trigger() []byte { return []byte{'~'} }

func (strikethroughParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	content, ok := scanDelimited(block, []byte("~~"), []byte("~~"))
	if !ok {
		return nil
	}
	del := east.NewStrikethrough()
	del.AppendChild(del, rawText(content))
	return del
}

// ---------------------------------------------------------------------------
// %%comment%%
// ---------------------------------------------------------------------------

// KindComment is the node kind of an inline comment. Comment nodes are
// removed from the tree before rendering.
var KindComment = ast.NewNodeKind("VaultComment")

type commentNode struct {
	ast.BaseInline
}

func (n *commentNode) Kind() ast.NodeKind { return KindComment }

func (n *commentNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

type commentParser struct{}

func (commentParser) Trigger() []byte { return []byte{'%'} }

func (commentParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	if _, ok := scanDelimited(block, []byte("%%"), []byte("%%")); !ok {
		return nil
	}
	return &commentNode{}
}

type commentRemover struct{}

func (commentRemover) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	var comments []ast.Node
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.Kind() == KindComment {
			comments = append(comments, n)
		}
		return ast.WalkContinue, nil
	})
	for _, n := range comments {
		if parent := n.Parent(); parent != nil {
			parent.RemoveChild(parent, n)
		}
	}
}

// ---------------------------------------------------------------------------
// ++inserted++
// ---------------------------------------------------------------------------

// KindInserted is the node kind of ++inserted++ text.
var KindInserted = ast.NewNodeKind("Inserted")

type insertedNode struct {
	ast.BaseInline
}

func (n *insertedNode) Kind() ast.NodeKind { return KindInserted }

func (n *insertedNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

type insertedParser struct{}

func (insertedParser) Trigger() []byte { return []byte{'+'} }

func (insertedParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	content, ok := scanDelimited(block, []byte("++"), []byte("++"))
	if !ok || len(content) == 0 {
		return nil
	}
	ins := &insertedNode{}
	ins.AppendChild(ins, rawText(content))
	return ins
}

// ---------------------------------------------------------------------------
// ==highlight==
// ---------------------------------------------------------------------------

// KindMark is the node kind of ==highlighted== text.
var KindMark = ast.NewNodeKind("Mark")

type markNode struct {
	ast.BaseInline
}

func (n *markNode) Kind() ast.NodeKind { return KindMark }

func (n *markNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

type markDelimiterProcessor struct{}

func (markDelimiterProcessor) IsDelimiter(b byte) bool { return b == '=' }

func (markDelimiterProcessor) CanOpenCloser(opener, closer *parser.Delimiter) bool {
	return opener.Char == closer.Char
}

func (markDelimiterProcessor) OnMatch(_ int) ast.Node { return &markNode{} }

// markParser pushes "==" runs as delimiters, so highlights follow the same
// flanking rules as emphasis and may contain other inline markup.
type markParser struct{}

func (markParser) Trigger() []byte { return []byte{'='} }

func (markParser) Parse(_ ast.Node, block text.Reader, pc parser.Context) ast.Node {
	before := block.PrecendingCharacter()
	line, segment := block.PeekLine()
	d := parser.ScanDelimiter(line, before, 2, markDelimiterProcessor{})
	if d == nil || d.OriginalLength != 2 || before == '=' {
		return nil
	}
	d.Segment = segment.WithStop(segment.Start + d.OriginalLength)
	block.Advance(d.OriginalLength)
	pc.PushDelimiter(d)
	return d
}

// ---------------------------------------------------------------------------
// > [!type] callouts
// ---------------------------------------------------------------------------

// calloutMarker matches the first line of a callout blockquote.
var calloutMarker = regexp.MustCompile(`^\[!([A-Za-z0-9_-]+)\][+-]?[ \t]*(.*)$`)

// KindCalloutTitle is the node kind of the title row of a callout.
var KindCalloutTitle = ast.NewNodeKind("CalloutTitle")

type calloutTitle struct {
	ast.BaseBlock
	CalloutType string
	Title       string
}

func (n *calloutTitle) Kind() ast.NodeKind { return KindCalloutTitle }

func (n *calloutTitle) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"CalloutType": n.CalloutType, "Title": n.Title}, nil)
}

type calloutTransformer struct{}

func (calloutTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()

	var quotes []*ast.Blockquote
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if q, ok := n.(*ast.Blockquote); ok && entering {
			quotes = append(quotes, q)
		}
		return ast.WalkContinue, nil
	})

	for _, q := range quotes {
		para, ok := q.FirstChild().(*ast.Paragraph)
		if !ok || para.Lines().Len() == 0 {
			continue
		}
		first := para.Lines().At(0)
		m := calloutMarker.FindSubmatch(bytes.TrimRight(first.Value(source), "\r\n"))
		if m == nil {
			continue
		}

		kind := string(bytes.ToLower(m[1]))
		title := string(bytes.TrimSpace(m[2]))
		if title == "" {
			title = string(bytes.ToUpper(m[1][:1])) + string(bytes.ToLower(m[1][1:]))
		}

		q.SetAttributeString("class", []byte("callout callout-"+kind))
		q.SetAttributeString("data-callout", []byte(kind))
		q.InsertBefore(q, para, &calloutTitle{CalloutType: kind, Title: title})
		dropFirstLine(para, first)
	}
}

// dropFirstLine removes the inline nodes that came from the paragraph's
// first line, then removes the paragraph itself if nothing remains.
func dropFirstLine(para *ast.Paragraph, first text.Segment) {
	for c := para.FirstChild(); c != nil; {
		next := c.NextSibling()
		if t, ok := c.(*ast.Text); ok && t.Segment.Start >= first.Stop {
			break
		}
		if t, ok := c.(*ast.Text); ok && (t.SoftLineBreak() || t.HardLineBreak()) {
			para.RemoveChild(para, c)
			break
		}
		para.RemoveChild(para, c)
		c = next
	}
	if para.ChildCount() == 0 {
		para.Parent().RemoveChild(para.Parent(), para)
	}
}

// ---------------------------------------------------------------------------
// Heading permalinks
// ---------------------------------------------------------------------------

// KindHeadingAnchor is the node kind of the permalink control appended to
// every heading.
var KindHeadingAnchor = ast.NewNodeKind("HeadingAnchor")

type headingAnchor struct {
	ast.BaseInline
	ID []byte
}

func (n *headingAnchor) Kind() ast.NodeKind { return KindHeadingAnchor }

func (n *headingAnchor) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"ID": string(n.ID)}, nil)
}

type headingAnchorTransformer struct{}

// Transform gives every non-empty heading an id slugged from its visible
// text and appends the permalink control. It runs after comment removal.
func (headingAnchorTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		h, ok := n.(*ast.Heading)
		if !entering || !ok {
			return ast.WalkContinue, nil
		}
		label := strings.TrimSpace(headingText(h, source))
		if label == "" {
			return ast.WalkSkipChildren, nil
		}
		id := pc.IDs().Generate([]byte(label), ast.KindHeading)
		h.SetAttributeString("id", id)
		h.AppendChild(h, &headingAnchor{ID: id})
		return ast.WalkSkipChildren, nil
	})
}

// headingText returns the text a reader sees in heading h.
func headingText(h *ast.Heading, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(h, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			if t.IsCode() {
				b.WriteString(html.UnescapeString(string(t.Value)))
			} else {
				b.Write(t.Value)
			}
		case *ast.AutoLink:
			b.Write(t.Label(source))
		case *headingAnchor, *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// AnchorControl returns the permalink control for the heading with id.
// The browser script binds the copy button by its data-copy-anchor
// attribute.
func AnchorControl(id string) string {
	id = html.EscapeString(id)
	return fmt.Sprintf(anchorControlFormat, id, id, copyAnchorIcon)
}

const anchorControlFormat = `<a class="header-anchor" href="#%s"><button class="copy-anchor" data-copy-anchor="%s" title="Copy link to this section">%s</button></a>`

// ---------------------------------------------------------------------------
// Rendering
// ---------------------------------------------------------------------------

type vaultRenderer struct {
	gmhtml.Config
}

func (r *vaultRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindComment, r.renderComment)
	reg.Register(KindInserted, r.renderInserted)
	reg.Register(KindMark, r.renderMark)
	reg.Register(KindCalloutTitle, r.renderCalloutTitle)
	reg.Register(KindHeadingAnchor, r.renderHeadingAnchor)
}

func (r *vaultRenderer) renderComment(_ util.BufWriter, _ []byte, _ ast.Node, _ bool) (ast.WalkStatus, error) {
	return ast.WalkSkipChildren, nil
}

func (r *vaultRenderer) renderInserted(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("<ins>")
	} else {
		_, _ = w.WriteString("</ins>")
	}
	return ast.WalkContinue, nil
}

func (r *vaultRenderer) renderMark(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("<mark>")
	} else {
		_, _ = w.WriteString("</mark>")
	}
	return ast.WalkContinue, nil
}

func (r *vaultRenderer) renderCalloutTitle(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*calloutTitle)
	_, _ = w.WriteString(`<div class="callout-title">`)
	_, _ = w.Write(util.EscapeHTML([]byte(n.Title)))
	_, _ = w.WriteString("</div>\n")
	return ast.WalkSkipChildren, nil
}

func (r *vaultRenderer) renderHeadingAnchor(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString(" " + AnchorControl(string(node.(*headingAnchor).ID)))
	return ast.WalkSkipChildren, nil
}

// ---------------------------------------------------------------------------
// Extension
// ---------------------------------------------------------------------------

// VaultSyntax adds the vault inline rules, callouts and heading permalink
// controls to a goldmark instance.
var VaultSyntax goldmark.Extender = vaultSyntax{}

type vaultSyntax struct{}

func (vaultSyntax) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithInlineParsers(
			util.Prioritized(wikilinkParser{}, wikilinkPriority),
			util.Prioritized(strikethroughParser{}, strikethroughPriority),
			util.Prioritized(commentParser{}, commentPriority),
			util.Prioritized(insertedParser{}, insertedPriority),
			util.Prioritized(markParser{}, markPriority),
		),
		parser.WithASTTransformers(
			util.Prioritized(commentRemover{}, 100),
			util.Prioritized(calloutTransformer{}, 200),
			util.Prioritized(headingAnchorTransformer{}, 300),
		),
	)
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(&vaultRenderer{Config: gmhtml.NewConfig()}, 500),
		),
	)
}
