package pipeline

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attributes added by DecorateMedia. Values already present are kept.
const (
	lazyLoading   = "lazy"
	metadataVideo = "metadata"
)

// DecorateMedia defers media loading in an HTML fragment:
//   - img gets loading="lazy"
//   - video gets preload="metadata"
//
// Fragments without images or videos are returned unchanged.
func DecorateMedia(fragment string) (string, error) {
	lower := strings.ToLower(fragment)
	if !strings.Contains(lower, "<img") && !strings.Contains(lower, "<video") {
		return fragment, nil
	}

	root, err := parseFragment(fragment)
	if err != nil {
		return "", err
	}
	decorateNode(root)
	return renderFragment(root)
}

// parseFragment parses content in a body context and wraps the resulting
// nodes in a document node for uniform traversal.
func parseFragment(content string) (*html.Node, error) {
	body := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

// renderFragment renders the children of container, without the
// <html><body> wrapper.
func renderFragment(container *html.Node) (string, error) {
	var buf strings.Builder
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func decorateNode(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			setDefaultAttr(n, "loading", lazyLoading)
		case atom.Video:
			setDefaultAttr(n, "preload", metadataVideo)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		decorateNode(c)
	}
}

// setDefaultAttr adds key=val unless the element already carries key.
func setDefaultAttr(n *html.Node, key, val string) {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
