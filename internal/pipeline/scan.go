package pipeline

import (
	"context"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ImageResolver resolves one raw image reference to its replacement text.
// changed is false when the reference was already inlined and left alone.
type ImageResolver interface {
	Resolve(ctx context.Context, raw string) (replacement string, changed bool, err error)
}

// Reporter receives per-reference failures and success counts during a scan.
type Reporter interface {
	Warn(site, ref string, err error)
	AddSrc()
	AddSrcset()
}

// InlineImages rewrites every img src and srcset reference in htmlContent
// through resolver, splicing replacements back into the document and leaving
// everything else intact. References are visited in document order; within a
// srcset, in left-to-right item order. A failing reference keeps its
// original text and is reported to rep; it never aborts the scan.
func InlineImages(ctx context.Context, htmlContent string, resolver ImageResolver, rep Reporter) (string, error) {
	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	inlineNode(ctx, doc, resolver, rep)

	return renderHTML(doc, isFragment)
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Returns the parsed node, whether it was a fragment, and any error.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	// Full document: starts with <!DOCTYPE or <html
	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	// Fragment: parse with body context to avoid wrapping
	bodyContext := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), bodyContext)
	if err != nil {
		return nil, true, err
	}

	// Wrap nodes in a container for uniform traversal
	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	return container, true, nil
}

// renderHTML renders the document back to string.
// For fragments, only renders the children (avoids adding <html><body> wrapper).
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if isFragment {
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// inlineNode traverses the DOM and rewrites image references on img nodes.
func inlineNode(ctx context.Context, n *html.Node, resolver ImageResolver, rep Reporter) {
	if n.Type == html.ElementNode && n.Data == "img" {
		inlineImgAttrs(ctx, n, resolver, rep)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		inlineNode(ctx, c, resolver, rep)
	}
}

// inlineImgAttrs rewrites the src and srcset attributes of one img element.
func inlineImgAttrs(ctx context.Context, n *html.Node, resolver ImageResolver, rep Reporter) {
	for i, attr := range n.Attr {
		switch attr.Key {
		case "src":
			if attr.Val == "" {
				continue
			}
			replacement, changed, err := resolver.Resolve(ctx, attr.Val)
			if err != nil {
				rep.Warn("src", attr.Val, err)
				continue
			}
			if changed {
				n.Attr[i].Val = replacement
				rep.AddSrc()
			}

		case "srcset":
			rewritten, touched := rewriteSrcset(ctx, attr.Val, resolver, rep)
			if touched {
				n.Attr[i].Val = rewritten
				rep.AddSrcset()
			}
		}
	}
}
