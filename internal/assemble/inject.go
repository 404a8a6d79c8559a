package assemble

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// findElement returns the first element with the given tag name, depth-first.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// findByID returns the first element carrying the given id attribute.
func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode && attrVal(n, "id") == id {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// appendStylesheet adds a <link rel="stylesheet"> to the document head.
// Pages without a head (which the parser normally synthesizes) are left
// alone rather than failed.
func appendStylesheet(doc *html.Node, href string) {
	head := findElement(doc, "head")
	if head == nil {
		return
	}
	head.AppendChild(&html.Node{
		Type:     html.ElementNode,
		Data:     "link",
		DataAtom: atom.Link,
		Attr: []html.Attribute{
			{Key: "rel", Val: "stylesheet"},
			{Key: "href", Val: href},
		},
	})
}

// appendMeta adds a <meta name content> pair to the document head.
func appendMeta(doc *html.Node, name, content string) {
	head := findElement(doc, "head")
	if head == nil {
		return
	}
	head.AppendChild(&html.Node{
		Type:     html.ElementNode,
		Data:     "meta",
		DataAtom: atom.Meta,
		Attr: []html.Attribute{
			{Key: "name", Val: name},
			{Key: "content", Val: content},
		},
	})
}

// appendScript adds a <script src> element as the last child of body.
func appendScript(doc *html.Node, src string) {
	body := findElement(doc, "body")
	if body == nil {
		return
	}
	body.AppendChild(&html.Node{
		Type:     html.ElementNode,
		Data:     "script",
		DataAtom: atom.Script,
		Attr:     []html.Attribute{{Key: "src", Val: src}},
	})
}

// parseFragment parses an HTML fragment in body context.
func parseFragment(fragment string) ([]*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	return html.ParseFragment(strings.NewReader(fragment), ctx)
}

// replaceWithFragment swaps the placeholder node for the fragment nodes,
// preserving the placeholder's document position.
func replaceWithFragment(placeholder *html.Node, nodes []*html.Node) {
	parent := placeholder.Parent
	if parent == nil {
		return
	}
	for _, n := range nodes {
		parent.InsertBefore(n, placeholder)
	}
	parent.RemoveChild(placeholder)
}

// prependToBody inserts the fragment nodes as the first children of body,
// keeping their order. Calling this twice inserts the fragment twice: the
// assembler always starts from pristine sources, so no guard exists.
func prependToBody(doc *html.Node, nodes []*html.Node) {
	body := findElement(doc, "body")
	if body == nil {
		return
	}
	anchor := body.FirstChild
	for _, n := range nodes {
		body.InsertBefore(n, anchor)
	}
}
