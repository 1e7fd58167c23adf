package el

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/shwimple/shwimple/pkg/dom"
)

var (
	ugcPolicy = bluemonday.UGCPolicy()
	markdown  = goldmark.New(goldmark.WithExtensions(extension.GFM))
)

// EscapedText creates a text node whose content is HTML-escaped. Use it for
// untrusted plain text; Text never escapes.
func EscapedText(value any) *dom.Node {
	return dom.NewText(escapeHTML(stringify(value)))
}

// EscapeAttr escapes a value for use inside a double-quoted attribute.
func EscapeAttr(value string) string {
	return escapeAttr(value)
}

// Sanitized creates a text node from untrusted HTML after stripping anything
// outside a user-generated-content allow list (scripts, event handlers,
// javascript: URLs, ...).
func Sanitized(untrusted string) *dom.Node {
	return dom.NewText(ugcPolicy.Sanitize(untrusted))
}

// Markdown renders GitHub flavored Markdown into a text node holding the
// resulting HTML. Raw HTML blocks in src are omitted.
func Markdown(src string) (*dom.Node, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return nil, fmt.Errorf("markdown: %w", err)
	}
	return dom.NewText(buf.String()), nil
}

// Parse converts an HTML fragment into nodes. Elements carrying an id or a
// class become element nodes; comments and doctypes are dropped. Text and
// attribute values are re-escaped, so serializing the result yields markup
// equivalent to the input.
func Parse(fragment string) ([]*dom.Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	parsed, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}

	nodes := make([]*dom.Node, 0, len(parsed))
	for _, n := range parsed {
		if converted := convertHTML(n); converted != nil {
			nodes = append(nodes, converted)
		}
	}
	return nodes, nil
}

func convertHTML(n *html.Node) *dom.Node {
	switch n.Type {
	case html.TextNode:
		return dom.NewText(escapeHTML(n.Data))
	case html.ElementNode:
	default:
		return nil
	}

	var id, class string
	attrs := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		key := a.Key
		if a.Namespace != "" {
			key = a.Namespace + ":" + a.Key
		}
		switch key {
		case "id":
			id = a.Val
		case "class":
			class = a.Val
		default:
			attrs[key] = escapeAttr(a.Val)
		}
	}

	var node *dom.Node
	if id != "" || class != "" {
		node = dom.NewElement(n.Data, escapeAttr(id), escapeAttr(class))
	} else {
		node = dom.NewNode(n.Data, "")
	}
	if len(attrs) > 0 {
		node.Attributes = attrs
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		// script and style bodies are raw text; keep them unescaped.
		if c.Type == html.TextNode && (n.DataAtom == atom.Script || n.DataAtom == atom.Style) {
			node.AppendChild(dom.NewText(c.Data))
			continue
		}
		if child := convertHTML(c); child != nil {
			node.AppendChild(child)
		}
	}
	return node
}
